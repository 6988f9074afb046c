// Package config owns the persisted configuration document: client
// credentials, the default and named-profile credential records, and
// output defaults. The document lives in a TOML file that is reloaded
// from disk at the start of every invocation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// Environment variables that override the persisted document. Overrides
// are applied after the file load, so the environment always wins.
const (
	EnvClientID     = "STRAVA_CLIENT_ID"
	EnvClientSecret = "STRAVA_CLIENT_SECRET"
	EnvAccessToken  = "STRAVA_ACCESS_TOKEN"
	EnvRefreshToken = "STRAVA_REFRESH_TOKEN"
	EnvConfigPath   = "STRAVA_CONFIG"
	EnvFormat       = "STRAVA_FORMAT"
	EnvProfile      = "STRAVA_PROFILE"
)

// envKeys maps override variables onto document keys.
var envKeys = map[string]string{
	EnvClientID:     "client.id",
	EnvClientSecret: "client.secret",
	EnvAccessToken:  "auth.access_token",
	EnvRefreshToken: "auth.refresh_token",
}

// Credentials is one credential record: OAuth tokens plus the athlete
// they belong to. A zero value means "not authenticated".
type Credentials struct {
	AccessToken  string   `toml:"access_token,omitempty"`
	RefreshToken string   `toml:"refresh_token,omitempty"`
	ExpiresAt    int64    `toml:"expires_at,omitempty"`
	AthleteID    int64    `toml:"athlete_id,omitempty"`
	Scopes       []string `toml:"scopes,omitempty"`
}

// IsAuthenticated reports whether an access token is present. Expiry is
// a separate property: an expired record is still authenticated.
func (c *Credentials) IsAuthenticated() bool {
	return c.AccessToken != ""
}

// IsExpired reports whether the access token has expired. A record with
// no recorded expiry is treated as already expired, forcing a refresh or
// re-auth instead of trusting an unbounded token.
func (c *Credentials) IsExpired() bool {
	return c.ExpiresAt == 0 || c.ExpiresAt <= time.Now().Unix()
}

// Client holds the OAuth application credentials.
type Client struct {
	ID     string `toml:"id,omitempty"`
	Secret string `toml:"secret,omitempty"`
}

// Defaults holds output defaults applied when flags are not given.
type Defaults struct {
	Format string `toml:"format" validate:"oneof=json jsonl csv tsv human"`
	Limit  int    `toml:"limit" validate:"gte=1"`
}

// Config is the full configuration document.
type Config struct {
	Client   Client                  `toml:"client"`
	Auth     Credentials             `toml:"auth"`
	Defaults Defaults                `toml:"defaults"`
	Profiles map[string]*Credentials `toml:"profiles,omitempty"`
}

// Error indicates malformed or unusable persisted configuration.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid configuration %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ExitCode returns 2: configuration must be fixed before proceeding.
func (e *Error) ExitCode() int { return 2 }

// DefaultPath returns the XDG-conventional config file location.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "strava-cli", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Last resort: relative to the working directory.
		return filepath.Join(".config", "strava-cli", "config.toml")
	}
	return filepath.Join(home, ".config", "strava-cli", "config.toml")
}

// ResolvePath picks the config file location: explicit path, then the
// STRAVA_CONFIG environment variable, then the XDG default.
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultPath()
}

// Load reads the configuration document. A missing file is not an error
// and yields defaults; malformed content is. Environment overrides are
// layered on top of whatever the file held.
func Load(path string) (*Config, error) {
	resolved := ResolvePath(path)
	k := koanf.New(".")

	if _, err := os.Stat(resolved); err == nil {
		if err := k.Load(file.Provider(resolved), toml.Parser()); err != nil {
			return nil, &Error{Path: resolved, Err: err}
		}
	} else if !os.IsNotExist(err) {
		return nil, &Error{Path: resolved, Err: err}
	}

	envProvider := env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			if mapped, ok := envKeys[key]; ok && value != "" {
				return mapped, value
			}
			return "", nil
		},
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, &Error{Path: resolved, Err: err}
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "toml"}); err != nil {
		return nil, &Error{Path: resolved, Err: err}
	}

	cfg.applyDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return nil, &Error{Path: resolved, Err: err}
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	// Format names are case-insensitive everywhere else, so a persisted
	// "JSON" must not trip validation.
	c.Defaults.Format = strings.ToLower(c.Defaults.Format)
	if c.Defaults.Format == "" {
		c.Defaults.Format = "json"
	}
	if c.Defaults.Limit == 0 {
		c.Defaults.Limit = 30
	}
	if c.Profiles == nil {
		c.Profiles = map[string]*Credentials{}
	}
}

// Save persists the document. The write is atomic (temp file + rename)
// so concurrent readers never see a torn file, but there is no file
// locking: concurrent invocations that both mutate config race and the
// last writer wins. Directory and file permissions are tightened to
// owner-only on every save since the file holds tokens.
func (c *Config) Save(path string) error {
	resolved := ResolvePath(path)
	dir := filepath.Dir(resolved)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.Chmod(dir, 0700); err != nil {
		return fmt.Errorf("securing config dir: %w", err)
	}

	data, err := gotoml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "config-*.toml")
	if err != nil {
		return fmt.Errorf("creating temp config: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := os.Rename(tmpName, resolved); err != nil {
		return fmt.Errorf("replacing config: %w", err)
	}
	if err := os.Chmod(resolved, 0600); err != nil {
		return fmt.Errorf("securing config: %w", err)
	}
	return nil
}

// Profile returns the named profile's credential record if it exists,
// otherwise the default record. The returned pointer aliases the
// document, so mutations followed by Save persist.
func (c *Config) Profile(name string) *Credentials {
	if name != "" {
		if p, ok := c.Profiles[name]; ok && p != nil {
			return p
		}
	}
	return &c.Auth
}

// ClearAuth resets the targeted credential record to empty. The profile
// entry itself is kept.
func (c *Config) ClearAuth(profile string) {
	if profile != "" {
		if _, ok := c.Profiles[profile]; ok {
			c.Profiles[profile] = &Credentials{}
			return
		}
	}
	c.Auth = Credentials{}
}

// ClientCredentials returns the configured OAuth application id and
// secret. Environment overrides were already applied at load time.
func (c *Config) ClientCredentials() (id, secret string) {
	return c.Client.ID, c.Client.Secret
}
