package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv blanks the override variables so ambient credentials cannot
// leak into assertions. Empty values are skipped by the env layer.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvClientID, EnvClientSecret, EnvAccessToken, EnvRefreshToken} {
		t.Setenv(key, "")
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Auth.IsAuthenticated() {
		t.Error("expected unauthenticated defaults")
	}
	if cfg.Defaults.Format != "json" {
		t.Errorf("Defaults.Format = %q, want json", cfg.Defaults.Format)
	}
	if cfg.Defaults.Limit != 30 {
		t.Errorf("Defaults.Limit = %d, want 30", cfg.Defaults.Limit)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[client\nid = "), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for malformed file")
	}
	cfgErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if cfgErr.ExitCode() != 2 {
		t.Errorf("ExitCode() = %d, want 2", cfgErr.ExitCode())
	}
}

func TestLoadNormalizesFormatCase(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[defaults]\nformat = \"JSON\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Defaults.Format != "json" {
		t.Errorf("Defaults.Format = %q, want json", cfg.Defaults.Format)
	}
}

func TestLoadRejectsInvalidDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[defaults]\nformat = \"yaml\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unknown format")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	original := &Config{
		Client: Client{ID: "123", Secret: "shh"},
		Auth: Credentials{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresAt:    1700000000,
			AthleteID:    42,
			Scopes:       []string{"read", "activity:read"},
		},
		Defaults: Defaults{Format: "csv", Limit: 10},
		Profiles: map[string]*Credentials{
			"work": {AccessToken: "work-access", RefreshToken: "work-refresh", ExpiresAt: 1800000000},
		},
	}
	if err := original.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Client != original.Client {
		t.Errorf("Client = %+v, want %+v", loaded.Client, original.Client)
	}
	if loaded.Auth.AccessToken != "access" || loaded.Auth.RefreshToken != "refresh" {
		t.Errorf("Auth = %+v", loaded.Auth)
	}
	if loaded.Auth.ExpiresAt != 1700000000 || loaded.Auth.AthleteID != 42 {
		t.Errorf("Auth = %+v", loaded.Auth)
	}
	if len(loaded.Auth.Scopes) != 2 || loaded.Auth.Scopes[0] != "read" {
		t.Errorf("Scopes = %v", loaded.Auth.Scopes)
	}
	if loaded.Defaults != original.Defaults {
		t.Errorf("Defaults = %+v, want %+v", loaded.Defaults, original.Defaults)
	}
	work, ok := loaded.Profiles["work"]
	if !ok {
		t.Fatal("profile 'work' missing after round trip")
	}
	if work.AccessToken != "work-access" {
		t.Errorf("profile access token = %q", work.AccessToken)
	}
}

func TestSaveTightensPermissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "conf")
	path := filepath.Join(dir, "config.toml")

	cfg := &Config{Auth: Credentials{AccessToken: "secret"}}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file perm = %o, want 0600", perm)
	}

	dirInfo, err := os.Stat(dir)
	if err != nil {
		t.Fatal(err)
	}
	if perm := dirInfo.Mode().Perm(); perm != 0700 {
		t.Errorf("dir perm = %o, want 0700", perm)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[client]
id = "file-id"
secret = "file-secret"

[auth]
access_token = "file-access"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	clearEnv(t)
	t.Setenv(EnvClientID, "env-id")
	t.Setenv(EnvAccessToken, "env-access")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Client.ID != "env-id" {
		t.Errorf("Client.ID = %q, want env override", cfg.Client.ID)
	}
	if cfg.Client.Secret != "file-secret" {
		t.Errorf("Client.Secret = %q, want file value", cfg.Client.Secret)
	}
	if cfg.Auth.AccessToken != "env-access" {
		t.Errorf("Auth.AccessToken = %q, want env override", cfg.Auth.AccessToken)
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/from-env.toml")

	if got := ResolvePath("/explicit.toml"); got != "/explicit.toml" {
		t.Errorf("explicit path lost: %q", got)
	}
	if got := ResolvePath(""); got != "/tmp/from-env.toml" {
		t.Errorf("env path lost: %q", got)
	}

	t.Setenv(EnvConfigPath, "")
	if got := ResolvePath(""); got != DefaultPath() {
		t.Errorf("default path = %q, want %q", got, DefaultPath())
	}
}

func TestCredentialsState(t *testing.T) {
	t.Parallel()

	now := time.Now().Unix()
	tests := []struct {
		name          string
		creds         Credentials
		authenticated bool
		expired       bool
	}{
		{"empty", Credentials{}, false, true},
		{"no expiry recorded", Credentials{AccessToken: "t"}, true, true},
		{"expired", Credentials{AccessToken: "t", ExpiresAt: now - 60}, true, true},
		{"expires exactly now", Credentials{AccessToken: "t", ExpiresAt: now}, true, true},
		{"valid", Credentials{AccessToken: "t", ExpiresAt: now + 3600}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.creds.IsAuthenticated(); got != tt.authenticated {
				t.Errorf("IsAuthenticated() = %v, want %v", got, tt.authenticated)
			}
			if got := tt.creds.IsExpired(); got != tt.expired {
				t.Errorf("IsExpired() = %v, want %v", got, tt.expired)
			}
		})
	}
}

func TestProfileSelection(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Auth: Credentials{AccessToken: "default"},
		Profiles: map[string]*Credentials{
			"work": {AccessToken: "work"},
		},
	}

	if got := cfg.Profile("").AccessToken; got != "default" {
		t.Errorf("Profile(\"\") = %q", got)
	}
	if got := cfg.Profile("work").AccessToken; got != "work" {
		t.Errorf("Profile(work) = %q", got)
	}
	if got := cfg.Profile("missing").AccessToken; got != "default" {
		t.Errorf("Profile(missing) = %q, want default record", got)
	}

	// Returned pointer aliases the document.
	cfg.Profile("work").AccessToken = "rotated"
	if cfg.Profiles["work"].AccessToken != "rotated" {
		t.Error("Profile() did not alias the stored record")
	}
}

func TestClearAuth(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Auth: Credentials{AccessToken: "default"},
		Profiles: map[string]*Credentials{
			"work": {AccessToken: "work"},
		},
	}

	cfg.ClearAuth("work")
	if cfg.Profiles["work"].IsAuthenticated() {
		t.Error("profile credentials not cleared")
	}
	if _, ok := cfg.Profiles["work"]; !ok {
		t.Error("profile entry should survive logout")
	}
	if !cfg.Auth.IsAuthenticated() {
		t.Error("default record should be untouched")
	}

	cfg.ClearAuth("")
	if cfg.Auth.IsAuthenticated() {
		t.Error("default credentials not cleared")
	}
}
