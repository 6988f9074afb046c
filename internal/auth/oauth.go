// Package auth implements the OAuth2 authorization-code flow against
// Strava and the token lifecycle (validity, expiry, refresh) over the
// persisted credential records.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pkg/browser"
	"golang.org/x/oauth2"

	"github.com/eddmann/strava-cli/internal/config"
)

const (
	authorizeURL   = "https://www.strava.com/oauth/authorize"
	tokenURL       = "https://www.strava.com/oauth/token"
	deauthorizeURL = "https://www.strava.com/oauth/deauthorize"

	// DefaultCallbackPort is the local port the redirect listener binds to.
	DefaultCallbackPort = 8000
	// DefaultLoginTimeout bounds how long the flow waits for the redirect.
	DefaultLoginTimeout = 120 * time.Second
)

// DefaultScopes covers read/write of profile and activity data. The
// grant Strava actually returns may be narrower; the exchange response
// is always the source of truth.
var DefaultScopes = []string{
	"read",
	"read_all",
	"profile:read_all",
	"activity:read",
	"activity:read_all",
	"activity:write",
}

// Flow performs the interactive authorization-code grant. Endpoint URLs
// and the browser opener are fields so tests can point the flow at
// httptest servers and capture the authorization URL.
type Flow struct {
	ClientID     string
	ClientSecret string
	Scopes       []string
	Port         int
	Timeout      time.Duration

	AuthURL     string
	TokenURL    string
	DeauthURL   string
	OpenBrowser func(url string) error
	Out         io.Writer
}

// callbackResult is what the one-shot listener captured. A fresh channel
// of these is created per Login call and closed over by the handler, so
// no state can leak between flow invocations.
type callbackResult struct {
	code  string
	state string
	err   string
}

func (f *Flow) defaults() {
	if len(f.Scopes) == 0 {
		f.Scopes = DefaultScopes
	}
	if f.Port == 0 {
		f.Port = DefaultCallbackPort
	}
	if f.Timeout == 0 {
		f.Timeout = DefaultLoginTimeout
	}
	if f.AuthURL == "" {
		f.AuthURL = authorizeURL
	}
	if f.TokenURL == "" {
		f.TokenURL = tokenURL
	}
	if f.DeauthURL == "" {
		f.DeauthURL = deauthorizeURL
	}
	if f.OpenBrowser == nil {
		f.OpenBrowser = browser.OpenURL
	}
	if f.Out == nil {
		f.Out = os.Stderr
	}
}

func (f *Flow) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     f.ClientID,
		ClientSecret: f.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  f.AuthURL,
			TokenURL: f.TokenURL,
		},
		RedirectURL: fmt.Sprintf("http://localhost:%d/callback", f.Port),
		Scopes:      []string{strings.Join(f.Scopes, ",")},
	}
}

// Login runs the full interactive flow: bind the callback listener,
// open the browser at the authorization URL, wait for the redirect,
// validate state, and exchange the code for tokens.
func (f *Flow) Login(ctx context.Context) (*config.Credentials, error) {
	f.defaults()

	state, err := randomState()
	if err != nil {
		return nil, fmt.Errorf("generating state token: %w", err)
	}

	results := make(chan callbackResult, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		res := callbackResult{
			code:  q.Get("code"),
			state: q.Get("state"),
			err:   q.Get("error"),
		}

		w.Header().Set("Content-Type", "text/html")
		if res.err != "" {
			fmt.Fprintf(w, "<html><body><h1>Authentication Failed</h1><p>Error: %s</p><p>You can close this window.</p></body></html>", res.err)
		} else {
			fmt.Fprint(w, "<html><body><h1>Authentication Successful</h1><p>You can close this window and return to the terminal.</p></body></html>")
		}

		// Only the first request counts; later hits still get a page.
		select {
		case results <- res:
		default:
		}
	})

	listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", f.Port))
	if err != nil {
		return nil, fmt.Errorf("starting callback listener on port %d: %w", f.Port, err)
	}
	server := &http.Server{Handler: mux}
	go server.Serve(listener)
	// The socket is released on every exit path, success or failure.
	defer server.Shutdown(context.Background())

	authURL := f.oauthConfig().AuthCodeURL(state, oauth2.SetAuthURLParam("approval_prompt", "auto"))

	fmt.Fprintln(f.Out, "Opening browser for Strava authorization...")
	fmt.Fprintf(f.Out, "\nIf browser doesn't open, visit:\n%s\n", authURL)
	if err := f.OpenBrowser(authURL); err != nil {
		fmt.Fprintf(f.Out, "Could not open browser automatically: %v\n", err)
	}
	fmt.Fprintln(f.Out, "\nWaiting for authorization...")

	var res callbackResult
	select {
	case res = <-results:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(f.Timeout):
		return nil, &Error{Message: "no authorization code received (timeout)", Hint: "re-run 'strava auth login' and complete the browser prompt"}
	}

	if res.err != "" {
		return nil, &Error{Message: fmt.Sprintf("authorization failed: %s", res.err)}
	}
	if res.code == "" {
		return nil, &Error{Message: "no authorization code received"}
	}
	// Discard the code on mismatch: it was not issued for our request.
	if res.state != state {
		return nil, &Error{Message: "state mismatch - possible CSRF attack", Hint: "re-run 'strava auth login'"}
	}

	fmt.Fprintln(f.Out, "Authorization code received, exchanging for token...")

	token, err := f.oauthConfig().Exchange(ctx, res.code)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("token exchange failed: %v", err)}
	}

	return credentialsFromToken(token), nil
}

// Deauthorize revokes the access token on Strava's side.
func (f *Flow) Deauthorize(ctx context.Context, accessToken string) error {
	f.defaults()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.DeauthURL, strings.NewReader(url.Values{"access_token": {accessToken}}.Encode()))
	if err != nil {
		return fmt.Errorf("creating deauthorize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("deauthorizing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("deauthorizing: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// credentialsFromToken maps the exchange response to a credential
// record. Strava's token payload carries expires_at, the athlete, and
// the granted scope set alongside the standard OAuth2 fields.
func credentialsFromToken(token *oauth2.Token) *config.Credentials {
	creds := &config.Credentials{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}

	if !token.Expiry.IsZero() {
		creds.ExpiresAt = token.Expiry.Unix()
	}
	if v, ok := token.Extra("expires_at").(float64); ok {
		creds.ExpiresAt = int64(v)
	}
	if athlete, ok := token.Extra("athlete").(map[string]any); ok {
		if id, ok := athlete["id"].(float64); ok {
			creds.AthleteID = int64(id)
		}
	}
	// Always the granted set, never the requested one.
	if scope, ok := token.Extra("scope").(string); ok && scope != "" {
		creds.Scopes = strings.Split(scope, ",")
	}

	return creds
}

// randomState produces the CSRF state token: 16 bytes of entropy,
// URL-safe encoded.
func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
