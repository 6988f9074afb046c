package auth

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

// freePort grabs an ephemeral port for the callback listener. The
// listener is closed before use, so a collision is possible but
// vanishingly unlikely within a test run.
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

// hitCallback simulates the browser redirect by requesting the local
// callback URL with the given query parameters.
func hitCallback(t *testing.T, redirectURI string, params url.Values) {
	t.Helper()
	resp, err := http.Get(redirectURI + "?" + params.Encode())
	if err != nil {
		t.Errorf("hitting callback: %v", err)
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func newExchangeServer(t *testing.T, wantCode string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parsing exchange request: %v", err)
		}
		if got := r.Form.Get("code"); got != wantCode {
			t.Errorf("exchange code = %q, want %q", got, wantCode)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"access_token": "access-123",
			"refresh_token": "refresh-456",
			"token_type": "Bearer",
			"expires_at": %d,
			"expires_in": 21600,
			"athlete": {"id": 7890},
			"scope": "read,activity:read_all"
		}`, time.Now().Add(6*time.Hour).Unix())
	}))
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	tokenServer := newExchangeServer(t, "the-code")
	defer tokenServer.Close()

	flow := &Flow{
		ClientID:     "id",
		ClientSecret: "secret",
		Port:         freePort(t),
		Timeout:      5 * time.Second,
		TokenURL:     tokenServer.URL,
		Out:          io.Discard,
		OpenBrowser: func(authURL string) error {
			parsed, err := url.Parse(authURL)
			if err != nil {
				t.Errorf("parsing auth URL: %v", err)
				return nil
			}
			q := parsed.Query()
			go hitCallback(t, q.Get("redirect_uri"), url.Values{
				"code":  {"the-code"},
				"state": {q.Get("state")},
			})
			return nil
		},
	}

	creds, err := flow.Login(context.Background())
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if creds.AccessToken != "access-123" {
		t.Errorf("AccessToken = %q", creds.AccessToken)
	}
	if creds.RefreshToken != "refresh-456" {
		t.Errorf("RefreshToken = %q", creds.RefreshToken)
	}
	if creds.AthleteID != 7890 {
		t.Errorf("AthleteID = %d, want 7890", creds.AthleteID)
	}
	// Granted scopes come from the exchange response, not the request.
	if len(creds.Scopes) != 2 || creds.Scopes[1] != "activity:read_all" {
		t.Errorf("Scopes = %v", creds.Scopes)
	}
	if creds.IsExpired() {
		t.Error("fresh credentials reported expired")
	}
}

func TestLoginStateMismatchDiscardsCode(t *testing.T) {
	t.Parallel()

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("code must not be exchanged on state mismatch")
	}))
	defer tokenServer.Close()

	flow := &Flow{
		ClientID:     "id",
		ClientSecret: "secret",
		Port:         freePort(t),
		Timeout:      5 * time.Second,
		TokenURL:     tokenServer.URL,
		Out:          io.Discard,
		OpenBrowser: func(authURL string) error {
			parsed, _ := url.Parse(authURL)
			go hitCallback(t, parsed.Query().Get("redirect_uri"), url.Values{
				"code":  {"attacker-code"},
				"state": {"forged-state"},
			})
			return nil
		},
	}

	_, err := flow.Login(context.Background())
	if err == nil {
		t.Fatal("expected state mismatch error")
	}
	if !strings.Contains(err.Error(), "state mismatch") {
		t.Errorf("error = %v, want state mismatch", err)
	}
}

func TestLoginUserDenied(t *testing.T) {
	t.Parallel()

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("token endpoint must not be called when the user denies access")
	}))
	defer tokenServer.Close()

	flow := &Flow{
		ClientID:     "id",
		ClientSecret: "secret",
		Port:         freePort(t),
		Timeout:      5 * time.Second,
		TokenURL:     tokenServer.URL,
		Out:          io.Discard,
		OpenBrowser: func(authURL string) error {
			parsed, _ := url.Parse(authURL)
			go hitCallback(t, parsed.Query().Get("redirect_uri"), url.Values{
				"error": {"access_denied"},
				"state": {parsed.Query().Get("state")},
			})
			return nil
		},
	}

	_, err := flow.Login(context.Background())
	if err == nil {
		t.Fatal("expected denial error")
	}
	if !strings.Contains(err.Error(), "access_denied") {
		t.Errorf("error = %v, want access_denied", err)
	}
}

func TestLoginTimeout(t *testing.T) {
	t.Parallel()

	flow := &Flow{
		ClientID:     "id",
		ClientSecret: "secret",
		Port:         freePort(t),
		Timeout:      100 * time.Millisecond,
		Out:          io.Discard,
		OpenBrowser:  func(string) error { return nil },
	}

	_, err := flow.Login(context.Background())
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("error = %v, want timeout", err)
	}
}

func TestLoginReleasesPort(t *testing.T) {
	t.Parallel()

	port := freePort(t)
	flow := &Flow{
		ClientID:     "id",
		ClientSecret: "secret",
		Port:         port,
		Timeout:      50 * time.Millisecond,
		Out:          io.Discard,
		OpenBrowser:  func(string) error { return nil },
	}

	if _, err := flow.Login(context.Background()); err == nil {
		t.Fatal("expected timeout error")
	}

	// The listener socket must be released on failure paths too.
	l, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
	if err != nil {
		t.Fatalf("port %d still bound after Login returned: %v", port, err)
	}
	l.Close()
}

func TestAuthorizationURLParameters(t *testing.T) {
	t.Parallel()

	var captured string
	flow := &Flow{
		ClientID:     "client-id",
		ClientSecret: "secret",
		Port:         freePort(t),
		Timeout:      50 * time.Millisecond,
		Out:          io.Discard,
		OpenBrowser: func(authURL string) error {
			captured = authURL
			return nil
		},
	}
	flow.Login(context.Background())

	parsed, err := url.Parse(captured)
	if err != nil {
		t.Fatalf("parsing captured URL: %v", err)
	}
	q := parsed.Query()
	if got := q.Get("client_id"); got != "client-id" {
		t.Errorf("client_id = %q", got)
	}
	if got := q.Get("scope"); got != strings.Join(DefaultScopes, ",") {
		t.Errorf("scope = %q, want comma-joined default scopes", got)
	}
	if got := q.Get("approval_prompt"); got != "auto" {
		t.Errorf("approval_prompt = %q", got)
	}
	if q.Get("state") == "" {
		t.Error("state parameter missing")
	}
	if !strings.HasSuffix(q.Get("redirect_uri"), "/callback") {
		t.Errorf("redirect_uri = %q", q.Get("redirect_uri"))
	}
}

func TestCredentialsFromToken(t *testing.T) {
	t.Parallel()

	expiresAt := time.Now().Add(6 * time.Hour).Unix()
	token := (&oauth2.Token{
		AccessToken:  "a",
		RefreshToken: "r",
	}).WithExtra(map[string]any{
		"expires_at": float64(expiresAt),
		"athlete":    map[string]any{"id": float64(99)},
		"scope":      "read,profile:read_all",
	})

	creds := credentialsFromToken(token)
	if creds.ExpiresAt != expiresAt {
		t.Errorf("ExpiresAt = %d, want %d", creds.ExpiresAt, expiresAt)
	}
	if creds.AthleteID != 99 {
		t.Errorf("AthleteID = %d, want 99", creds.AthleteID)
	}
	if len(creds.Scopes) != 2 || creds.Scopes[0] != "read" {
		t.Errorf("Scopes = %v", creds.Scopes)
	}
}

func TestRandomStateIsUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		state, err := randomState()
		if err != nil {
			t.Fatal(err)
		}
		if seen[state] {
			t.Fatalf("duplicate state token %q", state)
		}
		seen[state] = true
	}
}
