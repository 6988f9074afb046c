package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/eddmann/strava-cli/internal/config"
	"github.com/eddmann/strava-cli/internal/logging"
)

// Session binds a loaded configuration document to one credential
// record (the default or a named profile) and manages its lifecycle for
// the duration of a single invocation.
type Session struct {
	cfg        *config.Config
	creds      *config.Credentials
	configPath string

	// TokenURL overrides the refresh endpoint, for tests.
	TokenURL string
}

// NewSession selects the credential record for profile (empty means the
// default record) from an already-loaded document.
func NewSession(cfg *config.Config, profile, configPath string) *Session {
	return &Session{
		cfg:        cfg,
		creds:      cfg.Profile(profile),
		configPath: configPath,
	}
}

// Credentials returns the record the session operates on.
func (s *Session) Credentials() *config.Credentials { return s.creds }

// AccessToken returns the current access token.
func (s *Session) AccessToken() string { return s.creds.AccessToken }

// EnsureValid checks the record and refreshes it if expired. It fails
// when there is no token at all, or when the token is expired with no
// recovery path.
func (s *Session) EnsureValid(ctx context.Context) error {
	if !s.creds.IsAuthenticated() {
		return &Error{}
	}
	if !s.creds.IsExpired() {
		return nil
	}
	if s.creds.RefreshToken == "" {
		return &Error{
			Message: "access token expired and no refresh token is available",
			Hint:    "run 'strava auth login' to re-authenticate",
		}
	}
	return s.Refresh(ctx)
}

// Refresh exchanges the refresh token for a new token triple, updates
// the record in place, and persists the document. The athlete id and
// scope grant are never touched: a refresh response carries neither, and
// clearing a previously known athlete id would be a regression.
func (s *Session) Refresh(ctx context.Context) error {
	clientID, clientSecret := s.cfg.ClientCredentials()
	if clientID == "" || clientSecret == "" {
		return &MissingCredentialsError{}
	}
	if s.creds.RefreshToken == "" {
		return &RefreshError{Reason: errors.New("no refresh token available")}
	}

	endpoint := s.TokenURL
	if endpoint == "" {
		endpoint = tokenURL
	}
	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: endpoint},
	}

	// An already-expired placeholder token forces the TokenSource to
	// perform the refresh_token grant immediately.
	stale := &oauth2.Token{
		RefreshToken: s.creds.RefreshToken,
		Expiry:       time.Now().Add(-time.Hour),
	}
	token, err := conf.TokenSource(ctx, stale).Token()
	if err != nil {
		return &RefreshError{Reason: err}
	}

	s.creds.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		s.creds.RefreshToken = token.RefreshToken
	}
	if v, ok := token.Extra("expires_at").(float64); ok {
		s.creds.ExpiresAt = int64(v)
	} else if !token.Expiry.IsZero() {
		s.creds.ExpiresAt = token.Expiry.Unix()
	}

	if err := s.cfg.Save(s.configPath); err != nil {
		return fmt.Errorf("saving refreshed tokens: %w", err)
	}

	logging.Logger.Debug().
		Int64("expires_at", s.creds.ExpiresAt).
		Msg("access token refreshed")
	return nil
}

// HandleUnauthorized is called when an API operation reports an auth
// failure. It attempts exactly one refresh; a nil return means the
// caller should retry the original operation once. There is no retry
// loop beyond that single attempt.
func (s *Session) HandleUnauthorized(ctx context.Context) error {
	if s.creds.RefreshToken != "" {
		if err := s.Refresh(ctx); err == nil {
			return nil
		}
	}
	return &Error{
		Message: "unauthorized: your token may have expired",
		Hint:    "run 'strava auth login' to re-authenticate",
	}
}
