package auth

import "fmt"

// Error indicates missing or invalid authentication. Commands exit 2 so
// scripts can distinguish "operator action required" from API failures.
type Error struct {
	Message string
	Hint    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return "not authenticated"
	}
	return e.Message
}

// ExitCode returns 2: the operator has to log in or fix credentials.
func (e *Error) ExitCode() int { return 2 }

// UserHint returns an actionable suggestion, if any.
func (e *Error) UserHint() string {
	if e.Hint == "" {
		return "run 'strava auth login' first"
	}
	return e.Hint
}

// RefreshError indicates a refresh-token exchange failed.
type RefreshError struct {
	Reason error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("token refresh failed: %v", e.Reason)
}

func (e *RefreshError) Unwrap() error { return e.Reason }

func (e *RefreshError) ExitCode() int { return 2 }

func (e *RefreshError) UserHint() string {
	return "run 'strava auth login' to re-authenticate"
}

// MissingCredentialsError indicates no OAuth application id/secret is
// configured, so no token exchange can be attempted.
type MissingCredentialsError struct{}

func (e *MissingCredentialsError) Error() string {
	return "no client credentials configured"
}

func (e *MissingCredentialsError) ExitCode() int { return 2 }

func (e *MissingCredentialsError) UserHint() string {
	return "set STRAVA_CLIENT_ID and STRAVA_CLIENT_SECRET, or run 'strava auth login' to be prompted"
}
