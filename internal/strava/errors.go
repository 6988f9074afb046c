package strava

import "fmt"

// APIError is any non-2xx response that has no more specific type.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("strava api error: status %d", e.Status)
	}
	return fmt.Sprintf("strava api error: %s (status %d)", e.Message, e.Status)
}

func (e *APIError) ExitCode() int { return 1 }

// NotFoundError is a 404 for a specific resource.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s '%s' not found", e.Resource, e.ID)
}

func (e *NotFoundError) ExitCode() int { return 1 }

// RateLimitError is upstream throttling (429). It is surfaced
// immediately: the client performs no retry or backoff.
type RateLimitError struct {
	Limit15Min int
	Usage15Min int
	LimitDaily int
	UsageDaily int
}

func (e *RateLimitError) Error() string {
	if e.Limit15Min == 0 && e.LimitDaily == 0 {
		return "rate limit exceeded"
	}
	return fmt.Sprintf("rate limit exceeded (15min %d/%d, daily %d/%d)",
		e.Usage15Min, e.Limit15Min, e.UsageDaily, e.LimitDaily)
}

func (e *RateLimitError) ExitCode() int { return 1 }

func (e *RateLimitError) UserHint() string {
	return "wait and try again, or reduce request frequency"
}
