package cmd

import (
	"errors"
	"testing"

	"github.com/eddmann/strava-cli/internal/auth"
	"github.com/eddmann/strava-cli/internal/config"
	"github.com/eddmann/strava-cli/internal/strava"
)

func TestDetectDataType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"ride.fit", "fit"},
		{"ride.FIT", "fit"},
		{"run.gpx.gz", "gpx.gz"},
		{"walk.tcx", "tcx"},
		{"/tmp/export/morning.fit.gz", "fit.gz"},
		{"archive.gz", ""},
		{"noext", ""},
	}

	for _, tt := range tests {
		if got := detectDataType(tt.path); got != tt.want {
			t.Errorf("detectDataType(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestParseBounds(t *testing.T) {
	t.Parallel()

	bounds, err := parseBounds("37.821,-122.505,37.842,-122.465")
	if err != nil {
		t.Fatalf("parseBounds() error = %v", err)
	}
	want := strava.Bounds{SWLat: 37.821, SWLng: -122.505, NELat: 37.842, NELng: -122.465}
	if bounds != want {
		t.Errorf("bounds = %+v, want %+v", bounds, want)
	}

	for _, bad := range []string{"", "1,2,3", "a,b,c,d", "1,2,3,4,5"} {
		if _, err := parseBounds(bad); err == nil {
			t.Errorf("parseBounds(%q) should fail", bad)
		}
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	if _, err := parseDate("2026-01-15", "--after"); err != nil {
		t.Errorf("bare date rejected: %v", err)
	}
	if _, err := parseDate("2026-01-15T08:30:00Z", "--after"); err != nil {
		t.Errorf("RFC3339 rejected: %v", err)
	}
	if _, err := parseDate("January 15", "--after"); err == nil {
		t.Error("expected error for unparseable date")
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	if id, err := parseID("12345", "activity id"); err != nil || id != 12345 {
		t.Errorf("parseID(12345) = %d, %v", id, err)
	}
	for _, bad := range []string{"", "abc", "-5", "0", "1.5"} {
		if _, err := parseID(bad, "activity id"); err == nil {
			t.Errorf("parseID(%q) should fail", bad)
		}
	}
}

func TestExitCodeMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"plain error", errors.New("boom"), 1},
		{"usage", &usageError{message: "bad flag"}, 2},
		{"config", &config.Error{Path: "x", Err: errors.New("parse")}, 2},
		{"auth", &auth.Error{}, 2},
		{"refresh", &auth.RefreshError{Reason: errors.New("revoked")}, 2},
		{"api", &strava.APIError{Status: 500}, 1},
		{"rate limit", &strava.RateLimitError{}, 1},
		{"not found", &strava.NotFoundError{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
