package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eddmann/strava-cli/internal/auth"
	"github.com/eddmann/strava-cli/internal/config"
	"github.com/eddmann/strava-cli/internal/output"
	"github.com/eddmann/strava-cli/internal/strava"
)

// app carries everything one command invocation needs: the loaded
// configuration document, the credential session, the API client and
// the rendering options. A fresh app is built per invocation, so no
// state survives between commands.
type app struct {
	cfg        *config.Config
	configPath string
	profile    string
	session    *auth.Session
	client     *strava.Client
	out        output.Options
	stdout     *os.File
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	name := flagFormat
	if name == "" {
		name = cfg.Defaults.Format
	}
	format, err := output.ParseFormat(name)
	if err != nil {
		return nil, &usageError{message: err.Error()}
	}

	session := auth.NewSession(cfg, flagProfile, flagConfig)

	return &app{
		cfg:        cfg,
		configPath: flagConfig,
		profile:    flagProfile,
		session:    session,
		client:     strava.NewClient(session),
		out: output.Options{
			Format:   format,
			Fields:   flagFields,
			NoHeader: flagNoHeader,
			NoColor:  flagQuiet,
		},
		stdout: os.Stdout,
	}, nil
}

// requireAuth ensures the session holds a usable token, refreshing it
// when expired. Commands that call the API go through this first.
func (a *app) requireAuth(cmd *cobra.Command) error {
	return a.session.EnsureValid(cmd.Context())
}

// render writes data to stdout in the selected format.
func (a *app) render(data any) error {
	return a.out.Write(a.stdout, data)
}

// emit reports the outcome of a mutating command: a short message for
// humans, the affected record for machine formats.
func (a *app) emit(message string, payload any) error {
	if a.out.Format == output.FormatHuman {
		fmt.Fprintln(a.stdout, message)
		return nil
	}
	if payload == nil {
		return nil
	}
	return a.render(payload)
}

// limitOr returns the flag value if set, otherwise the configured
// default list size.
func (a *app) limitOr(limit int) int {
	if limit > 0 {
		return limit
	}
	return a.cfg.Defaults.Limit
}

// confirm prompts on stderr and reads a y/N answer from stdin.
func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// parseID parses a positional numeric identifier.
func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, &usageError{message: fmt.Sprintf("invalid %s %q: expected a positive integer", what, arg)}
	}
	return id, nil
}
