// Package cmd implements the strava command tree.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/TwiN/go-color"
	"github.com/spf13/cobra"

	"github.com/eddmann/strava-cli/internal/config"
	"github.com/eddmann/strava-cli/internal/logging"
	"github.com/eddmann/strava-cli/internal/output"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	flagConfig   string
	flagProfile  string
	flagFormat   string
	flagFields   []string
	flagNoHeader bool
	flagQuiet    bool
	verbosity    int
)

var rootCmd = &cobra.Command{
	Use:   "strava",
	Short: "Strava from the command line",
	Long: `strava is a command-line client for the Strava API.

Authenticate once with 'strava auth login', then query your activities,
segments, routes, clubs and gear. Results render as a human-readable
table by default; use --format json/jsonl/csv/tsv for scripting.

Get API credentials from https://www.strava.com/settings/api
`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagQuiet && verbosity > 0 {
			return &usageError{message: "--quiet and --verbose are mutually exclusive"}
		}
		if flagQuiet {
			logging.Setup(logging.LevelQuiet)
		} else {
			logging.Setup(logging.Level(verbosity))
		}

		if !cmd.Flags().Changed("format") {
			if env := os.Getenv(config.EnvFormat); env != "" {
				flagFormat = env
			}
		}
		if flagFormat != "" {
			if _, err := output.ParseFormat(flagFormat); err != nil {
				return &usageError{message: err.Error()}
			}
		}
		if !cmd.Flags().Changed("profile") {
			if env := os.Getenv(config.EnvProfile); env != "" {
				flagProfile = env
			}
		}
		return nil
	},
}

func init() {
	// Flag parse failures are usage errors, not runtime failures.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{message: err.Error()}
	})

	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to config file (default ~/.config/strava-cli/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&flagProfile, "profile", "p", "", "named credential profile to use")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "output format: json, jsonl, csv, tsv or human (default from config)")
	rootCmd.PersistentFlags().StringSliceVar(&flagFields, "fields", nil, "comma-separated fields to include in output")
	rootCmd.PersistentFlags().BoolVar(&flagNoHeader, "no-header", false, "omit the header row in csv/tsv output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress log output on stderr")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity (-v for debug, -vv for trace with HTTP headers)")
}

// usageError marks invocation mistakes that should exit with the
// configuration/usage status rather than the API failure status.
type usageError struct {
	message string
}

func (e *usageError) Error() string { return e.message }

func (e *usageError) ExitCode() int { return 2 }

// exitCoder is implemented by errors that carry an explicit process
// exit status.
type exitCoder interface {
	ExitCode() int
}

// hinter is implemented by errors that can suggest a recovery step.
type hinter interface {
	UserHint() string
}

// Execute runs the root command and exits with the error's status.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

func reportError(err error) {
	message := fmt.Sprintf("error: %v", err)
	if !flagQuiet {
		message = color.InRed(message)
	}
	fmt.Fprintln(os.Stderr, message)

	var h hinter
	if errors.As(err, &h) {
		if hint := h.UserHint(); hint != "" {
			line := fmt.Sprintf("hint: %s", hint)
			if !flagQuiet {
				line = color.InYellow(line)
			}
			fmt.Fprintln(os.Stderr, line)
		}
	}
}
