package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eddmann/strava-cli/internal/auth"
	"github.com/eddmann/strava-cli/internal/config"
	"github.com/eddmann/strava-cli/internal/logging"
	"github.com/eddmann/strava-cli/internal/output"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
}

var (
	loginPort    int
	loginScopes  []string
	logoutRevoke bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize via the browser and store tokens",
	Long: `Runs the OAuth authorization flow: opens the Strava consent page in
your browser, captures the redirect on a local port and stores the
resulting tokens in the config file.

If no API client credentials are configured you will be prompted for
them first. Get credentials from https://www.strava.com/settings/api
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		clientID, clientSecret := a.cfg.ClientCredentials()
		if clientID == "" || clientSecret == "" {
			clientID, clientSecret, err = promptForCredentials()
			if err != nil {
				return err
			}
			a.cfg.Client.ID = clientID
			a.cfg.Client.Secret = clientSecret
			// Persist immediately so an aborted flow does not lose them.
			if err := a.cfg.Save(a.configPath); err != nil {
				return err
			}
		}

		flow := &auth.Flow{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Scopes:       loginScopes,
			Port:         loginPort,
		}
		creds, err := flow.Login(cmd.Context())
		if err != nil {
			return err
		}

		if a.profile != "" {
			a.cfg.Profiles[a.profile] = creds
		} else {
			a.cfg.Auth = *creds
		}
		if err := a.cfg.Save(a.configPath); err != nil {
			return err
		}

		logging.Logger.Debug().
			Int64("athlete_id", creds.AthleteID).
			Strs("scopes", creds.Scopes).
			Msg("tokens stored")

		return a.emit(
			fmt.Sprintf("Logged in as athlete %d. Token expires %s.",
				creds.AthleteID, output.FormatTime(creds.ExpiresAt)),
			authStatus(creds, a.profile),
		)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored tokens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		creds := a.session.Credentials()
		if !creds.IsAuthenticated() {
			return a.emit("Not logged in, nothing to do.", nil)
		}

		if logoutRevoke {
			flow := &auth.Flow{}
			if err := flow.Deauthorize(cmd.Context(), creds.AccessToken); err != nil {
				logging.Logger.Warn().Err(err).Msg("revoking token failed, clearing local copy anyway")
			}
		}

		a.cfg.ClearAuth(a.profile)
		if err := a.cfg.Save(a.configPath); err != nil {
			return err
		}
		return a.emit("Logged out.", nil)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		creds := a.session.Credentials()
		if !creds.IsAuthenticated() {
			if err := a.emit("Not authenticated.", authStatus(creds, a.profile)); err != nil {
				return err
			}
			return &auth.Error{}
		}

		state := "valid"
		if creds.IsExpired() {
			state = "expired (will refresh on next API call)"
		}
		return a.emit(
			fmt.Sprintf("Authenticated as athlete %d. Token %s, expires %s.",
				creds.AthleteID, state, output.FormatTime(creds.ExpiresAt)),
			authStatus(creds, a.profile),
		)
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force a token refresh",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := a.session.Refresh(cmd.Context()); err != nil {
			return err
		}
		creds := a.session.Credentials()
		return a.emit(
			fmt.Sprintf("Token refreshed, expires %s.", output.FormatTime(creds.ExpiresAt)),
			authStatus(creds, a.profile),
		)
	},
}

// authStatusRecord is the machine-format view of the credential state.
// The tokens themselves are never printed.
type authStatusRecord struct {
	Authenticated bool     `json:"authenticated"`
	Expired       bool     `json:"expired"`
	ExpiresAt     int64    `json:"expires_at,omitempty"`
	AthleteID     int64    `json:"athlete_id,omitempty"`
	Scopes        []string `json:"scopes,omitempty"`
	Profile       string   `json:"profile,omitempty"`
}

func authStatus(creds *config.Credentials, profile string) authStatusRecord {
	record := authStatusRecord{
		Authenticated: creds.IsAuthenticated(),
		Profile:       profile,
	}
	if record.Authenticated {
		record.Expired = creds.IsExpired()
		record.ExpiresAt = creds.ExpiresAt
		record.AthleteID = creds.AthleteID
		record.Scopes = creds.Scopes
	}
	return record
}

// promptForCredentials asks for the API application credentials on the
// terminal.
func promptForCredentials() (clientID, clientSecret string, err error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Fprintln(os.Stderr, "\n=== Strava API Credentials Required ===")
	fmt.Fprintln(os.Stderr, "Get your API credentials from: https://www.strava.com/settings/api")
	fmt.Fprintln(os.Stderr)

	fmt.Fprint(os.Stderr, "Enter your Client ID: ")
	clientID, err = reader.ReadString('\n')
	if err != nil {
		return "", "", fmt.Errorf("reading client ID: %w", err)
	}
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return "", "", &usageError{message: "client ID is required"}
	}

	fmt.Fprint(os.Stderr, "Enter your Client Secret: ")
	clientSecret, err = reader.ReadString('\n')
	if err != nil {
		return "", "", fmt.Errorf("reading client secret: %w", err)
	}
	clientSecret = strings.TrimSpace(clientSecret)
	if clientSecret == "" {
		return "", "", &usageError{message: "client secret is required"}
	}

	return clientID, clientSecret, nil
}

func init() {
	loginCmd.Flags().IntVar(&loginPort, "port", auth.DefaultCallbackPort, "local port for the OAuth redirect listener")
	loginCmd.Flags().StringSliceVar(&loginScopes, "scopes", nil, "OAuth scopes to request (default covers profile and activity read/write)")
	logoutCmd.Flags().BoolVar(&logoutRevoke, "revoke", false, "also revoke the token with Strava before removing it")

	authCmd.AddCommand(loginCmd, logoutCmd, statusCmd, refreshCmd)
	rootCmd.AddCommand(authCmd)
}
