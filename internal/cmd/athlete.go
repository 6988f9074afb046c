package cmd

import (
	"github.com/spf13/cobra"
)

var athleteCmd = &cobra.Command{
	Use:   "athlete",
	Short: "Show the authenticated athlete's profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		athlete, err := a.client.GetAthlete(cmd.Context())
		if err != nil {
			return err
		}
		return a.render(athlete)
	},
}

var statsAthleteID int64

var athleteStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show activity totals for an athlete",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		athleteID := statsAthleteID
		if athleteID == 0 {
			athleteID = a.session.Credentials().AthleteID
		}
		if athleteID == 0 {
			athlete, err := a.client.GetAthlete(cmd.Context())
			if err != nil {
				return err
			}
			athleteID = athlete.ID
		}

		stats, err := a.client.GetAthleteStats(cmd.Context(), athleteID)
		if err != nil {
			return err
		}
		return a.render(stats)
	},
}

var athleteZonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "Show the athlete's heart-rate and power zones",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		zones, err := a.client.GetAthleteZones(cmd.Context())
		if err != nil {
			return err
		}
		return a.render(zones)
	},
}

func init() {
	athleteStatsCmd.Flags().Int64Var(&statsAthleteID, "athlete-id", 0, "athlete to query (default: the authenticated athlete)")

	athleteCmd.AddCommand(athleteStatsCmd, athleteZonesCmd)
	rootCmd.AddCommand(athleteCmd)
}
