package cmd

import (
	"github.com/spf13/cobra"
)

var clubsCmd = &cobra.Command{
	Use:   "clubs",
	Short: "Query club memberships",
}

var clubsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the athlete's clubs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		clubs, err := a.client.GetAthleteClubs(cmd.Context())
		if err != nil {
			return err
		}
		return a.render(clubs)
	},
}

var clubsGetCmd = &cobra.Command{
	Use:   "get <club-id>",
	Short: "Show one club",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		id, err := parseID(args[0], "club id")
		if err != nil {
			return err
		}
		club, err := a.client.GetClub(cmd.Context(), id)
		if err != nil {
			return err
		}
		return a.render(club)
	},
}

var clubMembersLimit int

var clubsMembersCmd = &cobra.Command{
	Use:   "members <club-id>",
	Short: "List a club's members",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		id, err := parseID(args[0], "club id")
		if err != nil {
			return err
		}
		members, err := a.client.GetClubMembers(cmd.Context(), id, a.limitOr(clubMembersLimit))
		if err != nil {
			return err
		}
		return a.render(members)
	},
}

var clubActivitiesLimit int

var clubsActivitiesCmd = &cobra.Command{
	Use:   "activities <club-id>",
	Short: "Show a club's recent activities",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		id, err := parseID(args[0], "club id")
		if err != nil {
			return err
		}
		activities, err := a.client.GetClubActivities(cmd.Context(), id, a.limitOr(clubActivitiesLimit))
		if err != nil {
			return err
		}
		return a.render(activities)
	},
}

func init() {
	clubsMembersCmd.Flags().IntVarP(&clubMembersLimit, "limit", "n", 0, "maximum number of members (default from config)")
	clubsActivitiesCmd.Flags().IntVarP(&clubActivitiesLimit, "limit", "n", 0, "maximum number of activities (default from config)")

	clubsCmd.AddCommand(clubsListCmd, clubsGetCmd, clubsMembersCmd, clubsActivitiesCmd)
	rootCmd.AddCommand(clubsCmd)
}
