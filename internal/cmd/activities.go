package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eddmann/strava-cli/internal/strava"
)

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "Query and manage activities",
}

var (
	listBefore string
	listAfter  string
	listPage   int
	listLimit  int
)

var activitiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the athlete's activities, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		opts := strava.ListActivitiesOptions{
			Page:  listPage,
			Limit: a.limitOr(listLimit),
		}
		if listBefore != "" {
			t, err := parseDate(listBefore, "--before")
			if err != nil {
				return err
			}
			opts.Before = &t
		}
		if listAfter != "" {
			t, err := parseDate(listAfter, "--after")
			if err != nil {
				return err
			}
			opts.After = &t
		}

		activities, err := a.client.ListActivities(cmd.Context(), opts)
		if err != nil {
			return err
		}
		return a.render(activities)
	},
}

var getEfforts bool

var activitiesGetCmd = &cobra.Command{
	Use:   "get <activity-id>",
	Short: "Show one activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		id, err := parseID(args[0], "activity id")
		if err != nil {
			return err
		}
		activity, err := a.client.GetActivity(cmd.Context(), id, getEfforts)
		if err != nil {
			return err
		}
		return a.render(activity)
	},
}

var (
	createName        string
	createSportType   string
	createStart       string
	createElapsed     int
	createDescription string
	createDistance    float64
	createTrainer     bool
	createCommute     bool
)

var activitiesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a manual activity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		start, err := parseDate(createStart, "--start")
		if err != nil {
			return err
		}

		activity, err := a.client.CreateActivity(cmd.Context(), strava.CreateActivityRequest{
			Name:           createName,
			SportType:      createSportType,
			StartDateLocal: start,
			ElapsedTime:    createElapsed,
			Description:    createDescription,
			Distance:       createDistance,
			Trainer:        createTrainer,
			Commute:        createCommute,
		})
		if err != nil {
			return err
		}
		return a.emit(fmt.Sprintf("Created activity %d: %s", activity.ID, activity.Name), activity)
	},
}

var (
	updateName        string
	updateSportType   string
	updateDescription string
	updateTrainer     bool
	updateCommute     bool
	updateGearID      string
)

var activitiesUpdateCmd = &cobra.Command{
	Use:   "update <activity-id>",
	Short: "Update an activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		id, err := parseID(args[0], "activity id")
		if err != nil {
			return err
		}

		// Only flags the user actually set are sent upstream.
		req := strava.UpdateActivityRequest{}
		changed := false
		if cmd.Flags().Changed("name") {
			req.Name = &updateName
			changed = true
		}
		if cmd.Flags().Changed("sport-type") {
			req.SportType = &updateSportType
			changed = true
		}
		if cmd.Flags().Changed("description") {
			req.Description = &updateDescription
			changed = true
		}
		if cmd.Flags().Changed("trainer") {
			req.Trainer = &updateTrainer
			changed = true
		}
		if cmd.Flags().Changed("commute") {
			req.Commute = &updateCommute
			changed = true
		}
		if cmd.Flags().Changed("gear-id") {
			req.GearID = &updateGearID
			changed = true
		}
		if !changed {
			return &usageError{message: "nothing to update: pass at least one of --name, --sport-type, --description, --trainer, --commute, --gear-id"}
		}

		activity, err := a.client.UpdateActivity(cmd.Context(), id, req)
		if err != nil {
			return err
		}
		return a.emit(fmt.Sprintf("Updated activity %d.", activity.ID), activity)
	},
}

var deleteForce bool

var activitiesDeleteCmd = &cobra.Command{
	Use:   "delete <activity-id>",
	Short: "Delete an activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		id, err := parseID(args[0], "activity id")
		if err != nil {
			return err
		}
		if !deleteForce && !confirm(fmt.Sprintf("Delete activity %d? This cannot be undone.", id)) {
			return a.emit("Aborted.", nil)
		}

		if err := a.client.DeleteActivity(cmd.Context(), id); err != nil {
			return err
		}
		return a.emit(fmt.Sprintf("Deleted activity %d.", id), map[string]any{"id": id, "deleted": true})
	},
}

var streamKeys []string

var activitiesStreamsCmd = &cobra.Command{
	Use:   "streams <activity-id>",
	Short: "Show an activity's time-series streams",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		id, err := parseID(args[0], "activity id")
		if err != nil {
			return err
		}
		streams, err := a.client.GetActivityStreams(cmd.Context(), id, streamKeys)
		if err != nil {
			return err
		}
		return a.render(streams)
	},
}

var activitiesLapsCmd = &cobra.Command{
	Use:   "laps <activity-id>",
	Short: "Show an activity's laps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		id, err := parseID(args[0], "activity id")
		if err != nil {
			return err
		}
		laps, err := a.client.GetActivityLaps(cmd.Context(), id)
		if err != nil {
			return err
		}
		return a.render(laps)
	},
}

var activitiesZonesCmd = &cobra.Command{
	Use:   "zones <activity-id>",
	Short: "Show an activity's zone distributions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		id, err := parseID(args[0], "activity id")
		if err != nil {
			return err
		}
		zones, err := a.client.GetActivityZones(cmd.Context(), id)
		if err != nil {
			return err
		}
		return a.render(zones)
	},
}

var activitiesCommentsCmd = &cobra.Command{
	Use:   "comments <activity-id>",
	Short: "Show an activity's comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		id, err := parseID(args[0], "activity id")
		if err != nil {
			return err
		}
		comments, err := a.client.GetActivityComments(cmd.Context(), id)
		if err != nil {
			return err
		}
		return a.render(comments)
	},
}

var activitiesKudosCmd = &cobra.Command{
	Use:   "kudos <activity-id>",
	Short: "Show who gave kudos on an activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		id, err := parseID(args[0], "activity id")
		if err != nil {
			return err
		}
		kudos, err := a.client.GetActivityKudos(cmd.Context(), id)
		if err != nil {
			return err
		}
		return a.render(kudos)
	},
}

// parseDate accepts RFC3339 timestamps or bare dates. Bare dates are
// interpreted in local time at midnight.
func parseDate(value, flag string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, &usageError{message: fmt.Sprintf("invalid date %q for %s: expected YYYY-MM-DD or RFC3339", value, flag)}
}

func init() {
	activitiesListCmd.Flags().StringVar(&listBefore, "before", "", "only activities before this date")
	activitiesListCmd.Flags().StringVar(&listAfter, "after", "", "only activities after this date")
	activitiesListCmd.Flags().IntVar(&listPage, "page", 0, "page number")
	activitiesListCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "maximum number of activities (default from config)")

	activitiesGetCmd.Flags().BoolVar(&getEfforts, "efforts", false, "include all segment efforts")

	activitiesCreateCmd.Flags().StringVar(&createName, "name", "", "activity name")
	activitiesCreateCmd.Flags().StringVar(&createSportType, "sport-type", "", "sport type, e.g. Run or Ride")
	activitiesCreateCmd.Flags().StringVar(&createStart, "start", "", "local start time (YYYY-MM-DD or RFC3339)")
	activitiesCreateCmd.Flags().IntVar(&createElapsed, "elapsed", 0, "elapsed time in seconds")
	activitiesCreateCmd.Flags().StringVar(&createDescription, "description", "", "activity description")
	activitiesCreateCmd.Flags().Float64Var(&createDistance, "distance", 0, "distance in meters")
	activitiesCreateCmd.Flags().BoolVar(&createTrainer, "trainer", false, "mark as a trainer activity")
	activitiesCreateCmd.Flags().BoolVar(&createCommute, "commute", false, "mark as a commute")
	_ = activitiesCreateCmd.MarkFlagRequired("name")
	_ = activitiesCreateCmd.MarkFlagRequired("sport-type")
	_ = activitiesCreateCmd.MarkFlagRequired("start")
	_ = activitiesCreateCmd.MarkFlagRequired("elapsed")

	activitiesUpdateCmd.Flags().StringVar(&updateName, "name", "", "new activity name")
	activitiesUpdateCmd.Flags().StringVar(&updateSportType, "sport-type", "", "new sport type")
	activitiesUpdateCmd.Flags().StringVar(&updateDescription, "description", "", "new description")
	activitiesUpdateCmd.Flags().BoolVar(&updateTrainer, "trainer", false, "set the trainer flag")
	activitiesUpdateCmd.Flags().BoolVar(&updateCommute, "commute", false, "set the commute flag")
	activitiesUpdateCmd.Flags().StringVar(&updateGearID, "gear-id", "", "gear to associate")

	activitiesDeleteCmd.Flags().BoolVar(&deleteForce, "force", false, "skip the confirmation prompt")

	activitiesStreamsCmd.Flags().StringSliceVar(&streamKeys, "keys", nil, "stream types to fetch (default: all common streams)")

	activitiesCmd.AddCommand(
		activitiesListCmd,
		activitiesGetCmd,
		activitiesCreateCmd,
		activitiesUpdateCmd,
		activitiesDeleteCmd,
		activitiesStreamsCmd,
		activitiesLapsCmd,
		activitiesZonesCmd,
		activitiesCommentsCmd,
		activitiesKudosCmd,
	)
	rootCmd.AddCommand(activitiesCmd)
}
