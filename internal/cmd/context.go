package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eddmann/strava-cli/internal/logging"
	"github.com/eddmann/strava-cli/internal/strava"
)

var (
	contextActivities int
	contextNoClubs    bool
	contextNoGear     bool
	contextFocus      string
)

// contextResult is the aggregated snapshot: one call's worth of profile,
// totals, gear, clubs and recent activities, trimmed for prompt use.
type contextResult struct {
	Athlete          contextAthlete       `json:"athlete"`
	Stats            *strava.AthleteStats `json:"stats,omitempty"`
	Gear             []contextGear        `json:"gear,omitempty"`
	Clubs            []contextClub        `json:"clubs,omitempty"`
	RecentActivities []contextActivity    `json:"recent_activities,omitempty"`
	Scopes           []string             `json:"scopes,omitempty"`
}

type contextAthlete struct {
	ID                    int64      `json:"id"`
	Firstname             string     `json:"firstname,omitempty"`
	Lastname              string     `json:"lastname,omitempty"`
	City                  string     `json:"city,omitempty"`
	Country               string     `json:"country,omitempty"`
	Sex                   string     `json:"sex,omitempty"`
	Premium               bool       `json:"premium"`
	CreatedAt             *time.Time `json:"created_at,omitempty"`
	MeasurementPreference string     `json:"measurement_preference,omitempty"`
	FTP                   float64    `json:"ftp,omitempty"`
	Weight                float64    `json:"weight,omitempty"`
}

type contextGear struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Primary  bool    `json:"primary"`
	Distance float64 `json:"distance"`
}

type contextClub struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"member_count,omitempty"`
	SportType   string `json:"sport_type,omitempty"`
}

type contextActivity struct {
	ID                 int64      `json:"id"`
	Name               string     `json:"name"`
	SportType          string     `json:"sport_type,omitempty"`
	Distance           float64    `json:"distance"`
	MovingTime         int        `json:"moving_time"`
	TotalElevationGain float64    `json:"total_elevation_gain"`
	StartDate          *time.Time `json:"start_date,omitempty"`
	AverageHeartrate   float64    `json:"average_heartrate,omitempty"`
	AverageWatts       float64    `json:"average_watts,omitempty"`
}

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Aggregate profile, stats, gear, clubs and recent activities",
	Long: `Fetches the athlete's profile, totals, gear, clubs and recent
activities in one invocation and emits a single trimmed document,
sized for pasting into an LLM prompt.

Sections that fail to load are omitted rather than failing the whole
snapshot.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		var focus map[string]bool
		if contextFocus != "" {
			focus = map[string]bool{}
			for _, area := range strings.Split(contextFocus, ",") {
				focus[strings.TrimSpace(area)] = true
			}
		}
		wants := func(area string) bool { return focus == nil || focus[area] }

		// The profile anchors everything else; its failure is fatal.
		athlete, err := a.client.GetAthlete(cmd.Context())
		if err != nil {
			return err
		}

		result := contextResult{
			Athlete: contextAthlete{
				ID:                    athlete.ID,
				Firstname:             athlete.Firstname,
				Lastname:              athlete.Lastname,
				City:                  athlete.City,
				Country:               athlete.Country,
				Sex:                   athlete.Sex,
				Premium:               athlete.Premium,
				CreatedAt:             athlete.CreatedAt,
				MeasurementPreference: athlete.MeasurementPreference,
				FTP:                   athlete.FTP,
				Weight:                athlete.Weight,
			},
			Scopes: a.session.Credentials().Scopes,
		}

		if wants("stats") {
			stats, err := a.client.GetAthleteStats(cmd.Context(), athlete.ID)
			if err != nil {
				logging.Logger.Warn().Err(err).Msg("skipping stats section")
			} else {
				result.Stats = stats
			}
		}

		if !contextNoGear && wants("gear") {
			result.Gear = []contextGear{}
			for _, bike := range athlete.Bikes {
				result.Gear = append(result.Gear, contextGear{
					ID: bike.ID, Name: bike.Name, Type: "bike",
					Primary: bike.Primary, Distance: bike.Distance,
				})
			}
			for _, shoe := range athlete.Shoes {
				result.Gear = append(result.Gear, contextGear{
					ID: shoe.ID, Name: shoe.Name, Type: "shoes",
					Primary: shoe.Primary, Distance: shoe.Distance,
				})
			}
		}

		if !contextNoClubs && wants("clubs") {
			clubs, err := a.client.GetAthleteClubs(cmd.Context())
			if err != nil {
				logging.Logger.Warn().Err(err).Msg("skipping clubs section")
			} else {
				result.Clubs = make([]contextClub, 0, len(clubs))
				for _, club := range clubs {
					result.Clubs = append(result.Clubs, contextClub{
						ID: club.ID, Name: club.Name,
						MemberCount: club.MemberCount, SportType: club.SportType,
					})
				}
			}
		}

		if wants("activities") {
			activities, err := a.client.ListActivities(cmd.Context(), strava.ListActivitiesOptions{Limit: contextActivities})
			if err != nil {
				logging.Logger.Warn().Err(err).Msg("skipping activities section")
			} else {
				result.RecentActivities = make([]contextActivity, 0, len(activities))
				for _, activity := range activities {
					result.RecentActivities = append(result.RecentActivities, contextActivity{
						ID:                 activity.ID,
						Name:               activity.Name,
						SportType:          activity.SportType,
						Distance:           activity.Distance,
						MovingTime:         activity.MovingTime,
						TotalElevationGain: activity.TotalElevationGain,
						StartDate:          activity.StartDate,
						AverageHeartrate:   activity.AverageHeartrate,
						AverageWatts:       activity.AverageWatts,
					})
				}
			}
		}

		return a.render(result)
	},
}

func init() {
	contextCmd.Flags().IntVarP(&contextActivities, "activities", "a", 5, "number of recent activities to include")
	contextCmd.Flags().BoolVar(&contextNoClubs, "no-clubs", false, "exclude club memberships")
	contextCmd.Flags().BoolVar(&contextNoGear, "no-gear", false, "exclude gear information")
	contextCmd.Flags().StringVar(&contextFocus, "focus", "", "comma-separated focus areas: activities, stats, gear, clubs")

	rootCmd.AddCommand(contextCmd)
}
