package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eddmann/strava-cli/internal/strava"
)

var segmentsCmd = &cobra.Command{
	Use:   "segments",
	Short: "Query and star segments",
}

var segmentsGetCmd = &cobra.Command{
	Use:   "get <segment-id>",
	Short: "Show one segment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		id, err := parseID(args[0], "segment id")
		if err != nil {
			return err
		}
		segment, err := a.client.GetSegment(cmd.Context(), id)
		if err != nil {
			return err
		}
		return a.render(segment)
	},
}

var starredLimit int

var segmentsStarredCmd = &cobra.Command{
	Use:   "starred",
	Short: "List the athlete's starred segments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		segments, err := a.client.GetStarredSegments(cmd.Context(), a.limitOr(starredLimit))
		if err != nil {
			return err
		}
		return a.render(segments)
	},
}

var segmentsStarCmd = &cobra.Command{
	Use:   "star <segment-id>",
	Short: "Star a segment",
	Args:  cobra.ExactArgs(1),
	RunE:  starSegment(true),
}

var segmentsUnstarCmd = &cobra.Command{
	Use:   "unstar <segment-id>",
	Short: "Remove a segment's star",
	Args:  cobra.ExactArgs(1),
	RunE:  starSegment(false),
}

func starSegment(starred bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		id, err := parseID(args[0], "segment id")
		if err != nil {
			return err
		}
		segment, err := a.client.StarSegment(cmd.Context(), id, starred)
		if err != nil {
			return err
		}
		verb := "Starred"
		if !starred {
			verb = "Unstarred"
		}
		return a.emit(fmt.Sprintf("%s segment %d: %s", verb, segment.ID, segment.Name), segment)
	}
}

var exploreActivityType string

var segmentsExploreCmd = &cobra.Command{
	Use:   "explore <sw-lat,sw-lng,ne-lat,ne-lng>",
	Short: "Find popular segments within a bounding box",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		bounds, err := parseBounds(args[0])
		if err != nil {
			return err
		}
		segments, err := a.client.ExploreSegments(cmd.Context(), bounds, exploreActivityType)
		if err != nil {
			return err
		}
		return a.render(segments)
	},
}

// parseBounds parses "sw-lat,sw-lng,ne-lat,ne-lng".
func parseBounds(value string) (strava.Bounds, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 4 {
		return strava.Bounds{}, &usageError{message: fmt.Sprintf("invalid bounds %q: expected sw-lat,sw-lng,ne-lat,ne-lng", value)}
	}
	coords := make([]float64, 4)
	for i, part := range parts {
		coord, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return strava.Bounds{}, &usageError{message: fmt.Sprintf("invalid bounds coordinate %q", part)}
		}
		coords[i] = coord
	}
	return strava.Bounds{SWLat: coords[0], SWLng: coords[1], NELat: coords[2], NELng: coords[3]}, nil
}

func init() {
	segmentsStarredCmd.Flags().IntVarP(&starredLimit, "limit", "n", 0, "maximum number of segments (default from config)")
	segmentsExploreCmd.Flags().StringVar(&exploreActivityType, "activity-type", "", "filter by activity type: running or riding")

	segmentsCmd.AddCommand(
		segmentsGetCmd,
		segmentsStarredCmd,
		segmentsStarCmd,
		segmentsUnstarCmd,
		segmentsExploreCmd,
	)
	rootCmd.AddCommand(segmentsCmd)
}
