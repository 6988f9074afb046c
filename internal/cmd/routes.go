package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Query and export saved routes",
}

var routesLimit int

var routesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the athlete's saved routes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		athleteID := a.session.Credentials().AthleteID
		if athleteID == 0 {
			athlete, err := a.client.GetAthlete(cmd.Context())
			if err != nil {
				return err
			}
			athleteID = athlete.ID
		}

		routes, err := a.client.GetRoutes(cmd.Context(), athleteID, a.limitOr(routesLimit))
		if err != nil {
			return err
		}
		return a.render(routes)
	},
}

var routesGetCmd = &cobra.Command{
	Use:   "get <route-id>",
	Short: "Show one route",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		id, err := parseID(args[0], "route id")
		if err != nil {
			return err
		}
		route, err := a.client.GetRoute(cmd.Context(), id)
		if err != nil {
			return err
		}
		return a.render(route)
	},
}

var (
	exportFormat string
	exportOutput string
)

var routesExportCmd = &cobra.Command{
	Use:   "export <route-id>",
	Short: "Download a route as GPX or TCX",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		id, err := parseID(args[0], "route id")
		if err != nil {
			return err
		}
		if exportFormat != "gpx" && exportFormat != "tcx" {
			return &usageError{message: fmt.Sprintf("invalid export format %q: expected gpx or tcx", exportFormat)}
		}

		document, err := a.client.ExportRoute(cmd.Context(), id, exportFormat)
		if err != nil {
			return err
		}

		if exportOutput == "" || exportOutput == "-" {
			_, err := a.stdout.Write(document)
			return err
		}
		if err := os.WriteFile(exportOutput, document, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", exportOutput, err)
		}
		return a.emit(fmt.Sprintf("Wrote %s.", exportOutput), map[string]any{"id": id, "path": exportOutput})
	},
}

var routesStreamsCmd = &cobra.Command{
	Use:   "streams <route-id>",
	Short: "Show a route's distance and elevation streams",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		id, err := parseID(args[0], "route id")
		if err != nil {
			return err
		}
		streams, err := a.client.GetRouteStreams(cmd.Context(), id)
		if err != nil {
			return err
		}
		return a.render(streams)
	},
}

func init() {
	routesListCmd.Flags().IntVarP(&routesLimit, "limit", "n", 0, "maximum number of routes (default from config)")
	routesExportCmd.Flags().StringVar(&exportFormat, "export-format", "gpx", "export document format: gpx or tcx")
	routesExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")

	routesCmd.AddCommand(routesListCmd, routesGetCmd, routesExportCmd, routesStreamsCmd)
	rootCmd.AddCommand(routesCmd)
}
