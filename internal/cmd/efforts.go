package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

var effortsCmd = &cobra.Command{
	Use:   "efforts",
	Short: "Query segment efforts",
}

var effortsGetCmd = &cobra.Command{
	Use:   "get <effort-id>",
	Short: "Show one segment effort",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		id, err := parseID(args[0], "effort id")
		if err != nil {
			return err
		}
		effort, err := a.client.GetSegmentEffort(cmd.Context(), id)
		if err != nil {
			return err
		}
		return a.render(effort)
	},
}

var (
	effortsStart string
	effortsEnd   string
)

var effortsListCmd = &cobra.Command{
	Use:   "list <segment-id>",
	Short: "List the athlete's efforts on a segment",
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

		var start, end *time.Time
		if effortsStart != "" {
			t, err := parseDate(effortsStart, "--start")
			if err != nil {
				return err
			}
			start = &t
		}
		if effortsEnd != "" {
			t, err := parseDate(effortsEnd, "--end")
			if err != nil {
				return err
			}
			end = &t
		}

		efforts, err := a.client.ListSegmentEfforts(cmd.Context(), id, start, end)
		if err != nil {
			return err
		}
		return a.render(efforts)
	},
}

func init() {
	effortsListCmd.Flags().StringVar(&effortsStart, "start", "", "only efforts after this local date")
	effortsListCmd.Flags().StringVar(&effortsEnd, "end", "", "only efforts before this local date")

	effortsCmd.AddCommand(effortsGetCmd, effortsListCmd)
	rootCmd.AddCommand(effortsCmd)
}
