package cmd

import (
	"github.com/spf13/cobra"
)

var gearCmd = &cobra.Command{
	Use:   "gear",
	Short: "Query gear",
}

var gearGetCmd = &cobra.Command{
	Use:   "get <gear-id>",
	Short: "Show one piece of gear (e.g. b1234567 or g1234567)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		gear, err := a.client.GetGear(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return a.render(gear)
	},
}

func init() {
	gearCmd.AddCommand(gearGetCmd)
	rootCmd.AddCommand(gearCmd)
}
