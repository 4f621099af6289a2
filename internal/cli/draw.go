package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Redraw the bar and print it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connectDaemon()
		if err != nil {
			return err
		}
		defer c.Close()

		ctx, cancel := callCtx()
		defer cancel()
		bar, err := c.DrawBar(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), bar)
		return nil
	},
}
