package cli

import (
	"github.com/spf13/cobra"

	"github.com/yettinmoor/bard/internal/tui"
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Interactive console showing the live bar",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connectDaemon()
		if err != nil {
			return err
		}
		defer c.Close()

		return tui.Run(c, timeout)
	},
}
