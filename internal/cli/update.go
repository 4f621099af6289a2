package cli

import (
	"github.com/spf13/cobra"

	"github.com/yettinmoor/bard/internal/client"
)

var updateCmd = &cobra.Command{
	Use:   "update <selector>...",
	Short: "Re-run or set blocks, then redraw",
	Long: `Apply each selector in order, then redraw the bar.

A selector is either a block name, which re-runs the block's command, or
name:text, which sets the block's output to text without running anything.
Everything after the first colon is the text.`,
	Example: `  bard update date
  bard update volume:50% mail`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(func(c *client.Client) (bool, string, error) {
			ctx, cancel := callCtx()
			defer cancel()
			return c.Update(ctx, args)
		})
	},
}

var updateAllCmd = &cobra.Command{
	Use:   "update-all",
	Short: "Re-run every block, then redraw",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(func(c *client.Client) (bool, string, error) {
			ctx, cancel := callCtx()
			defer cancel()
			return c.UpdateAll(ctx)
		})
	},
}

// runUpdate issues one update call, prints its report and, if the daemon
// accepted it, draws the bar.
func runUpdate(call func(*client.Client) (bool, string, error)) error {
	c, err := connectDaemon()
	if err != nil {
		return err
	}
	defer c.Close()

	ok, report, err := call(c)
	if err != nil {
		return err
	}
	printReport(report)
	if !ok {
		return errReported
	}
	return drawAndPrint(c)
}
