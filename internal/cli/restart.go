package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Reload the daemon's config file",
	Long: `Ask the daemon to re-read its config file, rebuild every block, run
them all and redraw. The request does not wait for a reply; if the new
config is invalid the daemon keeps running and reports the error to later
requests.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connectDaemon()
		if err != nil {
			return err
		}
		defer c.Close()

		ctx, cancel := callCtx()
		defer cancel()
		if err := c.Restart(ctx); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, styleSuccess.Render("Restart requested."))
		return nil
	},
}
