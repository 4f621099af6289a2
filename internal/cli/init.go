package cli

import (
	"github.com/spf13/cobra"

	"github.com/yettinmoor/bard/internal/daemon"
)

var initOpts daemon.Options

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Run the daemon in the foreground",
	Long: `Start the bar daemon in this process. It claims the bus name, runs
every block once, draws the bar and then serves requests until interrupted.

Only one daemon can run per session; a second 'bard init' fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return daemon.Run(initOpts)
	},
}

func init() {
	addDaemonFlags(initCmd, &initOpts)
}

// addDaemonFlags registers the flags shared by every way of starting the
// daemon.
func addDaemonFlags(cmd *cobra.Command, opts *daemon.Options) {
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (default ~/.config/bard/bard.yaml)")
	cmd.Flags().BoolVar(&opts.Tray, "tray", false, "Show a system tray icon mirroring the bar")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Restart automatically when the config file changes")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "Also append logs to this file")
}
