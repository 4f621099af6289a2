// Package cmd implements the bardd command line.
package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"

	"github.com/yettinmoor/bard/internal/daemon"
	"github.com/yettinmoor/bard/internal/daemon/server"
)

var opts daemon.Options

var rootCmd = &cobra.Command{
	Use:   "bardd",
	Short: "The bard status bar daemon",
	Long: `bardd owns the bar: it runs block commands on request, keeps their
output and publishes the rendered bar. Drive it with the bard CLI.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return daemon.Run(opts)
	},
}

// Execute runs the daemon command line.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if errors.Is(err, server.ErrAlreadyRunning) {
			log.Printf("%v, not starting", err)
		} else {
			log.Printf("Daemon failed: %v", err)
		}
	}
	return err
}

func init() {
	rootCmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (default ~/.config/bard/bard.yaml)")
	rootCmd.Flags().BoolVar(&opts.Tray, "tray", false, "Show a system tray icon mirroring the bar")
	rootCmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Restart automatically when the config file changes")
	rootCmd.Flags().StringVar(&opts.LogFile, "log-file", "", "Also append logs to this file")
}
