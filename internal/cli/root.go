// Package cli implements the bard CLI commands.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yettinmoor/bard/internal/client"
)

// errReported is returned after the command already printed what went
// wrong. It only sets the exit status.
var errReported = errors.New("reported")

var timeout time.Duration

var rootCmd = &cobra.Command{
	Use:   "bard",
	Short: "Drive the bard status bar daemon",
	Long: `bard keeps a status bar built from shell command blocks and
publishes it to the X root window name.

Start the daemon with 'bard init', then trigger updates from key bindings
or timers with 'bard update <block>' or 'bard update-all'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(err)
	}
	return err
}

func printError(err error) {
	msg := err.Error()
	if errors.Is(err, client.ErrDaemonNotRunning) {
		msg = client.ErrDaemonNotRunning.Error()
	}
	fmt.Fprintln(os.Stderr, styleError.Render("bard: "+msg))
	if errors.Is(err, client.ErrDaemonNotRunning) {
		fmt.Fprintln(os.Stderr, styleHint.Render("Start it with 'bard init' or 'bard daemon start'."))
	}
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Second, "How long to wait for the daemon to reply")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(drawCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(restartCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(updateAllCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}
