package cli

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yettinmoor/bard/internal/config"
	"github.com/yettinmoor/bard/internal/daemon"
)

var startOpts daemon.Options

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the background bard daemon",
	Long:  `Start, stop and inspect a bardd process running in the background.`,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	RunE:  runDaemonStatus,
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon in the background",
	RunE:  runDaemonStart,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	RunE:  runDaemonStop,
}

func init() {
	addDaemonFlags(daemonStartCmd, &startOpts)

	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStatusCmd)
	daemonCmd.AddCommand(daemonStopCmd)
}

func runDaemonStart(cmd *cobra.Command, args []string) error {
	if owned, _ := busOwned(); owned {
		fmt.Println("Daemon is already running.")
		return nil
	}

	// Clean up stale daemon info if it exists
	if running, info, err := config.IsDaemonRunning(); err == nil && !running && info != nil {
		_ = config.RemoveDaemonInfo()
	}

	fmt.Print("Starting daemon...")
	if err := startDaemon(startOpts); err != nil {
		fmt.Println()
		return err
	}

	// Fetch fresh status to display
	_, info, err := GetDaemonStatus()
	if err != nil || info == nil {
		fmt.Println(" started.")
		return nil
	}

	fmt.Printf(" started (PID %d).\n", info.PID)
	return nil
}

func runDaemonStatus(cmd *cobra.Command, args []string) error {
	running, info, err := GetDaemonStatus()
	if err != nil {
		return err
	}
	owned, busErr := busOwned()

	if !running || info == nil {
		if owned {
			fmt.Println("Bus name is owned, but no daemon info was found.")
			return nil
		}
		fmt.Println("Daemon is not running.")
		return nil
	}

	uptime := time.Since(info.StartedAt).Truncate(time.Second)

	fmt.Println("Daemon is running.")
	fmt.Printf("  %s        %d\n", styleLabel.Render("PID:"), info.PID)
	fmt.Printf("  %s     %s\n", styleLabel.Render("Uptime:"), uptime)
	fmt.Printf("  %s     %s\n", styleLabel.Render("Config:"), info.ConfigPath)
	fmt.Printf("  %s   %s\n", styleLabel.Render("Instance:"), info.InstanceID)
	switch {
	case busErr != nil:
		fmt.Printf("  %s   %s\n", styleLabel.Render("Bus name:"), styleError.Render(busErr.Error()))
	case owned:
		fmt.Printf("  %s   %s\n", styleLabel.Render("Bus name:"), styleSuccess.Render(info.BusName))
	default:
		fmt.Printf("  %s   %s\n", styleLabel.Render("Bus name:"), styleWarning.Render(info.BusName+" (not owned)"))
	}

	return nil
}

func runDaemonStop(cmd *cobra.Command, args []string) error {
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if !running || info == nil {
		fmt.Println("Daemon is not running.")
		return nil
	}

	// Send SIGTERM to the daemon process
	process, err := os.FindProcess(info.PID)
	if err != nil {
		return fmt.Errorf("failed to find daemon process: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to send stop signal: %w", err)
	}

	// Poll for shutdown (max 5 seconds)
	for i := 0; i < 50; i++ {
		time.Sleep(100 * time.Millisecond)
		stillRunning, _, err := config.IsDaemonRunning()
		if err == nil && !stillRunning {
			fmt.Println("Daemon stopped.")
			return nil
		}
	}

	return fmt.Errorf("daemon did not stop within timeout")
}
