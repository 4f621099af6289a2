package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/yettinmoor/bard/internal/client"
	"github.com/yettinmoor/bard/internal/config"
	"github.com/yettinmoor/bard/internal/daemon"
	"github.com/yettinmoor/bard/internal/models"
)

const daemonBinary = "bardd"

// startDaemon starts the daemon process in the background and waits until
// it owns the bus name.
func startDaemon(opts daemon.Options) error {
	daemonPath, err := findDaemonBinary()
	if err != nil {
		return err
	}

	if opts.LogFile == "" {
		if err := config.EnsureGlobalDir(); err != nil {
			return fmt.Errorf("failed to create global directory: %w", err)
		}
		if opts.LogFile, err = config.GlobalLogFile(); err != nil {
			return err
		}
	}

	cmd := exec.Command(daemonPath, daemonArgs(opts)...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil
	// own session, so closing the terminal does not take the bar with it
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}
	_ = cmd.Process.Release()

	// Wait for daemon to be ready (max 5 seconds)
	for i := 0; i < 50; i++ {
		time.Sleep(100 * time.Millisecond)
		if running, _ := busOwned(); running {
			return nil
		}
	}

	return fmt.Errorf("daemon failed to start within timeout, see %s", opts.LogFile)
}

func daemonArgs(opts daemon.Options) []string {
	var args []string
	if opts.ConfigPath != "" {
		if abs, err := filepath.Abs(opts.ConfigPath); err == nil {
			opts.ConfigPath = abs
		}
		args = append(args, "--config", opts.ConfigPath)
	}
	if opts.Tray {
		args = append(args, "--tray")
	}
	if opts.Watch {
		args = append(args, "--watch")
	}
	if opts.LogFile != "" {
		args = append(args, "--log-file", opts.LogFile)
	}
	return args
}

// findDaemonBinary locates the bardd binary.
func findDaemonBinary() (string, error) {
	// Try PATH first
	path, err := exec.LookPath(daemonBinary)
	if err == nil {
		return path, nil
	}

	// Try next to the current executable
	execPath, err := os.Executable()
	if err == nil {
		daemonPath := filepath.Join(filepath.Dir(execPath), daemonBinary)
		if _, err := os.Stat(daemonPath); err == nil {
			return daemonPath, nil
		}
	}

	// Try build directory
	if _, err := os.Stat("./build/" + daemonBinary); err == nil {
		return "./build/" + daemonBinary, nil
	}

	return "", fmt.Errorf("%s not found. Install or build it first", daemonBinary)
}

// busOwned reports whether any process owns the daemon's bus name.
func busOwned() (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	c, err := client.Dial(ctx)
	if err != nil {
		return false, err
	}
	defer c.Close()
	return c.Running(ctx)
}

// GetDaemonStatus returns the daemon status.
func GetDaemonStatus() (bool, *DaemonStatusInfo, error) {
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return false, nil, err
	}

	if !running || info == nil {
		return false, nil, nil
	}

	return true, newDaemonStatusInfo(info), nil
}

func newDaemonStatusInfo(info *models.DaemonInfo) *DaemonStatusInfo {
	return &DaemonStatusInfo{
		PID:        info.PID,
		BusName:    info.BusName,
		ConfigPath: info.ConfigPath,
		InstanceID: info.InstanceID,
		StartedAt:  info.StartedAt,
	}
}

// DaemonStatusInfo contains daemon status information.
type DaemonStatusInfo struct {
	PID        int
	BusName    string
	ConfigPath string
	InstanceID string
	StartedAt  time.Time
}
