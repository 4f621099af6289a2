package config

import (
	"errors"
	"os"
	"syscall"

	"github.com/yettinmoor/bard/internal/models"
)

// LoadDaemonInfo reads daemon.yaml. It returns nil, nil when no daemon has
// recorded itself.
func LoadDaemonInfo() (*models.DaemonInfo, error) {
	path, err := GlobalDaemonFile()
	if err != nil {
		return nil, err
	}

	var info models.DaemonInfo
	if err := LoadYAML(path, &info); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

// SaveDaemonInfo records the running daemon in daemon.yaml.
func SaveDaemonInfo(info *models.DaemonInfo) error {
	if err := EnsureGlobalDir(); err != nil {
		return err
	}

	path, err := GlobalDaemonFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, info)
}

// RemoveDaemonInfo removes daemon.yaml.
func RemoveDaemonInfo() error {
	path, err := GlobalDaemonFile()
	if err != nil {
		return err
	}
	return removeIfExists(path)
}

// IsDaemonRunning checks whether the PID recorded in daemon.yaml is alive.
// A record whose process is gone is removed.
func IsDaemonRunning() (bool, *models.DaemonInfo, error) {
	info, err := LoadDaemonInfo()
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}
	if info.PID <= 0 {
		_ = RemoveDaemonInfo()
		return false, info, nil
	}

	if !processAlive(info.PID) {
		_ = RemoveDaemonInfo()
		return false, info, nil
	}
	return true, info, nil
}

// processAlive sends signal 0. EPERM means the process exists but belongs
// to someone else.
func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
