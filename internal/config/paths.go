// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the directory under ~/.config holding bard's files.
	GlobalDirName = "bard"
)

// File names
const (
	BarFileName    = "bard.yaml"
	DaemonFileName = "daemon.yaml"
	LogFileName    = "bard.log"
)

// GlobalDir returns the path to the global bard directory (~/.config/bard/).
func GlobalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", GlobalDirName), nil
}

// DefaultBarFile returns the path to the default bard.yaml.
func DefaultBarFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, BarFileName), nil
}

// GlobalDaemonFile returns the path to the daemon.yaml file.
func GlobalDaemonFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DaemonFileName), nil
}

// GlobalLogFile returns the default path for daemon logs.
func GlobalLogFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogFileName), nil
}

// ResolveBarFile returns path if set, otherwise the default bard.yaml.
func ResolveBarFile(path string) (string, error) {
	if path != "" {
		return filepath.Abs(path)
	}
	return DefaultBarFile()
}

// EnsureGlobalDir creates the global bard directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
