package models

import (
	"time"

	"github.com/google/uuid"
)

// DaemonInfo describes the running daemon.
// This corresponds to ~/.config/bard/daemon.yaml.
type DaemonInfo struct {
	Version    int       `yaml:"version"`
	InstanceID string    `yaml:"instance_id"`
	PID        int       `yaml:"pid"`
	BusName    string    `yaml:"bus_name"`
	ConfigPath string    `yaml:"config_path"`
	StartedAt  time.Time `yaml:"started_at"`
}

// NewDaemonInfo creates a new daemon info with current values.
func NewDaemonInfo(busName, configPath string, pid int) *DaemonInfo {
	return &DaemonInfo{
		Version:    1,
		InstanceID: uuid.NewString(),
		PID:        pid,
		BusName:    busName,
		ConfigPath: configPath,
		StartedAt:  time.Now().UTC(),
	}
}
