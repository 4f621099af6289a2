// Package tui implements the interactive bar console (bard top).
package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Daemon is the part of the bus client the console drives.
type Daemon interface {
	UpdateAll(ctx context.Context) (bool, string, error)
	Restart(ctx context.Context) error
	DrawBar(ctx context.Context) (string, error)
}

// Run launches the console against d. Every call gets its own timeout.
func Run(d Daemon, timeout time.Duration) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("bard top needs an interactive terminal")
	}

	p := tea.NewProgram(NewModel(d, timeout), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
