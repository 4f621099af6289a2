package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	pollInterval = 2 * time.Second
	// restartSettle gives the daemon time to run the new blocks before the
	// console asks for the bar.
	restartSettle = 300 * time.Millisecond
)

func drawBarCmd(d Daemon, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		bar, err := d.DrawBar(ctx)
		return BarMsg{Bar: bar, Err: err}
	}
}

func updateAllCmd(d Daemon, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		ok, report, err := d.UpdateAll(ctx)
		return ReportMsg{OK: ok, Report: report, Err: err}
	}
}

func restartCmd(d Daemon, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return RestartSentMsg{Err: d.Restart(ctx)}
	}
}

func pollTick() tea.Cmd {
	return tea.Tick(pollInterval, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}
