package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/yettinmoor/bard/internal/client"
)

// daemonStatus is what the header badge shows.
type daemonStatus int

const (
	statusUnknown daemonStatus = iota
	statusRunning
	statusDegraded
	statusDown
)

const errorDisplay = 5 * time.Second

// Model is the root Bubbletea model for the console.
type Model struct {
	daemon  Daemon
	timeout time.Duration

	bar     string
	report  string
	status  daemonStatus
	problem string
	err     error

	busy    bool
	spinner spinner.Model

	width  int
	height int
}

// NewModel creates the initial console model.
func NewModel(d Daemon, timeout time.Duration) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = labelStyle
	return Model{
		daemon:  d,
		timeout: timeout,
		spinner: s,
		width:   80,
	}
}

// Init draws once and starts polling.
func (m Model) Init() tea.Cmd {
	return tea.Batch(drawBarCmd(m.daemon, m.timeout), pollTick())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		if m.busy {
			return m, pollTick()
		}
		return m, tea.Batch(drawBarCmd(m.daemon, m.timeout), pollTick())

	case BarMsg:
		if msg.Err != nil {
			return m, m.setError(msg.Err)
		}
		m.bar = msg.Bar
		m.status = statusRunning
		m.problem = ""
		return m, nil

	case ReportMsg:
		m.busy = false
		if msg.Err != nil {
			return m, m.setError(msg.Err)
		}
		m.report = msg.Report
		if !msg.OK {
			m.status = statusDegraded
			m.problem = strings.TrimSpace(msg.Report)
			return m, nil
		}
		return m, drawBarCmd(m.daemon, m.timeout)

	case RestartSentMsg:
		m.busy = false
		if msg.Err != nil {
			return m, m.setError(msg.Err)
		}
		m.report = "restart requested\n"
		return m, tea.Tick(restartSettle, func(_ time.Time) tea.Msg {
			return TickMsg{}
		})

	case ClearErrorMsg:
		m.err = nil
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case m.busy:
		return m, nil
	case key.Matches(msg, keys.UpdateAll):
		m.busy = true
		return m, tea.Batch(updateAllCmd(m.daemon, m.timeout), m.spinner.Tick)
	case key.Matches(msg, keys.Restart):
		m.busy = true
		return m, tea.Batch(restartCmd(m.daemon, m.timeout), m.spinner.Tick)
	case key.Matches(msg, keys.Redraw):
		return m, drawBarCmd(m.daemon, m.timeout)
	}
	return m, nil
}

// setError records err and updates the badge from its kind.
func (m *Model) setError(err error) tea.Cmd {
	switch {
	case errors.Is(err, client.ErrDegraded):
		m.status = statusDegraded
		m.problem = strings.TrimPrefix(err.Error(), client.ErrDegraded.Error()+": ")
		return nil
	case errors.Is(err, client.ErrDaemonNotRunning):
		m.status = statusDown
	}
	m.err = err
	return clearErrorAfter(errorDisplay)
}

// View renders the console.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("bard"))
	b.WriteString("  ")
	b.WriteString(m.renderBadge())
	if m.busy {
		b.WriteString(" ")
		b.WriteString(m.spinner.View())
	}
	b.WriteString("\n\n")

	inner := m.width - 4
	if inner < 10 {
		inner = 10
	}
	bar := m.bar
	if bar == "" {
		bar = labelStyle.Render("(empty)")
	}
	b.WriteString(barBoxStyle.Render(ansi.Truncate(bar, inner, "…")))
	b.WriteString("\n")

	if m.problem != "" {
		b.WriteString(errorStyle.Render(ansi.Truncate(m.problem, m.width, "…")))
		b.WriteString("\n")
	}

	if m.report != "" {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("last report"))
		b.WriteString("\n")
		for _, line := range strings.Split(strings.TrimRight(m.report, "\n"), "\n") {
			b.WriteString(reportStyle.Render(ansi.Truncate(line, m.width, "…")))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderBadge() string {
	switch m.status {
	case statusRunning:
		return runningBadge.Render("● running")
	case statusDegraded:
		return warnBadge.Render("● degraded")
	case statusDown:
		return downBadge.Render("● not running")
	default:
		return labelStyle.Render("○ connecting")
	}
}

func (m Model) renderStatusBar() string {
	if m.err != nil {
		return errorStyle.Render(ansi.Truncate(m.err.Error(), m.width, "…"))
	}
	parts := make([]string, 0, len(keys.bindings()))
	for _, k := range keys.bindings() {
		h := k.Help()
		parts = append(parts, keyStyle.Render(h.Key)+" "+h.Desc)
	}
	return statusBarStyle.Render(ansi.Truncate(strings.Join(parts, " · "), m.width, ""))
}
