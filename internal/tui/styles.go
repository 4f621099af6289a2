package tui

import "github.com/charmbracelet/lipgloss"

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	barBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.AdaptiveColor{Light: "235", Dark: "236"})

	labelStyle   = lipgloss.NewStyle().Foreground(colorDim)
	reportStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	runningBadge = lipgloss.NewStyle().Foreground(colorGreen)
	warnBadge    = lipgloss.NewStyle().Foreground(colorYellow)
	downBadge    = lipgloss.NewStyle().Foreground(colorRed)
	keyStyle     = lipgloss.NewStyle().Bold(true)
)
