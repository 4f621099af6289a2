package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors matching the console palette.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Reports and errors go to stderr, so styles detect color support there.
var stderr = lipgloss.NewRenderer(os.Stderr)

// Semantic styles for CLI output.
var (
	styleBrand   = stderr.NewStyle().Bold(true).Foreground(colorCyan)
	styleVersion = stderr.NewStyle().Foreground(colorGreen)
	styleLabel   = stderr.NewStyle().Foreground(colorDim)
	styleValue   = stderr.NewStyle().Foreground(colorWhite)
	styleSuccess = stderr.NewStyle().Foreground(colorGreen)
	styleWarning = stderr.NewStyle().Bold(true).Foreground(colorYellow)
	styleError   = stderr.NewStyle().Bold(true).Foreground(colorRed)
	styleHint    = stderr.NewStyle().Foreground(colorDim)
	styleCommand = stderr.NewStyle().Bold(true).Foreground(colorWhite)
)
