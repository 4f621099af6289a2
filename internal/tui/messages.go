package tui

// BarMsg carries the result of a draw_bar call.
type BarMsg struct {
	Bar string
	Err error
}

// ReportMsg carries the result of an update_all call.
type ReportMsg struct {
	OK     bool
	Report string
	Err    error
}

// RestartSentMsg signals the restart request went out.
type RestartSentMsg struct {
	Err error
}

// TickMsg triggers a periodic redraw.
type TickMsg struct{}

// ClearErrorMsg clears the error display.
type ClearErrorMsg struct{}
