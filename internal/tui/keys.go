package tui

import "github.com/charmbracelet/bubbles/key"

// Keys are the console's bindings.
type Keys struct {
	UpdateAll key.Binding
	Restart   key.Binding
	Redraw    key.Binding
	Quit      key.Binding
}

var keys = Keys{
	UpdateAll: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "update all"),
	),
	Restart: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "restart"),
	),
	Redraw: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "redraw"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k Keys) bindings() []key.Binding {
	return []key.Binding{k.UpdateAll, k.Restart, k.Redraw, k.Quit}
}
