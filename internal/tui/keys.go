package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the bindings shared by all screens
type keyMap struct {
	Quit      key.Binding
	Submit    key.Binding
	Next      key.Binding
	Prev      key.Binding
	FocusNext key.Binding
	FocusPrev key.Binding
	Confirm   key.Binding
	Scroll    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		Next: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "previous"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "login"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("pgup", "pgdown"),
			key.WithHelp("pgup/pgdn", "scroll"),
		),
	}
}

// formHelp adapts the key map to the active section's position so only
// reachable actions are listed
type formHelp struct {
	keys  keyMap
	first bool
	last  bool
}

func (h formHelp) ShortHelp() []key.Binding {
	bindings := []key.Binding{h.keys.FocusNext}
	if !h.first {
		bindings = append(bindings, h.keys.Prev)
	}
	if h.last {
		bindings = append(bindings, h.keys.Submit)
	} else {
		bindings = append(bindings, h.keys.Next)
	}
	return append(bindings, h.keys.Scroll, h.keys.Quit)
}

func (h formHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
