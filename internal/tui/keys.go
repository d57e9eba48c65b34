package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines all keybindings for the TUI
type KeyMap struct {
	Quit  key.Binding
	Down  key.Binding
	Up    key.Binding
	First key.Binding
	Last  key.Binding
	Cycle key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("k/↑", "up"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "backend"),
		),
	}
}

// Resolve maps a key press to an action. Unbound keys map to ActionNone.
func (k KeyMap) Resolve(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, k.Quit):
		return ActionQuit
	case key.Matches(msg, k.Down):
		return ActionDown
	case key.Matches(msg, k.Up):
		return ActionUp
	case key.Matches(msg, k.First):
		return ActionFirst
	case key.Matches(msg, k.Last):
		return ActionLast
	case key.Matches(msg, k.Cycle):
		return ActionCycleBackend
	}
	return ActionNone
}

// ShortHelp returns a condensed help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Cycle, k.Quit}
}

// FullHelp returns a complete help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.First, k.Last},
		{k.Cycle, k.Quit},
	}
}
