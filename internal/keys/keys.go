// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the simulator.
type KeyMap struct {
	// Navigation buttons
	Next key.Binding
	Prev key.Binding

	// Page select
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Pin    key.Binding

	// Scripts
	RunScript key.Binding

	// General
	Log  key.Binding
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("l", "right", "n"),
			key.WithHelp("l/→", "next page"),
		),
		Prev: key.NewBinding(
			key.WithKeys("h", "left", "p"),
			key.WithHelp("h/←", "previous page"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select page"),
		),
		Pin: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "save as default page"),
		),

		RunScript: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "run script"),
		),

		Log: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "toggle log"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Select, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next},                // Buttons
		{k.Up, k.Down, k.Select, k.Pin}, // Page select
		{k.RunScript},                   // Scripts
		{k.Log, k.Help, k.Quit},         // General
	}
}
