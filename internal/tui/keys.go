package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the browser's key bindings.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Delete     key.Binding
	CloseAlert key.Binding
	Save       key.Binding
	Quit       key.Binding

	// Dialog keys
	Confirm key.Binding
	Decline key.Binding
	Dismiss key.Binding
}

// DefaultKeys are the bindings used unless overridden.
var DefaultKeys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "remove"),
	),
	CloseAlert: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "close alert"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "yes"),
	),
	Decline: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "no"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Delete, k.CloseAlert, k.Save, k.Quit}
}

// DialogHelp returns the bindings shown while a dialog is open.
func (k KeyMap) DialogHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Decline, k.Dismiss}
}
