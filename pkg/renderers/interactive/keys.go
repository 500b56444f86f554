package interactive

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings the form reacts to. Printable keys not bound
// here are typed into the focused field.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Prev   key.Binding
	Next   key.Binding
	Erase  key.Binding
	Submit key.Binding
	Reset  key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "shift+tab"),
			key.WithHelp("↑/shift+tab", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "tab"),
			key.WithHelp("↓/tab", "next"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open/close section"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", "change choice"),
		),
		Next: key.NewBinding(
			key.WithKeys("right"),
		),
		Erase: key.NewBinding(
			key.WithKeys("backspace"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Toggle, k.Prev, k.Submit, k.Reset, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Prev, k.Submit, k.Reset, k.Quit},
	}
}
