package preview

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the preview.
type KeyMap struct {
	CycleMode key.Binding
	Plain     key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Close     key.Binding
	Quit      key.Binding
}

// DefaultKeyMap is the built-in binding set.
var DefaultKeyMap = KeyMap{
	CycleMode: key.NewBinding(
		key.WithKeys("m", "tab"),
		key.WithHelp("m", "cycle mode"),
	),
	Plain: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "toggle markup"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "sample now"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.CycleMode, k.Plain, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns every binding, grouped for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.CycleMode, k.Plain, k.Refresh},
		{k.Help, k.Close, k.Quit},
	}
}
