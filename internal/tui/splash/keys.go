package splash

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle key.Binding
	System key.Binding
	Focus  key.Binding
	Blur   key.Binding
	Submit key.Binding
	Quit   key.Binding
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.System, k.Focus, k.Submit, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.System},
		{k.Focus, k.Blur, k.Submit},
		{k.Quit},
	}
}

var keys = keyMap{
	Toggle: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "toggle theme"),
	),
	System: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "follow system"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "email"),
	),
	Blur: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "leave field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "join waitlist"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
