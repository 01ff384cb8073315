package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings matched globally. Per-screen navigation
// keys live with their handlers; form fields capture printable keys
// while focused, so quit excludes itself during text entry.
type keyMap struct {
	Logout key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Logout: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "logout"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
}
