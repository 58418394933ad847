package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the bindings of the confirmation prompt.
type KeyMap struct {
	Submit key.Binding // enter: answer with the typed text
	Cancel key.Binding // esc: answer no
	Abort  key.Binding // ctrl+c: stop the run
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "answer"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "no"),
		),
		Abort: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "abort"),
		),
	}
}

// HelpLine renders the short help for the given bindings.
func HelpLine(bindings ...key.Binding) string {
	var out string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		if out != "" {
			out += " • "
		}
		out += h.Key + " " + h.Desc
	}
	return out
}
