package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	next        key.Binding
	prev        key.Binding
	up          key.Binding
	down        key.Binding
	toggle      key.Binding
	selectAll   key.Binding
	deselectAll key.Binding
	create      key.Binding
	submit      key.Binding
	dismiss     key.Binding
	quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		prev:        key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		toggle:      key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		selectAll:   key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),
		deselectAll: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "deselect all")),
		create:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "create")),
		submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "create")),
		dismiss:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.selectAll, k.deselectAll, k.create, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev, k.up, k.down},
		{k.toggle, k.selectAll, k.deselectAll},
		{k.create, k.dismiss, k.quit},
	}
}

// contextual returns the short help for the focused region.
func (k keyMap) contextual(f focus) []key.Binding {
	switch f {
	case focusList:
		return []key.Binding{k.next, k.up, k.down, k.toggle, k.selectAll, k.deselectAll, k.quit}
	case focusName:
		return []key.Binding{k.next, k.submit, k.dismiss, k.quit}
	default:
		return k.ShortHelp()
	}
}
