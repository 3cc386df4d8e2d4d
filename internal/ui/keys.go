package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Expand   key.Binding
	Collapse key.Binding
	Open     key.Binding
	Pane     key.Binding
	Filter   key.Binding
	Clear    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/up", "previous page")),
	Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/down", "next page")),
	Top:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first page")),
	Bottom:   key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last page")),
	Expand:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "expand")),
	Collapse: key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "collapse")),
	Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "read / reveal")),
	Pane:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter pages")),
	Clear:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Expand, k.Collapse, k.Filter, k.Pane, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Expand, k.Collapse, k.Open, k.Pane},
		{k.Filter, k.Clear, k.Help, k.Quit},
	}
}
