package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	Toggle    key.Binding
	ShiftUp   key.Binding
	ShiftDown key.Binding
	ShiftPick key.Binding
	Visual    key.Binding
	Page      key.Binding
	All       key.Binding
	Clear     key.Binding
	Delete    key.Binding
	Help      key.Binding
	Confirm   key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PrevPage:  key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "prev page")),
		NextPage:  key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l", "next page")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		ShiftUp:   key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("shift+↑", "extend up")),
		ShiftDown: key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("shift+↓", "extend down")),
		ShiftPick: key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "shift-click")),
		Visual:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "visual range")),
		Page:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "select page")),
		All:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		Clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Delete:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete selected")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.ShiftPick, k.Visual, k.All, k.Confirm, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage},
		{k.Toggle, k.ShiftUp, k.ShiftDown, k.ShiftPick, k.Visual},
		{k.Page, k.All, k.Clear, k.Delete},
		{k.Help, k.Confirm, k.Quit},
	}
}
