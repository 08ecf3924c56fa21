package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists every binding; pages pick the ones they show in help.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Next    key.Binding
	Prev    key.Binding
	Back    key.Binding
	Save    key.Binding
	Share   key.Binding
	Delete  key.Binding
	Reset   key.Binding
	Timer   key.Binding
	Roll    key.Binding
	Equip   key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Next:    key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev tab")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Save:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Share:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "share")),
		Delete:  key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		Reset:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset")),
		Timer:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "start timer")),
		Roll:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "roll")),
		Equip:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "equip/download")),
		Confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// bindings implements help.KeyMap for a page's subset.
type bindings struct {
	short []key.Binding
	full  [][]key.Binding
}

func (b bindings) ShortHelp() []key.Binding  { return b.short }
func (b bindings) FullHelp() [][]key.Binding { return b.full }

func helpFor(k keyMap, page ...key.Binding) bindings {
	short := append(append([]key.Binding(nil), page...), k.Next, k.Help, k.Quit)
	return bindings{
		short: short,
		full:  [][]key.Binding{page, {k.Next, k.Prev, k.Help, k.Quit}},
	}
}
