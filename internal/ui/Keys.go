package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Start   key.Binding
	Pause   key.Binding
	End     key.Binding
	Quit    key.Binding
	Confirm key.Binding
	Back    key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "down")),
	Left:    key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "left")),
	Right:   key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "right")),
	Start:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new game")),
	Pause:   key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p/space", "pause")),
	End:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Pause, k.End, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Start, k.Pause, k.End, k.Quit},
	}
}
