package state

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	NextTab     key.Binding
	Up          key.Binding
	Down        key.Binding
	Search      key.Binding
	Role        key.Binding
	Status      key.Binding
	Open        key.Binding
	Back        key.Binding
	Delete      key.Binding
	Refresh     key.Binding
	Ping        key.Binding
	StageStatus key.Binding
	Yes         key.Binding
	No          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c")),
		NextTab:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch tab")),
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Role:        key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "cycle role")),
		Status:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "cycle status")),
		Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Ping:        key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "test connection")),
		StageStatus: key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "change status")),
		Yes:         key.NewBinding(key.WithKeys("y", "Y", "enter")),
		No:          key.NewBinding(key.WithKeys("n", "N", "esc")),
	}
}
