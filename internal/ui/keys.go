package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Menu      key.Binding
	Success   key.Binding
	Error     key.Binding
	Info      key.Binding
	Dismiss   key.Binding
	NextInput key.Binding
	PrevInput key.Binding
	Unfocus   key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Menu:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Success:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "success")),
		Error:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "error")),
		Info:      key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info")),
		Dismiss:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
		NextInput: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "inputs")),
		PrevInput: key.NewBinding(key.WithKeys("shift+tab")),
		Unfocus:   key.NewBinding(key.WithKeys("esc")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) footer() []key.Binding {
	return []key.Binding{k.Menu, k.Success, k.Error, k.Info, k.Dismiss, k.NextInput, k.Quit}
}
