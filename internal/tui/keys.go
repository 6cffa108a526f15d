package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Step   key.Binding
	Auto   key.Binding
	Rewind key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Step, k.Auto, k.Rewind, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeys() keyMap {
	return keyMap{
		Step: key.NewBinding(
			key.WithKeys("n", "right", " "),
			key.WithHelp("n/→", "step"),
		),
		Auto: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "auto-play"),
		),
		Rewind: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rewind"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}
