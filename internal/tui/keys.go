package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/robco-termlink/wastelandhub/internal/model"
	"github.com/robco-termlink/wastelandhub/internal/screen"
)

// keyMap describes the keys screen.Stack.Handle routes, for the help footer.
type keyMap struct {
	Prev     key.Binding
	Next     key.Binding
	Activate key.Binding
	Back     key.Binding
	Skip     key.Binding
	Stop     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys(screen.PrevKeys...),
			key.WithHelp("↑/k", "prev"),
		),
		Next: key.NewBinding(
			key.WithKeys(screen.NextKeys...),
			key.WithHelp("↓/j", "next"),
		),
		Activate: key.NewBinding(
			key.WithKeys(screen.KeyActivate),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys(screen.KeyBack),
			key.WithHelp("esc", "back"),
		),
		Skip: key.NewBinding(
			key.WithKeys(screen.SkipKeys...),
			key.WithHelp("s/space", "skip"),
		),
		Stop: key.NewBinding(
			key.WithKeys(screen.KeyStop),
			key.WithHelp("x", "stop"),
		),
		Quit: key.NewBinding(
			key.WithKeys(screen.QuitKeys...),
			key.WithHelp("q", "quit"),
		),
	}
}

// bindings returns the help entries for a screen.
func (k keyMap) bindings(kind model.ScreenKind) []key.Binding {
	if kind == model.LogsMenu {
		return []key.Binding{k.Prev, k.Next, k.Activate, k.Skip, k.Stop, k.Back, k.Quit}
	}
	return []key.Binding{k.Prev, k.Next, k.Activate, k.Quit}
}
