package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next     key.Binding
	Previous key.Binding
	Activate key.Binding
	Picker   key.Binding
	Left     key.Binding
	Right    key.Binding
	AuraUp   key.Binding
	AuraDown key.Binding
	Debug    key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("n", "tab"),
			key.WithHelp("n/tab", "next vision"),
		),
		Previous: key.NewBinding(
			key.WithKeys("p", "shift+tab"),
			key.WithHelp("p", "previous"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "invoke"),
		),
		Picker: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "choose vision"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/→", "glyphs"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
		),
		AuraUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", "aura"),
		),
		AuraDown: key.NewBinding(
			key.WithKeys("-", "_"),
		),
		Debug: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "debug"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.Picker, k.Left, k.AuraUp, k.Debug, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous, k.Activate, k.Picker},
		{k.Left, k.Right, k.AuraUp, k.AuraDown},
		{k.Debug, k.Quit},
	}
}

type pickerKeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Choose        key.Binding
	Close         key.Binding
	Clear         key.Binding
	WordBackspace key.Binding
	Backspace     key.Binding
}

var pickerKeys = pickerKeyMap{
	Up:            key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑/↓", "move")),
	Down:          key.NewBinding(key.WithKeys("down", "ctrl+n")),
	Choose:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show")),
	Close:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Clear:         key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear")),
	WordBackspace: key.NewBinding(key.WithKeys("ctrl+w")),
	Backspace:     key.NewBinding(key.WithKeys("backspace")),
}

func (k pickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Choose, k.Close, k.Clear}
}

func (k pickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
