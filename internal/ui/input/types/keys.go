package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the palette key bindings
type KeyMap struct {
	Toggle       key.Binding
	Next         key.Binding
	Previous     key.Binding
	First        key.Binding
	Last         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Execute      key.Binding
	Escape       key.Binding
	ToggleFuzzy  key.Binding
	ToggleGroups key.Binding
	ClearRecent  key.Binding
	Help         key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding
}

// DefaultKeyMap returns the bindings with hotkey as the open/close chord
func DefaultKeyMap(hotkey string) KeyMap {
	return KeyMap{
		Toggle:       key.NewBinding(key.WithKeys(hotkey), key.WithHelp(hotkey, "open/close palette")),
		Next:         key.NewBinding(key.WithKeys("down", "ctrl+n", "tab"), key.WithHelp("↓/ctrl+n", "next")),
		Previous:     key.NewBinding(key.WithKeys("up", "ctrl+p", "shift+tab"), key.WithHelp("↑/ctrl+p", "previous")),
		First:        key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("ctrl+home", "first")),
		Last:         key.NewBinding(key.WithKeys("ctrl+end"), key.WithHelp("ctrl+end", "last")),
		PageUp:       key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Execute:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		Escape:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		ToggleFuzzy:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle fuzzy")),
		ToggleGroups: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "toggle groups")),
		ClearRecent:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear recent")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Next, k.Previous, k.Execute, k.Escape, k.Help}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Execute, k.Escape},
		{k.Next, k.Previous, k.First, k.Last, k.PageUp, k.PageDown},
		{k.ToggleFuzzy, k.ToggleGroups, k.ClearRecent, k.Help, k.Quit, k.ForceQuit},
	}
}
