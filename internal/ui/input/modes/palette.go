package modes

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"spotlight/internal/spotlight"
	"spotlight/internal/ui/input/types"
)

// PaletteMode is active while the palette is open. Keys it does not claim
// are typed into the query.
type PaletteMode struct {
	keys      types.KeyMap
	textInput *textinput.Model
}

func NewPaletteMode(keys types.KeyMap, ti *textinput.Model) *PaletteMode {
	return &PaletteMode{keys: keys, textInput: ti}
}

func (m *PaletteMode) Name() string {
	return "palette"
}

func (m *PaletteMode) Enter(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Reset()
		m.textInput.Focus()
	}
	return nil
}

func (m *PaletteMode) Exit(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Blur()
		m.textInput.Reset()
	}
	return nil
}

func (m *PaletteMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Escape):
		return []types.Action{types.EscapeAction{}}, true
	case key.Matches(msg, m.keys.Execute):
		return []types.Action{types.ExecuteAction{}}, true
	case key.Matches(msg, m.keys.Next):
		return navigate(spotlight.KeyNext), true
	case key.Matches(msg, m.keys.Previous):
		return navigate(spotlight.KeyPrevious), true
	case key.Matches(msg, m.keys.First):
		return navigate(spotlight.KeyFirst), true
	case key.Matches(msg, m.keys.Last):
		return navigate(spotlight.KeyLast), true
	case key.Matches(msg, m.keys.PageUp):
		return navigate(spotlight.KeyPageUp), true
	case key.Matches(msg, m.keys.PageDown):
		return navigate(spotlight.KeyPageDown), true
	}
	// Let the handler feed the text input
	return nil, false
}

func navigate(k spotlight.Key) []types.Action {
	return []types.Action{types.NavigateAction{Key: k}}
}
