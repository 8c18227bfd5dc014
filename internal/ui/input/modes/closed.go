package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"spotlight/internal/ui/input/types"
)

// ClosedMode is active while the palette is hidden
type ClosedMode struct {
	keys types.KeyMap
}

func NewClosedMode(keys types.KeyMap) *ClosedMode {
	return &ClosedMode{keys: keys}
}

func (m *ClosedMode) Name() string {
	return "closed"
}

func (m *ClosedMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ClosedMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ClosedMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	case key.Matches(msg, m.keys.ToggleFuzzy):
		return []types.Action{types.ToggleFuzzyAction{}}, true
	case key.Matches(msg, m.keys.ToggleGroups):
		return []types.Action{types.ToggleGroupsAction{}}, true
	case key.Matches(msg, m.keys.ClearRecent):
		return []types.Action{types.ClearRecentAction{}}, true
	}
	return nil, false
}
