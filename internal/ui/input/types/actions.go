package types

import "spotlight/internal/spotlight"

// Navigation actions
type NavigateAction struct {
	Key spotlight.Key
}

func (a NavigateAction) Type() string { return "navigate" }

// ExecuteAction runs the selected item
type ExecuteAction struct{}

func (a ExecuteAction) Type() string { return "execute" }

// EscapeAction asks the palette to close on escape
type EscapeAction struct{}

func (a EscapeAction) Type() string { return "escape" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

// Palette actions
type ToggleFuzzyAction struct{}

func (a ToggleFuzzyAction) Type() string { return "toggle_fuzzy" }

type ToggleGroupsAction struct{}

func (a ToggleGroupsAction) Type() string { return "toggle_groups" }

type ClearRecentAction struct{}

func (a ClearRecentAction) Type() string { return "clear_recent" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool
}

func (a QuitAction) Type() string { return "quit" }
