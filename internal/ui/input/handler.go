package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"spotlight/internal/ui/input/modes"
	"spotlight/internal/ui/input/types"
)

// Handler routes key messages to the active mode
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // query box shared with the palette mode
	keys        types.KeyMap
}

// New creates a handler in the closed mode
func New(keys types.KeyMap, placeholder string) *Handler {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = placeholder
	ti.CharLimit = 256

	h := &Handler{
		currentMode: types.ModeClosed,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
		keys:        keys,
	}

	// Register all mode handlers
	h.modes[types.ModeClosed] = modes.NewClosedMode(keys)
	h.modes[types.ModePalette] = modes.NewPaletteMode(keys, h.textInput)

	return h
}

// HandleKey returns the actions for msg in the current mode
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if consumed {
		return actions, nil
	}
	if h.currentMode != types.ModePalette {
		return nil, nil
	}

	// Unclaimed keys edit the query
	before := h.textInput.Value()
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	if after := h.textInput.Value(); after != before {
		actions = append(actions, types.UpdateTextAction{Text: after})
	}
	return actions, cmd
}

// ChangeMode switches modes, running exit and enter hooks
func (h *Handler) ChangeMode(mode types.Mode, ctx types.Context) ([]types.Action, tea.Cmd) {
	if mode == h.currentMode {
		return nil, nil
	}
	var actions []types.Action
	if old := h.modes[h.currentMode]; old != nil {
		actions = append(actions, old.Exit(ctx)...)
	}
	h.currentMode = mode
	if next := h.modes[mode]; next != nil {
		actions = append(actions, next.Enter(ctx)...)
	}
	if mode == types.ModePalette {
		return actions, textinput.Blink
	}
	return actions, nil
}

// CurrentMode returns the active mode
func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// TextInput returns the query box
func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

// SetPlaceholder changes the query box placeholder
func (h *Handler) SetPlaceholder(text string) {
	h.textInput.Placeholder = text
}

// Keys returns the key map
func (h *Handler) Keys() types.KeyMap {
	return h.keys
}

// Update handles non-keyboard messages for the text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.currentMode != types.ModePalette {
		return nil
	}
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}
