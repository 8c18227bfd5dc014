package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"spotlight/internal/catalog"
	"spotlight/internal/config"
	"spotlight/internal/domain"
	"spotlight/internal/eventbus"
	"spotlight/internal/spotlight"
	"spotlight/internal/ui/input"
	inputtypes "spotlight/internal/ui/input/types"
	"spotlight/internal/ui/services/execution"
	"spotlight/internal/ui/views"
)

// statusTimeout is how long a status message stays on screen
const statusTimeout = 4 * time.Second

// Model represents the UI state
type Model struct {
	bus     eventbus.EventBus
	config  *config.Config
	palette *spotlight.Spotlight
	hotkeys *spotlight.HotkeyRegistry
	log     logr.Logger

	// UI-specific state not held by the palette
	width         int
	height        int
	viewportRows  int
	help          help.Model
	keys          inputtypes.KeyMap
	layout        views.Layout
	statusMessage string
	statusIsError bool
	statusSeq     int
	pending       []tea.Cmd // commands queued by item actions during Update

	// Handlers
	renderer     *views.Renderer
	inputHandler *input.Handler
	helpRender   *HelpRenderer
	helpOps      *HelpOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates the palette program model. The catalog's built-in
// commands are bound to the model; extra options reach the palette.
func NewModel(bus eventbus.EventBus, cfg *config.Config, cat *catalog.Catalog, log logr.Logger, opts ...spotlight.Option) (*Model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if bus == nil {
		bus = eventbus.NullBus{}
	}

	keys := inputtypes.DefaultKeyMap(cfg.Hotkey.String())
	m := &Model{
		bus:          bus,
		config:       cfg,
		hotkeys:      spotlight.NewHotkeyRegistry(),
		log:          log.WithName("ui"),
		help:         help.New(),
		keys:         keys,
		viewportRows: 10,
		renderer:     views.NewRenderer(nil),
		inputHandler: input.New(keys, cfg.Palette.Placeholder),
		helpRender:   NewHelpRenderer(keys),
		helpOps:      NewHelpOps(nil),
	}

	var items []domain.Item
	if cat != nil {
		built, err := cat.Build(m.Commands())
		if err != nil {
			return nil, fmt.Errorf("failed to build catalog: %w", err)
		}
		items = built
	}

	all := append([]spotlight.Option{
		spotlight.WithItems(items...),
		spotlight.WithKeySource(m.hotkeys),
		spotlight.WithNavigator(m),
		spotlight.WithEventBus(bus),
		spotlight.WithLogger(log),
	}, opts...)

	palette, err := spotlight.New(cfg, all...)
	if err != nil {
		return nil, err
	}
	m.palette = palette
	m.palette.SetViewportHeight(m.viewportRows)
	return m, nil
}

// SetProgram sets the program used to hand the terminal to the pager
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Palette returns the palette driven by this model
func (m *Model) Palette() *spotlight.Spotlight {
	return m.palette
}

// Commands returns the handlers for the catalog's built-in commands
func (m *Model) Commands() map[string]func() {
	return map[string]func(){
		catalog.CommandQuit: func() {
			m.queue(tea.Quit)
		},
		catalog.CommandClearRecent: func() {
			m.palette.ClearRecent()
			m.queue(m.setStatus("Recent items cleared", false))
		},
		catalog.CommandToggleFuzzy: m.toggleFuzzy,
		catalog.CommandToggleGroups: func() {
			m.palette.SetShowGroups(!m.palette.Config().Palette.ShowGroups)
		},
		catalog.CommandHelp: func() {
			m.queue(m.showHelp())
		},
	}
}

// Navigate reports the followed link. A terminal has no page to leave.
func (m *Model) Navigate(url string) {
	m.log.Info("navigate", "url", url)
	m.queue(m.setStatus("Opened "+url, false))
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()

	case tea.KeyMsg:
		// The global hotkey wins over every mode
		if m.hotkeys.Dispatch(msg.String()) {
			break
		}

		actions, cmd := m.inputHandler.HandleKey(msg, m.context())
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	default:
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if cmd := m.handleNonKeyboardMsg(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if cmd := m.syncMode(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, m.pending...)
	m.pending = nil

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	state := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Palette:        m.palette.View(),
		Input:          m.inputHandler.TextInput().View(),
		ViewportHeight: m.viewportRows,
		Hotkey:         m.config.Hotkey.String(),
		StatusMessage:  m.statusMessage,
		StatusIsError:  m.statusIsError,
		HelpText:       m.help.View(m.keys),
	}
	if !state.Palette.IsOpen {
		state.Recent = m.palette.RecentItems()
	}

	out, layout := m.renderer.Render(state)
	m.layout = layout
	return out
}

// processAction applies one input action to the palette
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	m.log.V(2).Info("processAction", "action", action.Type())

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.palette.HandleKey(a.Key)

	case inputtypes.ExecuteAction:
		m.handleResult(m.palette.Execute())

	case inputtypes.EscapeAction:
		m.palette.HandleKey(spotlight.KeyEscape)

	case inputtypes.UpdateTextAction:
		m.palette.SubmitQuery(a.Text)

	case inputtypes.ToggleFuzzyAction:
		m.toggleFuzzy()

	case inputtypes.ToggleGroupsAction:
		m.palette.SetShowGroups(!m.palette.Config().Palette.ShowGroups)

	case inputtypes.ClearRecentAction:
		m.palette.ClearRecent()
		return m.setStatus("Recent items cleared", false)

	case inputtypes.ToggleHelpAction:
		return m.showHelp()

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

// handleMouse maps pointer input onto the palette layout
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if !m.palette.IsOpen() {
		return
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if i, ok := m.layout.IndexAt(msg.X, msg.Y); ok {
			m.palette.Hover(i)
		}
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if i, ok := m.layout.IndexAt(msg.X, msg.Y); ok {
			m.handleResult(m.palette.Click(i))
			return
		}
		if !m.layout.Contains(msg.X, msg.Y) {
			m.palette.ClickOutside()
		}
	}
}

// handleResult surfaces execution outcomes the user should know about
func (m *Model) handleResult(res execution.Result) {
	if res.Outcome == execution.OutcomeRefused {
		m.queue(m.setStatus("Refused to open "+res.URL+" (different origin)", true))
	}
}

// handleNonKeyboardMsg processes messages that don't come from the keyboard
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case EventMsg:
		// Debounced commits arrive here; returning re-renders
		m.log.V(2).Info("event", "type", string(msg.Event.Type()))
		return nil

	case clearStatusMsg:
		// A newer message restarted the timer
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
			m.statusIsError = false
		}

	case helpPagerMsg:
		if msg.err != nil {
			// Fall back to the full help footer
			m.log.Error(msg.err, "help pager failed")
			m.help.ShowAll = true
		}
	}
	return nil
}

// syncMode keeps the input mode in step with the palette, which may be
// opened by the hotkey or closed by an item
func (m *Model) syncMode() tea.Cmd {
	want := inputtypes.ModeClosed
	if m.palette.IsOpen() {
		want = inputtypes.ModePalette
	}
	if m.inputHandler.CurrentMode() == want {
		return nil
	}
	_, cmd := m.inputHandler.ChangeMode(want, m.context())
	return cmd
}

func (m *Model) context() input.PaletteContext {
	return input.PaletteContext{View: m.palette.View()}
}

func (m *Model) toggleFuzzy() {
	on := !m.palette.Config().Palette.FuzzyMatch
	m.palette.SetFuzzy(on)
	mode := "substring"
	if on {
		mode = "fuzzy"
	}
	m.queue(m.setStatus("Matching: "+mode, false))
}

// showHelp opens the help pager, or expands the footer when no program
// holds the terminal
func (m *Model) showHelp() tea.Cmd {
	if m.program == nil {
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}
	content := m.helpRender.RenderHelpContent(m.palette.Items(), m.width)
	return func() tea.Msg {
		return helpPagerMsg{err: m.helpOps.ShowHelpInPager(content)}
	}
}

// setStatus shows text on the status line until statusTimeout passes
func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.statusSeq++
	m.statusMessage = text
	m.statusIsError = isError
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

// updateViewportHeight sizes the result window to the terminal
func (m *Model) updateViewportHeight() {
	rows := m.height*3/5 - 6
	if rows < 3 {
		rows = 3
	}
	m.viewportRows = rows
	m.palette.SetViewportHeight(rows)
}

// Close releases the palette
func (m *Model) Close() {
	m.palette.Destroy()
}
