package ui

import (
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spotlight/internal/catalog"
	"spotlight/internal/config"
	"spotlight/internal/spotlight"
	inputtypes "spotlight/internal/ui/input/types"
	"spotlight/internal/ui/services/search"
)

type queuedTimer struct {
	f       func()
	stopped bool
}

func (t *queuedTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// queuedScheduler holds debounced searches until flushed
type queuedScheduler struct {
	mu     sync.Mutex
	timers []*queuedTimer
}

func (s *queuedScheduler) AfterFunc(_ time.Duration, f func()) search.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &queuedTimer{f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *queuedScheduler) Flush() {
	s.mu.Lock()
	due := s.timers
	s.timers = nil
	s.mu.Unlock()
	for _, t := range due {
		if !t.stopped {
			t.stopped = true
			t.f()
		}
	}
}

func newTestModel(t *testing.T) (*Model, *queuedScheduler) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	sched := &queuedScheduler{}
	m, err := NewModel(nil, config.DefaultConfig(), cat, logr.Discard(), spotlight.WithScheduler(sched))
	require.NoError(t, err)
	t.Cleanup(m.Close)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, sched
}

func press(m *Model, k tea.KeyType) {
	m.Update(tea.KeyMsg{Type: k})
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestHotkeyTogglesPalette(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, tea.KeyCtrlK)
	assert.True(t, m.Palette().IsOpen())
	assert.Equal(t, inputtypes.ModePalette, m.inputHandler.CurrentMode())
	assert.True(t, m.inputHandler.TextInput().Focused())

	press(m, tea.KeyCtrlK)
	assert.False(t, m.Palette().IsOpen())
	assert.Equal(t, inputtypes.ModeClosed, m.inputHandler.CurrentMode())
}

func TestTypingSearchesAfterDebounce(t *testing.T) {
	m, sched := newTestModel(t)
	press(m, tea.KeyCtrlK)

	typeText(m, "sett")
	v := m.Palette().View()
	assert.Equal(t, "sett", v.Query)
	assert.True(t, v.IsLoading)

	sched.Flush()
	v = m.Palette().View()
	require.Len(t, v.Results, 1)
	assert.Equal(t, "open-settings", v.Results[0].ID)
	assert.Contains(t, m.View(), "Settings")
}

func TestExecuteFollowsSameOriginLink(t *testing.T) {
	m, sched := newTestModel(t)
	press(m, tea.KeyCtrlK)
	typeText(m, "profile")
	sched.Flush()

	press(m, tea.KeyEnter)
	assert.False(t, m.Palette().IsOpen())
	assert.Equal(t, "Opened https://localhost/profile", m.statusMessage)
	assert.False(t, m.statusIsError)
	require.NotEmpty(t, m.Palette().RecentItems())
	assert.Equal(t, "open-profile", m.Palette().RecentItems()[0].ID)
}

func TestExecuteRefusesCrossOriginLink(t *testing.T) {
	m, sched := newTestModel(t)
	press(m, tea.KeyCtrlK)
	typeText(m, "service status")
	sched.Flush()

	press(m, tea.KeyEnter)
	assert.True(t, m.statusIsError)
	assert.Contains(t, m.statusMessage, "https://status.example.com")
}

func TestEscapeClosesAndResetsInput(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, tea.KeyCtrlK)
	typeText(m, "bil")

	press(m, tea.KeyEsc)
	assert.False(t, m.Palette().IsOpen())
	assert.Equal(t, "", m.inputHandler.TextInput().Value())
	assert.Equal(t, "", m.Palette().View().Query)
}

func TestArrowKeysMoveCursor(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, tea.KeyCtrlK)

	press(m, tea.KeyDown)
	press(m, tea.KeyDown)
	assert.Equal(t, 2, m.Palette().View().SelectedIndex)
	press(m, tea.KeyUp)
	assert.Equal(t, 1, m.Palette().View().SelectedIndex)
}

func TestToggleFuzzyCommandFromPalette(t *testing.T) {
	m, sched := newTestModel(t)
	require.False(t, m.Palette().Config().Palette.FuzzyMatch)

	press(m, tea.KeyCtrlK)
	typeText(m, "toggle fuzzy")
	sched.Flush()
	press(m, tea.KeyEnter)

	assert.True(t, m.Palette().Config().Palette.FuzzyMatch)
	assert.Equal(t, "Matching: fuzzy", m.statusMessage)
}

func TestClosedModeShortcuts(t *testing.T) {
	m, _ := newTestModel(t)

	typeText(m, "g")
	assert.False(t, m.Palette().Config().Palette.ShowGroups)

	typeText(m, "?")
	assert.True(t, m.help.ShowAll)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
}

func TestLauncherListsRecentItems(t *testing.T) {
	m, sched := newTestModel(t)
	press(m, tea.KeyCtrlK)
	typeText(m, "billing")
	sched.Flush()
	press(m, tea.KeyEnter)

	out := m.View()
	assert.Contains(t, out, "Recent")
	assert.Contains(t, out, "Billing")
}

func TestMouseClickExecutesAndClickOutsideCloses(t *testing.T) {
	m, sched := newTestModel(t)
	press(m, tea.KeyCtrlK)
	typeText(m, "billing")
	sched.Flush()
	m.View()

	var x, y int
	found := false
	for row := m.layout.Top; row < m.layout.Top+m.layout.Height && !found; row++ {
		if _, ok := m.layout.IndexAt(m.layout.Left+2, row); ok {
			x, y, found = m.layout.Left+2, row, true
		}
	}
	require.True(t, found)

	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, m.Palette().IsOpen())
	assert.Equal(t, "billing", m.Palette().RecentItems()[0].ID)

	press(m, tea.KeyCtrlK)
	m.View()
	m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, m.Palette().IsOpen())
}

func TestStatusClearsOnlyForLatestMessage(t *testing.T) {
	m, _ := newTestModel(t)
	m.setStatus("first", false)
	m.setStatus("second", false)

	m.Update(clearStatusMsg{seq: 1})
	assert.Equal(t, "second", m.statusMessage)
	m.Update(clearStatusMsg{seq: 2})
	assert.Equal(t, "", m.statusMessage)
}

func TestHelpContentListsBindingsAndCatalog(t *testing.T) {
	m, _ := newTestModel(t)
	content := m.helpRender.RenderHelpContent(m.Palette().Items(), 60)

	assert.Contains(t, content, "Spotlight Help")
	assert.Contains(t, content, "Navigation")
	assert.Contains(t, content, "ctrl+k")
	assert.Contains(t, content, "Keyboard help")
	assert.Contains(t, content, "(disabled)")
}
