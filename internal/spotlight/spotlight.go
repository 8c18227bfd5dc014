// Package spotlight is the command palette engine: a debounced search over a
// host-owned item collection with grouped results, a wrap-around cursor, a
// recent-items list and guarded execution.
package spotlight

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"spotlight/internal/config"
	"spotlight/internal/domain"
	"spotlight/internal/eventbus"
	"spotlight/internal/logic"
	"spotlight/internal/ui/coordinator"
	"spotlight/internal/ui/services/execution"
	"spotlight/internal/ui/services/groups"
	"spotlight/internal/ui/services/search"
	"spotlight/internal/ui/services/selection"
)

// View is a snapshot for renderers
type View struct {
	IsOpen         bool
	IsLoading      bool
	Query          string
	Results        []domain.Item
	Groups         []groups.Bucket
	SelectedIndex  int
	ViewportOffset int
	Placeholder    string
	EmptyMessage   string
	FuzzyMatch     bool
}

// Spotlight is a command palette instance
type Spotlight struct {
	mu        sync.Mutex
	open      bool
	destroyed bool
	cfg       config.Config

	coord *coordinator.Coordinator
	store logic.ItemStore
	host  Host
	bus   eventbus.EventBus
	hooks Hooks
	log   logr.Logger

	sub         Subscription
	destroyOnce sync.Once
}

// New creates a closed palette from cfg. A nil cfg uses the defaults.
func New(cfg *config.Config, opts ...Option) (*Spotlight, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create palette: %w", err)
	}

	o := options{log: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.host == nil {
		o.host = NewMemoryHost()
	}
	if o.bus == nil {
		o.bus = eventbus.NullBus{}
	}
	if o.store == nil {
		o.store = logic.NewMemoryItemStore()
	}
	if len(o.items) > 0 {
		o.store.Replace(o.items)
	}

	s := &Spotlight{
		cfg:   *cfg,
		store: o.store,
		host:  o.host,
		bus:   o.bus,
		hooks: o.hooks,
		log:   o.log.WithName("spotlight"),
	}

	mode := logic.MatchSubstring
	if cfg.Palette.FuzzyMatch {
		mode = logic.MatchSubsequence
	}
	s.coord = coordinator.NewCoordinator(o.bus, o.store, o.scheduler, o.navigator, coordinator.Settings{
		Search: search.Options{
			MaxResults:  cfg.Palette.MaxResults,
			ShowRecent:  cfg.Palette.ShowRecent,
			RecentLimit: cfg.Palette.RecentLimit,
			Delay:       time.Duration(cfg.Palette.Debounce),
		},
		MatchMode:     mode,
		ShowGroups:    cfg.Palette.ShowGroups,
		Origin:        cfg.Behavior.Origin,
		CloseOnSelect: cfg.Behavior.CloseOnSelect,
	}, s.log)

	s.wireHooks(o.scroller)
	s.host.Initialize(*cfg)

	if o.keys != nil {
		s.sub = o.keys.Register(cfg.Hotkey, s.Toggle)
	}

	s.log.V(1).Info("palette created", "items", s.store.Len(), "hotkey", cfg.Hotkey.String())
	return s, nil
}

func (s *Spotlight) wireHooks(scroller func(int)) {
	if s.hooks.OnSearch != nil {
		onSearch := s.hooks.OnSearch
		s.coord.Search.SetObserver(func(query string) {
			s.call("onSearch", func() { onSearch(query) })
		})
	}
	if s.hooks.OnSelect != nil {
		s.coord.Execution.SetSelectFunction(s.hooks.OnSelect)
	}
	s.coord.Execution.SetCloseFunction(s.Close)
	s.coord.Selection.SetScrollFunction(scroller)
	s.coord.SetCommitFunction(func([]domain.Item) { s.sync() })
}

// Open reveals the palette and runs an empty-query search. Opening an open
// palette does nothing.
func (s *Spotlight) Open() {
	s.mu.Lock()
	if s.destroyed || s.open {
		s.mu.Unlock()
		return
	}
	s.open = true
	s.mu.Unlock()

	opened := true
	s.host.SetState(StatePatch{IsOpen: &opened})
	s.coord.Search.SetQueryImmediate("")
	s.sync()

	s.log.V(1).Info("palette opened")
	s.bus.Publish(domain.PaletteOpenedEvent{})
	if s.hooks.OnOpen != nil {
		s.call("onOpen", s.hooks.OnOpen)
	}
}

// Close hides the palette, cancels a pending search and clears the session.
// Recent items are kept.
func (s *Spotlight) Close() {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return
	}
	s.open = false
	s.mu.Unlock()

	s.coord.ResetSession()
	closed, loading, query, index := false, false, "", 0
	s.host.SetState(StatePatch{IsOpen: &closed, IsLoading: &loading, Query: &query, SelectedIndex: &index})

	s.log.V(1).Info("palette closed")
	s.bus.Publish(domain.PaletteClosedEvent{})
	if s.hooks.OnClose != nil {
		s.call("onClose", s.hooks.OnClose)
	}
}

// Toggle opens a closed palette and closes an open one
func (s *Spotlight) Toggle() {
	if s.IsOpen() {
		s.Close()
		return
	}
	s.Open()
}

// IsOpen reports whether the palette is visible
func (s *Spotlight) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// SubmitQuery records a typed query and searches once typing pauses
func (s *Spotlight) SubmitQuery(query string) {
	s.coord.Search.Submit(query)
	s.sync()
}

// SetQuery searches for query immediately
func (s *Spotlight) SetQuery(query string) {
	s.coord.Search.SetQueryImmediate(query)
	s.sync()
}

// HandleKey maps a navigation key onto the cursor, execution or close.
// Keys are ignored while the palette is closed.
func (s *Spotlight) HandleKey(k Key) bool {
	if !s.IsOpen() {
		return false
	}
	switch k {
	case KeyNext:
		s.coord.Selection.Next()
	case KeyPrevious:
		s.coord.Selection.Previous()
	case KeyFirst:
		s.coord.Selection.First()
	case KeyLast:
		s.coord.Selection.Last()
	case KeyPageUp:
		s.coord.Selection.Navigate(selection.DirectionPageUp)
	case KeyPageDown:
		s.coord.Selection.Navigate(selection.DirectionPageDown)
	case KeyExecute:
		s.Execute()
		return true
	case KeyEscape:
		if !s.cfg.Behavior.CloseOnEscape {
			return false
		}
		s.Close()
		return true
	default:
		return false
	}
	s.sync()
	return true
}

// Execute runs the selected item
func (s *Spotlight) Execute() execution.Result {
	res := s.coord.Execution.ExecuteSelected()
	s.sync()
	return res
}

// Hover moves the cursor to i; out-of-range indices are ignored
func (s *Spotlight) Hover(i int) {
	if s.coord.Selection.Select(i) {
		s.sync()
	}
}

// Click selects and executes the item at i
func (s *Spotlight) Click(i int) execution.Result {
	if !s.coord.Selection.Select(i) {
		return execution.Result{Outcome: execution.OutcomeNoop}
	}
	return s.Execute()
}

// ClickOutside closes the palette when configured to
func (s *Spotlight) ClickOutside() {
	if s.cfg.Behavior.CloseOnClickOutside {
		s.Close()
	}
}

// SetItems replaces the item collection
func (s *Spotlight) SetItems(items []domain.Item) {
	s.store.Replace(items)
	s.itemsChanged()
}

// AddItem appends item, replacing an item with the same id
func (s *Spotlight) AddItem(item domain.Item) {
	s.store.Add(item)
	s.itemsChanged()
}

// RemoveItem removes the item with id and reports whether it existed
func (s *Spotlight) RemoveItem(id string) bool {
	if !s.store.Remove(id) {
		return false
	}
	s.itemsChanged()
	return true
}

// Items returns the item collection
func (s *Spotlight) Items() []domain.Item {
	return s.store.All()
}

// RecentItems returns the live items for the recent ids, most recent first
func (s *Spotlight) RecentItems() []domain.Item {
	return s.coord.Recent.Items()
}

// ClearRecent empties the recent list
func (s *Spotlight) ClearRecent() {
	s.coord.Recent.Clear()
	s.refreshIfOpen()
}

// SetFuzzy switches between subsequence and substring matching
func (s *Spotlight) SetFuzzy(on bool) {
	mode := logic.MatchSubstring
	if on {
		mode = logic.MatchSubsequence
	}
	s.mu.Lock()
	s.cfg.Palette.FuzzyMatch = on
	s.mu.Unlock()

	s.coord.Search.SetMatchMode(mode)
	s.refreshIfOpen()
}

// SetMaxResults changes the result cap. Non-positive values are ignored.
func (s *Spotlight) SetMaxResults(n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	s.cfg.Palette.MaxResults = n
	s.mu.Unlock()

	opts := s.coord.Search.Options()
	opts.MaxResults = n
	s.coord.Search.SetOptions(opts)
	s.refreshIfOpen()
}

// SetShowGroups toggles grouped presentation
func (s *Spotlight) SetShowGroups(on bool) {
	s.mu.Lock()
	s.cfg.Palette.ShowGroups = on
	s.mu.Unlock()

	s.coord.Groups.SetShowGroups(on)
	s.coord.Regroup()
}

// SetShowRecent toggles the recent items view for an empty query
func (s *Spotlight) SetShowRecent(on bool) {
	s.mu.Lock()
	s.cfg.Palette.ShowRecent = on
	s.mu.Unlock()

	opts := s.coord.Search.Options()
	opts.ShowRecent = on
	s.coord.Search.SetOptions(opts)
	s.refreshIfOpen()
}

// SetRecentLimit changes the recent list bound. Negative values are ignored.
func (s *Spotlight) SetRecentLimit(n int) {
	if n < 0 {
		return
	}
	s.mu.Lock()
	s.cfg.Palette.RecentLimit = n
	s.mu.Unlock()

	s.coord.SetRecentLimit(n)
	s.refreshIfOpen()
}

// SetPlaceholder changes the input placeholder
func (s *Spotlight) SetPlaceholder(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Palette.Placeholder = text
}

// SetViewportHeight sets how many result rows the renderer shows
func (s *Spotlight) SetViewportHeight(rows int) {
	s.coord.Selection.SetViewportHeight(rows)
}

// Config returns the effective configuration
func (s *Spotlight) Config() config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// View returns a snapshot of the palette for rendering
func (s *Spotlight) View() View {
	s.mu.Lock()
	cfg := s.cfg
	open := s.open
	s.mu.Unlock()

	return View{
		IsOpen:         open,
		IsLoading:      s.coord.Search.IsLoading(),
		Query:          s.coord.Search.Query(),
		Results:        s.coord.Search.Results(),
		Groups:         s.coord.Groups.Buckets(),
		SelectedIndex:  s.coord.Selection.Index(),
		ViewportOffset: s.coord.Selection.ViewportOffset(),
		Placeholder:    cfg.Palette.Placeholder,
		EmptyMessage:   cfg.Palette.EmptyMessage,
		FuzzyMatch:     cfg.Palette.FuzzyMatch,
	}
}

// Destroy tears the palette down: pending searches are cancelled and the
// hotkey is released. Safe to call more than once.
func (s *Spotlight) Destroy() {
	s.destroyOnce.Do(func() {
		s.mu.Lock()
		s.destroyed = true
		s.open = false
		s.mu.Unlock()

		s.coord.Search.Cancel()
		if s.sub != nil {
			s.sub.Unsubscribe()
		}
		s.host.Destroy()
		s.log.V(1).Info("palette destroyed")
	})
}

func (s *Spotlight) itemsChanged() {
	s.bus.Publish(domain.ItemsChangedEvent{Count: s.store.Len()})
	s.refreshIfOpen()
}

func (s *Spotlight) refreshIfOpen() {
	if !s.IsOpen() {
		return
	}
	s.coord.Search.Refresh()
	s.sync()
}

// sync mirrors session state into the host
func (s *Spotlight) sync() {
	s.mu.Lock()
	destroyed := s.destroyed
	s.mu.Unlock()
	if destroyed {
		return
	}

	loading := s.coord.Search.IsLoading()
	query := s.coord.Search.Query()
	index := s.coord.Selection.Index()
	s.host.SetState(StatePatch{IsLoading: &loading, Query: &query, SelectedIndex: &index})
}

func (s *Spotlight) call(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error(fmt.Errorf("%v", r), "hook panicked", "hook", name)
		}
	}()
	fn()
}
