package search

import (
	"strings"
	"sync"

	"github.com/go-logr/logr"

	"spotlight/internal/domain"
	"spotlight/internal/eventbus"
	"spotlight/internal/logic"
)

// Service turns keystroke-driven queries into result sets. Typed queries are
// debounced; every execution carries a request token and only the latest
// issued token may commit.
type Service struct {
	mu        sync.Mutex
	commitMu  sync.Mutex // orders commits and resets with their derived updates
	state     *State
	opts      Options
	matcher   *logic.Matcher
	bus       eventbus.EventBus
	log       logr.Logger
	scheduler Scheduler

	pending    Timer
	pendingSeq uint64 // invalidates timers that fired after being replaced

	itemsFn   func() []domain.Item        // current item collection
	recentFn  func() []string             // recent ids, most recent first
	observeFn func(query string)          // host "search observed" hook
	commitFn  func(results []domain.Item) // called after a commit
	resetFn   func()                      // called after a reset
}

// NewService creates a new search service
func NewService(bus eventbus.EventBus, scheduler Scheduler, log logr.Logger) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	if scheduler == nil {
		scheduler = RealScheduler()
	}
	return &Service{
		state:     &State{},
		matcher:   logic.NewMatcher(logic.MatchSubstring),
		bus:       bus,
		log:       log.WithName("search"),
		scheduler: scheduler,
	}
}

// SetItemsFunction sets the function returning the items to search
func (s *Service) SetItemsFunction(fn func() []domain.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemsFn = fn
}

// SetRecentFunction sets the function returning recent item ids
func (s *Service) SetRecentFunction(fn func() []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recentFn = fn
}

// SetObserver sets the hook invoked with every executed query
func (s *Service) SetObserver(fn func(query string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observeFn = fn
}

// SetCommitFunction sets the function called after results are committed
func (s *Service) SetCommitFunction(fn func(results []domain.Item)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitFn = fn
}

// SetResetFunction sets the function called after the session is reset
func (s *Service) SetResetFunction(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetFn = fn
}

// SetOptions replaces the result shaping options
func (s *Service) SetOptions(opts Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = opts
}

// Options returns the current options
func (s *Service) Options() Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts
}

// SetMatchMode switches between substring and subsequence matching
func (s *Service) SetMatchMode(mode logic.MatchMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matcher = logic.NewMatcher(mode)
}

// MatchMode returns the active match mode
func (s *Service) MatchMode() logic.MatchMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matcher.Mode()
}

// Submit records query immediately and schedules a debounced execution,
// replacing any execution still pending.
func (s *Service) Submit(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Query = strings.ToLower(query)
	s.state.Loading = true
	s.stopPendingLocked()

	seq := s.pendingSeq
	q := s.state.Query
	s.pending = s.scheduler.AfterFunc(s.opts.Delay, func() {
		s.fire(seq, q)
	})
}

// SetQueryImmediate records query and executes it synchronously. It reports
// whether the execution committed.
func (s *Service) SetQueryImmediate(query string) bool {
	s.mu.Lock()
	s.state.Query = strings.ToLower(query)
	s.state.Loading = true
	s.stopPendingLocked()
	q := s.state.Query
	s.mu.Unlock()

	return s.execute(q)
}

// Refresh re-executes the current query synchronously
func (s *Service) Refresh() bool {
	s.mu.Lock()
	q := s.state.Query
	s.stopPendingLocked()
	s.mu.Unlock()

	return s.execute(q)
}

// Cancel drops any pending execution and invalidates in-flight ones.
// Safe to call repeatedly.
func (s *Service) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopPendingLocked()
	s.state.LatestToken++
	s.state.Loading = false
}

// Reset cancels outstanding work and clears the query and results. A commit
// already running finishes its derived updates before the reset function runs.
func (s *Service) Reset() {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	s.mu.Lock()
	s.stopPendingLocked()
	s.state.LatestToken++
	s.state.Loading = false
	s.state.Query = ""
	s.state.Results = nil
	resetFn := s.resetFn
	s.mu.Unlock()

	if resetFn != nil {
		resetFn()
	}
}

// Query returns the current case-folded query
func (s *Service) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Query
}

// Results returns a copy of the committed result set
func (s *Service) Results() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Item, len(s.state.Results))
	copy(out, s.state.Results)
	return out
}

// IsLoading reports whether a requested search has not committed yet
func (s *Service) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Loading
}

// LatestToken returns the most recently issued request token
func (s *Service) LatestToken() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.LatestToken
}

// HasPending reports whether a debounced execution is scheduled
func (s *Service) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

func (s *Service) stopPendingLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.pendingSeq++
}

func (s *Service) fire(seq uint64, query string) {
	s.mu.Lock()
	if seq != s.pendingSeq {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	s.mu.Unlock()

	s.execute(query)
}

// execute issues a token, notifies the observer, matches and commits if the
// token is still the latest issued.
func (s *Service) execute(query string) bool {
	s.mu.Lock()
	s.state.LatestToken++
	token := s.state.LatestToken
	opts := s.opts
	matcher := s.matcher
	itemsFn, recentFn, observeFn := s.itemsFn, s.recentFn, s.observeFn
	s.mu.Unlock()

	s.bus.Publish(domain.SearchStartedEvent{Query: query, Token: token})

	// The observer may be slow or re-enter the service; no lock is held.
	if observeFn != nil {
		observeFn(query)
	}

	var items []domain.Item
	if itemsFn != nil {
		items = itemsFn()
	}
	var recent []string
	if recentFn != nil {
		recent = recentFn()
	}
	results := computeResults(items, recent, query, opts, matcher)

	// token check, commit and derived updates happen under commitMu
	s.commitMu.Lock()
	s.mu.Lock()
	if token != s.state.LatestToken {
		latest := s.state.LatestToken
		s.mu.Unlock()
		s.commitMu.Unlock()
		s.log.V(1).Info("discarding stale search", "query", query, "token", token, "latest", latest)
		s.bus.Publish(domain.SearchDiscardedEvent{Query: query, Token: token, Latest: latest})
		return false
	}
	s.state.Results = results
	s.state.Loading = false
	commitFn := s.commitFn
	s.mu.Unlock()

	if commitFn != nil {
		commitFn(results)
	}
	s.commitMu.Unlock()

	s.log.V(1).Info("search committed", "query", query, "token", token, "results", len(results))
	s.bus.Publish(domain.SearchCompletedEvent{Query: query, Token: token, ResultCount: len(results)})
	return true
}

func computeResults(items []domain.Item, recent []string, query string, opts Options, matcher *logic.Matcher) []domain.Item {
	q := logic.NormalizeQuery(query)
	if q != "" {
		return matcher.Filter(items, q, opts.MaxResults)
	}

	if opts.ShowRecent && len(recent) > 0 {
		recentSet := make(map[string]bool, len(recent))
		for _, id := range recent {
			recentSet[id] = true
		}
		results := make([]domain.Item, 0, len(recent))
		for _, item := range items {
			if opts.RecentLimit >= 0 && len(results) >= opts.RecentLimit {
				break
			}
			if recentSet[item.ID] {
				results = append(results, item)
			}
		}
		return results
	}

	limit := len(items)
	if opts.MaxResults > 0 && opts.MaxResults < limit {
		limit = opts.MaxResults
	}
	results := make([]domain.Item, limit)
	copy(results, items[:limit])
	return results
}
