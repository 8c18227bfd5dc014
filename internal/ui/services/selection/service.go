package selection

import (
	"sync"

	"github.com/go-logr/logr"

	"spotlight/internal/domain"
	"spotlight/internal/eventbus"
)

const defaultViewportHeight = 10

// Service is the wrap-around cursor over the flat result set
type Service struct {
	mu       sync.Mutex
	state    *State
	bus      eventbus.EventBus
	log      logr.Logger
	scrollFn func(index int) // brings the active row into view, optional
}

// NewService creates a new selection service
func NewService(bus eventbus.EventBus, log logr.Logger) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &Service{
		state: &State{
			ViewportHeight: defaultViewportHeight,
		},
		bus: bus,
		log: log.WithName("selection"),
	}
}

// SetScrollFunction sets the hook that reveals the active item
func (s *Service) SetScrollFunction(fn func(index int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollFn = fn
}

// Index returns the active index
func (s *Service) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Index
}

// Count returns the size of the result set
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Count
}

// ViewportOffset returns the first visible row
func (s *Service) ViewportOffset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ViewportOffset
}

// ViewportHeight returns the number of visible rows
func (s *Service) ViewportHeight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ViewportHeight
}

// SetViewportHeight updates the number of visible rows
func (s *Service) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	s.mu.Lock()
	s.state.ViewportHeight = height
	changed := s.ensureVisibleLocked()
	s.mu.Unlock()
	s.publishViewport(changed)
}

// Reset points the cursor at 0 over a result set of n items
func (s *Service) Reset(n int) {
	if n < 0 {
		n = 0
	}
	s.mu.Lock()
	old := s.state.Index
	s.state.Count = n
	s.state.Index = 0
	s.state.ViewportOffset = 0
	s.mu.Unlock()

	if old != 0 {
		s.bus.Publish(domain.CursorMovedEvent{OldIndex: old, NewIndex: 0})
	}
}

// Navigate moves the cursor in a direction
func (s *Service) Navigate(direction Direction) {
	s.mu.Lock()
	old := s.state.Index
	n := s.state.Count
	span := max(1, n)

	switch direction {
	case DirectionNext:
		s.state.Index = (s.state.Index + 1) % span
	case DirectionPrevious:
		s.state.Index = (s.state.Index - 1 + span) % span
	case DirectionFirst:
		s.state.Index = 0
	case DirectionLast:
		s.state.Index = max(0, n-1)
	case DirectionPageUp:
		s.state.Index = s.clampLocked(s.state.Index - max(1, s.state.ViewportHeight-1))
	case DirectionPageDown:
		s.state.Index = s.clampLocked(s.state.Index + max(1, s.state.ViewportHeight-1))
	}
	s.mu.Unlock()

	s.moved(old)
}

// Next moves forward, wrapping past the end to 0
func (s *Service) Next() { s.Navigate(DirectionNext) }

// Previous moves backward, wrapping before the start to the last item
func (s *Service) Previous() { s.Navigate(DirectionPrevious) }

// First moves to index 0
func (s *Service) First() { s.Navigate(DirectionFirst) }

// Last moves to the final item
func (s *Service) Last() { s.Navigate(DirectionLast) }

// Select moves to index i. Out-of-range indices are ignored and reported
// as false.
func (s *Service) Select(i int) bool {
	s.mu.Lock()
	if i < 0 || i >= s.state.Count {
		s.mu.Unlock()
		return false
	}
	old := s.state.Index
	s.state.Index = i
	s.mu.Unlock()

	s.moved(old)
	return true
}

func (s *Service) moved(old int) {
	s.mu.Lock()
	index := s.state.Index
	changed := s.ensureVisibleLocked()
	scrollFn := s.scrollFn
	s.mu.Unlock()

	s.publishViewport(changed)
	if old == index {
		return
	}
	s.bus.Publish(domain.CursorMovedEvent{OldIndex: old, NewIndex: index})
	s.scroll(scrollFn, index)
}

// scroll is cosmetic; a failing renderer must not break navigation
func (s *Service) scroll(fn func(int), index int) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.V(1).Info("scroll into view failed", "index", index, "panic", r)
		}
	}()
	fn(index)
}

func (s *Service) clampLocked(index int) int {
	if index < 0 {
		return 0
	}
	if index > s.state.Count-1 {
		return max(0, s.state.Count-1)
	}
	return index
}

func (s *Service) ensureVisibleLocked() bool {
	if s.state.Index < s.state.ViewportOffset {
		s.state.ViewportOffset = s.state.Index
		return true
	}
	if s.state.Index >= s.state.ViewportOffset+s.state.ViewportHeight {
		s.state.ViewportOffset = s.state.Index - s.state.ViewportHeight + 1
		return true
	}
	return false
}

func (s *Service) publishViewport(changed bool) {
	if !changed {
		return
	}
	s.mu.Lock()
	ev := domain.ViewportChangedEvent{Offset: s.state.ViewportOffset, Height: s.state.ViewportHeight}
	s.mu.Unlock()
	s.bus.Publish(ev)
}
