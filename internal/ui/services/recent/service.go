package recent

import (
	"sync"

	"spotlight/internal/domain"
	"spotlight/internal/eventbus"
)

// Service tracks executed item ids in most-recently-used order. The list
// outlives palette sessions.
type Service struct {
	mu      sync.Mutex
	state   *State
	bus     eventbus.EventBus
	itemsFn func(id string) (domain.Item, bool) // live item lookup
}

// NewService creates a tracker holding at most limit ids
func NewService(bus eventbus.EventBus, limit int) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	if limit < 0 {
		limit = 0
	}
	return &Service{
		state: &State{
			IDs:   make([]string, 0, limit),
			Limit: limit,
		},
		bus: bus,
	}
}

// SetLookupFunction sets the function resolving ids to live items
func (s *Service) SetLookupFunction(fn func(id string) (domain.Item, bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemsFn = fn
}

// Record moves id to the front, dropping any earlier occurrence and
// anything past the limit.
func (s *Service) Record(id string) {
	s.mu.Lock()
	ids := s.state.IDs
	for i, existing := range ids {
		if existing == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	ids = append([]string{id}, ids...)
	if len(ids) > s.state.Limit {
		ids = ids[:s.state.Limit]
	}
	s.state.IDs = ids
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.bus.Publish(domain.RecentChangedEvent{IDs: snapshot})
}

// Clear empties the list
func (s *Service) Clear() {
	s.mu.Lock()
	s.state.IDs = s.state.IDs[:0]
	s.mu.Unlock()

	s.bus.Publish(domain.RecentChangedEvent{IDs: []string{}})
}

// IDs returns the recent ids, most recent first
func (s *Service) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Items maps the recent ids to live items. Ids whose item is gone are
// skipped.
func (s *Service) Items() []domain.Item {
	s.mu.Lock()
	ids := s.snapshotLocked()
	lookup := s.itemsFn
	s.mu.Unlock()

	if lookup == nil {
		return nil
	}
	items := make([]domain.Item, 0, len(ids))
	for _, id := range ids {
		if item, ok := lookup(id); ok {
			items = append(items, item)
		}
	}
	return items
}

// Limit returns the maximum list length
func (s *Service) Limit() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Limit
}

// SetLimit changes the maximum length, truncating the oldest entries
func (s *Service) SetLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	s.mu.Lock()
	s.state.Limit = limit
	truncated := len(s.state.IDs) > limit
	if truncated {
		s.state.IDs = s.state.IDs[:limit]
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if truncated {
		s.bus.Publish(domain.RecentChangedEvent{IDs: snapshot})
	}
}

// Len returns the number of recent ids
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.IDs)
}

func (s *Service) snapshotLocked() []string {
	out := make([]string, len(s.state.IDs))
	copy(out, s.state.IDs)
	return out
}
