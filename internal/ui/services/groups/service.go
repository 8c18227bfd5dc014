package groups

import (
	"sync"

	"spotlight/internal/domain"
)

// Service derives the grouped presentation of a result set. It never
// reorders or filters the flat results the cursor points into.
type Service struct {
	mu    sync.RWMutex
	state *State
}

// NewService creates a new groups service
func NewService(showGroups bool) *Service {
	return &Service{
		state: &State{
			ShowGroups: showGroups,
			flatByID:   map[string]int{},
		},
	}
}

// SetShowGroups toggles labelled bucketing
func (s *Service) SetShowGroups(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ShowGroups = show
}

// ShowGroups reports whether bucketing is on
func (s *Service) ShowGroups() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ShowGroups
}

// Rebuild recomputes the buckets for results
func (s *Service) Rebuild(results []domain.Item) []Bucket {
	s.mu.Lock()
	defer s.mu.Unlock()

	flat := make(map[string]int, len(results))
	for i, item := range results {
		if _, seen := flat[item.ID]; !seen {
			flat[item.ID] = i
		}
	}
	s.state.flatByID = flat

	if s.state.ShowGroups {
		s.state.Buckets = Bucketize(results)
	} else {
		s.state.Buckets = single(results)
	}
	return s.copyBuckets()
}

// Buckets returns a copy of the current buckets
func (s *Service) Buckets() []Bucket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyBuckets()
}

func (s *Service) copyBuckets() []Bucket {
	out := make([]Bucket, len(s.state.Buckets))
	for i, b := range s.state.Buckets {
		out[i] = Bucket{Label: b.Label, Entries: append([]Entry(nil), b.Entries...)}
	}
	return out
}

// FlatIndex resolves an item id to its position in the flat result set
func (s *Service) FlatIndex(id string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.state.flatByID[id]
	return i, ok
}

// Bucketize groups results by label, keeping each group's first-seen order
// and each item's relative order.
func Bucketize(results []domain.Item) []Bucket {
	var buckets []Bucket
	index := map[string]int{}
	for i, item := range results {
		label := item.GroupLabel()
		b, ok := index[label]
		if !ok {
			b = len(buckets)
			index[label] = b
			buckets = append(buckets, Bucket{Label: label})
		}
		buckets[b].Entries = append(buckets[b].Entries, Entry{Item: item, FlatIndex: i})
	}
	return buckets
}

func single(results []domain.Item) []Bucket {
	if len(results) == 0 {
		return nil
	}
	b := Bucket{Entries: make([]Entry, len(results))}
	for i, item := range results {
		b.Entries[i] = Entry{Item: item, FlatIndex: i}
	}
	return []Bucket{b}
}
