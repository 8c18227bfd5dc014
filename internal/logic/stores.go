package logic

import (
	"sync"

	"spotlight/internal/domain"
)

// MemoryItemStore is an in-memory, order-preserving ItemStore
type MemoryItemStore struct {
	mu    sync.RWMutex
	items []domain.Item
}

// NewMemoryItemStore creates a store seeded with items
func NewMemoryItemStore(items ...domain.Item) *MemoryItemStore {
	s := &MemoryItemStore{}
	s.Replace(items)
	return s
}

func (s *MemoryItemStore) All() []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent external modification
	result := make([]domain.Item, len(s.items))
	copy(result, s.items)
	return result
}

func (s *MemoryItemStore) Get(id string) (domain.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.Item{}, false
}

// Replace swaps the whole collection
func (s *MemoryItemStore) Replace(items []domain.Item) {
	next := make([]domain.Item, len(items))
	copy(next, items)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = next
}

// Add appends item, or replaces in place an item with the same ID
func (s *MemoryItemStore) Add(item domain.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i] = item
			return
		}
	}
	s.items = append(s.items, item)
}

func (s *MemoryItemStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *MemoryItemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
