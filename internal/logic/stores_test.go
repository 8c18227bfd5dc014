package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spotlight/internal/domain"
)

func TestMemoryItemStoreKeepsHostOrder(t *testing.T) {
	s := NewMemoryItemStore(
		domain.Item{ID: "1", Label: "Home"},
		domain.Item{ID: "2", Label: "Settings"},
	)
	s.Add(domain.Item{ID: "3", Label: "Profile"})

	assert.Equal(t, []string{"1", "2", "3"}, ids(s.All()))
	assert.Equal(t, 3, s.Len())
}

func TestMemoryItemStoreAddReplacesSameID(t *testing.T) {
	s := NewMemoryItemStore(domain.Item{ID: "1", Label: "Home"}, domain.Item{ID: "2", Label: "Settings"})
	s.Add(domain.Item{ID: "1", Label: "Dashboard"})

	got, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "Dashboard", got.Label)
	assert.Equal(t, []string{"1", "2"}, ids(s.All()))
}

func TestMemoryItemStoreRemove(t *testing.T) {
	s := NewMemoryItemStore(domain.Item{ID: "1"}, domain.Item{ID: "2"}, domain.Item{ID: "3"})

	assert.True(t, s.Remove("2"))
	assert.False(t, s.Remove("2"))
	assert.Equal(t, []string{"1", "3"}, ids(s.All()))

	_, ok := s.Get("2")
	assert.False(t, ok)
}

func TestMemoryItemStoreSnapshotsAreIsolated(t *testing.T) {
	seed := []domain.Item{{ID: "1", Label: "Home"}}
	s := NewMemoryItemStore(seed...)
	seed[0].Label = "changed"

	snap := s.All()
	snap[0].Label = "mutated"

	got, _ := s.Get("1")
	assert.Equal(t, "Home", got.Label)
}
