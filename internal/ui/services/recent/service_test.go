package recent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"spotlight/internal/domain"
)

func TestRecordMovesToFrontWithoutDuplicates(t *testing.T) {
	s := NewService(nil, 5)
	s.Record("A")
	s.Record("B")
	s.Record("A")

	assert.Equal(t, []string{"A", "B"}, s.IDs())
}

func TestRecordEvictsOldest(t *testing.T) {
	s := NewService(nil, 2)
	s.Record("1")
	s.Record("2")
	s.Record("3")

	assert.Equal(t, []string{"3", "2"}, s.IDs())
}

func TestZeroLimitKeepsListEmpty(t *testing.T) {
	s := NewService(nil, 0)
	s.Record("1")

	assert.Empty(t, s.IDs())
	assert.Equal(t, 0, s.Len())
}

func TestClear(t *testing.T) {
	s := NewService(nil, 3)
	s.Record("1")
	s.Clear()
	assert.Empty(t, s.IDs())

	s.Record("2")
	assert.Equal(t, []string{"2"}, s.IDs())
}

func TestSetLimitTruncates(t *testing.T) {
	s := NewService(nil, 5)
	for _, id := range []string{"1", "2", "3", "4"} {
		s.Record(id)
	}
	s.SetLimit(2)

	assert.Equal(t, []string{"4", "3"}, s.IDs())
	assert.Equal(t, 2, s.Limit())
}

func TestItemsDropsMissing(t *testing.T) {
	live := map[string]domain.Item{
		"1": {ID: "1", Label: "Home"},
		"3": {ID: "3", Label: "Profile"},
	}
	s := NewService(nil, 5)
	s.SetLookupFunction(func(id string) (domain.Item, bool) {
		item, ok := live[id]
		return item, ok
	})
	s.Record("1")
	s.Record("2")
	s.Record("3")

	items := s.Items()
	assert.Len(t, items, 2)
	assert.Equal(t, "3", items[0].ID)
	assert.Equal(t, "1", items[1].ID)
}

func TestIDsReturnsCopy(t *testing.T) {
	s := NewService(nil, 3)
	s.Record("1")
	ids := s.IDs()
	ids[0] = "x"
	assert.Equal(t, []string{"1"}, s.IDs())
}
