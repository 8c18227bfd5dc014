package logic

import "spotlight/internal/domain"

// ItemStore provides access to the host-owned item collection
type ItemStore interface {
	// All returns a snapshot of the items in host order
	All() []domain.Item
	Get(id string) (domain.Item, bool)
	Replace(items []domain.Item)
	Add(item domain.Item)
	Remove(id string) bool
	Len() int
}
