package groups

import "spotlight/internal/domain"

// Entry is one result inside a bucket, carrying its flat result index
type Entry struct {
	Item      domain.Item
	FlatIndex int
}

// Bucket is a labelled run of results. Label is empty when grouping is off.
type Bucket struct {
	Label   string
	Entries []Entry
}

// State holds the derived grouping of the current result set
type State struct {
	ShowGroups bool
	Buckets    []Bucket
	flatByID   map[string]int
}
