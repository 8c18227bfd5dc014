package logic

import (
	"strings"

	"spotlight/internal/domain"
)

// MatchMode selects how a query is compared against item fields
type MatchMode int

const (
	// MatchSubstring requires the query to appear contiguously
	MatchSubstring MatchMode = iota
	// MatchSubsequence requires query runes to appear in order, gaps allowed
	MatchSubsequence
)

func (m MatchMode) String() string {
	if m == MatchSubsequence {
		return "fuzzy"
	}
	return "substring"
}

// Matcher decides whether a single item matches a query. It never scores;
// callers keep items in their original order.
type Matcher struct {
	mode MatchMode
}

// NewMatcher creates a matcher for the given mode
func NewMatcher(mode MatchMode) *Matcher {
	return &Matcher{mode: mode}
}

// Mode returns the match mode
func (m *Matcher) Mode() MatchMode {
	return m.mode
}

// NormalizeQuery case-folds and trims a raw query
func NormalizeQuery(raw string) string {
	return strings.TrimSpace(strings.ToLower(raw))
}

// Matches reports whether item matches an already normalized query.
// Disabled items never match.
func (m *Matcher) Matches(item domain.Item, query string) bool {
	if item.Disabled {
		return false
	}
	if query == "" {
		return true
	}

	if m.matchField(item.Label, query) {
		return true
	}
	if item.Description != "" && m.matchField(item.Description, query) {
		return true
	}
	for _, kw := range item.Keywords {
		if m.matchField(kw, query) {
			return true
		}
	}
	return false
}

// Filter returns the items matching query in their original order, keeping
// at most limit of them (limit <= 0 means unbounded).
func (m *Matcher) Filter(items []domain.Item, query string, limit int) []domain.Item {
	results := make([]domain.Item, 0)
	for _, item := range items {
		if limit > 0 && len(results) >= limit {
			break
		}
		if m.Matches(item, query) {
			results = append(results, item)
		}
	}
	return results
}

func (m *Matcher) matchField(field, query string) bool {
	target := strings.ToLower(field)
	if m.mode == MatchSubsequence {
		return IsSubsequence(query, target)
	}
	return strings.Contains(target, query)
}

// IsSubsequence reports whether every rune of query appears in target in
// the same relative order.
func IsSubsequence(query, target string) bool {
	q := []rune(query)
	if len(q) == 0 {
		return true
	}
	qi := 0
	for _, r := range target {
		if r == q[qi] {
			qi++
			if qi == len(q) {
				return true
			}
		}
	}
	return false
}
