package domain

import "strings"

// DefaultGroupLabel is the bucket used for items without a group
const DefaultGroupLabel = "Other"

// Item represents a selectable entry in the palette
type Item struct {
	ID          string
	Label       string
	Description string   // optional
	Icon        string   // raw icon: vector markup or literal text/emoji
	Shortcut    string   // display-only shortcut hint
	Group       string   // group label ("" falls back to DefaultGroupLabel)
	Keywords    []string // extra match targets
	Action      func()   // invoked on execute; takes precedence over Href
	Href        string   // navigation target when Action is nil
	Disabled    bool
}

// GroupLabel returns the bucket label for the item
func (i Item) GroupLabel() string {
	if i.Group == "" {
		return DefaultGroupLabel
	}
	return i.Group
}

// IconKind classifies raw icon content
type IconKind int

const (
	IconNone IconKind = iota
	IconText
	IconMarkup
)

// ClassifyIcon reports whether raw icon content looks like vector markup.
// Sanitising markup is left to an IconSanitizer.
func ClassifyIcon(raw string) IconKind {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return IconNone
	}
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "<svg") || (strings.HasPrefix(lower, "<?xml") && strings.Contains(lower, "<svg")) {
		return IconMarkup
	}
	return IconText
}

// IconSanitizer turns raw vector markup into something safe to display
type IconSanitizer interface {
	Sanitize(markup string) (string, error)
}
