package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventPaletteOpened     EventType = "PaletteOpened"
	EventPaletteClosed     EventType = "PaletteClosed"
	EventSearchStarted     EventType = "SearchStarted"
	EventSearchCompleted   EventType = "SearchCompleted"
	EventSearchDiscarded   EventType = "SearchDiscarded"
	EventCursorMoved       EventType = "CursorMoved"
	EventViewportChanged   EventType = "ViewportChanged"
	EventItemSelected      EventType = "ItemSelected"
	EventNavigationRefused EventType = "NavigationRefused"
	EventRecentChanged     EventType = "RecentChanged"
	EventItemsChanged      EventType = "ItemsChanged"
	EventConfigLoaded      EventType = "ConfigLoaded"
	EventConfigSaved       EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// PaletteOpenedEvent is emitted when the palette becomes visible
type PaletteOpenedEvent struct{}

func (e PaletteOpenedEvent) Type() EventType { return EventPaletteOpened }

// PaletteClosedEvent is emitted when the palette is hidden
type PaletteClosedEvent struct{}

func (e PaletteClosedEvent) Type() EventType { return EventPaletteClosed }

// SearchStartedEvent is emitted when a search execution is issued
type SearchStartedEvent struct {
	Query string
	Token uint64
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchCompletedEvent is emitted when a search commits its results
type SearchCompletedEvent struct {
	Query       string
	Token       uint64
	ResultCount int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchDiscardedEvent is emitted when a stale search completion is dropped
type SearchDiscardedEvent struct {
	Query  string
	Token  uint64
	Latest uint64
}

func (e SearchDiscardedEvent) Type() EventType { return EventSearchDiscarded }

// CursorMovedEvent is emitted when the selection index changes
type CursorMovedEvent struct {
	OldIndex int
	NewIndex int
}

func (e CursorMovedEvent) Type() EventType { return EventCursorMoved }

// ItemSelectedEvent is emitted when an item is executed
type ItemSelectedEvent struct {
	ItemID string
}

func (e ItemSelectedEvent) Type() EventType { return EventItemSelected }

// NavigationRefusedEvent is emitted when a cross-origin href is not followed
type NavigationRefusedEvent struct {
	ItemID string
	Href   string
	Origin string
}

func (e NavigationRefusedEvent) Type() EventType { return EventNavigationRefused }

// RecentChangedEvent is emitted when the recent list is updated or cleared
type RecentChangedEvent struct {
	IDs []string
}

func (e RecentChangedEvent) Type() EventType { return EventRecentChanged }

// ItemsChangedEvent is emitted when the host replaces, adds or removes items
type ItemsChangedEvent struct {
	Count int
}

func (e ItemsChangedEvent) Type() EventType { return EventItemsChanged }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ViewportChangedEvent is emitted when the visible window of results scrolls
type ViewportChangedEvent struct {
	Offset int
	Height int
}

func (e ViewportChangedEvent) Type() EventType { return EventViewportChanged }
