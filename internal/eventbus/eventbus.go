package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/go-logr/logr"

	"spotlight/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventPaletteOpened     = domain.EventPaletteOpened
	EventPaletteClosed     = domain.EventPaletteClosed
	EventSearchStarted     = domain.EventSearchStarted
	EventSearchCompleted   = domain.EventSearchCompleted
	EventSearchDiscarded   = domain.EventSearchDiscarded
	EventCursorMoved       = domain.EventCursorMoved
	EventViewportChanged   = domain.EventViewportChanged
	EventItemSelected      = domain.EventItemSelected
	EventNavigationRefused = domain.EventNavigationRefused
	EventRecentChanged     = domain.EventRecentChanged
	EventItemsChanged      = domain.EventItemsChanged
	EventConfigLoaded      = domain.EventConfigLoaded
	EventConfigSaved       = domain.EventConfigSaved
)

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

// NullBus drops every event
type NullBus struct{}

func (NullBus) Publish(DomainEvent) {}

func (NullBus) Subscribe(EventType, EventHandler) func() { return func() {} }

type subscription struct {
	id      uint64
	handler EventHandler
}

// Bus is the asynchronous EventBus implementation. Events are delivered in
// publish order on a single dispatcher goroutine.
type Bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
	log       logr.Logger
}

// New creates a new event bus and starts its dispatcher
func New(log logr.Logger) *Bus {
	b := &Bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
		log:       log.WithName("eventbus"),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for all subscribers. Events published after Close
// or while the queue is full are dropped.
func (b *Bus) Publish(event DomainEvent) {
	select {
	case <-b.quit:
		return
	default:
	}

	b.log.V(1).Info("publishing event", "type", event.Type())

	select {
	case b.eventChan <- event:
	default:
		b.log.Info("event bus channel full, dropping event", "type", event.Type())
	}
}

// Subscribe registers handler for eventType and returns an unsubscribe
// function that is safe to call more than once.
func (b *Bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher after delivering already queued events
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

func (b *Bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.deliver(event)
		case <-b.quit:
			for {
				select {
				case event := <-b.eventChan:
					b.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (b *Bus) deliver(event DomainEvent) {
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, s := range subs {
		b.call(s.handler, event)
	}
}

func (b *Bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Info("event handler panic", "type", event.Type(), "panic", r, "stack", string(debug.Stack()))
		}
	}()
	h(event)
}
