package spotlight

import (
	"sync"

	"spotlight/internal/config"
)

// Key is a navigation key delivered by the input surface
type Key int

const (
	KeyNext Key = iota
	KeyPrevious
	KeyFirst
	KeyLast
	KeyPageUp
	KeyPageDown
	KeyExecute
	KeyEscape
)

func (k Key) String() string {
	switch k {
	case KeyNext:
		return "next"
	case KeyPrevious:
		return "previous"
	case KeyFirst:
		return "first"
	case KeyLast:
		return "last"
	case KeyPageUp:
		return "pageup"
	case KeyPageDown:
		return "pagedown"
	case KeyExecute:
		return "execute"
	case KeyEscape:
		return "escape"
	}
	return "unknown"
}

// Subscription is a registration that can be removed
type Subscription interface {
	Unsubscribe()
}

// KeySource delivers the global open/close chord
type KeySource interface {
	Register(hotkey config.HotkeyConfig, fn func()) Subscription
}

// SubscriptionFunc adapts a function to Subscription. Unsubscribe runs it at
// most once.
func SubscriptionFunc(fn func()) Subscription {
	return &onceSubscription{fn: fn}
}

type onceSubscription struct {
	once sync.Once
	fn   func()
}

func (s *onceSubscription) Unsubscribe() {
	s.once.Do(func() {
		if s.fn != nil {
			s.fn()
		}
	})
}

// HotkeyRegistry is a KeySource that dispatches chords by name
type HotkeyRegistry struct {
	mu       sync.RWMutex
	handlers map[string]map[uint64]func()
	nextID   uint64
}

// NewHotkeyRegistry creates an empty registry
func NewHotkeyRegistry() *HotkeyRegistry {
	return &HotkeyRegistry{handlers: map[string]map[uint64]func(){}}
}

// Register binds fn to hotkey until the subscription is removed
func (r *HotkeyRegistry) Register(hotkey config.HotkeyConfig, fn func()) Subscription {
	chord := hotkey.String()

	r.mu.Lock()
	r.nextID++
	id := r.nextID
	if r.handlers[chord] == nil {
		r.handlers[chord] = map[uint64]func(){}
	}
	r.handlers[chord][id] = fn
	r.mu.Unlock()

	return SubscriptionFunc(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.handlers[chord], id)
		if len(r.handlers[chord]) == 0 {
			delete(r.handlers, chord)
		}
	})
}

// Dispatch runs the handlers bound to chord and reports whether any ran
func (r *HotkeyRegistry) Dispatch(chord string) bool {
	r.mu.RLock()
	var fns []func()
	for _, fn := range r.handlers[chord] {
		fns = append(fns, fn)
	}
	r.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns) > 0
}

// Len returns the number of live registrations
func (r *HotkeyRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, hs := range r.handlers {
		n += len(hs)
	}
	return n
}
