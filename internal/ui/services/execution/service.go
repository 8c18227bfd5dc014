package execution

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-logr/logr"

	"spotlight/internal/domain"
	"spotlight/internal/eventbus"
)

// Service executes the selected item: records it as recent, notifies the
// host, runs its action or follows its href, then optionally closes.
type Service struct {
	mu            sync.Mutex
	bus           eventbus.EventBus
	log           logr.Logger
	navigator     Navigator
	origin        string
	closeOnSelect bool

	currentFn func() (domain.Item, bool) // item under the cursor
	recordFn  func(id string)
	selectFn  func(item domain.Item) // host "item selected" hook
	closeFn   func()
}

// NewService creates a new execution service
func NewService(bus eventbus.EventBus, navigator Navigator, log logr.Logger) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &Service{
		bus:       bus,
		log:       log.WithName("execution"),
		navigator: navigator,
	}
}

// SetCurrentFunction sets the function returning the selected item
func (s *Service) SetCurrentFunction(fn func() (domain.Item, bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentFn = fn
}

// SetRecordFunction sets the function recording recent executions
func (s *Service) SetRecordFunction(fn func(id string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordFn = fn
}

// SetSelectFunction sets the host selection hook
func (s *Service) SetSelectFunction(fn func(item domain.Item)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectFn = fn
}

// SetCloseFunction sets the function that closes the palette
func (s *Service) SetCloseFunction(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeFn = fn
}

// SetOrigin sets the host origin hrefs are resolved against
func (s *Service) SetOrigin(origin string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.origin = origin
}

// SetCloseOnSelect controls whether execution closes the palette
func (s *Service) SetCloseOnSelect(close bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeOnSelect = close
}

// SetNavigator replaces the navigator
func (s *Service) SetNavigator(n Navigator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigator = n
}

// ExecuteSelected runs the item under the cursor
func (s *Service) ExecuteSelected() Result {
	s.mu.Lock()
	currentFn := s.currentFn
	s.mu.Unlock()

	if currentFn == nil {
		return Result{Outcome: OutcomeNoop}
	}
	item, ok := currentFn()
	if !ok {
		return Result{Outcome: OutcomeNoop}
	}
	return s.Execute(item)
}

// Execute runs item. Disabled items are a no-op.
func (s *Service) Execute(item domain.Item) Result {
	if item.Disabled {
		return Result{Outcome: OutcomeNoop, Item: item}
	}

	s.mu.Lock()
	recordFn, selectFn, closeFn := s.recordFn, s.selectFn, s.closeFn
	navigator, origin, closeOnSelect := s.navigator, s.origin, s.closeOnSelect
	s.mu.Unlock()

	if recordFn != nil {
		recordFn(item.ID)
	}
	s.bus.Publish(domain.ItemSelectedEvent{ItemID: item.ID})
	if selectFn != nil {
		s.guard("select hook", item.ID, func() { selectFn(item) })
	}

	result := Result{Outcome: OutcomeSelected, Item: item}
	switch {
	case item.Action != nil:
		s.guard("action", item.ID, item.Action)
		result.Outcome = OutcomeInvoked
	case item.Href != "":
		target, sameOrigin := Resolve(item.Href, origin)
		result.URL = target
		if sameOrigin {
			if navigator != nil {
				s.guard("navigate", item.ID, func() { navigator.Navigate(target) })
			}
			result.Outcome = OutcomeNavigated
		} else {
			s.log.Info("refusing cross-origin navigation", "warning", "cross-origin href", "item", item.ID, "href", item.Href, "origin", origin)
			s.bus.Publish(domain.NavigationRefusedEvent{ItemID: item.ID, Href: item.Href, Origin: origin})
			result.Outcome = OutcomeRefused
		}
	}

	if closeOnSelect && closeFn != nil {
		closeFn()
	}
	return result
}

// Resolve resolves href against origin. It reports the navigation target and
// whether following it stays on origin. An href that cannot be resolved is
// treated as relative and returned unchanged.
func Resolve(href, origin string) (string, bool) {
	base, err := url.Parse(origin)
	if err != nil {
		return href, true
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href, true
	}
	target := base.ResolveReference(ref)
	if !ref.IsAbs() && ref.Host == "" {
		return target.String(), true
	}
	return target.String(), sameOrigin(base, target)
}

func sameOrigin(a, b *url.URL) bool {
	return strings.EqualFold(a.Scheme, b.Scheme) &&
		strings.EqualFold(a.Hostname(), b.Hostname()) &&
		effectivePort(a) == effectivePort(b)
}

func effectivePort(u *url.URL) string {
	if p := u.Port(); p != "" {
		return p
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "ws":
		return "80"
	case "https", "wss":
		return "443"
	}
	return ""
}

// guard runs a host callback; a panicking callback is logged, not propagated
func (s *Service) guard(what, id string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error(fmt.Errorf("%v", r), what+" panicked", "item", id)
		}
	}()
	fn()
}
