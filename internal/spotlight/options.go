package spotlight

import (
	"github.com/go-logr/logr"

	"spotlight/internal/domain"
	"spotlight/internal/eventbus"
	"spotlight/internal/logic"
	"spotlight/internal/ui/services/execution"
	"spotlight/internal/ui/services/search"
)

// Hooks are fire-and-forget host notifications
type Hooks struct {
	OnSearch func(query string)
	OnSelect func(item domain.Item)
	OnOpen   func()
	OnClose  func()
}

type options struct {
	host      Host
	keys      KeySource
	navigator execution.Navigator
	scheduler search.Scheduler
	bus       eventbus.EventBus
	store     logic.ItemStore
	items     []domain.Item
	hooks     Hooks
	scroller  func(index int)
	log       logr.Logger
}

// Option configures a Spotlight
type Option func(*options)

// WithHost sets the lifecycle host. Defaults to a MemoryHost.
func WithHost(h Host) Option {
	return func(o *options) { o.host = h }
}

// WithKeySource registers the open/close hotkey with ks
func WithKeySource(ks KeySource) Option {
	return func(o *options) { o.keys = ks }
}

// WithNavigator sets where same-origin hrefs are sent
func WithNavigator(n execution.Navigator) Option {
	return func(o *options) { o.navigator = n }
}

// WithScheduler replaces the debounce timer source
func WithScheduler(s search.Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// WithEventBus publishes domain events on bus. The caller keeps ownership.
func WithEventBus(bus eventbus.EventBus) Option {
	return func(o *options) { o.bus = bus }
}

// WithItemStore uses store as the item collection
func WithItemStore(store logic.ItemStore) Option {
	return func(o *options) { o.store = store }
}

// WithItems seeds the item collection
func WithItems(items ...domain.Item) Option {
	return func(o *options) { o.items = append(o.items, items...) }
}

// WithHooks sets the host notifications
func WithHooks(h Hooks) Option {
	return func(o *options) { o.hooks = h }
}

// WithScroller sets the hook that brings the active row into view
func WithScroller(fn func(index int)) Option {
	return func(o *options) { o.scroller = fn }
}

// WithLogger sets the logger
func WithLogger(log logr.Logger) Option {
	return func(o *options) { o.log = log }
}
