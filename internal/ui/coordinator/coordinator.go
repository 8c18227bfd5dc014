package coordinator

import (
	"github.com/go-logr/logr"

	"spotlight/internal/domain"
	"spotlight/internal/eventbus"
	"spotlight/internal/logic"
	"spotlight/internal/ui/services/execution"
	"spotlight/internal/ui/services/groups"
	"spotlight/internal/ui/services/recent"
	"spotlight/internal/ui/services/search"
	"spotlight/internal/ui/services/selection"
)

// Settings carries the values the services are built with
type Settings struct {
	Search        search.Options
	MatchMode     logic.MatchMode
	ShowGroups    bool
	Origin        string
	CloseOnSelect bool
}

// Coordinator manages all palette services and their interactions
type Coordinator struct {
	// Services
	Search    *search.Service
	Selection *selection.Service
	Groups    *groups.Service
	Recent    *recent.Service
	Execution *execution.Service

	// Dependencies
	bus   eventbus.EventBus
	items logic.ItemStore
	log   logr.Logger

	onCommit func(results []domain.Item)
}

// NewCoordinator creates a new coordinator with all services
func NewCoordinator(bus eventbus.EventBus, items logic.ItemStore, scheduler search.Scheduler, navigator execution.Navigator, settings Settings, log logr.Logger) *Coordinator {
	c := &Coordinator{
		Search:    search.NewService(bus, scheduler, log),
		Selection: selection.NewService(bus, log),
		Groups:    groups.NewService(settings.ShowGroups),
		Recent:    recent.NewService(bus, settings.Search.RecentLimit),
		Execution: execution.NewService(bus, navigator, log),
		bus:       bus,
		items:     items,
		log:       log,
	}

	c.Search.SetOptions(settings.Search)
	c.Search.SetMatchMode(settings.MatchMode)
	c.Execution.SetOrigin(settings.Origin)
	c.Execution.SetCloseOnSelect(settings.CloseOnSelect)

	// Wire up service dependencies
	c.wireServices()

	return c
}

// wireServices connects services with their dependencies
func (c *Coordinator) wireServices() {
	// Search reads the live collection and the recent ids
	c.Search.SetItemsFunction(c.items.All)
	c.Search.SetRecentFunction(c.Recent.IDs)

	// A committed result set resets the cursor and regroups
	c.Search.SetCommitFunction(func(results []domain.Item) {
		c.Selection.Reset(len(results))
		c.Groups.Rebuild(results)
		if c.onCommit != nil {
			c.onCommit(results)
		}
	})

	// A reset clears the derived state in step with the search session
	c.Search.SetResetFunction(func() {
		c.Selection.Reset(0)
		c.Groups.Rebuild(nil)
	})

	c.Recent.SetLookupFunction(c.items.Get)

	// Execution needs the item under the cursor and the recent tracker
	c.Execution.SetCurrentFunction(c.Current)
	c.Execution.SetRecordFunction(c.Recent.Record)
}

// SetCommitFunction sets a function called after every committed result set
func (c *Coordinator) SetCommitFunction(fn func(results []domain.Item)) {
	c.onCommit = fn
}

// Current returns the item under the cursor
func (c *Coordinator) Current() (domain.Item, bool) {
	results := c.Search.Results()
	i := c.Selection.Index()
	if i < 0 || i >= len(results) {
		return domain.Item{}, false
	}
	return results[i], true
}

// ResetSession drops the query, results and cursor
func (c *Coordinator) ResetSession() {
	c.Search.Reset()
}

// Regroup rebuilds buckets from the committed results
func (c *Coordinator) Regroup() []groups.Bucket {
	return c.Groups.Rebuild(c.Search.Results())
}

// SetRecentLimit updates both the tracker and the empty-query view
func (c *Coordinator) SetRecentLimit(limit int) {
	c.Recent.SetLimit(limit)
	opts := c.Search.Options()
	opts.RecentLimit = c.Recent.Limit()
	c.Search.SetOptions(opts)
}
