package coordinator

import (
	"time"

	"github.com/sirupsen/logrus"

	"picbrowse/internal/config"
	"picbrowse/internal/domain"
	"picbrowse/internal/logic"
	"picbrowse/internal/ui/layout"
	"picbrowse/internal/ui/scheduler"
	"picbrowse/internal/ui/services/events"
	"picbrowse/internal/ui/services/groups"
	"picbrowse/internal/ui/services/navigation"
	"picbrowse/internal/ui/services/query"
	"picbrowse/internal/ui/services/search"
	"picbrowse/internal/ui/services/selection"
	"picbrowse/internal/ui/services/viewport"
)

// Notifier receives the notifications meant for the host
type Notifier interface {
	Publish(event domain.DomainEvent)
}

// Options tunes sizes and delays of a session
type Options struct {
	ThumbHeight          int
	FolderMargin         int
	Lookahead            int
	ScrollSettle         time.Duration
	VisibleEdge          time.Duration
	VisibleEdgeImmediate time.Duration
	InsertRetry          time.Duration
	InsertRetryLimit     int
	ShowCaptions         bool
}

// DefaultOptions mirrors the configuration defaults
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultConfig())
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ThumbHeight:          cfg.ThumbHeight,
		FolderMargin:         cfg.FolderMargin,
		Lookahead:            cfg.PriorityLookahead,
		ScrollSettle:         cfg.ScrollSettle(),
		VisibleEdge:          cfg.VisibleEdge(),
		VisibleEdgeImmediate: cfg.VisibleEdgeImmediate(),
		InsertRetry:          cfg.InsertRetry(),
		InsertRetryLimit:     cfg.InsertRetryLimit,
		ShowCaptions:         cfg.ShowCaptions,
	}
}

// BrowserSession is the browser state aggregate: registry, search, selection,
// viewport tracking and the inbound command surface. It is not safe for
// concurrent use; every call must come from one loop.
type BrowserSession struct {
	// Services
	Navigation *navigation.Service
	Query      *query.Service
	Selection  *selection.Service
	Search     *search.Service
	Groups     *groups.Service
	Viewport   *viewport.Service

	// Dependencies
	bus      events.EventBus
	store    logic.EntryStore
	layout   layout.LayoutQuery
	tasks    *scheduler.Tasks
	notifier Notifier
	opts     Options

	// host-reported state
	folder       string
	mode         domain.Mode
	submode      domain.Submode
	crumbs       []domain.Crumb
	totals       domain.Totals
	status       Status
	showCaptions bool
	retries      map[string]int
}

// NewBrowserSession creates a session with all services wired together
func NewBrowserSession(store logic.EntryStore, lq layout.LayoutQuery, tasks *scheduler.Tasks, notifier Notifier, opts Options) *BrowserSession {
	bus := events.NewBus()
	q := query.NewService(store)
	groupsSvc := groups.NewService(bus, store)
	sel := selection.NewService(bus, q)

	c := &BrowserSession{
		Navigation:   navigation.NewService(bus, lq, tasks, q, sel),
		Query:        q,
		Selection:    sel,
		Search:       search.NewService(bus, store, groupsSvc),
		Groups:       groupsSvc,
		Viewport:     viewport.NewService(bus, store, lq, tasks),
		bus:          bus,
		store:        store,
		layout:       lq,
		tasks:        tasks,
		notifier:     notifier,
		opts:         opts,
		mode:         domain.ModeImage,
		submode:      domain.SubmodeBrowse,
		showCaptions: opts.ShowCaptions,
		retries:      make(map[string]int),
	}

	c.wireServices()
	c.subscribeToEvents()

	return c
}

// wireServices connects services with their dependencies
func (c *BrowserSession) wireServices() {
	c.Navigation.SetState(navigation.State{
		ThumbHeight:      c.opts.ThumbHeight,
		FolderMargin:     c.opts.FolderMargin,
		VisibleEdgeDelay: c.opts.VisibleEdge,
		ImmediateDelay:   c.opts.VisibleEdgeImmediate,
		SettleDelay:      c.opts.ScrollSettle,
	})
	c.Viewport.SetState(viewport.State{
		Lookahead: c.opts.Lookahead,
		Delay:     c.opts.ScrollSettle,
	})

	c.Selection.SetScrollFunction(func(e *domain.Entry) {
		c.Navigation.ScrollIntoView(e)
	})

	if ts, ok := c.layout.(layout.ThumbHeightSetter); ok {
		ts.SetThumbHeight(c.opts.ThumbHeight)
	}
}

// subscribeToEvents forwards service events to the host and between services
func (c *BrowserSession) subscribeToEvents() {
	c.bus.Subscribe(events.TypeOf(selection.SelectionChangedEvent{}), func(e interface{}) {
		ev := e.(selection.SelectionChangedEvent)
		c.showSelectedInfo()
		c.notifier.Publish(domain.SelectionChangedEvent{Path: ev.Path})
	})

	c.bus.Subscribe(events.TypeOf(search.SearchCompletedEvent{}), func(e interface{}) {
		ev := e.(search.SearchCompletedEvent)
		c.notifier.Publish(domain.SearchChangedEvent{Query: ev.Query})
	})

	c.bus.Subscribe(events.TypeOf(viewport.PriorityRequestedEvent{}), func(e interface{}) {
		ev := e.(viewport.PriorityRequestedEvent)
		c.notifier.Publish(domain.PriorityRequestedEvent{Kind: ev.Kind, Paths: ev.Paths})
	})

	c.bus.Subscribe(events.TypeOf(navigation.ScrolledEvent{}), func(e interface{}) {
		c.Viewport.Schedule(e.(navigation.ScrolledEvent).Pane)
	})

	c.bus.Subscribe(events.TypeOf(groups.GroupVisibilityChangedEvent{}), func(e interface{}) {
		ev := e.(groups.GroupVisibilityChangedEvent)
		logrus.WithFields(logrus.Fields{"kind": ev.Kind.String(), "group": ev.Label, "visible": ev.Visible}).Debug("session: group visibility")
	})
}

// reflow tells caching layouts that the registry changed
func (c *BrowserSession) reflow() {
	if r, ok := c.layout.(layout.Reflower); ok {
		r.Reflow()
	}
}

// repair keeps the selection pointing at a navigable entry
func (c *BrowserSession) repair(replacement func() *domain.Entry) {
	c.Selection.Repair(replacement)
}

func (c *BrowserSession) firstMatch() *domain.Entry {
	return c.Query.FirstPreferring(c.Selection.ActivePane())
}
