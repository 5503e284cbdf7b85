package viewport

import (
	"time"

	"github.com/sirupsen/logrus"

	"picbrowse/internal/domain"
	"picbrowse/internal/logic"
	"picbrowse/internal/ui/layout"
	"picbrowse/internal/ui/scheduler"
	"picbrowse/internal/ui/services/events"
)

// Service reports which entries near the visible window still lack thumbnails
type Service struct {
	state  *State
	bus    events.EventBus
	store  logic.EntryStore
	layout layout.LayoutQuery
	tasks  *scheduler.Tasks
}

// NewService creates a new viewport tracker
func NewService(bus events.EventBus, store logic.EntryStore, lq layout.LayoutQuery, tasks *scheduler.Tasks) *Service {
	return &Service{
		state: &State{
			Lookahead: 200,
			Delay:     200 * time.Millisecond,
		},
		bus:    bus,
		store:  store,
		layout: lq,
		tasks:  tasks,
	}
}

// SetState replaces the tracker settings
func (s *Service) SetState(st State) {
	*s.state = st
}

func taskKey(pane domain.Pane) scheduler.Key {
	return scheduler.Key("viewport:" + pane.String())
}

// Schedule re-evaluates a surface after the debounce delay; newer calls replace pending ones
func (s *Service) Schedule(pane domain.Pane) {
	s.tasks.Schedule(taskKey(pane), s.state.Delay, func() {
		s.Evaluate(pane)
	})
}

// ScheduleAll re-evaluates both surfaces
func (s *Service) ScheduleAll() {
	s.Schedule(domain.PaneItems)
	s.Schedule(domain.PaneFolders)
}

// Evaluate collects the matching entries lying fully inside the window
// extended by the lookahead whose thumbnails are not loaded, requests them
// in document order and marks them pending.
func (s *Service) Evaluate(pane domain.Pane) []string {
	vp := s.layout.Viewport(pane)
	band := layout.Viewport{Top: vp.Top, Height: vp.Height + s.state.Lookahead}
	kind := pane.Kind()

	var paths []string
	var picked []*domain.Entry
	for _, e := range s.store.Entries(kind) {
		if !e.MatchesSearch || e.ThumbState == domain.ThumbLoaded {
			continue
		}
		if kind == domain.KindFolder && (e.Path == "" || e.IsCommand()) {
			continue
		}
		if !s.layout.IsFullyVisible(e, band) {
			continue
		}
		paths = append(paths, e.Path)
		picked = append(picked, e)
	}

	if len(paths) == 0 {
		return nil
	}
	for _, e := range picked {
		e.ThumbState = domain.ThumbPending
	}

	logrus.WithFields(logrus.Fields{"kind": kind.String(), "count": len(paths)}).Debug("viewport: priority request")
	s.bus.Publish(PriorityRequestedEvent{Kind: kind, Paths: paths})
	return paths
}
