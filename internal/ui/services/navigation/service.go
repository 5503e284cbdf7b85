package navigation

import (
	"time"

	"github.com/sirupsen/logrus"

	"picbrowse/internal/domain"
	"picbrowse/internal/ui/layout"
	uilogic "picbrowse/internal/ui/logic"
	"picbrowse/internal/ui/scheduler"
	"picbrowse/internal/ui/services/events"
	"picbrowse/internal/ui/services/query"
	"picbrowse/internal/ui/services/selection"
)

const (
	// slack allowed around the viewport when looking for visible entries
	visibleSlack = 5

	keyVisibleEdge scheduler.Key = "visible-edge"
	keySettle      scheduler.Key = "settle-scroll"
)

// Service handles keyboard navigation over the laid out entries
type Service struct {
	state     *State
	bus       events.EventBus
	layout    layout.LayoutQuery
	tasks     *scheduler.Tasks
	query     *query.Service
	selection *selection.Service
}

// NewService creates a new navigation service
func NewService(bus events.EventBus, lq layout.LayoutQuery, tasks *scheduler.Tasks, q *query.Service, sel *selection.Service) *Service {
	return &Service{
		state: &State{
			ThumbHeight:      120,
			FolderMargin:     40,
			VisibleEdgeDelay: 100 * time.Millisecond,
			ImmediateDelay:   10 * time.Millisecond,
			SettleDelay:      200 * time.Millisecond,
		},
		bus:       bus,
		layout:    lq,
		tasks:     tasks,
		query:     q,
		selection: sel,
	}
}

// SetState replaces sizes and delays
func (s *Service) SetState(st State) {
	*s.state = st
}

func (s *Service) SetThumbHeight(px int) {
	if px > 0 {
		s.state.ThumbHeight = px
	}
}

func (s *Service) ThumbHeight() int {
	return s.state.ThumbHeight
}

// Navigate handles navigation in a direction
func (s *Service) Navigate(direction Direction) {
	switch direction {
	case DirectionUp:
		s.moveVertical(true)
	case DirectionDown:
		s.moveVertical(false)
	case DirectionLeft:
		s.moveLateral(-1)
	case DirectionRight:
		s.moveLateral(1)
	case DirectionHome:
		s.jumpToEdge(true)
	case DirectionEnd:
		s.jumpToEdge(false)
	case DirectionPageUp:
		s.page(true)
	case DirectionPageDown:
		s.page(false)
	}
}

// ScrollIntoView scrolls the entry's surface so the entry sits comfortably inside it
func (s *Service) ScrollIntoView(e *domain.Entry) {
	r, ok := s.layout.PositionOf(e)
	if !ok {
		return
	}
	pane := e.Pane()
	margin := s.state.ThumbHeight
	if pane == domain.PaneFolders {
		margin = s.state.FolderMargin
	}

	target, move := uilogic.ScrollTarget(r.Y, s.layout.Viewport(pane), margin)
	if !move {
		return
	}
	s.scrollTo(pane, target)
}

// ScheduleSettle re-scrolls the selection into view once the layout settled
func (s *Service) ScheduleSettle() {
	s.tasks.Schedule(keySettle, s.state.SettleDelay, func() {
		if e := s.selection.Current(); e != nil {
			s.ScrollIntoView(e)
		}
	})
}

// JumpToVisibleEdge selects the first or last entry fully visible on screen
// after a short delay; a newer request replaces a pending one. With a
// restricted pane only that pane is searched, otherwise the selection's pane
// first and then any pane. The view does not scroll.
func (s *Service) JumpToVisibleEdge(first bool, restrict *domain.Pane, immediate bool) {
	delay := s.state.VisibleEdgeDelay
	if immediate {
		delay = s.state.ImmediateDelay
	}
	var only *domain.Pane
	if restrict != nil {
		p := *restrict
		only = &p
	}
	s.tasks.Schedule(keyVisibleEdge, delay, func() {
		s.selectVisibleEdge(first, only)
	})
}

func (s *Service) selectVisibleEdge(first bool, only *domain.Pane) {
	panes := []domain.Pane{s.selection.ActivePane()}
	if cur := s.selection.Current(); cur != nil {
		panes[0] = cur.Pane()
	}
	if only != nil {
		panes = []domain.Pane{*only}
	} else {
		panes = append(panes, panes[0].Other())
	}

	for _, pane := range panes {
		vp := s.layout.Viewport(pane).Grow(visibleSlack, visibleSlack)
		var visible []*domain.Entry
		for _, e := range s.query.Navigable(pane) {
			if s.layout.IsFullyVisible(e, vp) {
				visible = append(visible, e)
			}
		}
		if len(visible) == 0 {
			continue
		}
		target := visible[len(visible)-1]
		if first {
			target = visible[0]
		}
		s.selection.SelectEntry(target, false)
		return
	}
}

func (s *Service) moveVertical(up bool) {
	cur := s.selection.Current()
	if cur == nil {
		if e := s.query.First(s.selection.ActivePane()); e != nil {
			s.selection.SelectEntry(e, true)
		}
		return
	}

	from, ok := s.layout.PositionOf(cur)
	if !ok {
		return
	}

	var entries []*domain.Entry
	var rects []layout.Rect
	for _, e := range s.query.Navigable(cur.Pane()) {
		if e == cur {
			continue
		}
		if r, ok := s.layout.PositionOf(e); ok {
			entries = append(entries, e)
			rects = append(rects, r)
		}
	}

	idx := uilogic.NearestInDirection(from, up, 3*s.state.ThumbHeight, rects)
	if idx < 0 {
		return
	}
	s.selection.SelectEntry(entries[idx], true)
}

func (s *Service) moveLateral(delta int) {
	cur := s.selection.Current()
	if cur == nil || cur.Pane() != domain.PaneItems {
		return
	}
	if next := s.query.Sibling(cur, delta); next != nil {
		s.selection.SelectEntry(next, true)
	}
}

func (s *Service) jumpToEdge(first bool) {
	pane := s.selection.ActivePane()
	e := s.query.Last(pane)
	if first {
		e = s.query.First(pane)
	}
	if e != nil {
		s.selection.SelectEntry(e, true)
	}
}

func (s *Service) page(up bool) {
	pane := s.selection.ActivePane()
	vp := s.layout.Viewport(pane)
	target := vp.Top + vp.Height
	if up {
		target = vp.Top - vp.Height
	}
	s.scrollTo(pane, target)

	after := s.layout.Viewport(pane)
	if (up && after.AtTop()) || (!up && after.AtBottom()) {
		s.JumpToVisibleEdge(up, &pane, true)
		return
	}
	s.JumpToVisibleEdge(true, &pane, false)
}

func (s *Service) scrollTo(pane domain.Pane, top int) {
	applied := s.layout.ScrollTo(pane, top)
	logrus.WithFields(logrus.Fields{"pane": pane.String(), "top": applied}).Debug("navigation: scrolled")
	s.bus.Publish(ScrolledEvent{Pane: pane, Top: applied})
}
