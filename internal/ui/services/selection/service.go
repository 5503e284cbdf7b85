package selection

import (
	"github.com/sirupsen/logrus"

	"picbrowse/internal/domain"
	"picbrowse/internal/ui/services/events"
	"picbrowse/internal/ui/services/query"
)

// Service tracks the single current selection across both panes
type Service struct {
	state    *State
	bus      events.EventBus
	query    *query.Service
	scrollFn func(*domain.Entry) // brings an entry into view
}

// NewService creates a new selection service
func NewService(bus events.EventBus, q *query.Service) *Service {
	return &Service{
		state: &State{
			ActivePane:   domain.PaneItems,
			LastSelected: make(map[domain.Pane]string),
		},
		bus:   bus,
		query: q,
	}
}

// SetScrollFunction sets the function used to scroll a selection into view
func (s *Service) SetScrollFunction(fn func(*domain.Entry)) {
	s.scrollFn = fn
}

// Select selects the navigable entry with the path, preferring the active
// pane's kind. Unknown or non-navigable paths are ignored.
func (s *Service) Select(path string) bool {
	e := s.query.Resolve(path, s.state.ActivePane)
	if e == nil {
		logrus.WithField("path", path).Debug("selection: nothing to select")
		return false
	}
	return s.SelectEntry(e, true)
}

// SelectEntry makes e the current selection, optionally scrolling it into view.
// Selecting the current entry again is a no-op.
func (s *Service) SelectEntry(e *domain.Entry, scroll bool) bool {
	if !e.Navigable() {
		return false
	}
	if s.isCurrent(e) {
		return false
	}

	pane := e.Pane()
	s.state.Current = &Ref{Kind: e.Kind, Path: e.Path}
	s.state.LastSelected[pane] = e.Path
	if s.state.ActivePane != pane {
		s.state.ActivePane = pane
		s.bus.Publish(PaneSwitchedEvent{Pane: pane})
	}

	s.bus.Publish(SelectionChangedEvent{Path: e.Path, Kind: e.Kind, Pane: pane})

	if scroll && s.scrollFn != nil {
		s.scrollFn(e)
	}
	return true
}

// Adopt makes e current without notifying anyone, for selections the host
// itself reported
func (s *Service) Adopt(e *domain.Entry) {
	if !e.Navigable() {
		return
	}
	pane := e.Pane()
	s.state.Current = &Ref{Kind: e.Kind, Path: e.Path}
	s.state.LastSelected[pane] = e.Path
	s.state.ActivePane = pane
}

// Current resolves the current selection, or nil
func (s *Service) Current() *domain.Entry {
	if s.state.Current == nil {
		return nil
	}
	return s.query.Lookup(s.state.Current.Kind, s.state.Current.Path)
}

// CurrentRef returns the weak reference of the current selection
func (s *Service) CurrentRef() *Ref {
	return s.state.Current
}

func (s *Service) ActivePane() domain.Pane {
	return s.state.ActivePane
}

// LastSelected returns the path last selected in a pane
func (s *Service) LastSelected(pane domain.Pane) string {
	return s.state.LastSelected[pane]
}

// SwitchPane restores the pane's last selection or selects its first entry.
// The pane only becomes active when something was selected in it.
func (s *Service) SwitchPane(pane domain.Pane) bool {
	if last := s.state.LastSelected[pane]; last != "" {
		if e := s.query.Lookup(pane.Kind(), last); e.Navigable() {
			if s.isCurrent(e) {
				return true
			}
			return s.SelectEntry(e, true)
		}
	}
	if e := s.query.First(pane); e != nil {
		return s.SelectEntry(e, true)
	}
	return false
}

// Clear drops the selection
func (s *Service) Clear() {
	if s.state.Current == nil {
		return
	}
	pane := s.state.ActivePane
	s.state.Current = nil
	s.bus.Publish(SelectionChangedEvent{Path: "", Pane: pane})
}

// Reset forgets everything, as on folder change
func (s *Service) Reset() {
	s.state.Current = nil
	s.state.ActivePane = domain.PaneItems
	s.state.LastSelected = make(map[domain.Pane]string)
}

// Valid reports whether there is no selection or the selection is navigable
func (s *Service) Valid() bool {
	return s.state.Current == nil || s.Current().Navigable()
}

// Repair re-resolves an invalid selection using the replacement chooser,
// clearing it when nothing qualifies. Returns true when the selection changed.
func (s *Service) Repair(replacement func() *domain.Entry) bool {
	if s.Valid() {
		return false
	}
	logrus.WithField("path", s.state.Current.Path).Debug("selection: repairing")

	if next := replacement(); next != nil && next.Navigable() {
		s.state.Current = nil
		return s.SelectEntry(next, true)
	}
	s.Clear()
	return true
}

func (s *Service) isCurrent(e *domain.Entry) bool {
	c := s.state.Current
	return c != nil && c.Kind == e.Kind && c.Path == e.Path
}
