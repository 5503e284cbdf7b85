package groups

import (
	"picbrowse/internal/domain"
	"picbrowse/internal/logic"
	"picbrowse/internal/ui/services/events"
)

// Service keeps group visibility in sync with the search filter
type Service struct {
	state *State
	bus   events.EventBus
	store logic.EntryStore
}

// NewService creates a new groups service
func NewService(bus events.EventBus, store logic.EntryStore) *Service {
	return &Service{
		state: &State{},
		bus:   bus,
		store: store,
	}
}

// SetFiltered records whether a non-empty query is active
func (s *Service) SetFiltered(filtered bool) {
	s.state.Filtered = filtered
}

// Ensure returns the group, creating it when missing. A group created while
// a query is active starts hidden since it has no matches yet.
func (s *Service) Ensure(kind domain.EntryKind, label string, inline bool) *domain.Group {
	existed := s.store.Group(kind, label) != nil
	g := s.store.AddGroup(kind, label)
	g.Inline = inline
	if !existed {
		g.Visible = !s.state.Filtered
		s.updateFirst()
	}
	return g
}

// Clear removes every entry of a folder category and returns the removed paths
func (s *Service) Clear(label string) []string {
	var removed []string
	for _, e := range s.store.GroupEntries(domain.KindFolder, label) {
		s.store.Remove(domain.KindFolder, e.Key())
		removed = append(removed, e.Path)
	}
	if len(removed) > 0 {
		s.bus.Publish(CategoryClearedEvent{Label: label, Removed: removed})
	}
	return removed
}

// RecomputeAll refreshes the visibility of every group
func (s *Service) RecomputeAll() {
	for _, kind := range []domain.EntryKind{domain.KindImage, domain.KindFolder} {
		for _, g := range s.store.Groups(kind) {
			s.recompute(g)
		}
	}
	s.updateFirst()
}

// Recompute refreshes one group's visibility, e.g. after an entry was added to it
func (s *Service) Recompute(kind domain.EntryKind, label string) {
	g := s.store.Group(kind, label)
	if g == nil {
		return
	}
	s.recompute(g)
	s.updateFirst()
}

// FirstVisible returns the first visible image group
func (s *Service) FirstVisible() *domain.Group {
	for _, g := range s.store.Groups(domain.KindImage) {
		if g.Visible {
			return g
		}
	}
	return nil
}

func (s *Service) recompute(g *domain.Group) {
	visible := !s.state.Filtered
	if !visible {
		// clickable and label rows keep their group shown too
		for _, e := range s.store.GroupEntries(g.Kind, g.Label) {
			if e.MatchesSearch {
				visible = true
				break
			}
		}
	}
	if visible == g.Visible {
		return
	}
	g.Visible = visible
	s.bus.Publish(GroupVisibilityChangedEvent{Kind: g.Kind, Label: g.Label, Visible: visible})
}

func (s *Service) updateFirst() {
	first := true
	for _, g := range s.store.Groups(domain.KindImage) {
		g.First = first && g.Visible
		if g.Visible {
			first = false
		}
	}
}
