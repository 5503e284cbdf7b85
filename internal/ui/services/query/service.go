package query

import (
	"picbrowse/internal/domain"
	"picbrowse/internal/logic"
)

// Service answers document-order questions about the registry
type Service struct {
	store logic.EntryStore
}

// NewService creates a new query service
func NewService(store logic.EntryStore) *Service {
	return &Service{store: store}
}

// Navigable returns the entries of a pane that navigation may land on, in document order
func (s *Service) Navigable(pane domain.Pane) []*domain.Entry {
	all := s.store.Entries(pane.Kind())
	result := make([]*domain.Entry, 0, len(all))
	for _, e := range all {
		if e.Navigable() {
			result = append(result, e)
		}
	}
	return result
}

// First returns the first navigable entry of a pane
func (s *Service) First(pane domain.Pane) *domain.Entry {
	list := s.Navigable(pane)
	if len(list) == 0 {
		return nil
	}
	return list[0]
}

// Last returns the last navigable entry of a pane
func (s *Service) Last(pane domain.Pane) *domain.Entry {
	list := s.Navigable(pane)
	if len(list) == 0 {
		return nil
	}
	return list[len(list)-1]
}

// FirstPreferring returns the first navigable entry of the preferred pane, else of the other one
func (s *Service) FirstPreferring(pane domain.Pane) *domain.Entry {
	if e := s.First(pane); e != nil {
		return e
	}
	return s.First(pane.Other())
}

// Resolve finds the navigable entry for a path, checking the preferred pane's kind first
func (s *Service) Resolve(path string, prefer domain.Pane) *domain.Entry {
	for _, pane := range []domain.Pane{prefer, prefer.Other()} {
		if e := s.store.Get(pane.Kind(), path); e.Navigable() {
			return e
		}
	}
	return nil
}

// Lookup returns the registered entry of a kind regardless of navigability
func (s *Service) Lookup(kind domain.EntryKind, path string) *domain.Entry {
	return s.store.Get(kind, path)
}

// PositionOf locates an entry among its pane's navigable entries
func (s *Service) PositionOf(e *domain.Entry) (Position, bool) {
	list := s.Navigable(e.Pane())
	for i, c := range list {
		if c == e {
			return Position{Entry: e, Index: i, Count: len(list)}, true
		}
	}
	return Position{}, false
}

// Sibling returns the navigable entry delta steps away in document order
func (s *Service) Sibling(e *domain.Entry, delta int) *domain.Entry {
	list := s.Navigable(e.Pane())
	for i, c := range list {
		if c != e {
			continue
		}
		j := i + delta
		if j < 0 || j >= len(list) {
			return nil
		}
		return list[j]
	}
	return nil
}

// Successor picks the entry to select when e goes away: the next navigable
// entry of its pane, else the first navigable entry of the active pane, else
// of the other pane. e itself is never returned.
func (s *Service) Successor(e *domain.Entry, active domain.Pane) *domain.Entry {
	all := s.store.Entries(e.Kind)
	seen := false
	for _, c := range all {
		if c == e || (c.Kind == e.Kind && c.Path == e.Path) {
			seen = true
			continue
		}
		if seen && c.Navigable() {
			return c
		}
	}

	for _, pane := range []domain.Pane{active, active.Other()} {
		for _, c := range s.Navigable(pane) {
			if c.Kind == e.Kind && c.Path == e.Path {
				continue
			}
			return c
		}
	}
	return nil
}
