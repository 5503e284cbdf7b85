package search

import (
	"github.com/sirupsen/logrus"

	"picbrowse/internal/domain"
	"picbrowse/internal/logic"
	uilogic "picbrowse/internal/ui/logic"
	"picbrowse/internal/ui/services/events"
	"picbrowse/internal/ui/services/groups"
)

// Service handles search functionality
type Service struct {
	state  *State
	bus    events.EventBus
	store  logic.EntryStore
	groups *groups.Service
	filter *uilogic.SearchFilter
}

// NewService creates a new search service
func NewService(bus events.EventBus, store logic.EntryStore, groupsSvc *groups.Service) *Service {
	return &Service{
		state:  &State{},
		bus:    bus,
		store:  store,
		groups: groupsSvc,
		filter: uilogic.NewSearchFilter(""),
	}
}

// SetQuery applies a new query to every entry and refreshes group visibility.
// Returns false when the query is already active.
func (s *Service) SetQuery(query string) bool {
	if query == s.state.Query {
		return false
	}

	s.state.Query = query
	s.filter = uilogic.NewSearchFilter(query)

	matches := 0
	for _, kind := range []domain.EntryKind{domain.KindImage, domain.KindFolder} {
		for _, e := range s.store.Entries(kind) {
			e.MatchesSearch = s.filter.Matches(e)
			if e.MatchesSearch && e.Selectable {
				matches++
			}
		}
	}
	s.state.MatchCount = matches

	s.groups.SetFiltered(!s.filter.Empty())
	s.groups.RecomputeAll()

	logrus.WithFields(logrus.Fields{"query": query, "matches": matches}).Info("search: applied")

	s.bus.Publish(SearchCompletedEvent{Query: query, MatchCount: matches})
	return true
}

// Match evaluates a newly upserted entry against the active query
func (s *Service) Match(e *domain.Entry) {
	e.MatchesSearch = s.filter.Matches(e)
}

// Reset clears the query without notifying anyone, as on folder change
func (s *Service) Reset() {
	s.state.Query = ""
	s.state.MatchCount = 0
	s.filter = uilogic.NewSearchFilter("")
	s.groups.SetFiltered(false)
}

// SetVisible shows or hides the search field
func (s *Service) SetVisible(visible bool) {
	if visible == s.state.Visible {
		return
	}
	s.state.Visible = visible
	s.bus.Publish(SearchVisibilityChangedEvent{Visible: visible})
}

// GetQuery returns the current search query
func (s *Service) GetQuery() string {
	return s.state.Query
}

// IsVisible reports whether the search field is shown
func (s *Service) IsVisible() bool {
	return s.state.Visible
}

// GetMatchCount returns the number of matching selectable entries at the last query change
func (s *Service) GetMatchCount() int {
	return s.state.MatchCount
}

// Words returns the tokenized query, used to highlight captions
func (s *Service) Words() []string {
	return s.filter.Words()
}
