package search

// State holds search state
type State struct {
	Query      string
	Visible    bool // the search field is shown
	MatchCount int  // matching selectable entries
}

// Event types
type SearchCompletedEvent struct {
	Query      string
	MatchCount int
}

type SearchVisibilityChangedEvent struct {
	Visible bool
}
