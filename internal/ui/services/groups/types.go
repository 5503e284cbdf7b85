package groups

import "picbrowse/internal/domain"

// State holds groups state
type State struct {
	Filtered bool // a non-empty query is active
}

// Event types
type GroupVisibilityChangedEvent struct {
	Kind    domain.EntryKind
	Label   string
	Visible bool
}

type CategoryClearedEvent struct {
	Label   string
	Removed []string
}
