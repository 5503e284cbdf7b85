package viewport

import (
	"time"

	"picbrowse/internal/domain"
)

// State holds tracker settings
type State struct {
	Lookahead int
	Delay     time.Duration
}

// Event types
type PriorityRequestedEvent struct {
	Kind  domain.EntryKind
	Paths []string
}
