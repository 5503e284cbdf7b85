package query

import "picbrowse/internal/domain"

// Position locates a navigable entry inside its pane's document order
type Position struct {
	Entry *domain.Entry
	Index int // index among the pane's navigable entries
	Count int
}
