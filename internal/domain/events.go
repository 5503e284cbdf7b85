package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSelectionChanged    EventType = "SelectionChanged"
	EventSearchChanged       EventType = "SearchChanged"
	EventPriorityRequested   EventType = "PriorityRequested"
	EventNavigationRequested EventType = "NavigationRequested"
	EventFolderEntered       EventType = "FolderEntered"
	EventError               EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SelectionChangedEvent is emitted when the current selection moves.
// Path is empty when the selection was cleared.
type SelectionChangedEvent struct {
	Path string
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// SearchChangedEvent is emitted when the search query changes
type SearchChangedEvent struct {
	Query string
}

func (e SearchChangedEvent) Type() EventType { return EventSearchChanged }

// PriorityRequestedEvent names visible entries whose thumbnails should load next
type PriorityRequestedEvent struct {
	Kind  EntryKind
	Paths []string
}

func (e PriorityRequestedEvent) Type() EventType { return EventPriorityRequested }

// NavigationRequestedEvent forwards a key the browser does not interpret
type NavigationRequestedEvent struct {
	Key string
}

func (e NavigationRequestedEvent) Type() EventType { return EventNavigationRequested }

// FolderEnteredEvent is emitted when the user activates a folder, image or command entry
type FolderEnteredEvent struct {
	Path string
}

func (e FolderEnteredEvent) Type() EventType { return EventFolderEntered }

// ErrorEvent is emitted when a background collaborator fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
