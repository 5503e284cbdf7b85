package selection

import "picbrowse/internal/domain"

// Ref is a weak reference to an entry, resolved through the registry
type Ref struct {
	Kind domain.EntryKind
	Path string
}

// State holds selection state
type State struct {
	Current      *Ref
	ActivePane   domain.Pane
	LastSelected map[domain.Pane]string
}

// Event types
type SelectionChangedEvent struct {
	Path string // empty when the selection was cleared
	Kind domain.EntryKind
	Pane domain.Pane
}

type PaneSwitchedEvent struct {
	Pane domain.Pane
}
