package logic

import "picbrowse/internal/domain"

// EntryStore is the entry registry: every renderable entry of the current folder, in document order
type EntryStore interface {
	Get(kind domain.EntryKind, key string) *domain.Entry
	Upsert(entry *domain.Entry) (inserted bool)
	Remove(kind domain.EntryKind, key string) *domain.Entry
	Entries(kind domain.EntryKind) []*domain.Entry
	GroupEntries(kind domain.EntryKind, label string) []*domain.Entry
	Clear()

	Group(kind domain.EntryKind, label string) *domain.Group
	Groups(kind domain.EntryKind) []*domain.Group
	AddGroup(kind domain.EntryKind, label string) *domain.Group

	SetExpectedCount(n int)
	ExpectedCount() int
	CountLoaded() int
	CountTotal() int
	Progress() int
}
