package logic

import (
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"picbrowse/internal/domain"
)

type bucket struct {
	group   *domain.Group
	entries *orderedmap.OrderedMap[string, *domain.Entry]
}

type kindIndex struct {
	groups *orderedmap.OrderedMap[string, *bucket]
	byPath map[string]*domain.Entry
	// filed maps each key to the label of the bucket holding it. Callers
	// mutate registered entries in place, so Entry.Group can't tell.
	filed map[string]string
}

func newKindIndex() *kindIndex {
	return &kindIndex{
		groups: orderedmap.New[string, *bucket](),
		byPath: make(map[string]*domain.Entry),
		filed:  make(map[string]string),
	}
}

// unfileLocked removes the key from the bucket it was filed under
func (idx *kindIndex) unfileLocked(key string) {
	label, ok := idx.filed[key]
	if !ok {
		return
	}
	if b, found := idx.groups.Get(label); found {
		b.entries.Delete(key)
	}
	delete(idx.filed, key)
}

// MemoryEntryStore is an in-memory implementation of EntryStore
type MemoryEntryStore struct {
	mu       sync.RWMutex
	kinds    map[domain.EntryKind]*kindIndex
	expected int
}

// NewMemoryEntryStore creates a new memory-based entry store
func NewMemoryEntryStore() *MemoryEntryStore {
	s := &MemoryEntryStore{}
	s.reset()
	return s
}

func (s *MemoryEntryStore) reset() {
	s.kinds = map[domain.EntryKind]*kindIndex{
		domain.KindImage:  newKindIndex(),
		domain.KindFolder: newKindIndex(),
	}
	s.expected = 0
}

// Get returns the entry registered under the key, which is the path for regular entries
func (s *MemoryEntryStore) Get(kind domain.EntryKind, key string) *domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kinds[kind].byPath[key]
}

// Upsert inserts the entry at the end of its group, or replaces the registered
// entry with the same kind and path. A changed group moves the entry.
func (s *MemoryEntryStore) Upsert(entry *domain.Entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.kinds[entry.Kind]
	key := entry.Key()
	_, ok := idx.byPath[key]
	if label, filed := idx.filed[key]; filed && label != entry.Group {
		idx.unfileLocked(key)
	}

	b := s.bucketLocked(idx, entry.Kind, entry.Group)
	b.entries.Set(key, entry)
	idx.byPath[key] = entry
	idx.filed[key] = entry.Group
	return !ok
}

// Remove unregisters the entry with the key. Removing an image lowers the expected count.
func (s *MemoryEntryStore) Remove(kind domain.EntryKind, key string) *domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.kinds[kind]
	entry, ok := idx.byPath[key]
	if !ok {
		return nil
	}
	delete(idx.byPath, key)
	idx.unfileLocked(key)
	if kind == domain.KindImage && s.expected > 0 {
		s.expected--
	}
	return entry
}

// Entries returns all entries of a kind in document order
func (s *MemoryEntryStore) Entries(kind domain.EntryKind) []*domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.kinds[kind]
	result := make([]*domain.Entry, 0, len(idx.byPath))
	for pair := idx.groups.Oldest(); pair != nil; pair = pair.Next() {
		for e := pair.Value.entries.Oldest(); e != nil; e = e.Next() {
			result = append(result, e.Value)
		}
	}
	return result
}

func (s *MemoryEntryStore) GroupEntries(kind domain.EntryKind, label string) []*domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.kinds[kind].groups.Get(label)
	if !ok {
		return nil
	}
	result := make([]*domain.Entry, 0, b.entries.Len())
	for e := b.entries.Oldest(); e != nil; e = e.Next() {
		result = append(result, e.Value)
	}
	return result
}

func (s *MemoryEntryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *MemoryEntryStore) Group(kind domain.EntryKind, label string) *domain.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if b, ok := s.kinds[kind].groups.Get(label); ok {
		return b.group
	}
	return nil
}

// Groups returns the groups of a kind in document order
func (s *MemoryEntryStore) Groups(kind domain.EntryKind) []*domain.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.kinds[kind]
	result := make([]*domain.Group, 0, idx.groups.Len())
	for pair := idx.groups.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, pair.Value.group)
	}
	return result
}

// AddGroup returns the group with the label, appending it when missing
func (s *MemoryEntryStore) AddGroup(kind domain.EntryKind, label string) *domain.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bucketLocked(s.kinds[kind], kind, label).group
}

func (s *MemoryEntryStore) bucketLocked(idx *kindIndex, kind domain.EntryKind, label string) *bucket {
	if b, ok := idx.groups.Get(label); ok {
		return b
	}
	b := &bucket{
		group:   &domain.Group{Kind: kind, Label: label, Visible: true},
		entries: orderedmap.New[string, *domain.Entry](),
	}
	idx.groups.Set(label, b)
	return b
}

// SetExpectedCount records the image count announced by the host
func (s *MemoryEntryStore) SetExpectedCount(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 0 {
		n = 0
	}
	s.expected = n
}

func (s *MemoryEntryStore) ExpectedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expected
}

// CountLoaded returns the number of images with a loaded thumbnail
func (s *MemoryEntryStore) CountLoaded() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, e := range s.kinds[domain.KindImage].byPath {
		if e.ThumbState == domain.ThumbLoaded {
			n++
		}
	}
	return n
}

// CountTotal returns the expected image count, never less than one
func (s *MemoryEntryStore) CountTotal() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.expected < 1 {
		return 1
	}
	return s.expected
}

// Progress returns the thumbnail load progress in percent, 0 once everything is loaded
func (s *MemoryEntryStore) Progress() int {
	loaded := s.CountLoaded()
	s.mu.RLock()
	expected := s.expected
	s.mu.RUnlock()

	if loaded >= expected {
		return 0
	}
	total := expected
	if total < 1 {
		total = 1
	}
	p := 100 * loaded / total
	if p > 100 {
		p = 100
	}
	return p
}
