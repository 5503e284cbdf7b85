package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picbrowse/internal/domain"
)

func paths(entries []*domain.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}

func TestEntryStoreDocumentOrder(t *testing.T) {
	s := NewMemoryEntryStore()
	s.AddGroup(domain.KindFolder, "Navigate")
	s.AddGroup(domain.KindFolder, "Subfolders")

	s.Upsert(&domain.Entry{Kind: domain.KindFolder, Path: "/a", Group: "Subfolders"})
	s.Upsert(&domain.Entry{Kind: domain.KindFolder, Path: "command:up", Group: "Navigate"})
	s.Upsert(&domain.Entry{Kind: domain.KindFolder, Path: "/b", Group: "Subfolders"})

	assert.Equal(t, []string{"command:up", "/a", "/b"}, paths(s.Entries(domain.KindFolder)))
	assert.Empty(t, s.Entries(domain.KindImage))
}

func TestEntryStoreUpsertReplacesInPlace(t *testing.T) {
	s := NewMemoryEntryStore()
	require.True(t, s.Upsert(&domain.Entry{Kind: domain.KindImage, Path: "/1.jpg"}))
	require.True(t, s.Upsert(&domain.Entry{Kind: domain.KindImage, Path: "/2.jpg"}))
	require.False(t, s.Upsert(&domain.Entry{Kind: domain.KindImage, Path: "/1.jpg", DisplayName: "one"}))

	assert.Equal(t, []string{"/1.jpg", "/2.jpg"}, paths(s.Entries(domain.KindImage)))
	assert.Equal(t, "one", s.Get(domain.KindImage, "/1.jpg").DisplayName)
}

func TestEntryStoreUpsertMovesBetweenGroups(t *testing.T) {
	s := NewMemoryEntryStore()
	s.Upsert(&domain.Entry{Kind: domain.KindFolder, Path: "/x", Group: "Places"})
	s.Upsert(&domain.Entry{Kind: domain.KindFolder, Path: "/y", Group: "Bookmarks"})
	s.Upsert(&domain.Entry{Kind: domain.KindFolder, Path: "/x", Group: "Bookmarks"})

	assert.Empty(t, s.GroupEntries(domain.KindFolder, "Places"))
	assert.Equal(t, []string{"/y", "/x"}, paths(s.GroupEntries(domain.KindFolder, "Bookmarks")))
}

func TestEntryStoreRegroupsMutatedEntry(t *testing.T) {
	s := NewMemoryEntryStore()
	a := &domain.Entry{Kind: domain.KindImage, Path: "/f/a", Group: "A"}
	s.Upsert(a)
	s.Upsert(&domain.Entry{Kind: domain.KindImage, Path: "/f/b", Group: "A"})

	a.Group = "B"
	assert.False(t, s.Upsert(a))

	assert.Equal(t, []string{"/f/b"}, paths(s.GroupEntries(domain.KindImage, "A")))
	assert.Equal(t, []string{"/f/a"}, paths(s.GroupEntries(domain.KindImage, "B")))
	assert.Equal(t, []string{"/f/b", "/f/a"}, paths(s.Entries(domain.KindImage)))

	require.NotNil(t, s.Remove(domain.KindImage, "/f/a"))
	assert.Empty(t, s.GroupEntries(domain.KindImage, "B"))
	assert.Equal(t, []string{"/f/b"}, paths(s.Entries(domain.KindImage)))
}

func TestEntryStoreSameKeyDifferentKinds(t *testing.T) {
	s := NewMemoryEntryStore()
	s.Upsert(&domain.Entry{Kind: domain.KindImage, Path: "/p"})
	s.Upsert(&domain.Entry{Kind: domain.KindFolder, Path: "/p"})

	require.NotNil(t, s.Remove(domain.KindImage, "/p"))
	assert.Nil(t, s.Get(domain.KindImage, "/p"))
	assert.NotNil(t, s.Get(domain.KindFolder, "/p"))
	assert.Nil(t, s.Remove(domain.KindImage, "/missing"))
}

func TestEntryStoreProgress(t *testing.T) {
	s := NewMemoryEntryStore()
	assert.Equal(t, 0, s.Progress(), "nothing expected means nothing to show")

	s.SetExpectedCount(4)
	s.Upsert(&domain.Entry{Kind: domain.KindImage, Path: "/1", ThumbState: domain.ThumbLoaded})
	s.Upsert(&domain.Entry{Kind: domain.KindImage, Path: "/2"})
	s.Upsert(&domain.Entry{Kind: domain.KindImage, Path: "/3"})
	s.Upsert(&domain.Entry{Kind: domain.KindImage, Path: "/4"})
	assert.Equal(t, 25, s.Progress())
	assert.Equal(t, 1, s.CountLoaded())
	assert.Equal(t, 4, s.CountTotal())

	s.Remove(domain.KindImage, "/2")
	s.Remove(domain.KindImage, "/3")
	s.Remove(domain.KindImage, "/4")
	assert.Equal(t, 1, s.ExpectedCount())
	assert.Equal(t, 0, s.Progress(), "all loaded")
}

func TestEntryStoreClear(t *testing.T) {
	s := NewMemoryEntryStore()
	s.AddGroup(domain.KindImage, "2024")
	s.Upsert(&domain.Entry{Kind: domain.KindImage, Path: "/1", Group: "2024"})
	s.SetExpectedCount(3)

	s.Clear()

	assert.Empty(t, s.Entries(domain.KindImage))
	assert.Empty(t, s.Groups(domain.KindImage))
	assert.Equal(t, 0, s.ExpectedCount())
}

func TestEntryStorePlaceholdersDoNotCollide(t *testing.T) {
	s := NewMemoryEntryStore()
	s.Upsert(&domain.Entry{Kind: domain.KindFolder, Group: "Places", Label: "(empty)"})
	s.Upsert(&domain.Entry{Kind: domain.KindFolder, Group: "Bookmarks", Label: "(empty)"})

	assert.Len(t, s.GroupEntries(domain.KindFolder, "Places"), 1)
	assert.Len(t, s.GroupEntries(domain.KindFolder, "Bookmarks"), 1)
	assert.Nil(t, s.Get(domain.KindFolder, ""))
}
