package groups

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picbrowse/internal/domain"
	"picbrowse/internal/logic"
	"picbrowse/internal/ui/services/events"
)

func image(path, group string, matches bool) *domain.Entry {
	return &domain.Entry{Kind: domain.KindImage, Path: path, Group: group, Selectable: true, MatchesSearch: matches}
}

func TestRecomputeHidesGroupsWithoutMatches(t *testing.T) {
	store := logic.NewMemoryEntryStore()
	bus := events.NewBus()
	s := NewService(bus, store)

	var changes []GroupVisibilityChangedEvent
	bus.Subscribe(events.TypeOf(GroupVisibilityChangedEvent{}), func(e interface{}) {
		changes = append(changes, e.(GroupVisibilityChangedEvent))
	})

	s.Ensure(domain.KindImage, "2023", false)
	s.Ensure(domain.KindImage, "2024", false)
	store.Upsert(image("/old.jpg", "2023", false))
	store.Upsert(image("/new.jpg", "2024", true))

	s.SetFiltered(true)
	s.RecomputeAll()

	assert.False(t, store.Group(domain.KindImage, "2023").Visible)
	assert.True(t, store.Group(domain.KindImage, "2024").Visible)
	assert.True(t, store.Group(domain.KindImage, "2024").First)
	assert.False(t, store.Group(domain.KindImage, "2023").First)
	require.Len(t, changes, 1)
	assert.Equal(t, "2023", changes[0].Label)

	s.SetFiltered(false)
	s.RecomputeAll()
	assert.True(t, store.Group(domain.KindImage, "2023").Visible)
	assert.True(t, store.Group(domain.KindImage, "2023").First)
	assert.False(t, store.Group(domain.KindImage, "2024").First)
}

func TestEnsureWhileFiltered(t *testing.T) {
	store := logic.NewMemoryEntryStore()
	s := NewService(&events.NullBus{}, store)
	s.SetFiltered(true)

	g := s.Ensure(domain.KindImage, "fresh", false)
	assert.False(t, g.Visible)

	store.Upsert(image("/a", "fresh", true))
	s.Recompute(domain.KindImage, "fresh")
	assert.True(t, g.Visible)
	assert.True(t, g.First)
}

func TestRecomputeKeepsGroupsWithClickableMatches(t *testing.T) {
	store := logic.NewMemoryEntryStore()
	s := NewService(&events.NullBus{}, store)
	s.Ensure(domain.KindFolder, "Options", false)
	s.Ensure(domain.KindFolder, "Places", false)
	store.Upsert(&domain.Entry{Kind: domain.KindFolder, Path: "command:captions:true", Group: "Options", Clickable: true, MatchesSearch: true})
	store.Upsert(&domain.Entry{Kind: domain.KindFolder, Path: "/home", Group: "Places", Clickable: true})

	s.SetFiltered(true)
	s.RecomputeAll()

	assert.True(t, store.Group(domain.KindFolder, "Options").Visible)
	assert.False(t, store.Group(domain.KindFolder, "Places").Visible)
}

func TestClearCategory(t *testing.T) {
	store := logic.NewMemoryEntryStore()
	s := NewService(&events.NullBus{}, store)
	s.Ensure(domain.KindFolder, "Subfolders", false)
	store.Upsert(&domain.Entry{Kind: domain.KindFolder, Path: "/a", Group: "Subfolders"})
	store.Upsert(&domain.Entry{Kind: domain.KindFolder, Path: "/b", Group: "Subfolders"})
	store.Upsert(&domain.Entry{Kind: domain.KindFolder, Path: "/c", Group: "Places"})

	removed := s.Clear("Subfolders")

	assert.Equal(t, []string{"/a", "/b"}, removed)
	assert.Len(t, store.Entries(domain.KindFolder), 1)
	assert.NotNil(t, store.Group(domain.KindFolder, "Subfolders"), "the category itself stays")
}
