package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picbrowse/internal/config"
	"picbrowse/internal/domain"
	inputtypes "picbrowse/internal/ui/input/types"
)

type recorder struct {
	events []domain.DomainEvent
}

func (r *recorder) Publish(e domain.DomainEvent) {
	r.events = append(r.events, e)
}

func (r *recorder) selections() []string {
	var paths []string
	for _, e := range r.events {
		if ev, ok := e.(domain.SelectionChangedEvent); ok {
			paths = append(paths, ev.Path)
		}
	}
	return paths
}

func newTestModel(t *testing.T, lines ...string) (*Model, *recorder) {
	t.Helper()
	rec := &recorder{}
	m := NewModel(config.DefaultConfig(), rec)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	for _, line := range lines {
		m.Update(CommandMsg{Line: line})
	}
	return m, rec
}

var folderSetup = []string{
	"change-folder:/f",
	"mode:folder",
	`folders:{"categories":[{"label":"Folders","items":[{"label":"holiday","path":"/f/holiday"}]}]}`,
	`image:{"path":"/f/sunset.jpg","name":"sunset.jpg"}`,
	`image:{"path":"/f/beach.jpg","name":"beach.jpg"}`,
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelAppliesHostCommands(t *testing.T) {
	m, _ := newTestModel(t, folderSetup...)

	view := m.View()
	assert.Contains(t, view, "sunset.jpg")
	assert.Contains(t, view, "holiday")
	assert.Equal(t, 47, m.grid.Surface(domain.PaneItems).Width)
}

func TestModelKeysDriveSelection(t *testing.T) {
	m, rec := newTestModel(t, folderSetup...)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})

	assert.Equal(t, []string{"/f/sunset.jpg", "/f/beach.jpg"}, rec.selections())
}

func TestModelSearchTyping(t *testing.T) {
	m, rec := newTestModel(t, folderSetup...)

	m.Update(keyRunes("/"))
	require.Equal(t, inputtypes.ModeSearch, m.inputHandler.CurrentMode())
	assert.True(t, m.session.Search.IsVisible())

	m.Update(keyRunes("b"))
	m.Update(keyRunes("e"))
	assert.Equal(t, "be", m.session.Search.GetQuery())
	assert.Equal(t, []string{"/f/beach.jpg"}, rec.selections())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.session.Search.IsVisible())
	assert.Empty(t, m.session.Search.GetQuery())
	assert.Equal(t, inputtypes.ModeNormal, m.inputHandler.CurrentMode())
}

func TestModelFollowsHostSearchVisibility(t *testing.T) {
	m, _ := newTestModel(t, folderSetup...)

	m.Update(CommandMsg{Line: `search-visible:{"visible":true,"query":"sun"}`})
	require.Equal(t, inputtypes.ModeSearch, m.inputHandler.CurrentMode())
	assert.Equal(t, "sun", m.inputHandler.TextInput().Value())

	m.Update(CommandMsg{Line: `search-visible:{"visible":false}`})
	assert.Equal(t, inputtypes.ModeNormal, m.inputHandler.CurrentMode())
}

func TestModelForwardsKeysInImageMode(t *testing.T) {
	m, rec := newTestModel(t, "change-folder:/f", "mode:image")

	m.Update(keyRunes("x"))

	require.NotEmpty(t, rec.events)
	assert.Equal(t, domain.NavigationRequestedEvent{Key: "x"}, rec.events[len(rec.events)-1])
}

func TestModelMouseClickActivates(t *testing.T) {
	m, rec := newTestModel(t, folderSetup...)

	// first folder row sits below the title and the category header
	m.Update(tea.MouseMsg{X: 2, Y: 2, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})

	require.NotEmpty(t, rec.events)
	assert.Equal(t, domain.FolderEnteredEvent{Path: "/f/holiday"}, rec.events[len(rec.events)-1])
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
}
