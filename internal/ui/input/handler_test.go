package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picbrowse/internal/ui/input/types"
)

type fakeContext struct {
	folderMode bool
	visible    bool
	query      string
	selected   bool
}

func (c fakeContext) FolderMode() bool    { return c.folderMode }
func (c fakeContext) SearchVisible() bool { return c.visible }
func (c fakeContext) Query() string       { return c.query }
func (c fakeContext) HasSelection() bool  { return c.selected }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNormalModeNamesKeys(t *testing.T) {
	h := New()
	ctx := fakeContext{folderMode: true}

	tests := []struct {
		msg  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, "Up"},
		{runes("j"), "Down"},
		{tea.KeyMsg{Type: tea.KeyPgDown}, "Page_Down"},
		{tea.KeyMsg{Type: tea.KeyHome}, "Home"},
		{tea.KeyMsg{Type: tea.KeyTab}, "Tab"},
		{tea.KeyMsg{Type: tea.KeyEnter}, "Return"},
		{tea.KeyMsg{Type: tea.KeyBackspace}, "BackSpace"},
		{tea.KeyMsg{Type: tea.KeyEsc}, "Escape"},
		{runes("x"), "x"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			actions, _ := h.HandleKey(tt.msg, ctx)
			require.Len(t, actions, 1)
			assert.Equal(t, types.KeyAction{Name: tt.want}, actions[0])
		})
	}
}

func TestSlashEntersSearchInFolderMode(t *testing.T) {
	h := New()

	actions, cmd := h.HandleKey(runes("/"), fakeContext{folderMode: true, query: "sun"})

	assert.Equal(t, []types.Action{types.KeyAction{Name: "slash"}}, actions)
	assert.NotNil(t, cmd)
	assert.Equal(t, types.ModeSearch, h.CurrentMode())
	require.NotNil(t, h.TextInput())
	assert.Equal(t, "sun", h.TextInput().Value())
}

func TestSlashInImageModeIsOnlyForwarded(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(runes("/"), fakeContext{})

	assert.Equal(t, []types.Action{types.KeyAction{Name: "slash"}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestSearchModeTyping(t *testing.T) {
	h := New()
	ctx := fakeContext{folderMode: true}
	h.HandleKey(runes("/"), ctx)

	actions, _ := h.HandleKey(runes("s"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "s"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyDown}, ctx)
	assert.Equal(t, []types.Action{types.KeyAction{Name: "Down"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.Equal(t, []types.Action{types.CancelTextAction{}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
}

func TestSearchModeSubmitKeepsQuery(t *testing.T) {
	h := New()
	ctx := fakeContext{folderMode: true}
	h.HandleKey(runes("/"), ctx)
	h.HandleKey(runes("a"), ctx)

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)

	assert.Equal(t, []types.Action{types.SubmitTextAction{Text: "a", Mode: types.ModeSearch}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestNormalModeCommands(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(runes("q"), fakeContext{})
	assert.Equal(t, []types.Action{types.QuitAction{}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlC}, fakeContext{})
	assert.Equal(t, []types.Action{types.QuitAction{Force: true}}, actions)

	actions, _ = h.HandleKey(runes("i"), fakeContext{})
	assert.Equal(t, []types.Action{types.KeyAction{Name: "i"}}, actions, "nothing to inspect is forwarded")

	actions, _ = h.HandleKey(runes("i"), fakeContext{selected: true})
	assert.Equal(t, []types.Action{types.InspectAction{}}, actions)

	actions, _ = h.HandleKey(runes("c"), fakeContext{})
	assert.Equal(t, []types.Action{types.ToggleCaptionsAction{}}, actions)
}
