package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"picbrowse/internal/ui/input/types"
)

// SearchMode edits the search query. Vertical movement keeps working while typing.
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", ti),
	}
}

var searchPassthrough = map[tea.KeyType]string{
	tea.KeyUp:       "Up",
	tea.KeyDown:     "Down",
	tea.KeyPgUp:     "Page_Up",
	tea.KeyPgDown:   "Page_Down",
	tea.KeyTab:      "Tab",
	tea.KeyShiftTab: "Tab",
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if name, ok := searchPassthrough[msg.Type]; ok {
		return []types.Action{types.KeyAction{Name: name}}, true
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}
