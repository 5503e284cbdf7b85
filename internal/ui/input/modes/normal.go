package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"picbrowse/internal/ui/input/types"
)

// Binding pairs a key binding with the key name the browser session understands
type Binding struct {
	Key  key.Binding
	Name string
}

type NormalMode struct {
	named    []Binding
	search   key.Binding
	captions key.Binding
	inspect  key.Binding
	help     key.Binding
	quit     key.Binding
}

func NewNormalMode(named []Binding, search, captions, inspect, help, quit key.Binding) *NormalMode {
	return &NormalMode{
		named:    named,
		search:   search,
		captions: captions,
		inspect:  inspect,
		help:     help,
		quit:     quit,
	}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type == tea.KeyCtrlC {
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	switch {
	case key.Matches(msg, m.search):
		actions := []types.Action{types.KeyAction{Name: "slash"}}
		if ctx.FolderMode() {
			actions = append(actions, types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.Query()})
		}
		return actions, true
	case key.Matches(msg, m.quit):
		return []types.Action{types.QuitAction{}}, true
	case key.Matches(msg, m.help):
		return []types.Action{types.ToggleHelpAction{}}, true
	case key.Matches(msg, m.captions):
		return []types.Action{types.ToggleCaptionsAction{}}, true
	case ctx.HasSelection() && key.Matches(msg, m.inspect):
		return []types.Action{types.InspectAction{}}, true
	}

	for _, b := range m.named {
		if key.Matches(msg, b.Key) {
			return []types.Action{types.KeyAction{Name: b.Name}}, true
		}
	}

	// unbound printable keys go to the host under their own name
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		return []types.Action{types.KeyAction{Name: string(msg.Runes)}}, true
	}
	return nil, false
}
