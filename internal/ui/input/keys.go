package input

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap lists the bindings shown in the footer and the help pager
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Tab      key.Binding
	Open     key.Binding
	Back     key.Binding
	Search   key.Binding
	Escape   key.Binding
	Captions key.Binding
	Inspect  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// Keys is the default key map
var Keys = KeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
	PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home/g", "first")),
	End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "last")),
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:     key.NewBinding(key.WithKeys("backspace"), key.WithHelp("bksp", "parent")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Captions: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "captions")),
	Inspect:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "metadata")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Open, k.Back, k.Search, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.PageUp, k.PageDown, k.Home, k.End},
		{k.Tab, k.Open, k.Back, k.Escape},
		{k.Search, k.Captions, k.Inspect, k.Help, k.Quit},
	}
}
