package types

// KeyAction hands a named key to the browser session
type KeyAction struct {
	Name string
}

func (a KeyAction) Type() string { return "key" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // initial text for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// ScrollAction scrolls the pane under the pointer without moving the selection
type ScrollAction struct {
	Folders bool
	Delta   int
}

func (a ScrollAction) Type() string { return "scroll" }

type ToggleCaptionsAction struct{}

func (a ToggleCaptionsAction) Type() string { return "toggle_captions" }

// InspectAction opens the metadata of the selection in a pager
type InspectAction struct{}

func (a InspectAction) Type() string { return "inspect" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
