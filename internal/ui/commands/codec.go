package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"picbrowse/internal/domain"
)

// Wire verbs
const (
	VerbChangeFolder  = "change-folder"
	VerbFolders       = "folders"
	VerbGroup         = "group"
	VerbImage         = "image"
	VerbThumb         = "thumb"
	VerbFolderThumb   = "folder-thumb"
	VerbRemove        = "remove"
	VerbInfo          = "info"
	VerbCount         = "count"
	VerbMode          = "mode"
	VerbSubmode       = "submode"
	VerbThumbHeight   = "thumb-height"
	VerbError         = "error"
	VerbSpinner       = "spinner"
	VerbKey           = "key"
	VerbSearchVisible = "search-visible"
	VerbSearch        = "search"
	VerbOpen          = "open"
	VerbCaptions      = "captions"
	VerbResize        = "resize"
	VerbScroll        = "scroll"

	// outbound only
	VerbSelect          = "select"
	VerbPriority        = "priority"
	VerbPriorityFolders = "priority-folders"
	VerbHandleKey       = "handle-key"
)

var (
	ErrMissingVerb  = errors.New("missing verb")
	ErrUnknownVerb  = errors.New("unknown verb")
	ErrUnknownEvent = errors.New("unknown event")
)

// Split separates a line into its verb and payload
func Split(line string) (verb, payload string, err error) {
	line = strings.TrimRight(line, "\r\n")
	verb, payload, ok := strings.Cut(line, ":")
	if !ok || verb == "" {
		return "", "", fmt.Errorf("failed to split %q: %w", line, ErrMissingVerb)
	}
	return verb, payload, nil
}

// Decode parses one inbound line
func Decode(line string) (Command, error) {
	verb, payload, err := Split(line)
	if err != nil {
		return nil, err
	}

	switch verb {
	case VerbChangeFolder:
		return ChangeFolderCommand{Path: payload}, nil

	case VerbFolders:
		var c FolderListingCommand
		if err := decodeJSON(verb, payload, &c); err != nil {
			return nil, err
		}
		return c, nil

	case VerbGroup:
		return GroupCommand{Label: payload}, nil

	case VerbImage:
		var spec domain.ImageSpec
		if err := decodeJSON(verb, payload, &spec); err != nil {
			return nil, err
		}
		if spec.Path == "" {
			return nil, fmt.Errorf("failed to decode %s: missing path", verb)
		}
		return ImageCommand{Spec: spec}, nil

	case VerbThumb, VerbFolderThumb:
		var c ThumbCommand
		if err := decodeJSON(verb, payload, &c); err != nil {
			return nil, err
		}
		c.Folder = verb == VerbFolderThumb
		return c, nil

	case VerbRemove:
		return RemoveCommand{Path: payload}, nil

	case VerbInfo:
		var raw struct {
			Path string `json:"path"`
			domain.EntryInfo
		}
		if err := decodeJSON(verb, payload, &raw); err != nil {
			return nil, err
		}
		return InfoCommand{Path: raw.Path, Info: raw.EntryInfo}, nil

	case VerbCount:
		var totals domain.Totals
		if err := decodeJSON(verb, payload, &totals); err != nil {
			return nil, err
		}
		return CountCommand{Totals: totals}, nil

	case VerbMode:
		switch m := domain.Mode(payload); m {
		case domain.ModeImage, domain.ModeFolder:
			return ModeCommand{Mode: m}, nil
		}
		return nil, fmt.Errorf("failed to decode %s: invalid mode %q", verb, payload)

	case VerbSubmode:
		switch m := domain.Submode(payload); m {
		case domain.SubmodeBrowse, domain.SubmodeExif:
			return SubmodeCommand{Submode: m}, nil
		}
		return nil, fmt.Errorf("failed to decode %s: invalid submode %q", verb, payload)

	case VerbThumbHeight:
		px, err := strconv.Atoi(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", verb, err)
		}
		return ThumbHeightCommand{Height: px}, nil

	case VerbError:
		return StatusCommand{Text: payload}, nil

	case VerbSpinner:
		return StatusCommand{Text: payload, Spinner: true}, nil

	case VerbKey:
		if payload == "" {
			return nil, fmt.Errorf("failed to decode %s: empty key", verb)
		}
		return KeyCommand{Key: payload}, nil

	case VerbSearchVisible:
		var c SearchVisibleCommand
		if err := decodeJSON(verb, payload, &c); err != nil {
			return nil, err
		}
		return c, nil

	case VerbSearch:
		return SearchCommand{Text: payload}, nil

	case VerbOpen:
		return OpenCommand{Path: payload}, nil

	case VerbCaptions:
		v, err := strconv.ParseBool(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", verb, err)
		}
		return CaptionsCommand{Visible: v}, nil

	case VerbResize:
		w, h, ok := strings.Cut(payload, "x")
		if !ok {
			return nil, fmt.Errorf("failed to decode %s: expected <w>x<h>, got %q", verb, payload)
		}
		width, err := strconv.Atoi(w)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s width: %w", verb, err)
		}
		height, err := strconv.Atoi(h)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s height: %w", verb, err)
		}
		return ResizeCommand{Width: width, Height: height}, nil

	case VerbScroll:
		name, top, ok := strings.Cut(payload, ":")
		if !ok {
			return nil, fmt.Errorf("failed to decode %s: expected <pane>:<top>, got %q", verb, payload)
		}
		pane, err := ParsePane(name)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", verb, err)
		}
		n, err := strconv.Atoi(top)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s offset: %w", verb, err)
		}
		return ScrollCommand{Pane: pane, Top: n}, nil
	}

	return nil, fmt.Errorf("failed to decode %q: %w", verb, ErrUnknownVerb)
}

// ParsePane parses a pane name as used on the wire
func ParsePane(name string) (domain.Pane, error) {
	switch name {
	case domain.PaneItems.String():
		return domain.PaneItems, nil
	case domain.PaneFolders.String():
		return domain.PaneFolders, nil
	}
	return 0, fmt.Errorf("invalid pane %q", name)
}

func decodeJSON(verb, payload string, v interface{}) error {
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", verb, err)
	}
	return nil
}

// Encode renders an outbound notification as a wire line
func Encode(event domain.DomainEvent) (string, error) {
	switch e := event.(type) {
	case domain.SelectionChangedEvent:
		return VerbSelect + ":" + e.Path, nil

	case domain.SearchChangedEvent:
		return VerbSearch + ":" + e.Query, nil

	case domain.PriorityRequestedEvent:
		verb := VerbPriority
		if e.Kind == domain.KindFolder {
			verb = VerbPriorityFolders
		}
		paths := e.Paths
		if paths == nil {
			paths = []string{}
		}
		data, err := json.Marshal(paths)
		if err != nil {
			return "", fmt.Errorf("failed to encode %s: %w", verb, err)
		}
		return verb + ":" + string(data), nil

	case domain.NavigationRequestedEvent:
		return VerbHandleKey + ":" + e.Key, nil

	case domain.FolderEnteredEvent:
		return VerbOpen + ":" + e.Path, nil
	}

	return "", fmt.Errorf("failed to encode %T: %w", event, ErrUnknownEvent)
}

// Format renders an inbound command line, as a host writes it. String
// payloads are sent as is, anything else as JSON.
func Format(verb string, payload interface{}) (string, error) {
	if s, ok := payload.(string); ok {
		return verb + ":" + s, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", verb, err)
	}
	return verb + ":" + string(data), nil
}
