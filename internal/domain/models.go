package domain

import "strings"

// CommandPrefix marks pseudo-entries that trigger a host command instead of opening a path
const CommandPrefix = "command:"

// EntryKind tags an entry as an image or a folder
type EntryKind int

const (
	KindImage EntryKind = iota
	KindFolder
)

func (k EntryKind) String() string {
	if k == KindFolder {
		return "folder"
	}
	return "image"
}

// Pane is one of the two independently navigable lists
type Pane int

const (
	PaneItems Pane = iota
	PaneFolders
)

func (p Pane) String() string {
	if p == PaneFolders {
		return "folders"
	}
	return "items"
}

// Kind returns the entry kind listed in the pane
func (p Pane) Kind() EntryKind {
	if p == PaneFolders {
		return KindFolder
	}
	return KindImage
}

// Other returns the opposite pane
func (p Pane) Other() Pane {
	if p == PaneFolders {
		return PaneItems
	}
	return PaneFolders
}

// PaneOf returns the pane an entry kind is listed in
func PaneOf(kind EntryKind) Pane {
	if kind == KindFolder {
		return PaneFolders
	}
	return PaneItems
}

// ThumbnailState tracks lazy thumbnail loading for an entry
type ThumbnailState int

const (
	ThumbNone ThumbnailState = iota
	ThumbPending
	ThumbLoaded
)

// Entry is a single selectable or clickable unit in the browser
type Entry struct {
	Kind        EntryKind
	Path        string
	DisplayName string // file name, searched
	Label       string // rendered text when it differs from the file name
	Group       string // group label (image group or folder category)
	Dimensions  string
	Metadata    map[string]string // file metadata, images only
	ThumbWidth  float64
	Thumbnail   string
	ThumbState  ThumbnailState
	Icon        string
	Caption     bool
	Selectable  bool
	Clickable   bool

	// derived by the search filter
	MatchesSearch bool
}

// Key identifies the entry within its kind. Entries without a path are
// placeholders keyed by their group and label.
func (e *Entry) Key() string {
	if e.Path != "" {
		return e.Path
	}
	return "\x00" + e.Group + "\x00" + e.Label
}

// Title returns the text to render for the entry
func (e *Entry) Title() string {
	if e.Label != "" {
		return e.Label
	}
	return e.DisplayName
}

// IsCommand reports whether the entry is a command pseudo-entry
func (e *Entry) IsCommand() bool {
	return strings.HasPrefix(e.Path, CommandPrefix)
}

// CommandPayload returns the text after the command prefix, or "" for regular entries
func (e *Entry) CommandPayload() string {
	if !e.IsCommand() {
		return ""
	}
	return strings.TrimPrefix(e.Path, CommandPrefix)
}

// Navigable reports whether keyboard navigation may land on the entry
func (e *Entry) Navigable() bool {
	return e != nil && e.Selectable && e.MatchesSearch
}

// Pane returns the pane the entry is listed in
func (e *Entry) Pane() Pane {
	return PaneOf(e.Kind)
}

// Group is a named bucket of entries used for visibility cascading
type Group struct {
	Kind    EntryKind
	Label   string
	Visible bool
	First   bool // first visible image group
	Inline  bool // folder category rendered without labels
}

// Crumb is one part of the breadcrumb trail above the folder listing
type Crumb struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// FolderItem is a folder (or command pseudo-entry) inside a category
type FolderItem struct {
	Label    string `json:"label"`
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Icon     string `json:"icon"`
	NoFocus  bool   `json:"nofocus"`
}

// FolderCategory is a labelled list of folder items
type FolderCategory struct {
	Label    string       `json:"label"`
	NoLabels bool         `json:"no_labels"`
	Items    []FolderItem `json:"items"`
}

// ImageSpec describes an image placeholder pushed by the host
type ImageSpec struct {
	Path       string  `json:"path"`
	Name       string  `json:"name"`
	Selected   bool    `json:"selected"`
	Caption    bool    `json:"caption"`
	Group      string  `json:"group"`
	Thumb      string  `json:"thumb"`
	ThumbWidth float64 `json:"thumb_width"`
}

// EntryInfo is the metadata the host reports for an entry
type EntryInfo struct {
	Filename   string            `json:"filename"`
	Dimensions string            `json:"dimensions"`
	ThumbWidth float64           `json:"thumb_width"`
	Fields     map[string]string `json:"fields"`
}

// Totals is the folder summary reported by the host
type Totals struct {
	Count      int    `json:"count"`
	FolderSize string `json:"size"`
	LatestDate string `json:"latest"`
}

// SearchOptions accompany a search visibility change
type SearchOptions struct {
	Query string `json:"query"`
}

// Mode is the top-level host mode
type Mode string

const (
	ModeImage  Mode = "image"
	ModeFolder Mode = "folder"
)

// Submode selects the metadata inspector inside folder mode
type Submode string

const (
	SubmodeBrowse Submode = "browse"
	SubmodeExif   Submode = "exif"
)
