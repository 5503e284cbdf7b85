package commands

import (
	"picbrowse/internal/domain"
)

// Session is the inbound surface commands are applied to
type Session interface {
	ChangeFolder(path string)
	UpsertFolderListing(categories []domain.FolderCategory, crumbs []domain.Crumb)
	AddGroup(label string)
	UpsertImage(spec domain.ImageSpec)
	SetThumbnail(path, url string)
	SetFolderThumbnail(path, url string)
	RemoveEntry(path string)
	SetEntryMetadata(path string, info domain.EntryInfo)
	SetEntryCount(totals domain.Totals)
	SetMode(mode domain.Mode)
	SetSubmode(submode domain.Submode)
	SetThumbHeight(px int)
	ShowError(text string)
	ShowSpinner(text string)
	HandleKey(key string)
	SetSearchVisibility(visible bool, opts domain.SearchOptions)
	SetQuery(text string)
	Activate(path string)
	SetCaptions(visible bool)
	Resize(width, height int)
	Scrolled(pane domain.Pane, top int)
}

// Command is one decoded inbound instruction
type Command interface {
	Verb() string
	Apply(s Session)
}

// ChangeFolderCommand starts browsing another folder
type ChangeFolderCommand struct {
	Path string
}

func (c ChangeFolderCommand) Verb() string    { return VerbChangeFolder }
func (c ChangeFolderCommand) Apply(s Session) { s.ChangeFolder(c.Path) }

// FolderListingCommand replaces folder categories and breadcrumbs
type FolderListingCommand struct {
	Categories []domain.FolderCategory `json:"categories"`
	Crumbs     []domain.Crumb          `json:"crumbs"`
}

func (c FolderListingCommand) Verb() string { return VerbFolders }
func (c FolderListingCommand) Apply(s Session) {
	s.UpsertFolderListing(c.Categories, c.Crumbs)
}

// GroupCommand appends an image group header
type GroupCommand struct {
	Label string
}

func (c GroupCommand) Verb() string    { return VerbGroup }
func (c GroupCommand) Apply(s Session) { s.AddGroup(c.Label) }

// ImageCommand adds or updates an image placeholder
type ImageCommand struct {
	Spec domain.ImageSpec
}

func (c ImageCommand) Verb() string    { return VerbImage }
func (c ImageCommand) Apply(s Session) { s.UpsertImage(c.Spec) }

// ThumbCommand delivers a thumbnail for an image, or for a folder when Folder is set
type ThumbCommand struct {
	Path   string `json:"path"`
	Thumb  string `json:"thumb"`
	Folder bool   `json:"-"`
}

func (c ThumbCommand) Verb() string {
	if c.Folder {
		return VerbFolderThumb
	}
	return VerbThumb
}

func (c ThumbCommand) Apply(s Session) {
	if c.Folder {
		s.SetFolderThumbnail(c.Path, c.Thumb)
		return
	}
	s.SetThumbnail(c.Path, c.Thumb)
}

// RemoveCommand removes an entry
type RemoveCommand struct {
	Path string
}

func (c RemoveCommand) Verb() string    { return VerbRemove }
func (c RemoveCommand) Apply(s Session) { s.RemoveEntry(c.Path) }

// InfoCommand reports the metadata of an image
type InfoCommand struct {
	Path string
	Info domain.EntryInfo
}

func (c InfoCommand) Verb() string    { return VerbInfo }
func (c InfoCommand) Apply(s Session) { s.SetEntryMetadata(c.Path, c.Info) }

// CountCommand reports folder totals
type CountCommand struct {
	Totals domain.Totals
}

func (c CountCommand) Verb() string    { return VerbCount }
func (c CountCommand) Apply(s Session) { s.SetEntryCount(c.Totals) }

type ModeCommand struct {
	Mode domain.Mode
}

func (c ModeCommand) Verb() string    { return VerbMode }
func (c ModeCommand) Apply(s Session) { s.SetMode(c.Mode) }

type SubmodeCommand struct {
	Submode domain.Submode
}

func (c SubmodeCommand) Verb() string    { return VerbSubmode }
func (c SubmodeCommand) Apply(s Session) { s.SetSubmode(c.Submode) }

type ThumbHeightCommand struct {
	Height int
}

func (c ThumbHeightCommand) Verb() string    { return VerbThumbHeight }
func (c ThumbHeightCommand) Apply(s Session) { s.SetThumbHeight(c.Height) }

// StatusCommand shows an error or a spinner in the status line
type StatusCommand struct {
	Text    string
	Spinner bool
}

func (c StatusCommand) Verb() string {
	if c.Spinner {
		return VerbSpinner
	}
	return VerbError
}

func (c StatusCommand) Apply(s Session) {
	if c.Spinner {
		s.ShowSpinner(c.Text)
		return
	}
	s.ShowError(c.Text)
}

type KeyCommand struct {
	Key string
}

func (c KeyCommand) Verb() string    { return VerbKey }
func (c KeyCommand) Apply(s Session) { s.HandleKey(c.Key) }

// SearchVisibleCommand shows or hides the search field
type SearchVisibleCommand struct {
	Visible bool   `json:"visible"`
	Query   string `json:"query"`
}

func (c SearchVisibleCommand) Verb() string { return VerbSearchVisible }
func (c SearchVisibleCommand) Apply(s Session) {
	s.SetSearchVisibility(c.Visible, domain.SearchOptions{Query: c.Query})
}

// SearchCommand replaces the search text
type SearchCommand struct {
	Text string
}

func (c SearchCommand) Verb() string    { return VerbSearch }
func (c SearchCommand) Apply(s Session) { s.SetQuery(c.Text) }

// OpenCommand activates an entry as a click would
type OpenCommand struct {
	Path string
}

func (c OpenCommand) Verb() string    { return VerbOpen }
func (c OpenCommand) Apply(s Session) { s.Activate(c.Path) }

type CaptionsCommand struct {
	Visible bool
}

func (c CaptionsCommand) Verb() string    { return VerbCaptions }
func (c CaptionsCommand) Apply(s Session) { s.SetCaptions(c.Visible) }

type ResizeCommand struct {
	Width  int
	Height int
}

func (c ResizeCommand) Verb() string    { return VerbResize }
func (c ResizeCommand) Apply(s Session) { s.Resize(c.Width, c.Height) }

// ScrollCommand reports a scroll performed by the renderer
type ScrollCommand struct {
	Pane domain.Pane
	Top  int
}

func (c ScrollCommand) Verb() string    { return VerbScroll }
func (c ScrollCommand) Apply(s Session) { s.Scrolled(c.Pane, c.Top) }
