package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Crumb         lipgloss.Style
	CrumbSep      lipgloss.Style
	Header        lipgloss.Style
	Tile          lipgloss.Style
	TileSelected  lipgloss.Style
	TileInactive  lipgloss.Style
	Folder        lipgloss.Style
	FolderCommand lipgloss.Style
	FolderPlain   lipgloss.Style
	Thumb         lipgloss.Style
	ThumbPending  lipgloss.Style
	Caption       lipgloss.Style
	Separator     lipgloss.Style
	Highlight     lipgloss.Style
	Search        lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	Dim           lipgloss.Style
	MetaKey       lipgloss.Style
	MetaValue     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Crumb:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		CrumbSep:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Header:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Tile:          lipgloss.NewStyle(),
		TileSelected:  lipgloss.NewStyle().Background(lipgloss.Color("33")).Foreground(lipgloss.Color("231")),
		TileInactive:  lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Folder:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		FolderCommand: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		FolderPlain:   lipgloss.NewStyle().Faint(true),
		Thumb:         lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		ThumbPending:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Caption:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Separator:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Search:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		Dim:           lipgloss.NewStyle().Faint(true),
		MetaKey:       lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		MetaValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}
