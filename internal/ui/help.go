package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"picbrowse/internal/domain"
	"picbrowse/internal/ui/input"
)

// HelpRenderer produces the content shown in the pager
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
		key:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

var helpSections = []string{"Navigation", "Paging", "Browsing", "Other"}

// RenderHelpContent lists every key binding, one section per help column
func (r *HelpRenderer) RenderHelpContent() string {
	var help strings.Builder

	help.WriteString(r.title.Render("picbrowse Help"))
	help.WriteString("\n")

	for i, column := range input.Keys.FullHelp() {
		name := "Other"
		if i < len(helpSections) {
			name = helpSections[i]
		}
		help.WriteString(r.section.Render(name))
		help.WriteString("\n")
		for _, b := range column {
			help.WriteString(r.binding(b))
		}
	}

	help.WriteString("\n")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  Search words match anywhere in a name, in any order: \"sun set\""))
	return help.String()
}

func (r *HelpRenderer) binding(b key.Binding) string {
	h := b.Help()
	return fmt.Sprintf("  %s  %s\n", r.key.Render(fmt.Sprintf("%-8s", h.Key)), r.desc.Render(h.Desc))
}

// RenderMetadata lists an entry's metadata for the inspector
func (r *HelpRenderer) RenderMetadata(e *domain.Entry) string {
	var out strings.Builder

	out.WriteString(r.title.Render(e.Title()))
	out.WriteString("\n")
	if e.Path != "" {
		out.WriteString(fmt.Sprintf("  %s  %s\n", r.key.Render("Path"), r.desc.Render(e.Path)))
	}
	if e.Dimensions != "" {
		out.WriteString(fmt.Sprintf("  %s  %s\n", r.key.Render("Dimensions"), r.desc.Render(e.Dimensions)))
	}

	keys := make([]string, 0, len(e.Metadata))
	for k := range e.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out.WriteString(fmt.Sprintf("  %s  %s\n", r.key.Render(k), r.desc.Render(e.Metadata[k])))
	}
	return out.String()
}

// Pager shows long content in ov while the program is suspended
type Pager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

func NewPager() *Pager {
	return &Pager{}
}

func (p *Pager) SetProgram(program *tea.Program) {
	p.program = program
}

// Show runs ov on content and restores the program afterwards
func (p *Pager) Show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return fmt.Errorf("failed to release terminal: %w", err)
	}
	defer func() {
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("failed to open pager: %w", err)
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
