package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"picbrowse/internal/domain"
)

const ellipsis = "…"

// TileRenderer draws image tiles, folder rows and group headers
type TileRenderer struct {
	styles *Styles
}

func NewTileRenderer(styles *Styles) *TileRenderer {
	return &TileRenderer{styles: styles}
}

// TileOptions carry the per-frame state a tile depends on
type TileOptions struct {
	Selected     bool
	ActivePane   bool
	ShowCaptions bool
	Words        []string
}

// RenderImage draws an image tile of exactly width x height cells. The top
// rows stand in for the thumbnail; the last rows hold the name and caption.
func (t *TileRenderer) RenderImage(e *domain.Entry, width, height int, opts TileOptions) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	inner := width - 1

	var text []string
	text = append(text, t.highlight(Truncate(e.Title(), inner), opts.Words))
	if opts.ShowCaptions && e.Caption && e.Dimensions != "" {
		text = append(text, t.styles.Caption.Render(Truncate(e.Dimensions, inner)))
	}

	thumbRows := height - len(text)
	if thumbRows < 0 {
		thumbRows = 0
		text = text[:height]
	}

	lines := make([]string, 0, height)
	for i := 0; i < thumbRows; i++ {
		lines = append(lines, t.thumbRow(e, inner))
	}
	lines = append(lines, text...)

	style := lipgloss.NewStyle().Width(width).Height(height).MaxWidth(width).MaxHeight(height)
	switch {
	case opts.Selected && opts.ActivePane:
		style = style.Inherit(t.styles.TileSelected)
	case opts.Selected:
		style = style.Inherit(t.styles.TileInactive)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (t *TileRenderer) thumbRow(e *domain.Entry, width int) string {
	switch e.ThumbState {
	case domain.ThumbLoaded:
		return t.styles.Thumb.Render(strings.Repeat("▓", width))
	case domain.ThumbPending:
		return t.styles.ThumbPending.Render(strings.Repeat("░", width))
	default:
		return strings.Repeat(" ", width)
	}
}

// RenderFolder draws one folder row
func (t *TileRenderer) RenderFolder(e *domain.Entry, width int, opts TileOptions) string {
	if width <= 0 {
		return ""
	}

	marker := "▸ "
	style := t.styles.Folder
	switch {
	case e.IsCommand():
		marker = "· "
		style = t.styles.FolderCommand
	case !e.Selectable && !e.Clickable:
		marker = "  "
		style = t.styles.FolderPlain
	case e.Clickable:
		marker = "» "
	}

	label := e.Title()
	if e.Icon != "" && e.ThumbState == domain.ThumbLoaded && runewidth.StringWidth(e.Icon) <= 2 {
		marker = runewidth.FillRight(e.Icon, 2)
	}
	text := marker + Truncate(label, width-runewidth.StringWidth(marker))

	line := lipgloss.NewStyle().Width(width).MaxWidth(width)
	switch {
	case opts.Selected && opts.ActivePane:
		line = line.Inherit(t.styles.TileSelected)
	case opts.Selected:
		line = line.Inherit(t.styles.TileInactive)
	default:
		line = line.Inherit(style)
	}
	return line.Render(t.highlight(text, opts.Words))
}

// RenderHeader draws a group header line
func (t *TileRenderer) RenderHeader(label string, width int) string {
	if width <= 0 {
		return ""
	}
	return t.styles.Header.Width(width).MaxWidth(width).Render(Truncate(label, width))
}

// highlight marks the first occurrence of each search word
func (t *TileRenderer) highlight(text string, words []string) string {
	if len(words) == 0 {
		return text
	}
	lower := strings.ToLower(text)
	if len(lower) != len(text) {
		return text
	}

	marked := make([]bool, len(text))
	found := false
	for _, w := range words {
		if i := strings.Index(lower, w); i >= 0 {
			for j := i; j < i+len(w); j++ {
				marked[j] = true
			}
			found = true
		}
	}
	if !found {
		return text
	}

	var b strings.Builder
	start := 0
	for start < len(text) {
		end := start
		for end < len(text) && marked[end] == marked[start] {
			end++
		}
		if marked[start] {
			b.WriteString(t.styles.Highlight.Render(text[start:end]))
		} else {
			b.WriteString(text[start:end])
		}
		start = end
	}
	return b.String()
}

// Truncate shortens s to fit width cells
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, ellipsis)
}
