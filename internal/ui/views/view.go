package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"picbrowse/internal/domain"
	"picbrowse/internal/ui/layout"
)

// PaneState is one laid out pane and its scroll position
type PaneState struct {
	Placements []layout.Placement
	Viewport   layout.Viewport
	Width      int
	Active     bool
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Folder  string
	Crumbs  []domain.Crumb
	Mode    domain.Mode
	Submode domain.Submode

	Items   PaneState
	Folders PaneState
	Current *domain.Entry

	ShowCaptions  bool
	SearchVisible bool
	SearchInput   string // rendered text input
	Words         []string
	MatchCount    int

	StatusText   string
	StatusDetail string
	StatusError  bool
	Spinner      string // rendered spinner, empty when idle
	Progress     int
	Totals       domain.Totals

	HelpView string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
	tiles  *TileRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles: styles,
		tiles:  NewTileRenderer(styles),
	}
}

// ChromeHeight is the number of rows around the panes: title, status, help
// and the search field when shown
func ChromeHeight(searchVisible bool) int {
	if searchVisible {
		return 4
	}
	return 3
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	bodyHeight := state.Height - ChromeHeight(state.SearchVisible)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	if state.Mode == domain.ModeFolder {
		body = r.renderBrowser(state, bodyHeight)
	} else {
		body = r.renderImage(state, bodyHeight)
	}

	rows := []string{r.renderTitle(state), body}
	if state.SearchVisible {
		rows = append(rows, r.renderSearch(state))
	}
	rows = append(rows, r.renderStatus(state), state.HelpView)
	return strings.Join(rows, "\n")
}

func (r *Renderer) renderTitle(state ViewState) string {
	parts := []string{r.styles.Title.Render("picbrowse")}
	if len(state.Crumbs) > 0 {
		names := make([]string, len(state.Crumbs))
		for i, c := range state.Crumbs {
			names[i] = r.styles.Crumb.Render(c.Name)
		}
		parts = append(parts, strings.Join(names, r.styles.CrumbSep.Render(" › ")))
	} else if state.Folder != "" {
		parts = append(parts, r.styles.Crumb.Render(state.Folder))
	}
	return clip(strings.Join(parts, "  "), state.Width)
}

func (r *Renderer) renderBrowser(state ViewState, height int) string {
	left := r.renderFolders(state, height)
	if state.Submode == domain.SubmodeExif {
		left = r.renderMetadata(state.Current, state.Folders.Width, height)
	}
	sep := r.styles.Separator.Render(strings.TrimRight(strings.Repeat("│\n", height), "\n"))
	right := r.renderItems(state, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, sep, right)
}

func (r *Renderer) renderFolders(state ViewState, height int) string {
	pane := state.Folders
	return r.renderPane(pane, height, func(p layout.Placement) string {
		if p.Header != nil {
			return r.tiles.RenderHeader(p.Header.Label, p.Rect.W)
		}
		return r.tiles.RenderFolder(p.Entry, p.Rect.W, r.tileOptions(state, pane, p.Entry))
	})
}

func (r *Renderer) renderItems(state ViewState, height int) string {
	pane := state.Items
	return r.renderPane(pane, height, func(p layout.Placement) string {
		if p.Header != nil {
			return r.tiles.RenderHeader(p.Header.Label, p.Rect.W)
		}
		return r.tiles.RenderImage(p.Entry, p.Rect.W, p.Rect.H, r.tileOptions(state, pane, p.Entry))
	})
}

func (r *Renderer) tileOptions(state ViewState, pane PaneState, e *domain.Entry) TileOptions {
	return TileOptions{
		Selected:     e == state.Current,
		ActivePane:   pane.Active,
		ShowCaptions: state.ShowCaptions,
		Words:        state.Words,
	}
}

// renderPane draws the placements intersecting the viewport, row by row
func (r *Renderer) renderPane(pane PaneState, height int, draw func(layout.Placement) string) string {
	vp := pane.Viewport
	lines := make([]string, height)

	rows := make(map[int][]layout.Placement)
	for _, p := range pane.Placements {
		if p.Rect.Bottom() <= vp.Top || p.Rect.Y >= vp.Top+height {
			continue
		}
		rows[p.Rect.Y] = append(rows[p.Rect.Y], p)
	}
	ys := make([]int, 0, len(rows))
	for y := range rows {
		ys = append(ys, y)
	}
	sort.Ints(ys)

	for _, y := range ys {
		row := rows[y]
		var cells []string
		x := 0
		for _, p := range row {
			if gap := p.Rect.X - x; gap > 0 {
				cells = append(cells, strings.Repeat(" ", gap))
			}
			cells = append(cells, draw(p))
			x = p.Rect.X + p.Rect.W
		}
		block := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		for i, line := range strings.Split(block, "\n") {
			if ly := y + i - vp.Top; ly >= 0 && ly < height {
				lines[ly] = line
			}
		}
	}

	fill := lipgloss.NewStyle().Width(pane.Width).MaxWidth(pane.Width)
	for i, line := range lines {
		lines[i] = fill.Render(line)
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderMetadata(e *domain.Entry, width, height int) string {
	box := lipgloss.NewStyle().Width(width).Height(height).MaxWidth(width).MaxHeight(height)
	if e == nil {
		return box.Render(r.styles.Dim.Render("nothing selected"))
	}

	lines := []string{r.styles.Header.Render(Truncate(e.Title(), width))}
	if e.Dimensions != "" {
		lines = append(lines, r.metaLine("Dimensions", e.Dimensions, width))
	}
	keys := make([]string, 0, len(e.Metadata))
	for k := range e.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, r.metaLine(k, e.Metadata[k], width))
	}
	return box.Render(strings.Join(lines, "\n"))
}

func (r *Renderer) metaLine(key, value string, width int) string {
	k := Truncate(key, width/2)
	v := Truncate(value, width-lipgloss.Width(k)-2)
	return r.styles.MetaKey.Render(k) + "  " + r.styles.MetaValue.Render(v)
}

// renderImage shows the current image's details while the host displays it
func (r *Renderer) renderImage(state ViewState, height int) string {
	return r.renderMetadata(state.Current, state.Width, height)
}

func (r *Renderer) renderSearch(state ViewState) string {
	label := r.styles.Search.Render("Search: ")
	count := r.styles.Dim.Render(fmt.Sprintf("  (%d)", state.MatchCount))
	return clip(label+state.SearchInput+count, state.Width)
}

// clip cuts a styled line to width cells
func clip(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}

func (r *Renderer) renderStatus(state ViewState) string {
	var parts []string
	switch {
	case state.StatusError:
		parts = append(parts, r.styles.StatusError.Render(state.StatusText))
	case state.Spinner != "":
		parts = append(parts, state.Spinner+" "+r.styles.StatusLoading.Render(state.StatusText))
	case state.StatusText != "":
		parts = append(parts, r.styles.Status.Render(state.StatusText))
	}
	if state.StatusDetail != "" {
		parts = append(parts, r.styles.Dim.Render(state.StatusDetail))
	}
	if state.Progress > 0 {
		parts = append(parts, r.styles.StatusLoading.Render(fmt.Sprintf("loading %d%%", state.Progress)))
	}
	if state.Totals.Count > 0 {
		summary := fmt.Sprintf("%d images", state.Totals.Count)
		if state.Totals.FolderSize != "" {
			summary += ", " + state.Totals.FolderSize
		}
		if state.Totals.LatestDate != "" {
			summary += ", latest " + state.Totals.LatestDate
		}
		parts = append(parts, r.styles.Dim.Render(summary))
	}
	return clip(strings.Join(parts, "  "), state.Width)
}
