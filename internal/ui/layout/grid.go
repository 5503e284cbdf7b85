package layout

import (
	"picbrowse/internal/domain"
	"picbrowse/internal/logic"
)

// Surface sizes one pane of a Grid
type Surface struct {
	Width        int
	Height       int
	TileWidth    int // folders: 0 means one entry per row
	TileHeight   int
	InlineWidth  int // tile width inside inline folder categories
	GapX         int
	GapY         int
	HeaderHeight int
	// use the host-reported thumbnail width of each image
	UseThumbWidth bool
}

// Placement is one laid out box. Header placements carry the group instead of an entry.
type Placement struct {
	Rect   Rect
	Entry  *domain.Entry
	Header *domain.Group
}

type surfaceState struct {
	Surface
	top        int
	content    int
	placements []Placement
}

// Grid is a flow layout computed from the entry registry. Group headers take
// a full row, images flow left to right and folders stack one per row.
type Grid struct {
	store    logic.EntryStore
	surfaces map[domain.Pane]*surfaceState
	rects    map[key]Rect
	dirty    bool

	foldersWidth int
}

func NewGrid(store logic.EntryStore, items, folders Surface) *Grid {
	return &Grid{
		store: store,
		surfaces: map[domain.Pane]*surfaceState{
			domain.PaneItems:   {Surface: items},
			domain.PaneFolders: {Surface: folders},
		},
		rects:        make(map[key]Rect),
		dirty:        true,
		foldersWidth: folders.Width,
	}
}

// Reflow marks the cached layout stale
func (g *Grid) Reflow() {
	g.dirty = true
}

// Resize changes a surface's size
func (g *Grid) Resize(pane domain.Pane, width, height int) {
	s := g.surfaces[pane]
	s.Width = width
	s.Height = height
	g.dirty = true
}

// SetSize resizes the whole browser. The folders surface keeps its width and
// the items surface takes the rest.
func (g *Grid) SetSize(width, height int) {
	folders := g.surfaces[domain.PaneFolders]
	items := g.surfaces[domain.PaneItems]
	fw := g.foldersWidth
	if fw > width {
		fw = width
	}
	folders.Width, folders.Height = fw, height
	items.Width, items.Height = width-fw, height
	g.dirty = true
}

// SetThumbHeight resizes image tiles on surfaces that follow the thumbnail size
func (g *Grid) SetThumbHeight(px int) {
	s := g.surfaces[domain.PaneItems]
	if !s.UseThumbWidth || px <= 0 {
		return
	}
	s.TileHeight = px
	g.dirty = true
}

func (g *Grid) Surface(pane domain.Pane) Surface {
	return g.surfaces[pane].Surface
}

// Placements returns the boxes of a pane in document order
func (g *Grid) Placements(pane domain.Pane) []Placement {
	g.ensure()
	return g.surfaces[pane].placements
}

func (g *Grid) PositionOf(e *domain.Entry) (Rect, bool) {
	if e == nil {
		return Rect{}, false
	}
	g.ensure()
	r, ok := g.rects[key{e.Kind, e.Key()}]
	return r, ok
}

func (g *Grid) IsFullyVisible(e *domain.Entry, vp Viewport) bool {
	r, ok := g.PositionOf(e)
	return ok && vp.Contains(r)
}

func (g *Grid) Viewport(pane domain.Pane) Viewport {
	g.ensure()
	s := g.surfaces[pane]
	vp := Viewport{Top: s.top, Height: s.Height, ContentHeight: s.content}
	vp.Top = vp.Clamp(vp.Top)
	return vp
}

func (g *Grid) ScrollTo(pane domain.Pane, top int) int {
	vp := g.Viewport(pane)
	s := g.surfaces[pane]
	s.top = vp.Clamp(top)
	return s.top
}

func (g *Grid) ensure() {
	if !g.dirty {
		return
	}
	g.dirty = false
	g.rects = make(map[key]Rect)
	g.layoutPane(domain.PaneItems)
	g.layoutPane(domain.PaneFolders)
}

func (g *Grid) layoutPane(pane domain.Pane) {
	s := g.surfaces[pane]
	kind := pane.Kind()
	s.placements = nil

	y := 0
	for _, group := range g.store.Groups(kind) {
		if !group.Visible {
			continue
		}
		entries := g.store.GroupEntries(kind, group.Label)
		if group.Label != "" && s.HeaderHeight > 0 {
			s.placements = append(s.placements, Placement{
				Rect:   Rect{X: 0, Y: y, W: s.Width, H: s.HeaderHeight},
				Header: group,
			})
			y += s.HeaderHeight
		}

		x, rowH := 0, 0
		for _, e := range entries {
			if e.Selectable && !e.MatchesSearch {
				continue
			}
			w := g.tileWidth(s, group, e)
			if x > 0 && x+w > s.Width {
				y += rowH + s.GapY
				x, rowH = 0, 0
			}
			r := Rect{X: x, Y: y, W: w, H: s.TileHeight}
			g.rects[key{e.Kind, e.Key()}] = r
			s.placements = append(s.placements, Placement{Rect: r, Entry: e})
			x += w + s.GapX
			rowH = s.TileHeight
		}
		if rowH > 0 {
			y += rowH + s.GapY
		}
	}

	s.content = y
	s.top = Viewport{Top: s.top, Height: s.Height, ContentHeight: y}.Clamp(s.top)
}

func (g *Grid) tileWidth(s *surfaceState, group *domain.Group, e *domain.Entry) int {
	switch {
	case group.Inline && s.InlineWidth > 0:
		return s.InlineWidth
	case s.UseThumbWidth && e.ThumbWidth > 0:
		return int(e.ThumbWidth)
	case s.TileWidth > 0:
		return s.TileWidth
	default:
		return s.Width
	}
}
