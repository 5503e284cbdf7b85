package layout

import "picbrowse/internal/domain"

// Fixed is a LayoutQuery over explicitly placed rectangles
type Fixed struct {
	rects     map[key]Rect
	viewports map[domain.Pane]Viewport
	scrolls   []ScrollCall
}

// ScrollCall records a ScrollTo request
type ScrollCall struct {
	Pane domain.Pane
	Top  int
}

func NewFixed() *Fixed {
	return &Fixed{
		rects:     make(map[key]Rect),
		viewports: make(map[domain.Pane]Viewport),
	}
}

// Place positions an entry
func (f *Fixed) Place(kind domain.EntryKind, path string, r Rect) *Fixed {
	f.rects[key{kind, path}] = r
	return f
}

// Unplace removes an entry's position
func (f *Fixed) Unplace(kind domain.EntryKind, path string) {
	delete(f.rects, key{kind, path})
}

func (f *Fixed) SetViewport(pane domain.Pane, vp Viewport) *Fixed {
	f.viewports[pane] = vp
	return f
}

// Scrolls returns the ScrollTo calls seen so far
func (f *Fixed) Scrolls() []ScrollCall {
	return f.scrolls
}

func (f *Fixed) PositionOf(e *domain.Entry) (Rect, bool) {
	if e == nil {
		return Rect{}, false
	}
	r, ok := f.rects[key{e.Kind, e.Key()}]
	return r, ok
}

func (f *Fixed) IsFullyVisible(e *domain.Entry, vp Viewport) bool {
	r, ok := f.PositionOf(e)
	return ok && vp.Contains(r)
}

func (f *Fixed) Viewport(pane domain.Pane) Viewport {
	return f.viewports[pane]
}

func (f *Fixed) ScrollTo(pane domain.Pane, top int) int {
	vp := f.viewports[pane]
	if vp.ContentHeight > 0 {
		top = vp.Clamp(top)
	} else if top < 0 {
		top = 0
	}
	vp.Top = top
	f.viewports[pane] = vp
	f.scrolls = append(f.scrolls, ScrollCall{Pane: pane, Top: top})
	return top
}
