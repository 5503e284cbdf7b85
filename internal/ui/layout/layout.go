package layout

import "picbrowse/internal/domain"

// Rect is an entry's box in its surface's content coordinates
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Bottom() int { return r.Y + r.H }

// Viewport is the visible window of a scrollable surface
type Viewport struct {
	Top           int
	Height        int
	ContentHeight int
}

func (v Viewport) Bottom() int { return v.Top + v.Height }

// MaxTop returns the largest valid scroll offset
func (v Viewport) MaxTop() int {
	if v.ContentHeight <= v.Height {
		return 0
	}
	return v.ContentHeight - v.Height
}

func (v Viewport) AtTop() bool { return v.Top <= 0 }

func (v Viewport) AtBottom() bool { return v.Top >= v.MaxTop() }

// Clamp limits a scroll offset to the valid range
func (v Viewport) Clamp(top int) int {
	if top > v.MaxTop() {
		top = v.MaxTop()
	}
	if top < 0 {
		top = 0
	}
	return top
}

// Contains reports whether r lies fully inside the window
func (v Viewport) Contains(r Rect) bool {
	return r.Y >= v.Top && r.Bottom() <= v.Bottom()
}

// Grow extends the window by above units upward and below units downward
func (v Viewport) Grow(above, below int) Viewport {
	v.Top -= above
	v.Height += above + below
	return v
}

// LayoutQuery answers geometry questions about rendered entries. Entries that
// are not laid out (hidden by the search, or not rendered yet) have no position.
type LayoutQuery interface {
	PositionOf(e *domain.Entry) (Rect, bool)
	IsFullyVisible(e *domain.Entry, vp Viewport) bool
	Viewport(pane domain.Pane) Viewport
	// ScrollTo moves the pane's surface and returns the offset actually applied
	ScrollTo(pane domain.Pane, top int) int
}

// Reflower is implemented by layouts that cache positions and must recompute
// them after the registry changed
type Reflower interface {
	Reflow()
}

// Sizer is implemented by layouts that own the surface size
type Sizer interface {
	SetSize(width, height int)
}

// ThumbHeightSetter is implemented by layouts whose tile size follows the thumbnail height
type ThumbHeightSetter interface {
	SetThumbHeight(px int)
}

type key struct {
	kind domain.EntryKind
	path string
}
