package logic

import (
	"math"

	"picbrowse/internal/ui/layout"
)

// referenceOffsetUp is how far above the selection's top the upward reference line sits
const referenceOffsetUp = 10

// ScrollTarget returns the scroll offset that brings a box at top into view,
// keeping margin-sized breathing room. ok is false when no scroll is needed.
func ScrollTarget(top int, vp layout.Viewport, margin int) (target int, ok bool) {
	m := float64(margin)
	switch {
	case float64(top) > float64(vp.Top+vp.Height)-2*m:
		return top - vp.Height + 2*margin, true
	case float64(top) < float64(vp.Top)+1.2*m:
		t := int(math.Round(float64(top) - 1.2*m))
		if t < 0 {
			t = 0
		}
		return t, true
	}
	return vp.Top, false
}

// NearestInDirection picks the candidate closest to from in the vertical
// direction given. Candidates must start strictly beyond the reference line
// (from's top minus a small offset going up, from's bottom going down) and
// within band of it. Distance is measured between top-left corners; the
// earliest candidate wins ties. Returns -1 when nothing qualifies.
func NearestInDirection(from layout.Rect, up bool, band int, candidates []layout.Rect) int {
	ref := from.Bottom()
	if up {
		ref = from.Y - referenceOffsetUp
	}

	best, bestDist := -1, 0
	for i, c := range candidates {
		if up {
			if !(c.Y < ref && c.Y > ref-band) {
				continue
			}
		} else if !(c.Y > ref && c.Y < ref+band) {
			continue
		}

		dx, dy := c.X-from.X, c.Y-from.Y
		d := dx*dx + dy*dy
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
