package page

import "math"

// Reveal observation tuning. An element counts as visible once a tenth of
// its box is inside the viewport, with the bottom edge pulled up 50px so
// reveals begin slightly before an element fully enters.
const (
	RevealVisibleFraction = 0.10
	RevealBottomInset     = 50.0

	DefaultViewportHeight = 900.0
)

// Intersects reports whether box crosses the reveal observation window of a
// viewport scrolled to scrollY.
func Intersects(scrollY, viewportHeight float64, box Box) bool {
	top := scrollY
	bottom := scrollY + viewportHeight - RevealBottomInset
	if bottom <= top {
		return false
	}
	overlap := math.Min(bottom, box.Bottom()) - math.Max(top, box.Top)
	if overlap < 0 {
		return false
	}
	if box.Height <= 0 {
		return true
	}
	return overlap >= RevealVisibleFraction*box.Height
}
