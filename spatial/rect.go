package spatial

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Rect is an axis-aligned rectangle in integer world coordinates.
// It covers the half-open region [X, X+W) x [Y, Y+H).
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle from its top-left corner and size
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Contains reports whether p lies inside the rectangle.
// Left and top edges are inclusive, right and bottom edges exclusive.
func (r Rect) Contains(p mgl64.Vec2) bool {
	return p[0] >= float64(r.X) && p[0] < float64(r.X+r.W) &&
		p[1] >= float64(r.Y) && p[1] < float64(r.Y+r.H)
}

// Mid returns the split point used when the rectangle is quartered
func (r Rect) Mid() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Quarter splits the rectangle into its four quadrants, indexed by Quadrant.
// West and north halves get w/2 and h/2; east and south take the remainder
// so the quadrants tile the parent with no gap on odd sizes.
func (r Rect) Quarter() [4]Rect {
	hw, hh := r.W/2, r.H/2
	ew, sh := r.W-hw, r.H-hh
	return [4]Rect{
		NorthWest: {X: r.X, Y: r.Y, W: hw, H: hh},
		NorthEast: {X: r.X + hw, Y: r.Y, W: ew, H: hh},
		SouthWest: {X: r.X, Y: r.Y + hh, W: hw, H: sh},
		SouthEast: {X: r.X + hw, Y: r.Y + hh, W: ew, H: sh},
	}
}

// Width returns W as a float
func (r Rect) Width() float64 { return float64(r.W) }

// Height returns H as a float
func (r Rect) Height() float64 { return float64(r.H) }

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}
