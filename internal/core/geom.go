// Package core holds the value types shared by the simulation and every
// frontend: rectangles, input actions and the character screen. It imports
// nothing outside the standard library so the game stays testable headless.
package core

// Rect is an axis-aligned box in integer units. The simulation uses world
// units; the renderers reuse it for screen cells.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect returns the box with top-left (x, y) and the given size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right is the first x past the box.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom is the first y past the box.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the box has no area. An obstacle whose upper part has
// zero height is empty and collides with nothing.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects reports strict overlap: boxes that only touch along an edge or a
// corner do not intersect.
func (r Rect) Intersects(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Intersect returns the overlap of two boxes, or the zero Rect when they do
// not overlap.
func (r Rect) Intersect(other Rect) Rect {
	if !r.Intersects(other) {
		return Rect{}
	}
	x0, y0 := max(r.X, other.X), max(r.Y, other.Y)
	x1, y1 := min(r.Right(), other.Right()), min(r.Bottom(), other.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
