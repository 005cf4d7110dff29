package rstar

import "fmt"

// Rect is an axis-aligned rectangle with integer geometry. A rectangle with a
// non-positive width or height is empty.
type Rect struct {
	X, Y, Width, Height int
}

// IsEmpty reports whether r covers no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right is the x coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom is the y coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Area returns width * height. Empty rectangles have no area.
func (r Rect) Area() int64 {
	if r.IsEmpty() {
		return 0
	}
	return int64(r.Width) * int64(r.Height)
}

// Margin returns width + height, used as a measure of squareness.
func (r Rect) Margin() int64 {
	return int64(r.Width) + int64(r.Height)
}

// Intersects reports whether r and other overlap. Edges are closed, so
// rectangles that merely touch intersect. Empty rectangles intersect nothing.
func (r Rect) Intersects(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return true &&
		(r.X <= other.Right()) && (r.Right() >= other.X) &&
		(r.Y <= other.Bottom()) && (r.Bottom() >= other.Y)
}

// Contains reports whether other lies completely within r.
func (r Rect) Contains(other Rect) bool {
	return true &&
		(r.X <= other.X) && (other.Right() <= r.Right()) &&
		(r.Y <= other.Y) && (other.Bottom() <= r.Bottom())
}

// Union grows r to the smallest rectangle covering both r and other. Empty
// rectangles do not contribute.
func (r *Rect) Union(other Rect) {
	if other.IsEmpty() {
		return
	}
	if r.IsEmpty() {
		*r = other
		return
	}
	x, y := min(r.X, other.X), min(r.Y, other.Y)
	right, bottom := max(r.Right(), other.Right()), max(r.Bottom(), other.Bottom())
	*r = Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// Intersect returns the region shared by r and other. Rectangles touching
// along an edge share a zero-area region; disjoint rectangles give Rect{}.
func (r Rect) Intersect(other Rect) Rect {
	x, y := max(r.X, other.X), max(r.Y, other.Y)
	right, bottom := min(r.Right(), other.Right()), min(r.Bottom(), other.Bottom())
	if right < x || bottom < y {
		return Rect{}
	}
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// union gives the smallest rectangle containing both a and b.
func union(a, b Rect) Rect {
	a.Union(b)
	return a
}

// enlargement returns how much additional area the existing rectangle would
// have to grow by to accommodate the additional one.
func enlargement(existing, additional Rect) int64 {
	return union(existing, additional).Area() - existing.Area()
}

// overlapArea is the area shared by a and b.
func overlapArea(a, b Rect) int64 {
	return a.Intersect(b).Area()
}

// center2 returns the centre of r with doubled coordinates, keeping centre
// arithmetic integral.
func (r Rect) center2() (int64, int64) {
	return 2*int64(r.X) + int64(r.Width), 2*int64(r.Y) + int64(r.Height)
}

// distance2 is the squared distance between the (doubled) centres of a and b.
// Squares of coordinate differences exceed int64 for far apart rectangles, so
// they are summed as floats.
func distance2(a, b Rect) float64 {
	ax, ay := a.center2()
	bx, by := b.center2()
	dx, dy := float64(ax-bx), float64(ay-by)
	return dx*dx + dy*dy
}
