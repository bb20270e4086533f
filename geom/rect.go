package geom

import (
	"fmt"
	"math"
)

// Outcode bits report on which sides of a rectangle a point lies.
const (
	OutLeft   = 1
	OutTop    = 2
	OutRight  = 4
	OutBottom = 8
)

// Rectangle is an axis-aligned rectangle with its top-left corner at (X, Y).
// A rectangle with W <= 0 or H <= 0 is empty.
type Rectangle struct {
	X, Y, W, H float64
}

// Rect is shorthand for Rectangle{x, y, w, h}.
func Rect(x, y, w, h float64) Rectangle { return Rectangle{x, y, w, h} }

// RectFromPoints returns the smallest rectangle with a and b as corners.
func RectFromPoints(a, b Vector) Rectangle {
	x0, x1 := math.Min(a.X, b.X), math.Max(a.X, b.X)
	y0, y1 := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rectangle{x0, y0, x1 - x0, y1 - y0}
}

// Min returns the top-left corner.
func (r Rectangle) Min() Vector { return Vector{r.X, r.Y} }

// Max returns the bottom-right corner.
func (r Rectangle) Max() Vector { return Vector{r.X + r.W, r.Y + r.H} }

// Center returns the midpoint.
func (r Rectangle) Center() Vector { return Vector{r.X + r.W/2, r.Y + r.H/2} }

// Empty reports whether the rectangle has no area.
func (r Rectangle) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Area returns W*H, or 0 for an empty rectangle.
func (r Rectangle) Area() float64 {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// Contains reports whether p lies inside r. The left and top edges are
// inside, the right and bottom edges are not.
func (r Rectangle) Contains(p Vector) bool {
	if r.Empty() {
		return false
	}
	return p.X >= r.X && p.Y >= r.Y && p.X < r.X+r.W && p.Y < r.Y+r.H
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rectangle) ContainsRect(o Rectangle) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return o.X >= r.X && o.Y >= r.Y && o.X+o.W <= r.X+r.W && o.Y+o.H <= r.Y+r.H
}

// Intersects reports whether r and o share interior area.
func (r Rectangle) Intersects(o Rectangle) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return o.X < r.X+r.W && o.Y < r.Y+r.H && o.X+o.W > r.X && o.Y+o.H > r.Y
}

// Intersection returns the overlap of r and o. ok is false when they do not
// intersect.
func (r Rectangle) Intersection(o Rectangle) (Rectangle, bool) {
	if !r.Intersects(o) {
		return Rectangle{}, false
	}
	x0, y0 := math.Max(r.X, o.X), math.Max(r.Y, o.Y)
	x1, y1 := math.Min(r.X+r.W, o.X+o.W), math.Min(r.Y+r.H, o.Y+o.H)
	return Rectangle{x0, y0, x1 - x0, y1 - y0}, true
}

// Union returns the smallest rectangle containing both. Empty operands are
// ignored.
func (r Rectangle) Union(o Rectangle) Rectangle {
	switch {
	case r.Empty():
		return o
	case o.Empty():
		return r
	}
	x0, y0 := math.Min(r.X, o.X), math.Min(r.Y, o.Y)
	x1, y1 := math.Max(r.X+r.W, o.X+o.W), math.Max(r.Y+r.H, o.Y+o.H)
	return Rectangle{x0, y0, x1 - x0, y1 - y0}
}

// Translate moves the rectangle by d.
func (r Rectangle) Translate(d Vector) Rectangle {
	return Rectangle{r.X + d.X, r.Y + d.Y, r.W, r.H}
}

// Inset shrinks r by dx on the left and right and by dy on the top and bottom.
func (r Rectangle) Inset(dx, dy float64) Rectangle {
	return Rectangle{r.X + dx, r.Y + dy, r.W - 2*dx, r.H - 2*dy}
}

// Grow is the opposite of Inset.
func (r Rectangle) Grow(dx, dy float64) Rectangle {
	return r.Inset(-dx, -dy)
}

// Expand returns the smallest rectangle containing r and p. An empty r
// collapses to the point.
func (r Rectangle) Expand(p Vector) Rectangle {
	if r.Empty() {
		return Rectangle{p.X, p.Y, 0, 0}
	}
	x0, y0 := math.Min(r.X, p.X), math.Min(r.Y, p.Y)
	x1, y1 := math.Max(r.X+r.W, p.X), math.Max(r.Y+r.H, p.Y)
	return Rectangle{x0, y0, x1 - x0, y1 - y0}
}

// Corners returns the four corners clockwise starting at the top left.
func (r Rectangle) Corners() [4]Vector {
	return [4]Vector{
		{r.X, r.Y},
		{r.X + r.W, r.Y},
		{r.X + r.W, r.Y + r.H},
		{r.X, r.Y + r.H},
	}
}

// Outcode returns a mask of OutLeft, OutTop, OutRight and OutBottom. An
// empty rectangle reports every bit for the axis along which it is empty.
func (r Rectangle) Outcode(p Vector) int {
	out := 0
	switch {
	case r.W <= 0:
		out |= OutLeft | OutRight
	case p.X < r.X:
		out |= OutLeft
	case p.X > r.X+r.W:
		out |= OutRight
	}
	switch {
	case r.H <= 0:
		out |= OutTop | OutBottom
	case p.Y < r.Y:
		out |= OutTop
	case p.Y > r.Y+r.H:
		out |= OutBottom
	}
	return out
}

// String formats r with its origin and size.
func (r Rectangle) String() string {
	return fmt.Sprintf("[x=%g y=%g w=%g h=%g]", r.X, r.Y, r.W, r.H)
}
