// Package geom provides small value types for 2D geometry: Vector, Rectangle
// and an affine Transform. The coordinate system has its origin at the top
// left with y growing downwards.
package geom

import (
	"fmt"
	"math"
)

// Vector is a 2D point or displacement.
type Vector struct {
	X, Y float64
}

// Vec is shorthand for Vector{x, y}.
func Vec(x, y float64) Vector { return Vector{x, y} }

// Add returns v+o.
func (v Vector) Add(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vector) Sub(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y} }

// Scale multiplies both components by f.
func (v Vector) Scale(f float64) Vector { return Vector{v.X * f, v.Y * f} }

// Neg returns -v.
func (v Vector) Neg() Vector { return Vector{-v.X, -v.Y} }

// Dot returns the dot product.
func (v Vector) Dot(o Vector) float64 { return v.X*o.X + v.Y*o.Y }

// LenSq returns the squared length.
func (v Vector) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Len returns the length.
func (v Vector) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the distance to o.
func (v Vector) Dist(o Vector) float64 { return v.Sub(o).Len() }

// Perp returns v rotated by 90 degrees.
func (v Vector) Perp() Vector { return Vector{-v.Y, v.X} }

// Angle returns the direction of v in radians.
func (v Vector) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Cross returns the z component of the 3D cross product.
func (v Vector) Cross(o Vector) float64 { return v.X*o.Y - v.Y*o.X }

// IsZero reports whether both components are zero.
func (v Vector) IsZero() bool { return v.X == 0 && v.Y == 0 }

// String formats v as "(x, y)".
func (v Vector) String() string { return fmt.Sprintf("(%g, %g)", v.X, v.Y) }

// Lerp interpolates between v (t=0) and o (t=1).
func (v Vector) Lerp(o Vector, t float64) Vector {
	return Vector{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Normalize returns the unit vector in v's direction. The zero vector stays
// zero.
func (v Vector) Normalize() Vector {
	l := v.Len()
	if l == 0 {
		return Vector{}
	}
	return Vector{v.X / l, v.Y / l}
}

// AngleTo returns the signed angle in radians that rotates v onto o.
func (v Vector) AngleTo(o Vector) float64 {
	return math.Atan2(v.Cross(o), v.Dot(o))
}

// Rotate rotates v by theta radians about the origin.
func (v Vector) Rotate(theta float64) Vector {
	sin, cos := math.Sincos(theta)
	return Vector{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// ApproxEqual reports whether both components differ by at most eps.
func (v Vector) ApproxEqual(o Vector, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}
