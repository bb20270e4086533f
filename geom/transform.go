package geom

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNonInvertible is returned when a transform has a zero or non-finite
// determinant.
var ErrNonInvertible = errors.New("transform is not invertible")

// Transform is a 2D affine transform, the matrix
//
//	[ M00 M01 M02 ]
//	[ M10 M11 M12 ]
//	[  0   0   1  ]
//
// applied to column vectors. The zero value is not the identity; use
// Identity.
type Transform struct {
	M00, M01, M02 float64
	M10, M11, M12 float64
}

// Identity returns the transform that leaves points unchanged.
func Identity() Transform { return Transform{M00: 1, M11: 1} }

// Translation moves points by (tx, ty).
func Translation(tx, ty float64) Transform {
	return Transform{M00: 1, M02: tx, M11: 1, M12: ty}
}

// Scaling scales x by sx and y by sy.
func Scaling(sx, sy float64) Transform {
	return Transform{M00: sx, M11: sy}
}

// Rotation rotates by theta radians. With y pointing down a positive angle
// turns clockwise on screen.
func Rotation(theta float64) Transform {
	sin, cos := math.Sincos(theta)
	return Transform{M00: cos, M01: -sin, M10: sin, M11: cos}
}

// RotationAbout rotates by theta radians around pivot.
func RotationAbout(theta float64, pivot Vector) Transform {
	return Translation(pivot.X, pivot.Y).
		Concat(Rotation(theta)).
		Concat(Translation(-pivot.X, -pivot.Y))
}

// Shearing shears x by shx times y, and y by shy times x.
func Shearing(shx, shy float64) Transform {
	return Transform{M00: 1, M01: shx, M10: shy, M11: 1}
}

// Concat returns t * o: o is applied first, then t.
func (t Transform) Concat(o Transform) Transform {
	return Transform{
		M00: t.M00*o.M00 + t.M01*o.M10,
		M01: t.M00*o.M01 + t.M01*o.M11,
		M02: t.M00*o.M02 + t.M01*o.M12 + t.M02,
		M10: t.M10*o.M00 + t.M11*o.M10,
		M11: t.M10*o.M01 + t.M11*o.M11,
		M12: t.M10*o.M02 + t.M11*o.M12 + t.M12,
	}
}

// PreConcat returns o * t: t is applied first, then o.
func (t Transform) PreConcat(o Transform) Transform {
	return o.Concat(t)
}

// Then is PreConcat, reading left to right in application order.
func (t Transform) Then(o Transform) Transform {
	return t.PreConcat(o)
}

// Apply maps the point v.
func (t Transform) Apply(v Vector) Vector {
	return Vector{
		t.M00*v.X + t.M01*v.Y + t.M02,
		t.M10*v.X + t.M11*v.Y + t.M12,
	}
}

// ApplyDelta transforms v as a displacement, ignoring translation.
func (t Transform) ApplyDelta(v Vector) Vector {
	return Vector{t.M00*v.X + t.M01*v.Y, t.M10*v.X + t.M11*v.Y}
}

// ApplyRect returns the bounding box of r's transformed corners.
func (t Transform) ApplyRect(r Rectangle) Rectangle {
	c := r.Corners()
	p := t.Apply(c[0])
	out := Rectangle{p.X, p.Y, 0, 0}
	for _, q := range c[1:] {
		p = t.Apply(q)
		x0, y0 := math.Min(out.X, p.X), math.Min(out.Y, p.Y)
		x1, y1 := math.Max(out.X+out.W, p.X), math.Max(out.Y+out.H, p.Y)
		out = Rectangle{x0, y0, x1 - x0, y1 - y0}
	}
	return out
}

// Det returns the determinant of the linear part.
func (t Transform) Det() float64 {
	return t.M00*t.M11 - t.M01*t.M10
}

// Invert returns the inverse transform.
func (t Transform) Invert() (Transform, error) {
	det := t.Det()
	if math.Abs(det) < 1e-12 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Transform{}, fmt.Errorf("geom: invert %v: %w", t, ErrNonInvertible)
	}
	return Transform{
		M00: t.M11 / det,
		M01: -t.M01 / det,
		M02: (t.M01*t.M12 - t.M11*t.M02) / det,
		M10: -t.M10 / det,
		M11: t.M00 / det,
		M12: (t.M10*t.M02 - t.M00*t.M12) / det,
	}, nil
}

// IsIdentity reports whether t leaves every point unchanged.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// Elements returns the matrix in SVG order a b c d e f.
func (t Transform) Elements() [6]float64 {
	return [6]float64{t.M00, t.M10, t.M01, t.M11, t.M02, t.M12}
}

// SVG formats t as an SVG transform attribute value.
func (t Transform) SVG() string {
	e := t.Elements()
	parts := make([]string, len(e))
	for i, f := range e {
		parts[i] = strconv.FormatFloat(f, 'f', -1, 64)
	}
	return "matrix(" + strings.Join(parts, " ") + ")"
}

// String lists the six elements in matrix order.
func (t Transform) String() string {
	return fmt.Sprintf("[[%g %g %g] [%g %g %g]]", t.M00, t.M01, t.M02, t.M10, t.M11, t.M12)
}
