package svg

import (
	"strings"

	"github.com/dendrascience/utilkit/geom"
)

// PathBuilder accumulates path commands in absolute coordinates.
type PathBuilder struct {
	cmds []string
}

// NewPath returns an empty path builder.
func NewPath() *PathBuilder { return &PathBuilder{} }

func (p *PathBuilder) add(cmd string, args ...float64) *PathBuilder {
	var sb strings.Builder
	sb.WriteString(cmd)
	for _, a := range args {
		sb.WriteByte(' ')
		sb.WriteString(fmtFloat(a))
	}
	p.cmds = append(p.cmds, sb.String())
	return p
}

// MoveTo starts a new subpath at v.
func (p *PathBuilder) MoveTo(v geom.Vector) *PathBuilder { return p.add("M", v.X, v.Y) }

// LineTo draws a straight line to v.
func (p *PathBuilder) LineTo(v geom.Vector) *PathBuilder { return p.add("L", v.X, v.Y) }

// HLineTo draws a horizontal line to x.
func (p *PathBuilder) HLineTo(x float64) *PathBuilder { return p.add("H", x) }

// VLineTo draws a vertical line to y.
func (p *PathBuilder) VLineTo(y float64) *PathBuilder { return p.add("V", y) }

// QuadTo draws a quadratic Bézier curve with control point c.
func (p *PathBuilder) QuadTo(c, v geom.Vector) *PathBuilder {
	return p.add("Q", c.X, c.Y, v.X, v.Y)
}

// CubicTo draws a cubic Bézier curve with control points c1 and c2.
func (p *PathBuilder) CubicTo(c1, c2, v geom.Vector) *PathBuilder {
	return p.add("C", c1.X, c1.Y, c2.X, c2.Y, v.X, v.Y)
}

// ArcTo draws an elliptical arc to v. rotation is in degrees.
func (p *PathBuilder) ArcTo(rx, ry, rotation float64, large, sweep bool, v geom.Vector) *PathBuilder {
	return p.add("A", rx, ry, rotation, flag(large), flag(sweep), v.X, v.Y)
}

// Close closes the current subpath.
func (p *PathBuilder) Close() *PathBuilder {
	p.cmds = append(p.cmds, "Z")
	return p
}

// Len returns the number of commands.
func (p *PathBuilder) Len() int { return len(p.cmds) }

// String returns the path data; an empty builder yields "".
func (p *PathBuilder) String() string {
	return strings.Join(p.cmds, " ")
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
