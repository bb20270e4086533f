package svg

import (
	"strings"

	"github.com/dendrascience/utilkit/geom"
)

const xmlns = "http://www.w3.org/2000/svg"

// Document creates a root svg element of the given size with a matching
// viewBox.
func Document(width, height float64) *Element {
	e := NewElement("svg").
		Set("xmlns", xmlns).
		Set("width", width).
		Set("height", height).
		Set("viewBox", "0 0 "+fmtFloat(width)+" "+fmtFloat(height))
	e.root = true
	return e
}

// Rect returns a rect element covering r.
func Rect(r geom.Rectangle) *Element {
	return NewElement("rect").
		Set("x", r.X).
		Set("y", r.Y).
		Set("width", r.W).
		Set("height", r.H)
}

// Circle returns a circle of radius r around center.
func Circle(center geom.Vector, r float64) *Element {
	return NewElement("circle").
		Set("cx", center.X).
		Set("cy", center.Y).
		Set("r", r)
}

// Ellipse returns an ellipse with radii rx and ry around center.
func Ellipse(center geom.Vector, rx, ry float64) *Element {
	return NewElement("ellipse").
		Set("cx", center.X).
		Set("cy", center.Y).
		Set("rx", rx).
		Set("ry", ry)
}

// Line returns a line from a to b.
func Line(a, b geom.Vector) *Element {
	return NewElement("line").
		Set("x1", a.X).
		Set("y1", a.Y).
		Set("x2", b.X).
		Set("y2", b.Y)
}

// Polyline returns an open polyline through pts.
func Polyline(pts []geom.Vector) *Element {
	return NewElement("polyline").Set("points", points(pts))
}

// Polygon returns a closed polygon through pts.
func Polygon(pts []geom.Vector) *Element {
	return NewElement("polygon").Set("points", points(pts))
}

// Text places s with its baseline starting at pos.
func Text(pos geom.Vector, s string) *Element {
	return NewElement("text").
		Set("x", pos.X).
		Set("y", pos.Y).
		SetText(s)
}

// Group wraps children in a g element.
func Group(children ...*Element) *Element {
	return NewElement("g").Add(children...)
}

// Path returns a path element drawing p.
func Path(p *PathBuilder) *Element {
	return NewElement("path").Set("d", p.String())
}

func points(pts []geom.Vector) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmtFloat(p.X) + "," + fmtFloat(p.Y)
	}
	return strings.Join(parts, " ")
}
