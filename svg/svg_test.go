package svg

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dendrascience/utilkit/geom"
)

func TestSetKeepsAttributeOrder(t *testing.T) {
	e := NewElement("rect").Set("x", 1).Set("y", 2.5).Set("x", 3)
	assert.Equal(t, `<rect x="3" y="2.5"/>`+"\n", e.String())

	v, ok := e.Attr("y")
	assert.True(t, ok)
	assert.Equal(t, "2.5", v)

	e.Unset("x")
	_, ok = e.Attr("x")
	assert.False(t, ok)
}

func TestPaint(t *testing.T) {
	tests := []struct {
		name  string
		c     color.Color
		fill  string
		alpha string
	}{
		{"opaque", color.RGBA{255, 0, 0, 255}, "#ff0000", ""},
		{"transparent", color.RGBA{}, "none", ""},
		{"half", color.NRGBA{0, 0, 255, 128}, "#0000ff", "0.502"},
		{"nil", nil, "none", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewElement("circle").Fill(tt.c)
			fill, _ := e.Attr("fill")
			assert.Equal(t, tt.fill, fill)
			alpha, _ := e.Attr("fill-opacity")
			assert.Equal(t, tt.alpha, alpha)
		})
	}

	e := NewElement("line").Stroke(color.NRGBA{0, 255, 0, 64}).Stroke(color.White)
	_, ok := e.Attr("stroke-opacity")
	assert.False(t, ok, "opaque stroke drops stale opacity")
	stroke, _ := e.Attr("stroke")
	assert.Equal(t, "#ffffff", stroke)
}

func TestTransformAndStyle(t *testing.T) {
	e := NewElement("g").Transform(geom.Translation(5, 0))
	v, _ := e.Attr("transform")
	assert.Equal(t, "matrix(1 0 0 1 5 0)", v)

	e.Transform(geom.Identity())
	_, ok := e.Attr("transform")
	assert.False(t, ok)

	e.Style(map[string]string{"stroke": "red", "fill": "blue"})
	v, _ = e.Attr("style")
	assert.Equal(t, "fill:blue;stroke:red;", v)
}

func TestDocumentOutput(t *testing.T) {
	doc := Document(100, 50)
	doc.Add(
		Rect(geom.Rect(0, 0, 10, 10)).ID("box"),
		Group(Circle(geom.Vec(5, 5), 2)).Class("dots"),
		Text(geom.Vec(1, 2), `a < b & "c"`),
	)

	want := `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="100" height="50" viewBox="0 0 100 50">
  <rect x="0" y="0" width="10" height="10" id="box"/>
  <g class="dots">
    <circle cx="5" cy="5" r="2"/>
  </g>
  <text x="1" y="2">a &lt; b &amp; &#34;c&#34;</text>
</svg>
`
	var sb strings.Builder
	n, err := doc.WriteTo(&sb)
	require.NoError(t, err)
	assert.Equal(t, want, sb.String())
	assert.Equal(t, int64(len(want)), n)
}

func TestNonRootHasNoDeclaration(t *testing.T) {
	assert.False(t, strings.HasPrefix(Group().String(), "<?xml"))
	assert.Equal(t, "<g/>\n", Group(nil).String())
}

func TestShapes(t *testing.T) {
	pts := []geom.Vector{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: -3.5, Y: 4}}
	v, _ := Polygon(pts).Attr("points")
	assert.Equal(t, "0,0 1,2 -3.5,4", v)
	assert.Equal(t, "polyline", Polyline(pts).Name)

	l := Line(geom.Vec(0, 1), geom.Vec(2, 3))
	assert.Equal(t, `<line x1="0" y1="1" x2="2" y2="3"/>`+"\n", l.String())

	el := Ellipse(geom.Vec(1, 1), 4, 2)
	rx, _ := el.Attr("rx")
	assert.Equal(t, "4", rx)
}

func TestPathBuilder(t *testing.T) {
	assert.Equal(t, "", NewPath().String())

	p := NewPath().
		MoveTo(geom.Vec(0, 0)).
		LineTo(geom.Vec(10, 0)).
		HLineTo(20).
		VLineTo(5).
		QuadTo(geom.Vec(25, 10), geom.Vec(20, 15)).
		CubicTo(geom.Vec(15, 20), geom.Vec(5, 20), geom.Vec(0, 15)).
		ArcTo(5, 5, 0, false, true, geom.Vec(0, 5)).
		Close()
	assert.Equal(t, "M 0 0 L 10 0 H 20 V 5 Q 25 10 20 15 C 15 20 5 20 0 15 A 5 5 0 0 1 0 5 Z", p.String())
	assert.Equal(t, 8, p.Len())

	d, _ := Path(p).Attr("d")
	assert.Equal(t, p.String(), d)
}

func TestSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	doc := Document(10, 10).Add(Rect(geom.Rect(1, 1, 8, 8)))
	require.NoError(t, doc.SaveFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc.String(), string(data))
}
