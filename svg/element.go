// Package svg builds SVG documents as a tree of elements and writes them as
// indented XML.
//
//	doc := svg.Document(100, 100)
//	doc.Add(svg.Rect(geom.Rect(10, 10, 80, 80)).Fill(color.RGBA{0, 128, 128, 255}))
//	_, err := doc.WriteTo(os.Stdout)
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dendrascience/utilkit/fileutil"
	"github.com/dendrascience/utilkit/geom"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

type attr struct {
	key, value string
}

// Element is one SVG node. Attributes keep the order in which they were
// first set.
type Element struct {
	Name     string
	Children []*Element
	Text     string

	attrs []attr
	root  bool
}

// NewElement creates an element with no attributes.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// Set stores an attribute. Replacing an existing key keeps its position.
func (e *Element) Set(key string, value any) *Element {
	v := formatValue(value)
	for i := range e.attrs {
		if e.attrs[i].key == key {
			e.attrs[i].value = v
			return e
		}
	}
	e.attrs = append(e.attrs, attr{key, v})
	return e
}

// Attr returns the value of an attribute.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.attrs {
		if a.key == key {
			return a.value, true
		}
	}
	return "", false
}

// Unset removes an attribute.
func (e *Element) Unset(key string) *Element {
	e.attrs = slices.DeleteFunc(e.attrs, func(a attr) bool { return a.key == key })
	return e
}

// ID sets the id attribute.
func (e *Element) ID(id string) *Element { return e.Set("id", id) }

// Class sets the class attribute.
func (e *Element) Class(c string) *Element { return e.Set("class", c) }

// StrokeWidth sets the stroke-width attribute.
func (e *Element) StrokeWidth(w float64) *Element { return e.Set("stroke-width", w) }

// Opacity sets the opacity attribute.
func (e *Element) Opacity(o float64) *Element { return e.Set("opacity", o) }

// Fill sets the fill colour. A fully transparent colour becomes "none" and
// partial alpha adds fill-opacity.
func (e *Element) Fill(c color.Color) *Element {
	return e.paint("fill", c)
}

// Stroke sets the stroke colour like Fill.
func (e *Element) Stroke(c color.Color) *Element {
	return e.paint("stroke", c)
}

func (e *Element) paint(key string, c color.Color) *Element {
	if c == nil {
		return e.Set(key, "none")
	}
	_, _, _, a := c.RGBA()
	if a == 0 {
		e.Unset(key + "-opacity")
		return e.Set(key, "none")
	}
	cf, _ := colorful.MakeColor(c)
	e.Set(key, cf.Clamped().Hex())
	if a < 0xffff {
		return e.Set(key+"-opacity", roundOpacity(float64(a)/0xffff))
	}
	return e.Unset(key + "-opacity")
}

func roundOpacity(f float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 3, 64), 64)
	return v
}

// Transform sets the transform attribute, or removes it for the identity.
func (e *Element) Transform(t geom.Transform) *Element {
	if t.IsIdentity() {
		return e.Unset("transform")
	}
	return e.Set("transform", t.SVG())
}

// Style sets the style attribute from properties, sorted by name.
func (e *Element) Style(props map[string]string) *Element {
	if len(props) == 0 {
		return e.Unset("style")
	}
	var sb strings.Builder
	for _, k := range slices.Sorted(maps.Keys(props)) {
		fmt.Fprintf(&sb, "%s:%s;", k, props[k])
	}
	return e.Set("style", sb.String())
}

// Add appends children and returns e.
func (e *Element) Add(children ...*Element) *Element {
	for _, c := range children {
		if c != nil {
			e.Children = append(e.Children, c)
		}
	}
	return e
}

// SetText sets the character data of e.
func (e *Element) SetText(s string) *Element {
	e.Text = s
	return e
}

// WriteTo writes e and its children as indented XML. Document roots start
// with an XML declaration.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if e.root {
		buf.WriteString(xmlHeader)
	}
	e.render(&buf, 0)
	n, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("svg: write %s: %w", e.Name, err)
	}
	return int64(n), nil
}

func (e *Element) render(buf *bytes.Buffer, depth int) {
	indent := strings.Repeat("  ", depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(e.Name)
	for _, a := range e.attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.key)
		buf.WriteString(`="`)
		escape(buf, a.value)
		buf.WriteByte('"')
	}
	switch {
	case len(e.Children) == 0 && e.Text == "":
		buf.WriteString("/>\n")
		return
	case len(e.Children) == 0:
		buf.WriteByte('>')
		escape(buf, e.Text)
	default:
		buf.WriteString(">\n")
		if e.Text != "" {
			buf.WriteString(indent + "  ")
			escape(buf, e.Text)
			buf.WriteByte('\n')
		}
		for _, c := range e.Children {
			c.render(buf, depth+1)
		}
		buf.WriteString(indent)
	}
	buf.WriteString("</")
	buf.WriteString(e.Name)
	buf.WriteString(">\n")
}

func escape(buf *bytes.Buffer, s string) {
	// EscapeText only fails when the writer does.
	_ = xml.EscapeText(buf, []byte(s))
}

// String renders the element and its children.
func (e *Element) String() string {
	var sb strings.Builder
	_, _ = e.WriteTo(&sb)
	return sb.String()
}

// SaveFile writes e to path atomically.
func (e *Element) SaveFile(path string) error {
	return fileutil.WriteFileAtomic(path, []byte(e.String()), 0o644)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return fmtFloat(x)
	case float32:
		return fmtFloat(float64(x))
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

func fmtFloat(f float64) string {
	if f == 0 {
		// avoid "-0"
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
