// Package console writes styled text to terminals using ANSI escape
// sequences. Colour is switched off automatically when the output is not a
// terminal or NO_COLOR is set.
package console

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/colorhash"
)

// Paint is a colour that can be expressed as SGR parameters.
type Paint interface {
	// SGR returns the parameters selecting this colour as foreground, or as
	// background when bg is true.
	SGR(bg bool) string
}

// Color is one of the 16 standard terminal colours, or Default.
type Color int

const (
	Default Color = iota
	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

// sgr returns the single SGR parameter selecting c; a nil c selects the
// terminal default.
func sgr(c ansi.Color, bg bool) string {
	if bg {
		return ansi.Style{}.BackgroundColor(c)[0]
	}
	return ansi.Style{}.ForegroundColor(c)[0]
}

// SGR implements Paint.
func (c Color) SGR(bg bool) string {
	if c < Black || c > BrightWhite {
		return sgr(nil, bg)
	}
	return sgr(ansi.BasicColor(c-Black), bg)
}

// Color256 is an entry of the xterm 256 colour palette.
type Color256 uint8

// SGR implements Paint.
func (c Color256) SGR(bg bool) string { return sgr(ansi.IndexedColor(c), bg) }

// RGB is a 24-bit colour.
type RGB colorful.Color

// Hex parses "#rrggbb" into an RGB colour.
func Hex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	return RGB(c), err
}

// SGR implements Paint.
func (c RGB) SGR(bg bool) string { return sgr(colorful.Color(c).Clamped(), bg) }

// LabelColor picks a stable colour for label from the 6x6x6 cube of the 256
// colour palette, skipping its darkest row.
func LabelColor(label string) Color256 {
	h := int(colorhash.HashString(label) % 180)
	if h < 0 {
		h = -h
	}
	return Color256(16 + 36 + h)
}

// Style describes how text is rendered.
type Style struct {
	Fg, Bg    Paint
	Bold      bool
	Dim       bool
	Italic    bool
	Underline bool
	Blink     bool
	Reverse   bool
	Strike    bool
}

// Fg returns a style with only a foreground colour.
func Fg(p Paint) Style { return Style{Fg: p} }

func (s Style) sgrStyle() ansi.Style {
	var st ansi.Style
	if s.Bold {
		st = st.Bold()
	}
	if s.Dim {
		st = st.Faint()
	}
	if s.Italic {
		st = st.Italic(true)
	}
	if s.Underline {
		st = st.Underline(true)
	}
	if s.Blink {
		st = st.Blink(true)
	}
	if s.Reverse {
		st = st.Reverse(true)
	}
	if s.Strike {
		st = st.Strikethrough(true)
	}
	if s.Fg != nil {
		st = append(st, s.Fg.SGR(false))
	}
	if s.Bg != nil {
		st = append(st, s.Bg.SGR(true))
	}
	return st
}

// Render wraps text in the style's escape sequences. A zero Style returns
// text unchanged.
func (s Style) Render(text string) string { return s.sgrStyle().Styled(text) }

// Strip removes all escape sequences from s.
func Strip(s string) string { return ansi.Strip(s) }

// Width returns the display width of s, ignoring escape sequences.
func Width(s string) int { return ansi.StringWidth(s) }

// Truncate shortens s to at most width cells, keeping escape sequences
// intact and appending tail when it cuts.
func Truncate(s string, width int, tail string) string {
	return ansi.Truncate(s, width, tail)
}
