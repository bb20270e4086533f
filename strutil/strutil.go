// Package strutil provides string helpers: blank checks, case conversion,
// display-width aware padding and truncation, wrapping and byte-size formatting.
//
// Width-aware functions measure terminal cells with go-runewidth, so East Asian
// wide characters count as two columns.
package strutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// IsBlank reports whether s is empty or only whitespace.
func IsBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}

// DefaultIfBlank returns def when s is blank.
func DefaultIfBlank(s, def string) string {
	if IsBlank(s) {
		return def
	}
	return s
}

// FirstNonBlank returns the first argument that is not blank, or "".
func FirstNonBlank(values ...string) string {
	for _, v := range values {
		if !IsBlank(v) {
			return v
		}
	}
	return ""
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Uncapitalize lower-cases the first rune of s.
func Uncapitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// Title converts s to title case using language-neutral rules.
func Title(s string) string {
	return cases.Title(language.Und).String(s)
}

// Reverse reverses s rune by rune.
func Reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// Width returns the display width of s in terminal cells.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s so that it, including tail, fits in width cells.
// s is returned unchanged when it already fits.
func Truncate(s string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if runewidth.StringWidth(tail) > width {
		return runewidth.Truncate(tail, width, "")
	}
	return runewidth.Truncate(s, width, tail)
}

// PadLeft left-pads s with pad up to width cells.
func PadLeft(s string, width int, pad rune) string {
	n := width - runewidth.StringWidth(s)
	if n <= 0 {
		return s
	}
	return fill(pad, n) + s
}

// PadRight right-pads s with pad up to width cells.
func PadRight(s string, width int, pad rune) string {
	n := width - runewidth.StringWidth(s)
	if n <= 0 {
		return s
	}
	return s + fill(pad, n)
}

// Center pads s on both sides; an odd remainder goes to the right.
func Center(s string, width int, pad rune) string {
	n := width - runewidth.StringWidth(s)
	if n <= 0 {
		return s
	}
	left := n / 2
	return fill(pad, left) + s + fill(pad, n-left)
}

func fill(pad rune, cells int) string {
	w := runewidth.RuneWidth(pad)
	if w <= 0 {
		w = 1
	}
	count := cells / w
	return strings.Repeat(string(pad), count) + strings.Repeat(" ", cells-count*w)
}

// Repeat joins n copies of s with sep.
func Repeat(s string, n int, sep string) string {
	if n <= 0 {
		return ""
	}
	if sep == "" {
		return strings.Repeat(s, n)
	}
	var b strings.Builder
	for i := range n {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(s)
	}
	return b.String()
}

// CountOccurrences counts non-overlapping occurrences of sub. An empty sub counts 0.
func CountOccurrences(s, sub string) int {
	if sub == "" {
		return 0
	}
	return strings.Count(s, sub)
}

// SplitLines splits on \n and \r\n. A trailing line break does not produce an
// empty last element.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	return strings.Split(s, "\n")
}

// WordWrap wraps s greedily at whitespace so that no line exceeds width cells,
// except for single words longer than width.
func WordWrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	lineWidth := runewidth.StringWidth(line)
	for _, w := range words[1:] {
		ww := runewidth.StringWidth(w)
		if lineWidth+1+ww > width {
			lines = append(lines, line)
			line, lineWidth = w, ww
			continue
		}
		line += " " + w
		lineWidth += 1 + ww
	}
	return append(lines, line)
}

// Levenshtein returns the rune-wise edit distance between a and b.
func Levenshtein(a, b string) int { return levenshtein.ComputeDistance(a, b) }

// ContainsIgnoreCase reports whether sub is in s under Unicode case folding.
func ContainsIgnoreCase(s, sub string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(s), fold.String(sub))
}

// EqualsIgnoreCase is strings.EqualFold.
func EqualsIgnoreCase(a, b string) bool {
	return strings.EqualFold(a, b)
}

// IsNumeric reports whether s is an optionally signed decimal number with at
// most one decimal point and at least one digit.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
			if dots > 1 {
				return false
			}
		default:
			return false
		}
	}
	return digits > 0
}

// JoinNatural joins items as "a, b and c" using conj for the last separator.
func JoinNatural(items []string, conj string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " " + conj + " " + items[len(items)-1]
}
