package strutil

import (
	"strings"
	"unicode"
)

// ToSnakeCase converts s to lower_snake_case. Acronyms stay together, so
// "HTTPServer" becomes "http_server".
func ToSnakeCase(s string) string {
	return joinLower(splitWords(s), "_")
}

// ToKebabCase converts s to lower-kebab-case.
func ToKebabCase(s string) string {
	return joinLower(splitWords(s), "-")
}

// ToCamelCase converts s to lowerCamelCase.
func ToCamelCase(s string) string {
	words := splitWords(s)
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(strings.ToLower(w))
			continue
		}
		b.WriteString(Capitalize(strings.ToLower(w)))
	}
	return b.String()
}

// ToPascalCase converts s to UpperCamelCase.
func ToPascalCase(s string) string {
	var b strings.Builder
	for _, w := range splitWords(s) {
		b.WriteString(Capitalize(strings.ToLower(w)))
	}
	return b.String()
}

func joinLower(words []string, sep string) string {
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, sep)
}

// splitWords breaks s on separators, lower-to-upper transitions, the end of an
// acronym ("HTTPServer" -> "HTTP", "Server") and letter/digit boundaries.
func splitWords(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) || r == '.' {
			flush()
			continue
		}
		if len(cur) > 0 {
			prev := cur[len(cur)-1]
			switch {
			case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
				flush()
			case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				flush()
			case unicode.IsDigit(r) != unicode.IsDigit(prev):
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}
