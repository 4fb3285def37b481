package helpers

import (
	"strings"
	"unicode"
)

// StripWhitespace removes every whitespace rune from s
func StripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// NormalizeName lowercases a name and removes all whitespace so
// "Hanik Zaimatus  Sholichah" and "hanikzaimatussholichah" compare equal.
func NormalizeName(s string) string {
	return strings.ToLower(StripWhitespace(s))
}
