package font

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Printable returns text in NFC with control, format, unassigned, separator and
// combining mark characters removed: only letters, numbers, punctuation and
// symbols remain.
func Printable(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.In(r, unicode.L, unicode.N, unicode.P, unicode.S) {
			return r
		}
		return -1
	}, norm.NFC.String(text))
}
