package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// isSeparator reports whether r is one of the characters that split words in
// titles, slugs and breadcrumbs.
func isSeparator(r rune) bool {
	switch r {
	case '/', '_', '-', '|', '&':
		return true
	}
	return false
}

// Text lowercases raw text and reduces it to single-space separated words.
// Separator runs and punctuation become spaces; letters, digits and
// underscores survive. Text(Text(s)) == Text(s).
func Text(raw string) string {
	if raw == "" {
		return ""
	}

	s := lower.String(raw)

	b := strings.Builder{}
	b.Grow(len(s))
	inSeparator := false
	for _, r := range s {
		if isSeparator(r) {
			if !inSeparator {
				b.WriteRune(' ')
			}
			inSeparator = true
			continue
		}
		inSeparator = false

		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Words splits raw text into its normalized words.
func Words(raw string) []string {
	return strings.Fields(Text(raw))
}
