// Package textnorm folds accents and case so matchers can compare free text
// written with or without diacritics.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold strips combining marks (category Mn) after compatibility
// decomposition. "Álvarez" becomes "Alvarez".
func Fold(s string) string {
	if s == "" {
		return s
	}
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Upper folds accents and upper-cases. Used against upper-case rosters.
func Upper(s string) string {
	return strings.ToUpper(Fold(s))
}

// Lower folds accents and lower-cases. Used for label matching.
func Lower(s string) string {
	return strings.ToLower(Fold(s))
}
