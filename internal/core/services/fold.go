package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold maps text to its canonical comparison form: compatibility
// decomposition to collapse width and presentation variants, combining
// mark removal, recomposition, and lower casing. Distance metrics are
// representation sensitive, so queries and candidate properties must
// pass through the same fold before scoring.
func Fold(text string) string {
	// Chained transformers carry state, so the chain is built per
	// call rather than shared across goroutines.
	folding := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)

	folded, _, err := transform.String(folding, text)
	if err != nil {
		// The raw text still scores, just accent and width sensitive.
		folded = text
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
