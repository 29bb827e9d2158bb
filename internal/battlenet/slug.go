package battlenet

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Decompose, strip combining marks, recompose: "Área" folds to "Area".
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// RealmSlug normalizes a realm display name to the API slug form:
// diacritics folded, lowercase, apostrophes dropped, spaces hyphenated.
// "Mal'Ganis" becomes "malganis", "Twisting Nether" "twisting-nether".
func RealmSlug(name string) string {
	folded, _, err := transform.String(foldMarks, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		switch r {
		case '\'', '’':
			// dropped
		case ' ':
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}
