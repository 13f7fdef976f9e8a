// Package textsim scores how alike two short strings are.
package textsim

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity is 1 - edit distance / longer length, compared case-insensitively
// on runes. Two empty strings are identical.
func Similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1
	}
	longer := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longer)
}

// Alike reports whether a and b reach the similarity threshold.
func Alike(a, b string, threshold float64) bool {
	return Similarity(a, b) >= threshold
}
