package match

import (
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"
)

// Fold returns the case-folded form of s used for every comparison in this package.
func Fold(s string) string {
	// cases.Caser keeps internal state and must not be shared between goroutines.
	return cases.Fold().String(s)
}

// Distance returns the Levenshtein edit distance between a and b after case folding.
// Insertions, deletions and substitutions all cost 1.
func Distance(a, b string) int {
	return distance(Fold(a), Fold(b))
}

// Similarity returns 1 - Distance(a, b) / max(len(a), len(b)) in the range [0, 1].
// Two empty strings are identical.
func Similarity(a, b string) float64 {
	return similarity(Fold(a), Fold(b))
}

// distance expects already folded input.
func distance(a, b string) int {
	if a == b {
		return 0
	}
	return fuzzy.LevenshteinDistance(a, b)
}

// similarity expects already folded input.
func similarity(a, b string) float64 {
	return ratio(distance(a, b), runeLen(a), runeLen(b))
}

func ratio(dist, la, lb int) float64 {
	longest := max(la, lb)
	if longest == 0 {
		return 1
	}
	return 1 - float64(dist)/float64(longest)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
