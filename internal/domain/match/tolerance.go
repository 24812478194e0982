package match

// Default tolerance breakpoints: tokens up to ExactMaxLen runes must match exactly,
// up to OneEditMaxLen tolerate one edit, up to TwoEditsMaxLen two, longer ones LongTokenEdits.
const (
	DefaultExactMaxLen    = 3
	DefaultOneEditMaxLen  = 5
	DefaultTwoEditsMaxLen = 8
	DefaultLongTokenEdits = 3
)

// Tolerance maps a token's length to the maximum edit distance accepted for it.
// Short tokens demand exact matches so that "bolt" never fuzzy-matches "boot".
type Tolerance struct {
	ExactMaxLen    int
	OneEditMaxLen  int
	TwoEditsMaxLen int
	LongTokenEdits int
}

// DefaultTolerance returns the standard step function (≤3 → 0, ≤5 → 1, ≤8 → 2, else 3).
func DefaultTolerance() Tolerance {
	return Tolerance{
		ExactMaxLen:    DefaultExactMaxLen,
		OneEditMaxLen:  DefaultOneEditMaxLen,
		TwoEditsMaxLen: DefaultTwoEditsMaxLen,
		LongTokenEdits: DefaultLongTokenEdits,
	}
}

// MaxDistance returns the edit budget for token. It is non-decreasing in token length.
func (t Tolerance) MaxDistance(token string) int {
	return t.forLength(runeLen(token))
}

func (t Tolerance) forLength(n int) int {
	switch {
	case n <= t.ExactMaxLen:
		return 0
	case n <= t.OneEditMaxLen:
		return 1
	case n <= t.TwoEditsMaxLen:
		return 2
	default:
		return t.LongTokenEdits
	}
}
