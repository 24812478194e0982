package match

import (
	"strings"
	"unicode"
)

// strategy scores one field value against a prepared query.
// It reports false when it has no opinion about the pair.
type strategy func(q *prepared, v *value) (float64, bool)

// prepared is a query folded and tokenized once per search.
type prepared struct {
	text    string
	textLen int
	words   []string
	budgets []int // edit budget per word, same order as words
}

// value is a field value folded and tokenized once per comparison.
type value struct {
	text  string
	words []string
}

func newValue(raw string) *value {
	text := strings.TrimSpace(Fold(raw))
	return &value{text: text, words: tokenize(text)}
}

// strategies returns the scoring sequence. Order matters only for auditing;
// the results are folded with max.
func (m *Matcher) strategies() []strategy {
	return []strategy{
		wholeString,
		closeWord,
		m.wordCoverage,
		m.substring,
	}
}

// wholeString compares the full query with the full value.
func wholeString(q *prepared, v *value) (float64, bool) {
	return similarity(q.text, v.text), true
}

// closeWord scores the best query word / value word pair whose edit distance is
// non-zero and within the query word's budget.
func closeWord(q *prepared, v *value) (float64, bool) {
	best, found := 0.0, false
	for i, qw := range q.words {
		budget := q.budgets[i]
		if budget == 0 {
			continue
		}
		qLen := runeLen(qw)
		for _, vw := range v.words {
			vLen := runeLen(vw)
			// length difference is a lower bound on the distance
			if abs(qLen-vLen) > budget {
				continue
			}
			d := distance(qw, vw)
			if d == 0 || d > budget {
				continue
			}
			if s := ratio(d, qLen, vLen); !found || s > best {
				best, found = s, true
			}
		}
	}
	return best, found
}

// wordCoverage matches multi-word queries regardless of word order. Each query
// word takes its best value word: 1 when identical, the edit ratio when within
// budget, 0 otherwise. The mean is scaled by the containment bonus, so a value
// holding every query word in any order ranks like a substring hit.
func (m *Matcher) wordCoverage(q *prepared, v *value) (float64, bool) {
	if len(q.words) < 2 || q.textLen < m.cfg.SubstringMinLen {
		return 0, false
	}
	total := 0.0
	for i, qw := range q.words {
		budget := q.budgets[i]
		qLen := runeLen(qw)
		best := 0.0
		for _, vw := range v.words {
			if qw == vw {
				best = 1
				break
			}
			vLen := runeLen(vw)
			if budget == 0 || abs(qLen-vLen) > budget {
				continue
			}
			if d := distance(qw, vw); d <= budget {
				best = max(best, ratio(d, qLen, vLen))
			}
		}
		total += best
	}
	if total == 0 {
		return 0, false
	}
	return m.cfg.SubstringBonus * total / float64(len(q.words)), true
}

// substring awards the fixed containment bonus when the value contains the query.
func (m *Matcher) substring(q *prepared, v *value) (float64, bool) {
	if q.textLen < m.cfg.SubstringMinLen {
		return 0, false
	}
	if !strings.Contains(v.text, q.text) {
		return 0, false
	}
	return m.cfg.SubstringBonus, true
}

// score folds every strategy with max.
func score(strategies []strategy, q *prepared, v *value) float64 {
	best := 0.0
	for _, s := range strategies {
		if got, ok := s(q, v); ok && got > best {
			best = got
		}
	}
	return best
}

// tokenize splits folded text on whitespace and strips surrounding punctuation.
func tokenize(text string) []string {
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, unicode.IsPunct)
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
