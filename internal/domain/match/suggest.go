package match

import (
	"sort"
	"strings"
)

// Suggestion defaults.
const (
	DefaultSuggestMinSimilarity = 0.5
	DefaultSuggestMaxDistance   = 3
	DefaultMaxSuggestions       = 3
)

// Suggestion is a "did you mean" alternative for a query.
type Suggestion struct {
	Term       string
	Similarity float64
	Distance   int
}

// Suggester proposes near-miss known terms for a query.
type Suggester struct {
	MinSimilarity float64
	MaxDistance   int
}

// DefaultSuggester returns a suggester with the standard thresholds.
func DefaultSuggester() Suggester {
	return Suggester{
		MinSimilarity: DefaultSuggestMinSimilarity,
		MaxDistance:   DefaultSuggestMaxDistance,
	}
}

// Suggest returns up to maxSuggestions known terms that are close to query but not equal to it,
// ordered by similarity. Exact matches are excluded: the user already typed a known term.
func (s Suggester) Suggest(query string, knownTerms []string, maxSuggestions int) []Suggestion {
	out := []Suggestion{}
	q := strings.TrimSpace(Fold(query))
	if q == "" {
		return out
	}
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}
	qLen := runeLen(q)

	seen := make(map[string]struct{}, len(knownTerms))
	for _, raw := range knownTerms {
		term := strings.TrimSpace(Fold(raw))
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}

		tLen := runeLen(term)
		if abs(qLen-tLen) > s.MaxDistance {
			continue
		}
		d := distance(q, term)
		sim := ratio(d, qLen, tLen)
		if d > s.MaxDistance || sim < s.MinSimilarity || sim >= 1 {
			continue
		}
		out = append(out, Suggestion{Term: term, Similarity: sim, Distance: d})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// KnownTerms collects the suggestion corpus from records: every non-empty field
// value plus each of its words, folded and deduplicated in first-seen order.
func KnownTerms(records []Record, fields []string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(t string) {
		if t == "" {
			return
		}
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	for _, r := range records {
		for _, f := range fields {
			for _, raw := range r.Values(f) {
				v := strings.TrimSpace(Fold(raw))
				add(v)
				for _, w := range tokenize(v) {
					add(w)
				}
			}
		}
	}
	return out
}
