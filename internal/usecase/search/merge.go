package search

import (
	"sort"

	"github.com/kailas-cloud/itemsearch/internal/domain/item"
	"github.com/kailas-cloud/itemsearch/internal/domain/match"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/result"
)

// mergeFuzzy folds the per-term fuzzy hits into one list of fuzzy matches.
// A candidate found by several terms keeps its best score (and that term's field);
// candidates already returned by the primary stage are dropped.
// The result is ordered by score, first-seen order breaking ties.
func mergeFuzzy(primary []result.Match, perTerm [][]match.Hit, candidates []item.Item) []result.Match {
	type scored struct {
		index int
		score float64
		field string
	}

	taken := make(map[string]struct{}, len(primary))
	for i := range primary {
		taken[primary[i].ID()] = struct{}{}
	}

	best := make(map[string]*scored)
	order := make([]string, 0)
	for _, hits := range perTerm {
		for _, h := range hits {
			id := candidates[h.Index].ID()
			if _, ok := taken[id]; ok {
				continue
			}
			if existing, ok := best[id]; ok {
				if h.Score > existing.score {
					existing.score, existing.field = h.Score, h.Field
				}
				continue
			}
			best[id] = &scored{index: h.Index, score: h.Score, field: h.Field}
			order = append(order, id)
		}
	}

	out := make([]result.Match, 0, len(order))
	for _, id := range order {
		s := best[id]
		out = append(out, result.New(candidates[s.index], s.score, s.field, result.SourceFuzzy))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score() > out[j].Score()
	})
	return out
}

// combine puts primary matches first, then fuzzy matches, and truncates to limit.
// It reports how many fuzzy matches survived the cut.
func combine(primary, fuzzy []result.Match, limit int) ([]result.Match, int) {
	items := make([]result.Match, 0, len(primary)+len(fuzzy))
	items = append(items, primary...)
	items = append(items, fuzzy...)
	if len(items) > limit {
		items = items[:limit]
	}

	fuzzyCount := 0
	for i := range items {
		if items[i].Source() == result.SourceFuzzy {
			fuzzyCount++
		}
	}
	return items, fuzzyCount
}
