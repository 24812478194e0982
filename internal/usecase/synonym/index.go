package synonym

import (
	"sort"
	"strings"

	domsyn "github.com/kailas-cloud/itemsearch/internal/domain/synonym"
)

// Index maps every normalized term to the groups containing it.
// An Index is never mutated after Build; refreshes replace it whole.
type Index struct {
	groups []domsyn.Group
	terms  map[string][]int
}

// Build indexes the active groups. Duplicate canonical names across
// categories are kept side by side; lookups union them.
func Build(groups []domsyn.Group) *Index {
	idx := &Index{terms: make(map[string][]int)}
	for i := range groups {
		g := groups[i]
		if !g.IsActive() {
			continue
		}
		pos := len(idx.groups)
		idx.groups = append(idx.groups, g)
		for _, term := range g.Terms() {
			idx.terms[term] = append(idx.terms[term], pos)
		}
	}
	return idx
}

// GroupsContaining returns every group where term is the canonical name or a synonym.
func (idx *Index) GroupsContaining(term string) []domsyn.Group {
	positions := idx.terms[domsyn.Normalize(term)]
	if len(positions) == 0 {
		return nil
	}
	out := make([]domsyn.Group, len(positions))
	for i, p := range positions {
		out[i] = idx.groups[p]
	}
	return out
}

// Expand resolves a query against the index.
// The literal words seed the result, then each word and the whole trimmed
// query pull in the terms of every group that contains them.
func (idx *Index) Expand(query string) domsyn.ExpandedQuery {
	normalized := strings.ToLower(strings.TrimSpace(query))
	words := strings.Fields(normalized)
	if len(words) == 0 {
		return domsyn.NewExpandedQuery(query, []string{}, []string{})
	}

	seen := make(map[string]struct{}, len(words))
	terms := make([]string, 0, len(words))
	add := func(t string) {
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
	}

	for _, w := range words {
		add(w)
	}
	for _, w := range words {
		idx.collect(w, add)
	}
	idx.collect(domsyn.Normalize(normalized), add)

	return domsyn.NewExpandedQuery(query, words, terms)
}

func (idx *Index) collect(term string, add func(string)) {
	for _, p := range idx.terms[term] {
		for _, t := range idx.groups[p].Terms() {
			add(t)
		}
	}
}

// Vocabulary returns every indexed term in lexical order.
func (idx *Index) Vocabulary() []string {
	out := make([]string, 0, len(idx.terms))
	for t := range idx.terms {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of distinct indexed terms.
func (idx *Index) Len() int { return len(idx.terms) }

// Groups returns the number of indexed groups.
func (idx *Index) Groups() int { return len(idx.groups) }
