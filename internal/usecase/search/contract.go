package search

import (
	"context"

	"github.com/kailas-cloud/itemsearch/internal/domain/item"
	"github.com/kailas-cloud/itemsearch/internal/domain/match"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/result"
	domsyn "github.com/kailas-cloud/itemsearch/internal/domain/synonym"
)

// TextIndex is the primary ranked full-text stage. It may fail at any time.
type TextIndex interface {
	RankedSearch(ctx context.Context, query string, filters filter.Filters) ([]result.Match, error)
}

// ItemRepository returns every item that passes the filters, with no text constraint.
type ItemRepository interface {
	FindAllMatchingFilters(ctx context.Context, filters filter.Filters) ([]item.Item, error)
}

// Expander expands queries with synonyms.
type Expander interface {
	Expand(query string) domsyn.ExpandedQuery
	Vocabulary() []string
}

// FuzzyMatcher scores a query against in-memory candidates.
type FuzzyMatcher interface {
	Search(query string, candidates []match.Record, opts match.Options) []match.Hit
}
