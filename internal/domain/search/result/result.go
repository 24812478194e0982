package result

import (
	"github.com/kailas-cloud/itemsearch/internal/domain/item"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/method"
)

// Source identifies the search stage that produced a match.
type Source string

// Match sources.
const (
	SourcePrimary Source = "primary"
	SourceFuzzy   Source = "fuzzy"
)

// Match is a single scored search hit. Score is in [0, 1].
// MatchedField is empty for primary hits (the text index does not report it).
type Match struct {
	item         item.Item
	score        float64
	matchedField string
	source       Source
}

// New creates a match.
func New(it item.Item, score float64, matchedField string, source Source) Match {
	return Match{item: it, score: score, matchedField: matchedField, source: source}
}

// Item returns the matched record.
func (m *Match) Item() item.Item { return m.item }

// ID returns the matched record's identifier.
func (m *Match) ID() string { return m.item.ID() }

// Score returns the relevance score.
func (m *Match) Score() float64 { return m.score }

// MatchedField returns the field that produced the score.
func (m *Match) MatchedField() string { return m.matchedField }

// Source returns the producing stage.
func (m *Match) Source() Source { return m.source }

// Response is the outcome of a hybrid search.
type Response struct {
	Items        []Match
	FuzzyMatches int
	Suggestions  []string
	SynonymsUsed []string
	Method       method.Method
}

// Empty returns a well-formed response with no hits.
func Empty(m method.Method) Response {
	return Response{
		Items:        []Match{},
		Suggestions:  []string{},
		SynonymsUsed: []string{},
		Method:       m,
	}
}
