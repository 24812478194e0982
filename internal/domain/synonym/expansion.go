package synonym

// ExpandedQuery is the outcome of synonym expansion for one query.
// Terms are deduplicated and always include the literal query words.
type ExpandedQuery struct {
	original      string
	words         []string
	terms         []string
	synonymsFound bool
}

// NewExpandedQuery builds an expansion result. words are the literal query
// tokens, terms the deduplicated union of words and group terms.
func NewExpandedQuery(original string, words, terms []string) ExpandedQuery {
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	return ExpandedQuery{
		original:      original,
		words:         words,
		terms:         terms,
		synonymsFound: len(terms) > len(unique),
	}
}

// Original returns the raw query.
func (q *ExpandedQuery) Original() string { return q.original }

// Words returns the literal lowercase query tokens.
func (q *ExpandedQuery) Words() []string { return q.words }

// Terms returns every term to search for.
func (q *ExpandedQuery) Terms() []string { return q.terms }

// SynonymsFound reports whether expansion added anything beyond the literal input.
func (q *ExpandedQuery) SynonymsFound() bool { return q.synonymsFound }

// Added returns the terms that are not literal query tokens.
func (q *ExpandedQuery) Added() []string {
	literal := make(map[string]struct{}, len(q.words))
	for _, w := range q.words {
		literal[w] = struct{}{}
	}
	out := make([]string, 0, len(q.terms))
	for _, t := range q.terms {
		if _, ok := literal[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}
