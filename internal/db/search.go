package db

// TextQuery is the input for BM25 text search.
// Terms are OR-ed; each term is matched against TextFields (all TEXT fields when empty).
type TextQuery struct {
	IndexName  string
	Terms      []string
	TextFields []string
	Filters    Expression
	TopK       int
}

// ListQuery is the input for a filter-only paged search.
type ListQuery struct {
	IndexName string
	Filters   Expression
	Offset    int
	Limit     int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
