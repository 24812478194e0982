package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/itemsearch/internal/domain/item"
	"github.com/kailas-cloud/itemsearch/internal/domain/match"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/method"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/result"
	domsyn "github.com/kailas-cloud/itemsearch/internal/domain/synonym"
	"github.com/kailas-cloud/itemsearch/internal/logger"
	"github.com/kailas-cloud/itemsearch/internal/metrics"
)

// DefaultSuggestBelow is the combined result count under which suggestions are generated.
const DefaultSuggestBelow = 3

// Config tunes the orchestrator.
type Config struct {
	// Fields are scored by the fuzzy stage, in priority order.
	Fields []string
	// MinSimilarity is the fuzzy score floor (0 = matcher default).
	MinSimilarity float64
	// MaxDistance, when set, replaces the adaptive per-word tolerance.
	MaxDistance *int
	// FuzzyLimit caps the hits kept per expanded term (0 = the request limit).
	FuzzyLimit     int
	SuggestBelow   int
	MaxSuggestions int
	Suggester      match.Suggester
}

// DefaultConfig returns the standard orchestration settings.
func DefaultConfig() Config {
	return Config{
		Fields:         item.SearchFields(),
		MinSimilarity:  match.DefaultMinSimilarity,
		SuggestBelow:   DefaultSuggestBelow,
		MaxSuggestions: match.DefaultMaxSuggestions,
		Suggester:      match.DefaultSuggester(),
	}
}

// Service runs hybrid searches: synonym expansion, the primary text index,
// a fuzzy fallback over filtered candidates and "did you mean" suggestions.
type Service struct {
	index    TextIndex
	items    ItemRepository
	synonyms Expander
	fuzzy    FuzzyMatcher
	cfg      Config
}

// New creates a search service.
func New(index TextIndex, items ItemRepository, synonyms Expander, fuzzy FuzzyMatcher, cfg Config) *Service {
	def := DefaultConfig()
	if len(cfg.Fields) == 0 {
		cfg.Fields = def.Fields
	}
	if cfg.SuggestBelow <= 0 {
		cfg.SuggestBelow = def.SuggestBelow
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = def.MaxSuggestions
	}
	if cfg.Suggester == (match.Suggester{}) {
		cfg.Suggester = def.Suggester
	}
	return &Service{index: index, items: items, synonyms: synonyms, fuzzy: fuzzy, cfg: cfg}
}

// ExpandQuery expands a query with synonyms without searching.
func (s *Service) ExpandQuery(query string) domsyn.ExpandedQuery {
	return s.synonyms.Expand(query)
}

// Search resolves a free-text query against the items passing filters.
// An unavailable text index degrades to the fuzzy stage; only a failing
// item repository is reported as an error. A scope without any accessible
// location yields an empty result without touching storage.
func (s *Service) Search(ctx context.Context, query string, filters filter.Filters) (result.Response, error) {
	expanded := s.synonyms.Expand(query)
	if len(expanded.Words()) == 0 || filters.DeniesAll() {
		metrics.SearchRequestsTotal.WithLabelValues(string(method.Text)).Inc()
		return result.Empty(method.Text), nil
	}

	primary := s.searchPrimary(ctx, expanded, filters)
	synonymsUsed := expanded.Added()

	var (
		items      []result.Match
		fuzzyCount int
		candidates []item.Item
		fuzzyRan   bool
	)
	if len(primary) >= filters.FuzzyThreshold() {
		items, _ = combine(primary, nil, filters.Limit())
	} else {
		var err error
		candidates, err = s.loadCandidates(ctx, filters)
		if err != nil {
			return result.Response{}, err
		}
		fuzzyRan = true
		fuzzy := s.searchFuzzy(expanded, primary, candidates, s.fuzzyLimit(filters))
		items, fuzzyCount = combine(primary, fuzzy, filters.Limit())
	}

	m := method.Compose(len(primary) > 0, expanded.SynonymsFound(), fuzzyCount > 0, fuzzyRan)
	metrics.SearchRequestsTotal.WithLabelValues(string(m)).Inc()

	resp := result.Response{
		Items:        items,
		FuzzyMatches: fuzzyCount,
		Suggestions:  []string{},
		SynonymsUsed: synonymsUsed,
		Method:       m,
	}
	if len(items) < s.cfg.SuggestBelow {
		if candidates == nil && !fuzzyRan {
			candidates = s.suggestionCandidates(ctx, filters)
		}
		resp.Suggestions = s.suggest(query, candidates)
	}
	return resp, nil
}

// searchPrimary runs the ranked text search over every expanded term.
// Failures are logged and treated as an empty primary result.
func (s *Service) searchPrimary(ctx context.Context, expanded domsyn.ExpandedQuery, filters filter.Filters) []result.Match {
	start := time.Now()
	defer observeStage("primary", start)

	primary, err := s.index.RankedSearch(ctx, strings.Join(expanded.Terms(), " "), filters)
	if err != nil {
		metrics.PrimaryFailuresTotal.Inc()
		logger.FromContext(ctx).Warn("Primary text search failed, falling back to fuzzy matching",
			zap.String("query", expanded.Original()),
			zap.Error(err),
		)
		return nil
	}
	return primary
}

func (s *Service) loadCandidates(ctx context.Context, filters filter.Filters) ([]item.Item, error) {
	start := time.Now()
	defer observeStage("candidates", start)

	candidates, err := s.items.FindAllMatchingFilters(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	metrics.FuzzyCandidates.Observe(float64(len(candidates)))
	return candidates, nil
}

// searchFuzzy runs the matcher once per expanded term.
func (s *Service) searchFuzzy(
	expanded domsyn.ExpandedQuery, primary []result.Match, candidates []item.Item, limit int,
) []result.Match {
	if len(candidates) == 0 {
		return nil
	}
	start := time.Now()
	defer observeStage("fuzzy", start)

	records := asRecords(candidates)
	opts := match.Options{
		Fields:        s.cfg.Fields,
		MaxDistance:   s.cfg.MaxDistance,
		Limit:         limit,
		MinSimilarity: s.cfg.MinSimilarity,
	}

	perTerm := make([][]match.Hit, 0, len(expanded.Terms()))
	for _, term := range expanded.Terms() {
		perTerm = append(perTerm, s.fuzzy.Search(term, records, opts))
	}
	return mergeFuzzy(primary, perTerm, candidates)
}

func (s *Service) fuzzyLimit(filters filter.Filters) int {
	if s.cfg.FuzzyLimit > 0 && s.cfg.FuzzyLimit < filters.Limit() {
		return s.cfg.FuzzyLimit
	}
	return filters.Limit()
}

// suggestionCandidates loads the corpus when the fuzzy stage was skipped.
// Suggestions are best effort: a failure leaves only the synonym vocabulary.
func (s *Service) suggestionCandidates(ctx context.Context, filters filter.Filters) []item.Item {
	candidates, err := s.items.FindAllMatchingFilters(ctx, filters)
	if err != nil {
		logger.FromContext(ctx).Warn("Suggestion corpus unavailable", zap.Error(err))
		return nil
	}
	return candidates
}

func (s *Service) suggest(query string, candidates []item.Item) []string {
	start := time.Now()
	defer observeStage("suggest", start)

	corpus := match.KnownTerms(asRecords(candidates), s.cfg.Fields)
	corpus = append(corpus, s.synonyms.Vocabulary()...)

	found := s.cfg.Suggester.Suggest(query, corpus, s.cfg.MaxSuggestions)
	out := make([]string, len(found))
	for i, sg := range found {
		out[i] = sg.Term
	}
	return out
}

func asRecords(items []item.Item) []match.Record {
	records := make([]match.Record, len(items))
	for i := range items {
		records[i] = &items[i]
	}
	return records
}

func observeStage(stage string, start time.Time) {
	metrics.SearchStageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
