package match

import (
	"sort"
	"strings"
)

// Default scoring parameters.
const (
	// DefaultSubstringBonus is awarded when a field value contains the whole query.
	// It ranks above most fuzzy scores but below an exact match.
	DefaultSubstringBonus = 0.9
	// DefaultSubstringMinLen is the shortest query (in runes) eligible for the bonus.
	DefaultSubstringMinLen = 3
	DefaultMinSimilarity   = 0.5
	DefaultLimit           = 20
)

// Record is anything the matcher can score: a stable identity plus named text fields.
type Record interface {
	ID() string
	Values(field string) []string
}

// Config holds the matcher's tunable thresholds.
type Config struct {
	Tolerance            Tolerance
	SubstringBonus       float64
	SubstringMinLen      int
	DefaultMinSimilarity float64
	DefaultLimit         int
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		Tolerance:            DefaultTolerance(),
		SubstringBonus:       DefaultSubstringBonus,
		SubstringMinLen:      DefaultSubstringMinLen,
		DefaultMinSimilarity: DefaultMinSimilarity,
		DefaultLimit:         DefaultLimit,
	}
}

// Options narrow a single Search call. Zero values fall back to the matcher defaults.
type Options struct {
	// Fields lists the record fields to score, in priority order. Required.
	Fields []string
	// MaxDistance, when set, replaces the adaptive per-word tolerance.
	MaxDistance   *int
	Limit         int
	MinSimilarity float64
}

// Hit is a scored candidate.
type Hit struct {
	Index int // position in the candidates slice
	Score float64
	Field string // field that produced Score
}

// Matcher scores queries against candidate records across weighted fields.
// It holds no per-call state and is safe for concurrent use.
type Matcher struct {
	cfg Config
}

// NewMatcher creates a matcher. Zero-valued config fields take their defaults.
func NewMatcher(cfg Config) *Matcher {
	def := DefaultConfig()
	if cfg.Tolerance == (Tolerance{}) {
		cfg.Tolerance = def.Tolerance
	}
	if cfg.SubstringBonus <= 0 {
		cfg.SubstringBonus = def.SubstringBonus
	}
	if cfg.SubstringMinLen <= 0 {
		cfg.SubstringMinLen = def.SubstringMinLen
	}
	if cfg.DefaultMinSimilarity <= 0 {
		cfg.DefaultMinSimilarity = def.DefaultMinSimilarity
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = def.DefaultLimit
	}
	return &Matcher{cfg: cfg}
}

// Tolerance returns the matcher's adaptive tolerance model.
func (m *Matcher) Tolerance() Tolerance { return m.cfg.Tolerance }

// Search scores query against every candidate and returns the hits whose score reaches
// MinSimilarity, best first. Equal scores keep candidate order.
func (m *Matcher) Search(query string, candidates []Record, opts Options) []Hit {
	q := m.prepare(query, opts.MaxDistance)
	if q == nil || len(candidates) == 0 || len(opts.Fields) == 0 {
		return nil
	}

	minSim := opts.MinSimilarity
	if minSim <= 0 {
		minSim = m.cfg.DefaultMinSimilarity
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = m.cfg.DefaultLimit
	}

	strategies := m.strategies()
	var hits []Hit
	for i, c := range candidates {
		best, field := 0.0, ""
		for _, f := range opts.Fields {
			for _, raw := range c.Values(f) {
				// strict > keeps the higher-priority field on ties
				if s := score(strategies, q, newValue(raw)); s > best {
					best, field = s, f
				}
			}
		}
		if field != "" && best >= minSim {
			hits = append(hits, Hit{Index: i, Score: best, Field: field})
		}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// ScoreValue scores a single raw value against query with the matcher's defaults.
func (m *Matcher) ScoreValue(query, raw string) float64 {
	q := m.prepare(query, nil)
	if q == nil {
		return 0
	}
	return score(m.strategies(), q, newValue(raw))
}

func (m *Matcher) prepare(query string, override *int) *prepared {
	text := strings.TrimSpace(Fold(query))
	if text == "" {
		return nil
	}
	words := tokenize(text)
	budgets := make([]int, len(words))
	for i, w := range words {
		if override != nil {
			budgets[i] = *override
			continue
		}
		budgets[i] = m.cfg.Tolerance.MaxDistance(w)
	}
	return &prepared{text: text, textLen: runeLen(text), words: words, budgets: budgets}
}
