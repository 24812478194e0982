package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "itemsearch",
			Name:      "search_requests_total",
			Help:      "Total number of hybrid searches by resulting method",
		},
		[]string{"method"},
	)

	SearchStageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "itemsearch",
			Name:      "search_stage_duration_seconds",
			Help:      "Search stage duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"stage"}, // "primary" / "candidates" / "fuzzy" / "suggest"
	)

	PrimaryFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "itemsearch",
			Name:      "primary_failures_total",
			Help:      "Primary text index failures degraded to the fuzzy fallback",
		},
	)

	FuzzyCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "itemsearch",
			Name:      "fuzzy_candidates",
			Help:      "Number of candidate records scanned by the fuzzy stage",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	SynonymIndexTerms = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "itemsearch",
			Name:      "synonym_index_terms",
			Help:      "Number of distinct terms in the active synonym index",
		},
	)

	SynonymRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "itemsearch",
			Name:      "synonym_refresh_total",
			Help:      "Synonym index reloads",
		},
		[]string{"status"}, // "ok" / "error"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchStageDuration)
	prometheus.MustRegister(PrimaryFailuresTotal)
	prometheus.MustRegister(FuzzyCandidates)
	prometheus.MustRegister(SynonymIndexTerms)
	prometheus.MustRegister(SynonymRefreshTotal)
	searchMetricsRegistered = true
}
