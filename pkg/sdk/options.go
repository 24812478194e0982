package itemsearch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	password string

	keyPrefix      string
	pageSize       int
	maxCandidates  int
	synonymRefresh time.Duration

	fuzzyThreshold *int
	minSimilarity  float64

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix namespaces every key and the index name. Default: "itemsearch:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithCandidatePaging sets the page size and the total cap used when loading
// filtered items for the fuzzy stage.
func WithCandidatePaging(pageSize, maxCandidates int) Option {
	return optionFunc(func(c *clientConfig) {
		c.pageSize = pageSize
		c.maxCandidates = maxCandidates
	})
}

// WithSynonymRefresh reloads the synonym index in the background at the given
// interval. Zero (default) disables background refresh; call
// Synonyms().Refresh explicitly instead.
func WithSynonymRefresh(interval time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.synonymRefresh = interval
	})
}

// WithFuzzyThreshold sets the default primary result count at which the fuzzy
// stage is skipped. Zero disables fuzzy matching. Default: 5.
func WithFuzzyThreshold(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.fuzzyThreshold = &n
	})
}

// WithMinSimilarity sets the fuzzy score floor in (0, 1]. Default: 0.5.
func WithMinSimilarity(v float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.minSimilarity = v
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
