package synonym

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	domsyn "github.com/kailas-cloud/itemsearch/internal/domain/synonym"
	"github.com/kailas-cloud/itemsearch/internal/metrics"
)

// Service serves synonym expansion from an in-memory index that is
// reloaded from the store and swapped atomically.
type Service struct {
	store  Store
	logger *zap.Logger
	index  atomic.Pointer[Index]
	loaded atomic.Bool
}

// New creates a synonym service with an empty index.
func New(store Store, logger *zap.Logger) *Service {
	s := &Service{store: store, logger: logger}
	s.index.Store(Build(nil))
	return s
}

// Refresh loads the active groups and replaces the index.
// On failure the previous index stays in place.
func (s *Service) Refresh(ctx context.Context) error {
	groups, err := s.store.ListActive(ctx)
	if err != nil {
		metrics.SynonymRefreshTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("list synonym groups: %w", err)
	}

	idx := Build(groups)
	s.index.Store(idx)
	s.loaded.Store(true)

	metrics.SynonymRefreshTotal.WithLabelValues("ok").Inc()
	metrics.SynonymIndexTerms.Set(float64(idx.Len()))
	s.logger.Info("Synonym index reloaded",
		zap.Int("groups", idx.Groups()),
		zap.Int("terms", idx.Len()),
	)
	return nil
}

// Run refreshes the index every interval until ctx is canceled.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.logger.Error("Synonym refresh failed", zap.Error(err))
			}
		}
	}
}

// Expand expands a query against the current index.
func (s *Service) Expand(query string) domsyn.ExpandedQuery {
	return s.index.Load().Expand(query)
}

// FindGroupsContaining returns the groups that contain term.
func (s *Service) FindGroupsContaining(term string) []domsyn.Group {
	return s.index.Load().GroupsContaining(term)
}

// Vocabulary returns every known synonym term.
func (s *Service) Vocabulary() []string {
	return s.index.Load().Vocabulary()
}

// HealthCheck fails until the first successful load.
func (s *Service) HealthCheck(_ context.Context) error {
	if !s.loaded.Load() {
		return fmt.Errorf("synonym index not loaded")
	}
	return nil
}
