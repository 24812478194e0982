package item

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/itemsearch/internal/db"
	"github.com/kailas-cloud/itemsearch/internal/domain"
	"github.com/kailas-cloud/itemsearch/internal/domain/item"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/result"
)

// Defaults for candidate paging.
const (
	DefaultPageSize      = 500
	DefaultMaxCandidates = 10000
)

// Text field weights used by the BM25 index.
const (
	weightName           = 5.0
	weightAlternateNames = 3.0
	weightBrand          = 2.0
	weightModel          = 2.0
	weightDescription    = 1.0
)

// store is the consumer interface (ISP) for item storage.
type store interface {
	HReplaceMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	DropIndex(ctx context.Context, name string) error
	SearchBM25(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
}

// Config tunes the repository.
type Config struct {
	KeyPrefix     string // e.g. "itemsearch:"
	PageSize      int
	MaxCandidates int
}

// Repo stores items as hashes indexed by a full-text index.
type Repo struct {
	store         store
	keyPrefix     string
	pageSize      int
	maxCandidates int
	now           func() time.Time
}

// New creates a new item repository.
func New(s store, cfg Config) *Repo {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = DefaultMaxCandidates
	}
	return &Repo{
		store:         s,
		keyPrefix:     cfg.KeyPrefix,
		pageSize:      cfg.PageSize,
		maxCandidates: cfg.MaxCandidates,
		now:           time.Now,
	}
}

func (r *Repo) itemKey(id string) string { return r.keyPrefix + "item:" + id }
func (r *Repo) keyspace() string        { return r.keyPrefix + "item:" }

// IndexName returns the name of the full-text index.
func (r *Repo) IndexName() string { return r.keyPrefix + "items:idx" }

// IndexDefinition describes the item index.
func (r *Repo) IndexDefinition() (*db.IndexDefinition, error) {
	return db.NewIndex(r.IndexName()).
		Prefix(r.keyspace()).
		WeightedText(hashName, weightName).
		WeightedText(hashAlternateNames, weightAlternateNames).
		WeightedText(hashBrand, weightBrand).
		WeightedText(hashModel, weightModel).
		WeightedText(hashDescription, weightDescription).
		Tag(hashLocationID).
		Tag(hashCategoryID).
		Tag(hashStorageType).
		Tag(hashPerishable).
		SortableNumeric(hashExpiresAt).
		Build()
}

// EnsureIndex creates the item index unless it already exists.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.IndexName())
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}
	def, err := r.IndexDefinition()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}
	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// RecreateIndex drops the item index, if present, and builds it again from the
// current schema. Item hashes are kept and re-indexed by the server.
func (r *Repo) RecreateIndex(ctx context.Context) error {
	def, err := r.IndexDefinition()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}
	if err := r.store.DropIndex(ctx, r.IndexName()); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index: %w", err)
	}
	if err := r.store.CreateIndex(ctx, def); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// HealthCheck fails when the item index is missing.
func (r *Repo) HealthCheck(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.IndexName())
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if !exists {
		return domain.ErrIndexUnavailable
	}
	return nil
}

// Upsert writes items, replacing any previous version of each.
func (r *Repo) Upsert(ctx context.Context, items ...item.Item) error {
	if len(items) == 0 {
		return nil
	}
	batch := make([]db.HashSetItem, len(items))
	for i, it := range items {
		batch[i] = db.HashSetItem{Key: r.itemKey(it.ID()), Fields: itemToHash(it)}
	}
	if err := r.store.HReplaceMulti(ctx, batch); err != nil {
		return fmt.Errorf("upsert items: %w", err)
	}
	return nil
}

// Get loads a single item.
func (r *Repo) Get(ctx context.Context, id string) (item.Item, error) {
	m, err := r.store.HGetAll(ctx, r.itemKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return item.Item{}, domain.ErrNotFound
		}
		return item.Item{}, fmt.Errorf("get item: %w", err)
	}
	if len(m) == 0 {
		return item.Item{}, domain.ErrNotFound
	}
	return itemFromHash(id, m), nil
}

// Delete removes an item.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.itemKey(id)); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// RankedSearch runs a BM25 search for any word of query within filters.
// Scores are divided by the top score so the best hit is 1.0.
func (r *Repo) RankedSearch(ctx context.Context, query string, f filter.Filters) ([]result.Match, error) {
	terms := uniqueWords(query)
	if len(terms) == 0 || f.DeniesAll() {
		return nil, nil
	}

	expr, err := expression(f, r.now())
	if err != nil {
		return nil, fmt.Errorf("build filter: %w", err)
	}

	res, err := r.store.SearchBM25(ctx, &db.TextQuery{
		IndexName:  r.IndexName(),
		Terms:      terms,
		TextFields: searchTextFields(),
		Filters:    expr,
		TopK:       f.Limit(),
	})
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil, fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
		}
		return nil, fmt.Errorf("bm25 search: %w", err)
	}

	top := 0.0
	for _, e := range res.Entries {
		if e.Score > top {
			top = e.Score
		}
	}

	out := make([]result.Match, 0, len(res.Entries))
	for _, e := range res.Entries {
		score := 0.0
		if top > 0 {
			score = e.Score / top
		}
		it := itemFromHash(strings.TrimPrefix(e.Key, r.keyspace()), e.Fields)
		out = append(out, result.New(it, score, "", result.SourcePrimary))
	}
	return out, nil
}

// FindAllMatchingFilters pages through every item that satisfies filters,
// up to the configured candidate cap. Filters without an accessible location
// match nothing.
func (r *Repo) FindAllMatchingFilters(ctx context.Context, f filter.Filters) ([]item.Item, error) {
	if f.DeniesAll() {
		return nil, nil
	}
	expr, err := expression(f, r.now())
	if err != nil {
		return nil, fmt.Errorf("build filter: %w", err)
	}

	var out []item.Item
	for offset := 0; offset < r.maxCandidates; offset += r.pageSize {
		limit := min(r.pageSize, r.maxCandidates-offset)
		res, err := r.store.SearchList(ctx, &db.ListQuery{
			IndexName: r.IndexName(),
			Filters:   expr,
			Offset:    offset,
			Limit:     limit,
		})
		if err != nil {
			if errors.Is(err, db.ErrIndexNotFound) {
				return nil, fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
			}
			return nil, fmt.Errorf("list items: %w", err)
		}
		for _, e := range res.Entries {
			out = append(out, itemFromHash(strings.TrimPrefix(e.Key, r.keyspace()), e.Fields))
		}
		if len(res.Entries) < limit || offset+len(res.Entries) >= res.Total {
			break
		}
	}
	return out, nil
}

func searchTextFields() []string {
	fields := item.SearchFields()
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = textFields[f]
	}
	return out
}

func uniqueWords(query string) []string {
	words := strings.Fields(strings.ToLower(query))
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
