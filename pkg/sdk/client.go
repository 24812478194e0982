package itemsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/itemsearch/internal/db"
	dbRedis "github.com/kailas-cloud/itemsearch/internal/db/redis"
	"github.com/kailas-cloud/itemsearch/internal/domain/item"
	"github.com/kailas-cloud/itemsearch/internal/domain/match"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/result"
	domsyn "github.com/kailas-cloud/itemsearch/internal/domain/synonym"
	itemrepo "github.com/kailas-cloud/itemsearch/internal/repository/item"
	synonymrepo "github.com/kailas-cloud/itemsearch/internal/repository/synonym"
	healthuc "github.com/kailas-cloud/itemsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/itemsearch/internal/usecase/search"
	synonymuc "github.com/kailas-cloud/itemsearch/internal/usecase/synonym"
	"go.uber.org/zap"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "itemsearch:"
)

// Внутренние интерфейсы для подмены в тестах.
type searchUseCase interface {
	Search(ctx context.Context, query string, filters filter.Filters) (result.Response, error)
	ExpandQuery(query string) domsyn.ExpandedQuery
}

type itemStore interface {
	Upsert(ctx context.Context, items ...item.Item) error
	Get(ctx context.Context, id string) (item.Item, error)
	Delete(ctx context.Context, id string) error
}

type synonymStore interface {
	Upsert(ctx context.Context, groups ...domsyn.Group) error
	List(ctx context.Context) ([]domsyn.Group, error)
	Deactivate(ctx context.Context, category, canonical string) error
}

type synonymIndex interface {
	Refresh(ctx context.Context) error
	FindGroupsContaining(term string) []domsyn.Group
}

// Client is the itemsearch SDK entry point.
type Client struct {
	store     db.Store
	searchSvc searchUseCase
	items     itemStore
	synStore  synonymStore
	synIndex  synonymIndex
	healthSvc healthUseCase
	obs       *observer

	defaultThreshold *int
	stopRefresh      context.CancelFunc
}

// New creates a Client, connects to the database and ensures the item index exists.
// The provided context is used for the readiness check and the initial synonym load.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{keyPrefix: defaultKeyPrefix}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("itemsearch: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("itemsearch: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("itemsearch: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	c, err := wireClient(ctx, store, cfg, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	items := itemrepo.New(store, itemrepo.Config{
		KeyPrefix:     cfg.keyPrefix,
		PageSize:      cfg.pageSize,
		MaxCandidates: cfg.maxCandidates,
	})
	if err := items.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("itemsearch: ensure index: %w", err)
	}
	synStore := synonymrepo.New(store, cfg.keyPrefix)

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	synonyms := synonymuc.New(synStore, logger)
	if err := synonyms.Refresh(ctx); err != nil {
		// searches still run with an empty synonym index
		logger.Warn("initial synonym load failed", zap.Error(err))
	}

	scfg := searchuc.DefaultConfig()
	if cfg.minSimilarity > 0 {
		scfg.MinSimilarity = cfg.minSimilarity
	}
	matcher := match.NewMatcher(match.DefaultConfig())
	searchSvc := searchuc.New(items, items, synonyms, matcher, scfg)

	healthSvc := healthuc.New(store, map[string]healthuc.Checker{
		"synonyms":    synonyms,
		"items_index": items,
	})

	c := &Client{
		store:            store,
		searchSvc:        searchSvc,
		items:            items,
		synStore:         synStore,
		synIndex:         synonyms,
		healthSvc:        healthSvc,
		obs:              obs,
		defaultThreshold: cfg.fuzzyThreshold,
	}
	if cfg.synonymRefresh > 0 {
		runCtx, cancel := context.WithCancel(context.Background())
		c.stopRefresh = cancel
		go synonyms.Run(runCtx, cfg.synonymRefresh)
	}
	return c, nil
}

// Close stops background refresh and releases all resources.
func (c *Client) Close() {
	if c.stopRefresh != nil {
		c.stopRefresh()
	}
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search runs a hybrid search. A failing full-text index degrades to fuzzy
// matching instead of returning an error.
func (c *Client) Search(ctx context.Context, query string, q Query) (_ Results, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	f, err := toInternalFilters(q, c.defaultThreshold)
	if err != nil {
		return Results{}, fmt.Errorf("search: %w", err)
	}
	resp, err := c.searchSvc.Search(ctx, query, f)
	if err != nil {
		return Results{}, fmt.Errorf("search: %w", err)
	}
	return fromResponse(resp), nil
}

// Expand expands a query with synonyms without searching.
func (c *Client) Expand(query string) Expansion {
	return fromExpanded(c.searchSvc.ExpandQuery(query))
}

// Items returns the item management service.
func (c *Client) Items() *ItemService {
	return &ItemService{store: c.items, obs: c.obs}
}

// Synonyms returns the synonym management service.
func (c *Client) Synonyms() *SynonymService {
	return &SynonymService{store: c.synStore, index: c.synIndex, obs: c.obs}
}
