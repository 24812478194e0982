package item

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/itemsearch/internal/db"
	"github.com/kailas-cloud/itemsearch/internal/domain/item"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hReplaceMultiFn func(ctx context.Context, items []db.HashSetItem) error
	hGetAllFn       func(ctx context.Context, key string) (map[string]string, error)
	delFn           func(ctx context.Context, key string) error
	createIndexFn   func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn   func(ctx context.Context, name string) (bool, error)
	dropIndexFn     func(ctx context.Context, name string) error
	searchBM25Fn    func(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	searchListFn    func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
}

func (m *mockStore) HReplaceMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hReplaceMultiFn != nil {
		return m.hReplaceMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hGetAllFn != nil {
		return m.hGetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) DropIndex(ctx context.Context, name string) error {
	if m.dropIndexFn != nil {
		return m.dropIndexFn(ctx, name)
	}
	return nil
}

func (m *mockStore) SearchBM25(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if m.searchBM25Fn != nil {
		return m.searchBM25Fn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	if m.searchListFn != nil {
		return m.searchListFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T, cfg Config) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "inv:"
	}
	repo := New(ms, cfg)
	repo.now = func() time.Time { return testNow }
	return repo, ms
}

func mustItem(t *testing.T, id, name string, alt []string, attrs item.Attrs) item.Item {
	t.Helper()
	it, err := item.New(id, name, alt, "", "", "", attrs)
	if err != nil {
		t.Fatalf("item.New: %v", err)
	}
	return it
}

func entry(id string, score float64, fields map[string]string) db.SearchEntry {
	return db.SearchEntry{Key: "inv:item:" + id, Score: score, Fields: fields}
}
