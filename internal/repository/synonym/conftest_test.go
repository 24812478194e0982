package synonym

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/kailas-cloud/itemsearch/internal/db"
	domsyn "github.com/kailas-cloud/itemsearch/internal/domain/synonym"
)

// memStore is an in-memory hash store for tests.
type memStore struct {
	mu      sync.Mutex
	hashes  map[string]map[string]string
	scanErr error
}

func newMemStore() *memStore {
	return &memStore{hashes: map[string]map[string]string{}}
}

func (m *memStore) HSet(_ context.Context, key string, fields map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hashes[key]
	if !ok {
		h = map[string]string{}
		m.hashes[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

func (m *memStore) HReplaceMulti(_ context.Context, items []db.HashSetItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range items {
		h := make(map[string]string, len(it.Fields))
		for k, v := range it.Fields {
			h[k] = v
		}
		m.hashes[it.Key] = h
	}
	return nil
}

func (m *memStore) HGetAllMulti(_ context.Context, keys []string) ([]map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		out[i] = m.hashes[k]
	}
	return out, nil
}

func (m *memStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.hashes[key]
	return ok, nil
}

func (m *memStore) Scan(_ context.Context, pattern string) ([]string, error) {
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for k := range m.hashes {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func newTestRepo(t *testing.T) (*Repo, *memStore) {
	t.Helper()
	ms := newMemStore()
	return New(ms, "inv:"), ms
}

func mustGroup(t *testing.T, canonical string, synonyms []string, category string) domsyn.Group {
	t.Helper()
	g, err := domsyn.New(canonical, synonyms, category, true)
	if err != nil {
		t.Fatalf("synonym.New: %v", err)
	}
	return g
}
