package synonym

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/kailas-cloud/itemsearch/internal/db"
	"github.com/kailas-cloud/itemsearch/internal/domain"
	domsyn "github.com/kailas-cloud/itemsearch/internal/domain/synonym"
)

// store is the consumer interface (ISP) for synonym storage.
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HReplaceMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo stores synonym groups as hashes keyed by category and canonical name.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a new synonym repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

func (r *Repo) groupKey(category, canonical string) string {
	return r.keyPrefix + "syn:" + category + ":" + canonical
}

// Upsert writes groups, replacing any group with the same category and canonical name.
func (r *Repo) Upsert(ctx context.Context, groups ...domsyn.Group) error {
	if len(groups) == 0 {
		return nil
	}
	batch := make([]db.HashSetItem, len(groups))
	for i, g := range groups {
		batch[i] = db.HashSetItem{
			Key:    r.groupKey(g.Category(), g.Canonical()),
			Fields: groupToHash(g),
		}
	}
	if err := r.store.HReplaceMulti(ctx, batch); err != nil {
		return fmt.Errorf("upsert synonym groups: %w", err)
	}
	return nil
}

// List returns every stored group, active or not, ordered by category then canonical name.
func (r *Repo) List(ctx context.Context) ([]domsyn.Group, error) {
	keys, err := r.store.Scan(ctx, r.keyPrefix+"syn:*")
	if err != nil {
		return nil, fmt.Errorf("scan synonym groups: %w", err)
	}
	if len(keys) == 0 {
		return []domsyn.Group{}, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load synonym groups: %w", err)
	}

	groups := make([]domsyn.Group, 0, len(hashes))
	for _, h := range hashes {
		// deleted between SCAN and HGETALL
		if len(h) == 0 || h["canonical"] == "" {
			continue
		}
		groups = append(groups, groupFromHash(h))
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Category() != groups[j].Category() {
			return groups[i].Category() < groups[j].Category()
		}
		return groups[i].Canonical() < groups[j].Canonical()
	})
	return groups, nil
}

// ListActive returns the groups that take part in expansion.
func (r *Repo) ListActive(ctx context.Context) ([]domsyn.Group, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	active := all[:0]
	for _, g := range all {
		if g.IsActive() {
			active = append(active, g)
		}
	}
	return active, nil
}

// Deactivate excludes a group from expansion without deleting it.
func (r *Repo) Deactivate(ctx context.Context, category, canonical string) error {
	key := r.groupKey(domsyn.Normalize(category), domsyn.Normalize(canonical))
	ok, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check synonym group: %w", err)
	}
	if !ok {
		return fmt.Errorf("synonym group %q: %w", canonical, domain.ErrNotFound)
	}
	if err := r.store.HSet(ctx, key, map[string]string{"active": "false"}); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return fmt.Errorf("synonym group %q: %w", canonical, domain.ErrNotFound)
		}
		return fmt.Errorf("deactivate synonym group: %w", err)
	}
	return nil
}
