package itemsearch

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/itemsearch/internal/domain/item"
)

// ItemService manages the indexed inventory records.
type ItemService struct {
	store itemStore
	obs   *observer
}

// Upsert validates and stores items, replacing existing records with the same ID.
// Nothing is written when any item is invalid.
func (s *ItemService) Upsert(ctx context.Context, items ...Item) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("item.upsert", start, err) }()

	if len(items) == 0 {
		return nil
	}
	converted := make([]item.Item, len(items))
	for i, it := range items {
		converted[i], err = toInternalItem(it)
		if err != nil {
			return fmt.Errorf("upsert item %q: %w", it.ID, err)
		}
	}
	if err = s.store.Upsert(ctx, converted...); err != nil {
		return fmt.Errorf("upsert items: %w", err)
	}
	return nil
}

// Get returns an item by ID.
func (s *ItemService) Get(ctx context.Context, id string) (_ Item, err error) {
	start := time.Now()
	defer func() { s.obs.observe("item.get", start, err) }()

	it, err := s.store.Get(ctx, id)
	if err != nil {
		return Item{}, fmt.Errorf("get item %q: %w", id, err)
	}
	return fromInternalItem(it), nil
}

// Delete removes an item by ID.
func (s *ItemService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("item.delete", start, err) }()

	if err = s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item %q: %w", id, err)
	}
	return nil
}
