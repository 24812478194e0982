package itemsearch

import (
	"context"
	"fmt"
	"time"

	domsyn "github.com/kailas-cloud/itemsearch/internal/domain/synonym"
)

// SynonymService manages synonym groups and the in-memory synonym index.
type SynonymService struct {
	store synonymStore
	index synonymIndex
	obs   *observer
}

// Upsert stores synonym groups and reloads the index so they take effect immediately.
func (s *SynonymService) Upsert(ctx context.Context, groups ...SynonymGroup) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("synonym.upsert", start, err) }()

	if len(groups) == 0 {
		return nil
	}
	converted := make([]domsyn.Group, len(groups))
	for i, g := range groups {
		converted[i], err = toInternalGroup(g)
		if err != nil {
			return fmt.Errorf("upsert synonym group %q: %w", g.Canonical, err)
		}
	}
	if err = s.store.Upsert(ctx, converted...); err != nil {
		return fmt.Errorf("upsert synonym groups: %w", err)
	}
	if err = s.index.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh synonyms: %w", err)
	}
	return nil
}

// List returns every stored group, active or not.
func (s *SynonymService) List(ctx context.Context) (_ []SynonymGroup, err error) {
	start := time.Now()
	defer func() { s.obs.observe("synonym.list", start, err) }()

	groups, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list synonym groups: %w", err)
	}
	return fromInternalGroups(groups), nil
}

// Deactivate soft-deletes a group and reloads the index.
func (s *SynonymService) Deactivate(ctx context.Context, category, canonical string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("synonym.deactivate", start, err) }()

	if err = s.store.Deactivate(ctx, category, canonical); err != nil {
		return fmt.Errorf("deactivate synonym group %q: %w", canonical, err)
	}
	if err = s.index.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh synonyms: %w", err)
	}
	return nil
}

// Refresh reloads the in-memory index from storage.
func (s *SynonymService) Refresh(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("synonym.refresh", start, err) }()

	if err = s.index.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh synonyms: %w", err)
	}
	return nil
}

// GroupsContaining returns the active groups holding term as canonical or synonym.
func (s *SynonymService) GroupsContaining(term string) []SynonymGroup {
	return fromInternalGroups(s.index.FindGroupsContaining(term))
}
