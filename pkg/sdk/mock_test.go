package itemsearch

import (
	"context"

	"github.com/kailas-cloud/itemsearch/internal/domain/item"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/result"
	domsyn "github.com/kailas-cloud/itemsearch/internal/domain/synonym"
	healthuc "github.com/kailas-cloud/itemsearch/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, query string, filters filter.Filters) (result.Response, error)
	expandFn func(query string) domsyn.ExpandedQuery
}

func (m *mockSearchUC) Search(ctx context.Context, query string, filters filter.Filters) (result.Response, error) {
	return m.searchFn(ctx, query, filters)
}

func (m *mockSearchUC) ExpandQuery(query string) domsyn.ExpandedQuery {
	return m.expandFn(query)
}

// --- itemStore mock ---

type mockItemStore struct {
	upsertFn func(ctx context.Context, items ...item.Item) error
	getFn    func(ctx context.Context, id string) (item.Item, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockItemStore) Upsert(ctx context.Context, items ...item.Item) error {
	return m.upsertFn(ctx, items...)
}

func (m *mockItemStore) Get(ctx context.Context, id string) (item.Item, error) {
	return m.getFn(ctx, id)
}

func (m *mockItemStore) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

// --- synonymStore mock ---

type mockSynonymStore struct {
	upsertFn     func(ctx context.Context, groups ...domsyn.Group) error
	listFn       func(ctx context.Context) ([]domsyn.Group, error)
	deactivateFn func(ctx context.Context, category, canonical string) error
}

func (m *mockSynonymStore) Upsert(ctx context.Context, groups ...domsyn.Group) error {
	return m.upsertFn(ctx, groups...)
}

func (m *mockSynonymStore) List(ctx context.Context) ([]domsyn.Group, error) {
	return m.listFn(ctx)
}

func (m *mockSynonymStore) Deactivate(ctx context.Context, category, canonical string) error {
	return m.deactivateFn(ctx, category, canonical)
}

// --- synonymIndex mock ---

type mockSynonymIndex struct {
	refreshErr error
	refreshes  int
	groups     []domsyn.Group
	lastTerm   string
}

func (m *mockSynonymIndex) Refresh(_ context.Context) error {
	m.refreshes++
	return m.refreshErr
}

func (m *mockSynonymIndex) FindGroupsContaining(term string) []domsyn.Group {
	m.lastTerm = term
	return m.groups
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }
