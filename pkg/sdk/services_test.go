package itemsearch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/itemsearch/internal/domain"
	"github.com/kailas-cloud/itemsearch/internal/domain/item"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/method"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/result"
	domsyn "github.com/kailas-cloud/itemsearch/internal/domain/synonym"
)

func wrench() item.Item {
	return item.Reconstruct("t-1", "Adjustable Wrench", []string{"spanner"}, "Acme", "AW-10", "",
		item.Attrs{LocationID: "garage", CategoryID: "tools", ExpiresAt: 1_700_000_000})
}

// --- Search ---

func TestClient_Search(t *testing.T) {
	var got filter.Filters
	mock := &mockSearchUC{
		searchFn: func(_ context.Context, query string, f filter.Filters) (result.Response, error) {
			if query != "spaner" {
				t.Errorf("query = %q, want spaner", query)
			}
			got = f
			return result.Response{
				Items:        []result.Match{result.New(wrench(), 0.8, item.FieldAlternateNames, result.SourceFuzzy)},
				FuzzyMatches: 1,
				SynonymsUsed: []string{"wrench"},
				Method:       method.SynonymsFuzzy,
			}, nil
		},
	}
	c := &Client{searchSvc: mock}

	res, err := c.Search(context.Background(), "spaner", Query{
		Locations:  []string{"garage", "shed"},
		Category:   "tools",
		Expiration: ExpirationFresh,
		Limit:      10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.LocationScope()) != 2 || got.CategoryID() != "tools" || got.Limit() != 10 {
		t.Errorf("filters = %+v", got)
	}
	if got.ExpirationStatus() != filter.ExpirationFresh {
		t.Errorf("expiration = %q, want fresh", got.ExpirationStatus())
	}
	if got.FuzzyThreshold() != filter.DefaultFuzzyThreshold {
		t.Errorf("threshold = %d, want default", got.FuzzyThreshold())
	}
	if len(res.Items) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(res.Items))
	}
	hit := res.Items[0]
	if hit.Item.ID != "t-1" || hit.Source != "fuzzy" || hit.MatchedField != item.FieldAlternateNames {
		t.Errorf("hit = %+v", hit)
	}
	if !hit.Item.ExpiresAt.Equal(time.Unix(1_700_000_000, 0)) {
		t.Errorf("ExpiresAt = %v", hit.Item.ExpiresAt)
	}
	if res.Method != "synonyms+fuzzy" || res.FuzzyMatches != 1 {
		t.Errorf("method = %q, fuzzy = %d", res.Method, res.FuzzyMatches)
	}
	if res.Suggestions == nil {
		t.Error("expected non-nil suggestions")
	}
}

func TestClient_Search_ThresholdPrecedence(t *testing.T) {
	var got filter.Filters
	mock := &mockSearchUC{
		searchFn: func(_ context.Context, _ string, f filter.Filters) (result.Response, error) {
			got = f
			return result.Empty(method.Text), nil
		},
	}
	clientDefault := 2
	c := &Client{searchSvc: mock, defaultThreshold: &clientDefault}

	if _, err := c.Search(context.Background(), "tape", Query{AllLocations: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.FuzzyThreshold() != 2 {
		t.Errorf("threshold = %d, want client default 2", got.FuzzyThreshold())
	}

	zero := 0
	if _, err := c.Search(context.Background(), "tape", Query{FuzzyThreshold: &zero}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.FuzzyThreshold() != 0 {
		t.Errorf("threshold = %d, want per-query 0", got.FuzzyThreshold())
	}
}

func TestClient_Search_LocationAccess(t *testing.T) {
	var got filter.Filters
	mock := &mockSearchUC{
		searchFn: func(_ context.Context, _ string, f filter.Filters) (result.Response, error) {
			got = f
			return result.Empty(method.Text), nil
		},
	}
	c := &Client{searchSvc: mock}

	if _, err := c.Search(context.Background(), "tape", Query{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.DeniesAll() {
		t.Error("query without locations must deny all")
	}

	if _, err := c.Search(context.Background(), "tape", Query{AllLocations: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.AllLocations() || got.DeniesAll() {
		t.Errorf("AllLocations: all=%v denies=%v", got.AllLocations(), got.DeniesAll())
	}

	_, err := c.Search(context.Background(), "tape", Query{Locations: []string{"garage"}, AllLocations: true})
	if !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestClient_Search_InvalidFilter(t *testing.T) {
	c := &Client{searchSvc: &mockSearchUC{}}
	_, err := c.Search(context.Background(), "tape", Query{Expiration: "stale"})
	if !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestClient_Search_Error(t *testing.T) {
	mock := &mockSearchUC{
		searchFn: func(_ context.Context, _ string, _ filter.Filters) (result.Response, error) {
			return result.Response{}, errors.New("db down")
		},
	}
	c := &Client{searchSvc: mock}
	if _, err := c.Search(context.Background(), "tape", Query{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestClient_Expand(t *testing.T) {
	mock := &mockSearchUC{
		expandFn: func(query string) domsyn.ExpandedQuery {
			return domsyn.NewExpandedQuery(query, []string{"spanner"}, []string{"spanner", "wrench"})
		},
	}
	c := &Client{searchSvc: mock}

	exp := c.Expand("spanner")
	if !exp.SynonymsFound {
		t.Error("expected synonyms found")
	}
	if len(exp.Added) != 1 || exp.Added[0] != "wrench" {
		t.Errorf("Added = %v, want [wrench]", exp.Added)
	}
	if len(exp.Terms) != 2 {
		t.Errorf("Terms = %v", exp.Terms)
	}
}

// --- ItemService ---

func TestItemService_Upsert(t *testing.T) {
	var stored []item.Item
	svc := &ItemService{store: &mockItemStore{
		upsertFn: func(_ context.Context, items ...item.Item) error {
			stored = items
			return nil
		},
	}}

	err := svc.Upsert(context.Background(),
		Item{ID: "t-1", Name: " Tape Measure ", LocationID: "garage"},
		Item{ID: "t-2", Name: "Milk", Perishable: true, ExpiresAt: time.Unix(1_800_000_000, 0)},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 stored items, got %d", len(stored))
	}
	if stored[0].Name() != "Tape Measure" {
		t.Errorf("name = %q, want trimmed", stored[0].Name())
	}
	if stored[1].Attrs().ExpiresAt != 1_800_000_000 || !stored[1].Attrs().Perishable {
		t.Errorf("attrs = %+v", stored[1].Attrs())
	}
}

func TestItemService_Upsert_Invalid(t *testing.T) {
	called := false
	svc := &ItemService{store: &mockItemStore{
		upsertFn: func(_ context.Context, _ ...item.Item) error {
			called = true
			return nil
		},
	}}

	err := svc.Upsert(context.Background(), Item{ID: "ok", Name: "Hammer"}, Item{ID: "bad id", Name: "Saw"})
	if !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}
	if called {
		t.Error("store must not be called when any item is invalid")
	}
}

func TestItemService_Upsert_Empty(t *testing.T) {
	svc := &ItemService{store: &mockItemStore{}}
	if err := svc.Upsert(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestItemService_Get(t *testing.T) {
	svc := &ItemService{store: &mockItemStore{
		getFn: func(_ context.Context, id string) (item.Item, error) {
			if id == "t-1" {
				return wrench(), nil
			}
			return item.Item{}, domain.ErrNotFound
		},
	}}

	it, err := svc.Get(context.Background(), "t-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.Name != "Adjustable Wrench" || it.Brand != "Acme" || it.AlternateNames[0] != "spanner" {
		t.Errorf("item = %+v", it)
	}

	_, err = svc.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestItemService_Delete(t *testing.T) {
	var deleted string
	svc := &ItemService{store: &mockItemStore{
		deleteFn: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}}
	if err := svc.Delete(context.Background(), "t-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "t-1" {
		t.Errorf("deleted = %q, want t-1", deleted)
	}
}

// --- SynonymService ---

func TestSynonymService_Upsert(t *testing.T) {
	var stored []domsyn.Group
	idx := &mockSynonymIndex{}
	svc := &SynonymService{
		store: &mockSynonymStore{
			upsertFn: func(_ context.Context, groups ...domsyn.Group) error {
				stored = groups
				return nil
			},
		},
		index: idx,
	}

	err := svc.Upsert(context.Background(), SynonymGroup{
		Canonical: "Wrench",
		Synonyms:  []string{"Spanner", "wrench"},
		Category:  "Tools",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 1 || stored[0].Canonical() != "wrench" || stored[0].Category() != "tools" {
		t.Fatalf("stored = %+v", stored)
	}
	if len(stored[0].Synonyms()) != 1 {
		t.Errorf("synonyms = %v, want canonical deduplicated", stored[0].Synonyms())
	}
	if idx.refreshes != 1 {
		t.Errorf("expected 1 refresh, got %d", idx.refreshes)
	}
}

func TestSynonymService_Upsert_Invalid(t *testing.T) {
	svc := &SynonymService{store: &mockSynonymStore{}, index: &mockSynonymIndex{}}
	err := svc.Upsert(context.Background(), SynonymGroup{Canonical: "  "})
	if !errors.Is(err, ErrInvalidSynonymGroup) {
		t.Fatalf("expected ErrInvalidSynonymGroup, got %v", err)
	}
}

func TestSynonymService_List(t *testing.T) {
	svc := &SynonymService{store: &mockSynonymStore{
		listFn: func(_ context.Context) ([]domsyn.Group, error) {
			return []domsyn.Group{
				domsyn.Reconstruct("tape measure", []string{"tape"}, "tools", true, true),
				domsyn.Reconstruct("tee", nil, "plumbing", false, false),
			}, nil
		},
	}}

	groups, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if !groups[0].System || !groups[0].Active || groups[1].Active {
		t.Errorf("groups = %+v", groups)
	}
	if groups[1].Synonyms == nil {
		t.Error("expected non-nil synonyms")
	}
}

func TestSynonymService_Deactivate(t *testing.T) {
	idx := &mockSynonymIndex{}
	svc := &SynonymService{
		store: &mockSynonymStore{
			deactivateFn: func(_ context.Context, category, canonical string) error {
				if category == "tools" && canonical == "wrench" {
					return nil
				}
				return domain.ErrNotFound
			},
		},
		index: idx,
	}

	if err := svc.Deactivate(context.Background(), "tools", "wrench"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.refreshes != 1 {
		t.Errorf("expected 1 refresh, got %d", idx.refreshes)
	}

	err := svc.Deactivate(context.Background(), "tools", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if idx.refreshes != 1 {
		t.Error("failed deactivation must not refresh")
	}
}

func TestSynonymService_Refresh_Error(t *testing.T) {
	svc := &SynonymService{index: &mockSynonymIndex{refreshErr: errors.New("db down")}}
	if err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestSynonymService_GroupsContaining(t *testing.T) {
	idx := &mockSynonymIndex{groups: []domsyn.Group{
		domsyn.Reconstruct("wrench", []string{"spanner"}, "tools", true, true),
	}}
	svc := &SynonymService{index: idx}

	groups := svc.GroupsContaining("spanner")
	if idx.lastTerm != "spanner" {
		t.Errorf("term = %q, want spanner", idx.lastTerm)
	}
	if len(groups) != 1 || groups[0].Canonical != "wrench" {
		t.Errorf("groups = %+v", groups)
	}
}
