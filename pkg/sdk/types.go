package itemsearch

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/itemsearch/internal/domain"
	"github.com/kailas-cloud/itemsearch/internal/domain/item"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/result"
	domsyn "github.com/kailas-cloud/itemsearch/internal/domain/synonym"
)

// ExpirationStatus narrows a search by item expiry.
type ExpirationStatus string

// Expiration status constants.
const (
	ExpirationAny        ExpirationStatus = ""
	ExpirationExpired    ExpirationStatus = "expired"
	ExpirationExpiring   ExpirationStatus = "expiring"
	ExpirationFresh      ExpirationStatus = "fresh"
	ExpirationPerishable ExpirationStatus = "perishable"
)

// Item is an inventory record.
type Item struct {
	ID             string
	Name           string
	AlternateNames []string
	Brand          string
	Model          string
	Description    string
	LocationID     string
	CategoryID     string
	StorageType    string
	ExpiresAt      time.Time // zero = does not expire
	Perishable     bool
}

// Query scopes a search. Zero values place no constraint, except for
// locations: an empty Locations list matches nothing unless AllLocations
// is set.
type Query struct {
	Locations    []string
	AllLocations bool
	Category     string
	StorageType  string
	Expiration   ExpirationStatus
	Limit        int // 0 = 50, clamped to 500
	// FuzzyThreshold overrides the client default; 0 disables fuzzy matching.
	FuzzyThreshold *int
}

// Hit is a single scored search result.
type Hit struct {
	Item         Item
	Score        float64
	MatchedField string // empty for full-text index hits
	Source       string // "primary" or "fuzzy"
}

// Results is the outcome of a hybrid search.
type Results struct {
	Items        []Hit
	FuzzyMatches int
	Suggestions  []string
	SynonymsUsed []string
	Method       string
}

// Expansion is a query expanded with synonyms.
type Expansion struct {
	Original      string
	Terms         []string
	Added         []string
	SynonymsFound bool
}

// SynonymGroup is a canonical term with its interchangeable synonyms.
type SynonymGroup struct {
	Canonical string
	Synonyms  []string
	Category  string
	System    bool
	Active    bool
}

// --- converters ---

func toInternalItem(it Item) (item.Item, error) {
	var expires int64
	if !it.ExpiresAt.IsZero() {
		expires = it.ExpiresAt.Unix()
	}
	out, err := item.New(it.ID, it.Name, it.AlternateNames, it.Brand, it.Model, it.Description, item.Attrs{
		LocationID:  it.LocationID,
		CategoryID:  it.CategoryID,
		StorageType: it.StorageType,
		ExpiresAt:   expires,
		Perishable:  it.Perishable,
	})
	if err != nil {
		return item.Item{}, fmt.Errorf("%w: %w", domain.ErrInvalidItem, err)
	}
	return out, nil
}

func fromInternalItem(it item.Item) Item {
	attrs := it.Attrs()
	out := Item{
		ID:             it.ID(),
		Name:           it.Name(),
		AlternateNames: it.AlternateNames(),
		Brand:          it.Brand(),
		Model:          it.Model(),
		Description:    it.Description(),
		LocationID:     attrs.LocationID,
		CategoryID:     attrs.CategoryID,
		StorageType:    attrs.StorageType,
		Perishable:     attrs.Perishable,
	}
	if attrs.ExpiresAt > 0 {
		out.ExpiresAt = time.Unix(attrs.ExpiresAt, 0).UTC()
	}
	return out
}

func toInternalFilters(q Query, defaultThreshold *int) (filter.Filters, error) {
	threshold := q.FuzzyThreshold
	if threshold == nil {
		threshold = defaultThreshold
	}
	var opts []filter.Option
	if q.AllLocations {
		opts = append(opts, filter.AllLocations())
	}
	f, err := filter.New(q.Locations, q.Category, q.StorageType,
		filter.ExpirationStatus(q.Expiration), q.Limit, threshold, opts...)
	if err != nil {
		return filter.Filters{}, fmt.Errorf("%w: %w", domain.ErrInvalidFilter, err)
	}
	return f, nil
}

func fromResponse(resp result.Response) Results {
	hits := make([]Hit, len(resp.Items))
	for i := range resp.Items {
		m := &resp.Items[i]
		hits[i] = Hit{
			Item:         fromInternalItem(m.Item()),
			Score:        m.Score(),
			MatchedField: m.MatchedField(),
			Source:       string(m.Source()),
		}
	}
	return Results{
		Items:        hits,
		FuzzyMatches: resp.FuzzyMatches,
		Suggestions:  nonNil(resp.Suggestions),
		SynonymsUsed: nonNil(resp.SynonymsUsed),
		Method:       string(resp.Method),
	}
}

func fromExpanded(q domsyn.ExpandedQuery) Expansion {
	return Expansion{
		Original:      q.Original(),
		Terms:         nonNil(q.Terms()),
		Added:         q.Added(),
		SynonymsFound: q.SynonymsFound(),
	}
}

func toInternalGroup(g SynonymGroup) (domsyn.Group, error) {
	out, err := domsyn.New(g.Canonical, g.Synonyms, g.Category, g.System)
	if err != nil {
		return domsyn.Group{}, fmt.Errorf("%w: %w", domain.ErrInvalidSynonymGroup, err)
	}
	return out, nil
}

func fromInternalGroup(g domsyn.Group) SynonymGroup {
	return SynonymGroup{
		Canonical: g.Canonical(),
		Synonyms:  nonNil(g.Synonyms()),
		Category:  g.Category(),
		System:    g.IsSystem(),
		Active:    g.IsActive(),
	}
}

func fromInternalGroups(groups []domsyn.Group) []SynonymGroup {
	out := make([]SynonymGroup, len(groups))
	for i, g := range groups {
		out[i] = fromInternalGroup(g)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
