package chi

import (
	"fmt"

	"github.com/kailas-cloud/itemsearch/internal/domain"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/result"
	domsyn "github.com/kailas-cloud/itemsearch/internal/domain/synonym"
)

func filtersFromParams(p SearchItemsParams, d SearchDefaults) (filter.Filters, error) {
	var scope []string
	if p.Location != nil {
		scope = *p.Location
	}

	limit := derefInt(p.Limit)
	if limit <= 0 {
		limit = d.Limit
	}
	limit = min(limit, d.MaxLimit)

	threshold := p.FuzzyThreshold
	if threshold == nil {
		threshold = &d.FuzzyThreshold
	}

	var opts []filter.Option
	if p.AllLocations != nil && *p.AllLocations {
		opts = append(opts, filter.AllLocations())
	}

	f, err := filter.New(
		scope,
		deref(p.Category),
		deref(p.StorageType),
		filter.ExpirationStatus(deref(p.Expiration)),
		limit,
		threshold,
		opts...,
	)
	if err != nil {
		return filter.Filters{}, fmt.Errorf("%w: %w", domain.ErrInvalidFilter, err)
	}
	return f, nil
}

func searchResponseToAPI(resp result.Response) SearchResponse {
	items := make([]SearchItem, len(resp.Items))
	for i := range resp.Items {
		items[i] = matchToAPI(&resp.Items[i])
	}
	return SearchResponse{
		Items:        items,
		FuzzyMatches: resp.FuzzyMatches,
		Suggestions:  nonNil(resp.Suggestions),
		SynonymsUsed: nonNil(resp.SynonymsUsed),
		SearchMethod: string(resp.Method),
	}
}

func matchToAPI(m *result.Match) SearchItem {
	it := m.Item()
	attrs := it.Attrs()

	var expiresAt *int64
	if attrs.ExpiresAt > 0 {
		v := attrs.ExpiresAt
		expiresAt = &v
	}

	return SearchItem{
		ID:             it.ID(),
		Name:           it.Name(),
		AlternateNames: it.AlternateNames(),
		Brand:          it.Brand(),
		Model:          it.Model(),
		Description:    it.Description(),
		LocationID:     attrs.LocationID,
		CategoryID:     attrs.CategoryID,
		StorageType:    attrs.StorageType,
		ExpiresAt:      expiresAt,
		Perishable:     attrs.Perishable,
		Score:          m.Score(),
		MatchedField:   m.MatchedField(),
		Source:         string(m.Source()),
	}
}

func synonymGroupToAPI(g *domsyn.Group) SynonymGroup {
	return SynonymGroup{
		CanonicalName: g.Canonical(),
		Synonyms:      nonNil(g.Synonyms()),
		Category:      g.Category(),
		IsSystem:      g.IsSystem(),
		IsActive:      g.IsActive(),
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
