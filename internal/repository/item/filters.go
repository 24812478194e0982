package item

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/itemsearch/internal/db"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/filter"
)

// ExpiringWindow is how far ahead an expiry date counts as "expiring".
const ExpiringWindow = 7 * 24 * time.Hour

// expression translates search filters into a store pre-filter.
// Items without an expiry date have no expires_at field and never match a
// date-based status.
func expression(f filter.Filters, now time.Time) (db.Expression, error) {
	var must []db.Condition
	add := func(c db.Condition, err error) error {
		if err != nil {
			return err
		}
		must = append(must, c)
		return nil
	}

	if scope := f.LocationScope(); len(scope) > 0 {
		if err := add(db.NewTagIn(hashLocationID, scope...)); err != nil {
			return db.Expression{}, err
		}
	}
	if v := f.CategoryID(); v != "" {
		if err := add(db.NewTagIn(hashCategoryID, v)); err != nil {
			return db.Expression{}, err
		}
	}
	if v := f.StorageType(); v != "" {
		if err := add(db.NewTagIn(hashStorageType, v)); err != nil {
			return db.Expression{}, err
		}
	}

	nowTS := float64(now.Unix())
	horizon := float64(now.Add(ExpiringWindow).Unix())

	switch f.ExpirationStatus() {
	case filter.ExpirationAny:
	case filter.ExpirationPerishable:
		if err := add(db.NewTagIn(hashPerishable, "true")); err != nil {
			return db.Expression{}, err
		}
	case filter.ExpirationExpired:
		if err := addRange(add, nil, nil, &nowTS, nil); err != nil {
			return db.Expression{}, err
		}
	case filter.ExpirationExpiring:
		if err := addRange(add, nil, &nowTS, nil, &horizon); err != nil {
			return db.Expression{}, err
		}
	case filter.ExpirationFresh:
		if err := addRange(add, &horizon, nil, nil, nil); err != nil {
			return db.Expression{}, err
		}
	default:
		return db.Expression{}, fmt.Errorf("unsupported expiration status %q", f.ExpirationStatus())
	}

	return db.NewExpression(must, nil)
}

func addRange(add func(db.Condition, error) error, gt, gte, lt, lte *float64) error {
	r, err := db.NewRangeFilter(gt, gte, lt, lte)
	if err != nil {
		return err
	}
	return add(db.NewRange(hashExpiresAt, r))
}
