package filter

import "fmt"

// Search limits.
const (
	DefaultLimit          = 50
	MaxLimit              = 500
	DefaultFuzzyThreshold = 5
	// MaxLocationScope is the maximum number of locations in one search scope.
	MaxLocationScope = 256
)

// ExpirationStatus narrows items by their expiry date.
type ExpirationStatus string

// Expiration status values.
const (
	ExpirationAny        ExpirationStatus = ""
	ExpirationExpired    ExpirationStatus = "expired"
	ExpirationExpiring   ExpirationStatus = "expiring"
	ExpirationFresh      ExpirationStatus = "fresh"
	ExpirationPerishable ExpirationStatus = "perishable"
)

// IsValid checks if the status is one of the supported values.
func (s ExpirationStatus) IsValid() bool {
	switch s {
	case ExpirationAny, ExpirationExpired, ExpirationExpiring, ExpirationFresh, ExpirationPerishable:
		return true
	}
	return false
}

// Filters is a validated search scope. LocationScope is resolved by the caller's
// permission layer: an empty scope grants access to nothing unless the filters
// were built with AllLocations.
type Filters struct {
	locationScope    []string
	allLocations     bool
	categoryID       string
	storageType      string
	expirationStatus ExpirationStatus
	limit            int
	fuzzyThreshold   int
}

// Option adjusts filters at construction.
type Option func(*Filters)

// AllLocations lifts the location constraint. It cannot be combined with a scope.
func AllLocations() Option {
	return func(f *Filters) { f.allLocations = true }
}

// New validates and normalizes search filters.
// Defaults: limit=50 (clamped to 500), fuzzyThreshold=5. A negative threshold is rejected;
// zero disables the fuzzy stage.
func New(
	locationScope []string,
	categoryID, storageType string,
	expiration ExpirationStatus,
	limit int,
	fuzzyThreshold *int,
	opts ...Option,
) (Filters, error) {
	if len(locationScope) > MaxLocationScope {
		return Filters{}, fmt.Errorf("too many locations in scope (max %d)", MaxLocationScope)
	}
	for _, id := range locationScope {
		if id == "" {
			return Filters{}, fmt.Errorf("location id must not be empty")
		}
	}
	if !expiration.IsValid() {
		return Filters{}, fmt.Errorf("invalid expiration status: %q", expiration)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	threshold := DefaultFuzzyThreshold
	if fuzzyThreshold != nil {
		if *fuzzyThreshold < 0 {
			return Filters{}, fmt.Errorf("fuzzy_threshold must not be negative")
		}
		threshold = *fuzzyThreshold
	}

	var scope []string
	if len(locationScope) > 0 {
		scope = make([]string, len(locationScope))
		copy(scope, locationScope)
	}

	f := Filters{
		locationScope:    scope,
		categoryID:       categoryID,
		storageType:      storageType,
		expirationStatus: expiration,
		limit:            limit,
		fuzzyThreshold:   threshold,
	}
	for _, o := range opts {
		o(&f)
	}
	if f.allLocations && len(scope) > 0 {
		return Filters{}, fmt.Errorf("location scope and all locations are mutually exclusive")
	}
	return f, nil
}

// Default returns filters over all locations with default limits.
func Default() Filters {
	return Filters{allLocations: true, limit: DefaultLimit, fuzzyThreshold: DefaultFuzzyThreshold}
}

// LocationScope returns the accessible location ids.
func (f Filters) LocationScope() []string { return f.locationScope }

// AllLocations reports whether the location constraint was lifted explicitly.
func (f Filters) AllLocations() bool { return f.allLocations }

// DeniesAll reports whether the scope grants access to no location at all.
// Such filters match nothing.
func (f Filters) DeniesAll() bool { return !f.allLocations && len(f.locationScope) == 0 }

// CategoryID returns the category constraint ("" = any).
func (f Filters) CategoryID() string { return f.categoryID }

// StorageType returns the storage type constraint ("" = any).
func (f Filters) StorageType() string { return f.storageType }

// ExpirationStatus returns the expiry constraint.
func (f Filters) ExpirationStatus() ExpirationStatus { return f.expirationStatus }

// Limit returns the maximum number of results.
func (f Filters) Limit() int { return f.limit }

// FuzzyThreshold returns the primary result count at which the fuzzy stage is skipped.
func (f Filters) FuzzyThreshold() int { return f.fuzzyThreshold }

// IsEmpty reports whether no attribute constraint is set.
func (f Filters) IsEmpty() bool {
	return f.allLocations && f.categoryID == "" &&
		f.storageType == "" && f.expirationStatus == ExpirationAny
}
