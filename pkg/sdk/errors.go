package itemsearch

import "github.com/kailas-cloud/itemsearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound            = domain.ErrNotFound
	ErrInvalidFilter       = domain.ErrInvalidFilter
	ErrInvalidItem         = domain.ErrInvalidItem
	ErrInvalidSynonymGroup = domain.ErrInvalidSynonymGroup
	ErrIndexUnavailable    = domain.ErrIndexUnavailable
)
