package synonym

import (
	"context"

	domsyn "github.com/kailas-cloud/itemsearch/internal/domain/synonym"
)

// Store loads synonym groups from storage.
type Store interface {
	ListActive(ctx context.Context) ([]domsyn.Group, error)
}
