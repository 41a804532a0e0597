package driving

import (
	"context"

	"github.com/arara-labs/gradsearch/internal/core/domain"
)

// ScrapeService refreshes catalog datasets and their search indexes.
type ScrapeService interface {
	// Refresh loads one dataset, from cache when possible unless
	// fresh is set, and rebuilds its index. Returns the item count.
	Refresh(ctx context.Context, dataset domain.Dataset, fresh bool) (int, error)

	// RefreshAll refreshes every dataset. Datasets load concurrently
	// with no ordering guarantee between them.
	RefreshAll(ctx context.Context, fresh bool) (map[domain.Dataset]int, error)
}
