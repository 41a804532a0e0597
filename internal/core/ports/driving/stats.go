package driving

import (
	"context"

	"github.com/arara-labs/gradsearch/internal/core/domain"
)

// StatsService reports scrape run history.
type StatsService interface {
	// RecentRuns returns the latest runs across all datasets, most
	// recent first.
	RecentRuns(ctx context.Context, limit int) ([]domain.ScrapeRun, error)

	// LastRun returns the most recent run for a dataset, or nil with
	// no error when the dataset has never been scraped.
	LastRun(ctx context.Context, dataset domain.Dataset) (*domain.ScrapeRun, error)
}
