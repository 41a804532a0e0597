package driven

import (
	"context"

	"github.com/arara-labs/gradsearch/internal/core/domain"
)

// RunStore persists scrape run history for the stats surface.
type RunStore interface {
	// RecordRun logs one scrape execution, successful or not.
	RecordRun(ctx context.Context, run *domain.ScrapeRun) error

	// RecentRuns returns the latest runs across all datasets, most
	// recent first.
	RecentRuns(ctx context.Context, limit int) ([]domain.ScrapeRun, error)

	// LastRun returns the most recent run for a dataset, or nil with
	// no error when the dataset has never been scraped.
	LastRun(ctx context.Context, dataset domain.Dataset) (*domain.ScrapeRun, error)

	// PruneRuns deletes history beyond the most recent keep runs per
	// dataset.
	PruneRuns(ctx context.Context, keep int) error

	// Close releases the underlying store.
	Close() error
}
