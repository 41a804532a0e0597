package domain

import "time"

// ScrapeRun records one fresh scrape execution.
type ScrapeRun struct {
	// ID is the run's unique identifier.
	ID string

	// Dataset names the scraped dataset.
	Dataset Dataset

	// Items is the result cardinality.
	Items int

	// Duration is the fetch and parse wall time.
	Duration time.Duration

	// StartedAt is when the fetch began.
	StartedAt time.Time

	// Error holds the failure message for failed runs, empty on
	// success.
	Error string
}
