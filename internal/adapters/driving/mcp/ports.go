package mcp

import (
	"github.com/arara-labs/gradsearch/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides ranked catalog search and exact lookup.
	Search driving.SearchService

	// Scrape refreshes catalog datasets.
	Scrape driving.ScrapeService

	// Stats reports scrape run history.
	Stats driving.StatsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Scrape and Stats are optional; the refresh tool and the datasets
	// resource degrade when they are absent.
	return nil
}
