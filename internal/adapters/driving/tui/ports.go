// Package tui provides the interactive catalog search interface.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/arara-labs/gradsearch/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides ranked catalog search and record lookup.
	Search driving.SearchService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(search driving.SearchService) *Ports {
	return &Ports{
		Search: search,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
