// Package mcp provides an MCP (Model Context Protocol) server adapter for
// gradsearch. It lets AI assistants query and refresh the local catalog
// through the same services the CLI uses.
package mcp

import "errors"

var (
	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")

	// ErrMissingScrapeService is returned when a refresh is requested but no
	// scrape service was provided.
	ErrMissingScrapeService = errors.New("mcp: scrape service is not configured")
)
