package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoSearchService indicates the view was asked to query the
	// catalog without a search service wired in.
	ErrNoSearchService = errors.New("search service is required")
)
