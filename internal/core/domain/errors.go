package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownDataset indicates a dataset name outside the catalog.
	ErrUnknownDataset = errors.New("unknown dataset")

	// Scrape Errors.

	// ErrFetchFailed indicates the catalog fetch or parse failed.
	// This is fatal to the scrape request and surfaces to the caller.
	ErrFetchFailed = errors.New("catalog fetch failed")

	// ErrCacheLoad indicates a cache record was missing, unreadable or
	// malformed. Recovered by falling back to a fresh scrape.
	ErrCacheLoad = errors.New("cache load failed")

	// ErrCacheWrite indicates a cache record could not be persisted.
	// Recovered; the scrape result was already returned to the caller.
	ErrCacheWrite = errors.New("cache write failed")

	// Refresh Errors.

	// ErrWatcherRunning indicates the cache watcher is already started.
	ErrWatcherRunning = errors.New("watcher already running")
)
