package driving

import "context"

// CacheWatcher reloads catalog indexes when cache files change on disk.
type CacheWatcher interface {
	// Start begins watching the cache directory.
	// Blocks until the context is cancelled or an error occurs.
	// Returns domain.ErrWatcherRunning if already started.
	Start(ctx context.Context) error

	// Stop gracefully stops watching.
	Stop() error
}
