package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/arara-labs/gradsearch/internal/core/domain"
	"github.com/arara-labs/gradsearch/internal/core/ports/driven"
	"github.com/arara-labs/gradsearch/internal/core/ports/driving"
	"github.com/arara-labs/gradsearch/internal/logger"
)

// Ensure Refresher implements the interface.
var _ driving.CacheWatcher = (*Refresher)(nil)

// defaultDebounce coalesces the burst of filesystem events an atomic
// cache write produces into one reload.
const defaultDebounce = 200 * time.Millisecond

// Refresher watches the cache directory and reloads any dataset whose
// cache file changes on disk, keeping long-lived surfaces (TUI, MCP)
// current when another process scrapes.
type Refresher struct {
	dir      string
	paths    map[string]domain.Dataset
	catalog  driving.ScrapeService
	debounce time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	pending map[domain.Dataset]time.Time
}

// NewRefresher creates a watcher over the cache files backing every
// known dataset. All datasets share one cache directory.
func NewRefresher(cache driven.CacheStore, catalog driving.ScrapeService) *Refresher {
	paths := make(map[string]domain.Dataset)
	var dir string
	for _, dataset := range domain.Datasets() {
		path := filepath.Clean(cache.Path(string(dataset)))
		paths[path] = dataset
		dir = filepath.Dir(path)
	}

	return &Refresher{
		dir:      dir,
		paths:    paths,
		catalog:  catalog,
		debounce: defaultDebounce,
		pending:  make(map[domain.Dataset]time.Time),
	}
}

// Start begins watching the cache directory. It blocks until the
// context is cancelled or the watcher fails.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return domain.ErrWatcherRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	r.running = true
	r.cancel = cancel
	r.mu.Unlock()

	defer func() {
		cancel()
		r.mu.Lock()
		r.running = false
		r.cancel = nil
		r.mu.Unlock()
	}()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create cache watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(r.dir); err != nil {
		return fmt.Errorf("watch %s: %w", r.dir, err)
	}
	logger.Info("Watching cache directory: %s", r.dir)

	go r.drainPending(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			r.handleEvent(event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Cache watcher error: %v", err)
		}
	}
}

// Stop cancels a running watcher. Safe to call when not running.
func (r *Refresher) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
	return nil
}

// handleEvent schedules a debounced reload when a dataset's cache file
// is created, written or renamed into place.
func (r *Refresher) handleEvent(event fsnotify.Event) {
	dataset, ok := r.paths[filepath.Clean(event.Name)]
	if !ok {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}

	logger.Debug("Cache event: %s %s", event.Op, event.Name)
	r.mu.Lock()
	r.pending[dataset] = time.Now()
	r.mu.Unlock()
}

// drainPending reloads datasets whose last event is older than the
// debounce window.
func (r *Refresher) drainPending(ctx context.Context) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, dataset := range r.takeReady() {
				r.reload(ctx, dataset)
			}
		}
	}
}

// takeReady removes and returns every pending dataset past the
// debounce window.
func (r *Refresher) takeReady() []domain.Dataset {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	var ready []domain.Dataset
	for dataset, scheduledAt := range r.pending {
		if now.Sub(scheduledAt) >= r.debounce {
			ready = append(ready, dataset)
			delete(r.pending, dataset)
		}
	}
	return ready
}

// reload rebuilds one dataset's index from the freshly written cache.
func (r *Refresher) reload(ctx context.Context, dataset domain.Dataset) {
	count, err := r.catalog.Refresh(ctx, dataset, false)
	if err != nil {
		logger.Warn("Reloading %s after cache change failed: %v", dataset, err)
		return
	}
	logger.Info("Reloaded %s after cache change: %d items", dataset, count)
}
