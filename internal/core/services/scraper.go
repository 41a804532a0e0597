package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arara-labs/gradsearch/internal/core/domain"
	"github.com/arara-labs/gradsearch/internal/core/ports/driven"
	"github.com/arara-labs/gradsearch/internal/logger"
	"github.com/arara-labs/gradsearch/internal/parallel"
)

// Scraper loads catalog datasets, reading the JSON cache when a valid
// record exists and writing fresh results back without blocking the
// caller.
type Scraper struct {
	cache   driven.CacheStore
	enabled bool
	runs    driven.RunStore
	pool    *parallel.Pool
	writes  sync.WaitGroup
}

// NewScraper creates a scraper. Caching is skipped entirely when
// enabled is false or cache is nil. The run store is optional.
func NewScraper(cache driven.CacheStore, enabled bool, runs driven.RunStore, pool *parallel.Pool) *Scraper {
	return &Scraper{
		cache:   cache,
		enabled: enabled,
		runs:    runs,
		pool:    pool,
	}
}

// CachingEnabled reports whether dataset loads consult the cache.
func (s *Scraper) CachingEnabled() bool {
	return s.enabled && s.cache != nil
}

// WaitWrites blocks until every scheduled background cache write has
// finished. Shutdown paths and tests use it; normal callers receive
// their result without waiting on writes.
func (s *Scraper) WaitWrites() {
	s.writes.Wait()
}

// Scrape returns source's dataset, served from cache when a readable
// record exists. Any cache load failure is routine: it is logged at
// informational severity and falls back to a fresh scrape.
func Scrape[T any](ctx context.Context, s *Scraper, source driven.Source[T]) (T, error) {
	if s.CachingEnabled() {
		var cached T
		err := s.cache.Load(source.CacheKey(), &cached)
		if err == nil {
			logger.Info("Loaded %s from cache: %d items", source.CacheKey(), source.Count(cached))
			return cached, nil
		}
		logger.Info("Cache unavailable for %s: %v", source.CacheKey(), err)
	}
	return ScrapeFresh(ctx, s, source)
}

// ScrapeFresh always invokes source's external scrape capability. The
// fresh result is handed back immediately; when caching is enabled the
// cache write happens on a detached worker, and a failed write is
// logged at error severity without ever surfacing to the caller.
// Fetch failures propagate.
func ScrapeFresh[T any](ctx context.Context, s *Scraper, source driven.Source[T]) (T, error) {
	key := source.CacheKey()
	logger.Section("Scraping " + key)

	started := time.Now()
	output, err := source.Fetch(ctx)
	elapsed := time.Since(started)

	if err != nil {
		s.recordRun(ctx, key, 0, started, elapsed, err)
		var zero T
		return zero, fmt.Errorf("scrape %s: %w: %w", key, domain.ErrFetchFailed, err)
	}

	count := source.Count(output)
	logger.Info("Scraped %s: %d items in %s", key, count, elapsed.Round(time.Millisecond))
	s.recordRun(ctx, key, count, started, elapsed, nil)

	if s.CachingEnabled() {
		s.scheduleWrite(key, output)
	}
	return output, nil
}

// scheduleWrite persists value under key on a detached worker so the
// scrape caller never waits on disk.
func (s *Scraper) scheduleWrite(key string, value any) {
	s.writes.Add(1)
	s.pool.Go(func() {
		defer s.writes.Done()

		if err := s.cache.Save(key, value); err != nil {
			logger.Error("Cache write for %s failed: %v", key, err)
			return
		}
		logger.Debug("Cache write for %s complete: %s", key, s.cache.Path(key))
	})
}

// recordRun logs the run to the optional history store. History is
// observability only, so store failures never affect the scrape.
func (s *Scraper) recordRun(
	ctx context.Context, key string, items int, started time.Time, elapsed time.Duration, fetchErr error,
) {
	if s.runs == nil {
		return
	}

	run := &domain.ScrapeRun{
		ID:        uuid.New().String(),
		Dataset:   domain.Dataset(key),
		Items:     items,
		Duration:  elapsed,
		StartedAt: started,
	}
	if fetchErr != nil {
		run.Error = fetchErr.Error()
	}

	if err := s.runs.RecordRun(ctx, run); err != nil {
		logger.Warn("Recording scrape run for %s failed: %v", key, err)
	}
}
