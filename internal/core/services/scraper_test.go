package services

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arara-labs/gradsearch/internal/core/domain"
	"github.com/arara-labs/gradsearch/internal/parallel"
)

// --- Mock implementations ---

// mockCacheStore keeps JSON-encoded records in memory. Saves run on
// detached workers, so every access is guarded.
type mockCacheStore struct {
	mu      sync.Mutex
	records map[string][]byte
	loadErr error
	saveErr error
}

func newMockCacheStore() *mockCacheStore {
	return &mockCacheStore{records: make(map[string][]byte)}
}

func (m *mockCacheStore) Load(key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return m.loadErr
	}
	raw, ok := m.records[key]
	if !ok {
		return domain.ErrCacheLoad
	}
	return json.Unmarshal(raw, v)
}

func (m *mockCacheStore) Save(key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.records[key] = raw
	return nil
}

func (m *mockCacheStore) Path(key string) string {
	return filepath.Join("/tmp/gradsearch-test", key+".json")
}

func (m *mockCacheStore) put(t *testing.T, key string, v any) {
	t.Helper()
	require.NoError(t, m.Save(key, v))
}

func (m *mockCacheStore) putRaw(key string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = raw
}

func (m *mockCacheStore) stored(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.records[key]
	return raw, ok
}

// mockSource implements driven.Source for any payload type.
type mockSource[T any] struct {
	key     string
	output  T
	err     error
	fetches atomic.Int32
}

func (m *mockSource[T]) Fetch(_ context.Context) (T, error) {
	m.fetches.Add(1)
	if m.err != nil {
		var zero T
		return zero, m.err
	}
	return m.output, nil
}

func (m *mockSource[T]) CacheKey() string {
	return m.key
}

func (m *mockSource[T]) Count(output T) int {
	switch v := any(output).(type) {
	case []domain.Discipline:
		return len(v)
	case []domain.Course:
		return len(v)
	default:
		return 0
	}
}

// mockRunStore records calls without persistence.
type mockRunStore struct {
	mu        sync.Mutex
	runs      []domain.ScrapeRun
	recordErr error
}

func (m *mockRunStore) RecordRun(_ context.Context, run *domain.ScrapeRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordErr != nil {
		return m.recordErr
	}
	m.runs = append(m.runs, *run)
	return nil
}

func (m *mockRunStore) RecentRuns(_ context.Context, limit int) ([]domain.ScrapeRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ScrapeRun, len(m.runs))
	copy(out, m.runs)
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockRunStore) LastRun(_ context.Context, dataset domain.Dataset) (*domain.ScrapeRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.runs) - 1; i >= 0; i-- {
		if m.runs[i].Dataset == dataset {
			run := m.runs[i]
			return &run, nil
		}
	}
	return nil, nil
}

func (m *mockRunStore) PruneRuns(_ context.Context, _ int) error { return nil }

func (m *mockRunStore) Close() error { return nil }

func (m *mockRunStore) recorded() []domain.ScrapeRun {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ScrapeRun, len(m.runs))
	copy(out, m.runs)
	return out
}

// --- Test helpers ---

func newTestPool(t *testing.T) *parallel.Pool {
	t.Helper()
	pool, err := parallel.NewPool(2)
	require.NoError(t, err)
	t.Cleanup(pool.Release)
	return pool
}

func scrapedDisciplines() []domain.Discipline {
	return []domain.Discipline{
		{Code: "MC102", Name: "Algoritmos e Programação de Computadores"},
		{Code: "MC202", Name: "Estruturas de Dados", Reqs: []domain.RequirementGroup{
			{{Code: "MC102"}},
		}},
	}
}

// --- Tests ---

func TestScrape_ServesFromCache(t *testing.T) {
	cache := newMockCacheStore()
	cache.put(t, "disciplines", scrapedDisciplines())
	source := &mockSource[[]domain.Discipline]{key: "disciplines"}
	scraper := NewScraper(cache, true, nil, newTestPool(t))

	got, err := Scrape(context.Background(), scraper, source)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "MC102", got[0].Code)
	assert.Zero(t, source.fetches.Load(), "cache hit must not fetch")
}

func TestScrape_MissingCacheFallsBackToFresh(t *testing.T) {
	cache := newMockCacheStore()
	source := &mockSource[[]domain.Discipline]{key: "disciplines", output: scrapedDisciplines()}
	scraper := NewScraper(cache, true, nil, newTestPool(t))

	got, err := Scrape(context.Background(), scraper, source)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int32(1), source.fetches.Load())
}

func TestScrape_CorruptCacheFallsBackToFresh(t *testing.T) {
	cache := newMockCacheStore()
	cache.loadErr = errors.New("unexpected end of JSON input")
	source := &mockSource[[]domain.Discipline]{key: "disciplines", output: scrapedDisciplines()}
	scraper := NewScraper(cache, true, nil, newTestPool(t))

	got, err := Scrape(context.Background(), scraper, source)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int32(1), source.fetches.Load())
}

func TestScrape_CorruptCacheOverwrittenAfterFreshScrape(t *testing.T) {
	cache := newMockCacheStore()
	cache.putRaw("disciplines", []byte(`{"truncated":`))
	source := &mockSource[[]domain.Discipline]{key: "disciplines", output: scrapedDisciplines()}
	scraper := NewScraper(cache, true, nil, newTestPool(t))

	got, err := Scrape(context.Background(), scraper, source)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int32(1), source.fetches.Load())

	scraper.WaitWrites()

	raw, ok := cache.stored("disciplines")
	require.True(t, ok)
	var rewritten []domain.Discipline
	require.NoError(t, json.Unmarshal(raw, &rewritten))
	assert.Equal(t, scrapedDisciplines(), rewritten)
}

func TestScrape_CachingDisabledAlwaysFetches(t *testing.T) {
	cache := newMockCacheStore()
	cache.put(t, "disciplines", scrapedDisciplines())
	source := &mockSource[[]domain.Discipline]{key: "disciplines", output: scrapedDisciplines()}
	scraper := NewScraper(cache, false, nil, newTestPool(t))

	_, err := Scrape(context.Background(), scraper, source)

	require.NoError(t, err)
	assert.Equal(t, int32(1), source.fetches.Load())
}

func TestScrapeFresh_WritesCacheInBackground(t *testing.T) {
	cache := newMockCacheStore()
	source := &mockSource[[]domain.Discipline]{key: "disciplines", output: scrapedDisciplines()}
	scraper := NewScraper(cache, true, nil, newTestPool(t))

	got, err := ScrapeFresh(context.Background(), scraper, source)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	scraper.WaitWrites()
	raw, ok := cache.stored("disciplines")
	require.True(t, ok, "fresh result must reach the cache")

	var reread []domain.Discipline
	require.NoError(t, json.Unmarshal(raw, &reread))
	assert.Equal(t, got, reread)
}

func TestScrapeFresh_FetchErrorPropagates(t *testing.T) {
	cache := newMockCacheStore()
	source := &mockSource[[]domain.Discipline]{key: "disciplines", err: errors.New("connection refused")}
	scraper := NewScraper(cache, true, nil, newTestPool(t))

	_, err := ScrapeFresh(context.Background(), scraper, source)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Contains(t, err.Error(), "connection refused")

	scraper.WaitWrites()
	_, ok := cache.stored("disciplines")
	assert.False(t, ok, "failed fetch must not be cached")
}

func TestScrapeFresh_WriteFailureNeverSurfaces(t *testing.T) {
	cache := newMockCacheStore()
	cache.saveErr = errors.New("disk full")
	source := &mockSource[[]domain.Discipline]{key: "disciplines", output: scrapedDisciplines()}
	scraper := NewScraper(cache, true, nil, newTestPool(t))

	got, err := ScrapeFresh(context.Background(), scraper, source)
	scraper.WaitWrites()

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestScrapeFresh_RecordsRun(t *testing.T) {
	runs := &mockRunStore{}
	source := &mockSource[[]domain.Discipline]{key: "disciplines", output: scrapedDisciplines()}
	scraper := NewScraper(newMockCacheStore(), true, runs, newTestPool(t))

	_, err := ScrapeFresh(context.Background(), scraper, source)
	require.NoError(t, err)

	recorded := runs.recorded()
	require.Len(t, recorded, 1)
	assert.NotEmpty(t, recorded[0].ID)
	assert.Equal(t, domain.DatasetDisciplines, recorded[0].Dataset)
	assert.Equal(t, 2, recorded[0].Items)
	assert.Empty(t, recorded[0].Error)
	assert.False(t, recorded[0].StartedAt.IsZero())
}

func TestScrapeFresh_RecordsFailedRun(t *testing.T) {
	runs := &mockRunStore{}
	source := &mockSource[[]domain.Discipline]{key: "disciplines", err: errors.New("http 503")}
	scraper := NewScraper(newMockCacheStore(), true, runs, newTestPool(t))

	_, err := ScrapeFresh(context.Background(), scraper, source)
	require.Error(t, err)

	recorded := runs.recorded()
	require.Len(t, recorded, 1)
	assert.Equal(t, "http 503", recorded[0].Error)
	assert.Zero(t, recorded[0].Items)
}

func TestScrapeFresh_RunStoreFailureIsSwallowed(t *testing.T) {
	runs := &mockRunStore{recordErr: errors.New("database locked")}
	source := &mockSource[[]domain.Discipline]{key: "disciplines", output: scrapedDisciplines()}
	scraper := NewScraper(newMockCacheStore(), true, runs, newTestPool(t))

	got, err := ScrapeFresh(context.Background(), scraper, source)

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestScraper_CachingEnabled(t *testing.T) {
	pool := newTestPool(t)

	assert.True(t, NewScraper(newMockCacheStore(), true, nil, pool).CachingEnabled())
	assert.False(t, NewScraper(newMockCacheStore(), false, nil, pool).CachingEnabled())
	assert.False(t, NewScraper(nil, true, nil, pool).CachingEnabled())
}
