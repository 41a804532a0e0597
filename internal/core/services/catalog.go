package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/arara-labs/gradsearch/internal/core/domain"
	"github.com/arara-labs/gradsearch/internal/core/ports/driven"
	"github.com/arara-labs/gradsearch/internal/core/ports/driving"
	"github.com/arara-labs/gradsearch/internal/logger"
	"github.com/arara-labs/gradsearch/internal/parallel"
)

// Ensure CatalogService implements the driving ports.
var (
	_ driving.SearchService = (*CatalogService)(nil)
	_ driving.ScrapeService = (*CatalogService)(nil)
	_ driving.StatsService  = (*CatalogService)(nil)
)

// CatalogService owns the in-memory catalog datasets and their search
// indexes. Indexes build lazily on first use and rebuild on refresh;
// swapping an index never disturbs searches running against the old
// one.
type CatalogService struct {
	scraper  *Scraper
	matchers driven.MatcherFactory
	pool     *parallel.Pool
	runs     driven.RunStore

	disciplineSource driven.Source[[]domain.Discipline]
	courseSource     driven.Source[[]domain.Course]

	mu          sync.RWMutex
	disciplines *Index[domain.Discipline, domain.DisciplineSummary]
	courses     *Index[domain.Course, domain.CourseSummary]
}

// NewCatalogService creates the catalog service. The run store is
// optional; without it stats report nothing.
func NewCatalogService(
	scraper *Scraper,
	matchers driven.MatcherFactory,
	pool *parallel.Pool,
	disciplineSource driven.Source[[]domain.Discipline],
	courseSource driven.Source[[]domain.Course],
	runs driven.RunStore,
) *CatalogService {
	return &CatalogService{
		scraper:          scraper,
		matchers:         matchers,
		pool:             pool,
		runs:             runs,
		disciplineSource: disciplineSource,
		courseSource:     courseSource,
	}
}

// Refresh loads one dataset, from cache when possible unless fresh is
// set, and rebuilds its index. Returns the item count.
func (s *CatalogService) Refresh(ctx context.Context, dataset domain.Dataset, fresh bool) (int, error) {
	switch dataset {
	case domain.DatasetDisciplines:
		idx, err := s.refreshDisciplines(ctx, fresh)
		if err != nil {
			return 0, err
		}
		return idx.Len(), nil

	case domain.DatasetCourses:
		idx, err := s.refreshCourses(ctx, fresh)
		if err != nil {
			return 0, err
		}
		return idx.Len(), nil

	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownDataset, dataset)
	}
}

// RefreshAll refreshes every dataset. Datasets load concurrently with
// no ordering guarantee between them; every dataset is attempted even
// when one fails, and the first failure is reported.
func (s *CatalogService) RefreshAll(ctx context.Context, fresh bool) (map[domain.Dataset]int, error) {
	datasets := domain.Datasets()
	counts := make(map[domain.Dataset]int, len(datasets))

	var (
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)

	for _, dataset := range datasets {
		wg.Add(1)
		go func() {
			defer wg.Done()

			count, err := s.Refresh(ctx, dataset, fresh)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn("Refreshing %s failed: %v", dataset, err)
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			counts[dataset] = count
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return counts, firstErr
	}
	return counts, nil
}

// SearchDisciplines ranks disciplines against query and returns at
// most limit matches, best first.
func (s *CatalogService) SearchDisciplines(
	ctx context.Context, query string, limit int,
) ([]domain.Match[domain.DisciplineSummary], error) {
	idx, err := s.ensureDisciplines(ctx)
	if err != nil {
		return nil, err
	}
	return idx.Search(query, limit)
}

// SearchCourses ranks courses against query and returns at most limit
// matches, best first.
func (s *CatalogService) SearchCourses(
	ctx context.Context, query string, limit int,
) ([]domain.Match[domain.CourseSummary], error) {
	idx, err := s.ensureCourses(ctx)
	if err != nil {
		return nil, err
	}
	return idx.Search(query, limit)
}

// Discipline returns the full record for an exact discipline code.
func (s *CatalogService) Discipline(ctx context.Context, code string) (*domain.Discipline, error) {
	idx, err := s.ensureDisciplines(ctx)
	if err != nil {
		return nil, err
	}

	discipline, ok := idx.Lookup(code)
	if !ok {
		return nil, fmt.Errorf("discipline %q: %w", code, domain.ErrNotFound)
	}
	return &discipline, nil
}

// Course returns the full record for an exact course code.
func (s *CatalogService) Course(ctx context.Context, code string) (*domain.Course, error) {
	idx, err := s.ensureCourses(ctx)
	if err != nil {
		return nil, err
	}

	course, ok := idx.Lookup(code)
	if !ok {
		return nil, fmt.Errorf("course %q: %w", code, domain.ErrNotFound)
	}
	return &course, nil
}

// RequiredBy lists the codes of every discipline that names code in at
// least one requirement group.
func (s *CatalogService) RequiredBy(ctx context.Context, code string) (domain.CodeSet, error) {
	idx, err := s.ensureDisciplines(ctx)
	if err != nil {
		return domain.CodeSet{}, err
	}

	discipline, ok := idx.Lookup(code)
	if !ok {
		return domain.CodeSet{}, fmt.Errorf("discipline %q: %w", code, domain.ErrNotFound)
	}
	return domain.RequiredBy(idx.Items(), discipline.Code), nil
}

// RecentRuns returns the latest scrape runs, most recent first.
func (s *CatalogService) RecentRuns(ctx context.Context, limit int) ([]domain.ScrapeRun, error) {
	if s.runs == nil {
		return []domain.ScrapeRun{}, nil
	}
	return s.runs.RecentRuns(ctx, limit)
}

// LastRun returns the most recent run for a dataset, or nil when the
// dataset has never been scraped.
func (s *CatalogService) LastRun(ctx context.Context, dataset domain.Dataset) (*domain.ScrapeRun, error) {
	if s.runs == nil {
		return nil, nil
	}
	return s.runs.LastRun(ctx, dataset)
}

// ensureDisciplines returns the discipline index, building it from
// cache or a fresh scrape on first use.
func (s *CatalogService) ensureDisciplines(ctx context.Context) (*Index[domain.Discipline, domain.DisciplineSummary], error) {
	s.mu.RLock()
	idx := s.disciplines
	s.mu.RUnlock()
	if idx != nil {
		return idx, nil
	}
	return s.refreshDisciplines(ctx, false)
}

// ensureCourses returns the course index, building it on first use.
func (s *CatalogService) ensureCourses(ctx context.Context) (*Index[domain.Course, domain.CourseSummary], error) {
	s.mu.RLock()
	idx := s.courses
	s.mu.RUnlock()
	if idx != nil {
		return idx, nil
	}
	return s.refreshCourses(ctx, false)
}

func (s *CatalogService) refreshDisciplines(
	ctx context.Context, fresh bool,
) (*Index[domain.Discipline, domain.DisciplineSummary], error) {
	if s.disciplineSource == nil {
		return nil, fmt.Errorf("%w: no discipline source configured", domain.ErrUnknownDataset)
	}

	load := Scrape[[]domain.Discipline]
	if fresh {
		load = ScrapeFresh[[]domain.Discipline]
	}

	// Special-requirement flags arrive pre-marked from the source and
	// persist through the cache, so the slice is never mutated after
	// the scraper hands it to the detached cache write.
	disciplines, err := load(ctx, s.scraper, s.disciplineSource)
	if err != nil {
		return nil, err
	}

	idx := NewIndex(domain.DisciplineSearch, disciplines, s.matchers, s.pool)
	s.mu.Lock()
	s.disciplines = idx
	s.mu.Unlock()

	logger.Debug("Discipline index rebuilt: %d entries", idx.Len())
	return idx, nil
}

func (s *CatalogService) refreshCourses(
	ctx context.Context, fresh bool,
) (*Index[domain.Course, domain.CourseSummary], error) {
	if s.courseSource == nil {
		return nil, fmt.Errorf("%w: no course source configured", domain.ErrUnknownDataset)
	}

	load := Scrape[[]domain.Course]
	if fresh {
		load = ScrapeFresh[[]domain.Course]
	}

	courses, err := load(ctx, s.scraper, s.courseSource)
	if err != nil {
		return nil, err
	}

	idx := NewIndex(domain.CourseSearch, courses, s.matchers, s.pool)
	s.mu.Lock()
	s.courses = idx
	s.mu.Unlock()

	logger.Debug("Course index rebuilt: %d entries", idx.Len())
	return idx, nil
}
