package mcp

import (
	"context"

	"github.com/arara-labs/gradsearch/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	disciplineMatches []domain.Match[domain.DisciplineSummary]
	courseMatches     []domain.Match[domain.CourseSummary]
	discipline        *domain.Discipline
	course            *domain.Course
	requiredBy        domain.CodeSet
	err               error

	gotQuery string
	gotLimit int
}

func (m *mockSearchService) SearchDisciplines(
	_ context.Context,
	query string,
	limit int,
) ([]domain.Match[domain.DisciplineSummary], error) {
	m.gotQuery = query
	m.gotLimit = limit
	return m.disciplineMatches, m.err
}

func (m *mockSearchService) SearchCourses(
	_ context.Context,
	query string,
	limit int,
) ([]domain.Match[domain.CourseSummary], error) {
	m.gotQuery = query
	m.gotLimit = limit
	return m.courseMatches, m.err
}

func (m *mockSearchService) Discipline(_ context.Context, _ string) (*domain.Discipline, error) {
	return m.discipline, m.err
}

func (m *mockSearchService) Course(_ context.Context, _ string) (*domain.Course, error) {
	return m.course, m.err
}

func (m *mockSearchService) RequiredBy(_ context.Context, _ string) (domain.CodeSet, error) {
	return m.requiredBy, m.err
}

// mockScrapeService is a mock implementation of driving.ScrapeService.
type mockScrapeService struct {
	count  int
	counts map[domain.Dataset]int
	err    error

	gotDataset domain.Dataset
	gotFresh   bool
}

func (m *mockScrapeService) Refresh(
	_ context.Context,
	dataset domain.Dataset,
	fresh bool,
) (int, error) {
	m.gotDataset = dataset
	m.gotFresh = fresh
	return m.count, m.err
}

func (m *mockScrapeService) RefreshAll(
	_ context.Context,
	fresh bool,
) (map[domain.Dataset]int, error) {
	m.gotFresh = fresh
	return m.counts, m.err
}

// mockStatsService is a mock implementation of driving.StatsService.
type mockStatsService struct {
	runs    []domain.ScrapeRun
	lastRun *domain.ScrapeRun
	err     error
}

func (m *mockStatsService) RecentRuns(_ context.Context, _ int) ([]domain.ScrapeRun, error) {
	return m.runs, m.err
}

func (m *mockStatsService) LastRun(_ context.Context, _ domain.Dataset) (*domain.ScrapeRun, error) {
	return m.lastRun, m.err
}
