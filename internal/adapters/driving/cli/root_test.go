package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/arara-labs/gradsearch/internal/adapters/driven/storage/memory"
	"github.com/arara-labs/gradsearch/internal/core/domain"
)

// --- Shared mocks ---

// mockSearchService returns fixed catalog data.
type mockSearchService struct{}

func (m *mockSearchService) SearchDisciplines(
	_ context.Context, _ string, _ int,
) ([]domain.Match[domain.DisciplineSummary], error) {
	return []domain.Match[domain.DisciplineSummary]{
		{Item: domain.DisciplineSummary{Code: "MC102", Name: "Algoritmos e Programação de Computadores"}, Score: 0.15},
		{Item: domain.DisciplineSummary{Code: "MC202", Name: "Estruturas de Dados"}, Score: 0.35},
	}, nil
}

func (m *mockSearchService) SearchCourses(
	_ context.Context, _ string, _ int,
) ([]domain.Match[domain.CourseSummary], error) {
	return []domain.Match[domain.CourseSummary]{
		{Item: domain.CourseSummary{Code: "34", Name: "Engenharia de Computação"}, Score: 0.2},
	}, nil
}

func (m *mockSearchService) Discipline(_ context.Context, code string) (*domain.Discipline, error) {
	return &domain.Discipline{
		Code: code,
		Name: "Estruturas de Dados",
		Reqs: []domain.RequirementGroup{
			{{Code: "MC102"}},
			{{Code: "F 100", Partial: true}, {Code: "AA200", Special: true}},
		},
	}, nil
}

func (m *mockSearchService) Course(_ context.Context, code string) (*domain.Course, error) {
	return &domain.Course{
		Code: code,
		Name: "Engenharia de Computação",
		Tree: []domain.CodeSet{
			domain.NewOrderedSet("F 128", "MA111", "MC102"),
			domain.NewOrderedSet("MC202"),
		},
	}, nil
}

func (m *mockSearchService) RequiredBy(_ context.Context, _ string) (domain.CodeSet, error) {
	return domain.NewOrderedSet("MC302", "MC404"), nil
}

// mockSearchServiceError fails every operation.
type mockSearchServiceError struct{}

func (m *mockSearchServiceError) SearchDisciplines(
	_ context.Context, _ string, _ int,
) ([]domain.Match[domain.DisciplineSummary], error) {
	return nil, errors.New("index not loaded")
}

func (m *mockSearchServiceError) SearchCourses(
	_ context.Context, _ string, _ int,
) ([]domain.Match[domain.CourseSummary], error) {
	return nil, errors.New("index not loaded")
}

func (m *mockSearchServiceError) Discipline(_ context.Context, _ string) (*domain.Discipline, error) {
	return nil, errors.New("index not loaded")
}

func (m *mockSearchServiceError) Course(_ context.Context, _ string) (*domain.Course, error) {
	return nil, errors.New("index not loaded")
}

func (m *mockSearchServiceError) RequiredBy(_ context.Context, _ string) (domain.CodeSet, error) {
	return domain.CodeSet{}, errors.New("index not loaded")
}

// mockScrapeService reports fixed item counts.
type mockScrapeService struct{}

func (m *mockScrapeService) Refresh(_ context.Context, _ domain.Dataset, _ bool) (int, error) {
	return 42, nil
}

func (m *mockScrapeService) RefreshAll(_ context.Context, _ bool) (map[domain.Dataset]int, error) {
	return map[domain.Dataset]int{
		domain.DatasetDisciplines: 2048,
		domain.DatasetCourses:     70,
	}, nil
}

// mockScrapeServiceError fails every operation.
type mockScrapeServiceError struct{}

func (m *mockScrapeServiceError) Refresh(_ context.Context, _ domain.Dataset, _ bool) (int, error) {
	return 0, errors.New("catalog unreachable")
}

func (m *mockScrapeServiceError) RefreshAll(_ context.Context, _ bool) (map[domain.Dataset]int, error) {
	return nil, errors.New("catalog unreachable")
}

// mockStatsService reports one finished run per dataset.
type mockStatsService struct{}

func (m *mockStatsService) RecentRuns(_ context.Context, _ int) ([]domain.ScrapeRun, error) {
	return []domain.ScrapeRun{
		{
			ID:        "run-2",
			Dataset:   domain.DatasetDisciplines,
			Items:     2048,
			Duration:  90 * time.Second,
			StartedAt: time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
		},
		{
			ID:        "run-1",
			Dataset:   domain.DatasetCourses,
			Items:     0,
			Duration:  5 * time.Second,
			StartedAt: time.Date(2025, 3, 9, 8, 0, 0, 0, time.UTC),
			Error:     "catalog unreachable",
		},
	}, nil
}

func (m *mockStatsService) LastRun(_ context.Context, dataset domain.Dataset) (*domain.ScrapeRun, error) {
	if dataset == domain.DatasetCourses {
		// Never scraped
		return nil, nil
	}
	return &domain.ScrapeRun{
		ID:        "run-2",
		Dataset:   dataset,
		Items:     2048,
		Duration:  90 * time.Second,
		StartedAt: time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
	}, nil
}

// mockStatsServiceError fails every operation.
type mockStatsServiceError struct{}

func (m *mockStatsServiceError) RecentRuns(_ context.Context, _ int) ([]domain.ScrapeRun, error) {
	return nil, errors.New("run store unavailable")
}

func (m *mockStatsServiceError) LastRun(_ context.Context, _ domain.Dataset) (*domain.ScrapeRun, error) {
	return nil, errors.New("run store unavailable")
}

// setupTestServices installs mock services and returns a cleanup func
// that restores the previous ones.
func setupTestServices() func() {
	oldSearch := searchService
	oldScrape := scrapeService
	oldStats := statsService
	oldConfig := configStore

	searchService = &mockSearchService{}
	scrapeService = &mockScrapeService{}
	statsService = &mockStatsService{}
	configStore = memory.NewConfigStore()

	return func() {
		searchService = oldSearch
		scrapeService = oldScrape
		statsService = oldStats
		configStore = oldConfig
	}
}

// --- Root command ---

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "gradsearch", rootCmd.Use)
}

func TestRootCmd_Short(t *testing.T) {
	assert.Equal(t, "Fuzzy search over the Unicamp undergraduate catalog", rootCmd.Short)
}

func TestRootCmd_SilencesUsage(t *testing.T) {
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_HasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	assert.NotNil(t, flag, "verbose flag should exist")
	assert.Equal(t, "v", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.Contains(t, names, "search")
	assert.Contains(t, names, "scrape")
	assert.Contains(t, names, "lookup")
	assert.Contains(t, names, "stats")
	assert.Contains(t, names, "settings")
	assert.Contains(t, names, "tui")
	assert.Contains(t, names, "mcp")
	assert.Contains(t, names, "version")
}

func TestSetServices(t *testing.T) {
	oldSearch := searchService
	oldScrape := scrapeService
	oldStats := statsService
	oldWatcher := cacheWatcher
	oldConfig := configStore
	defer func() {
		searchService = oldSearch
		scrapeService = oldScrape
		statsService = oldStats
		cacheWatcher = oldWatcher
		configStore = oldConfig
	}()

	search := &mockSearchService{}
	scrape := &mockScrapeService{}
	stats := &mockStatsService{}
	config := memory.NewConfigStore()

	SetServices(Services{
		Search: search,
		Scrape: scrape,
		Stats:  stats,
		Config: config,
	})

	assert.Equal(t, search, searchService)
	assert.Equal(t, scrape, scrapeService)
	assert.Equal(t, stats, statsService)
	assert.Nil(t, cacheWatcher)
	assert.Equal(t, config, configStore)
}
