package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arara-labs/gradsearch/internal/adapters/driving/tui/messages"
	"github.com/arara-labs/gradsearch/internal/core/domain"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(NewPorts(&MockSearchService{}))
	require.NoError(t, err)
	return app
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t)

	assert.False(t, app.Ready())
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
	assert.Equal(t, "", app.Query())
}

func TestNewApp_MissingSearchService(t *testing.T) {
	app, err := NewApp(&Ports{})

	require.Error(t, err)
	assert.Nil(t, app)
	assert.ErrorIs(t, err, ErrMissingSearchService)
}

func TestApp_WithContext(t *testing.T) {
	app := newTestApp(t)
	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	result := app.WithContext(ctx)

	assert.Equal(t, app, result)
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	app := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app := newTestApp(t)

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	updated, ok := model.(*App)
	require.True(t, ok)
	assert.Nil(t, cmd)
	assert.True(t, updated.Ready())
	assert.Equal(t, 100, updated.width)
	assert.Equal(t, 40, updated.height)
}

func TestApp_Update_CtrlCQuits(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_Update_QuitMessage(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_Update_DetailLoadedSwitchesView(t *testing.T) {
	app := newTestApp(t)

	msg := messages.DetailLoaded{
		Result:     messages.Result{Code: "MC102", Dataset: domain.DatasetDisciplines},
		Discipline: &domain.Discipline{Code: "MC102", Name: "Algoritmos"},
	}
	model, _ := app.Update(msg)

	updated, ok := model.(*App)
	require.True(t, ok)
	assert.Equal(t, messages.ViewDetail, updated.CurrentView())
}

func TestApp_Update_DetailLoadedErrorStaysOnSearch(t *testing.T) {
	app := newTestApp(t)

	msg := messages.DetailLoaded{
		Result: messages.Result{Code: "MC102"},
		Err:    errors.New("lookup failed"),
	}
	model, _ := app.Update(msg)

	updated, ok := model.(*App)
	require.True(t, ok)
	assert.Equal(t, messages.ViewSearch, updated.CurrentView())
	assert.Error(t, updated.Err())
}

func TestApp_Update_ViewChanged(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(messages.ViewChanged{View: messages.ViewDetail})
	updated, ok := model.(*App)
	require.True(t, ok)
	assert.Equal(t, messages.ViewDetail, updated.CurrentView())

	model, _ = updated.Update(messages.ViewChanged{View: messages.ViewSearch})
	updated, ok = model.(*App)
	require.True(t, ok)
	assert.Equal(t, messages.ViewSearch, updated.CurrentView())
}

func TestApp_Update_ErrorOccurred(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(messages.ErrorOccurred{Err: errors.New("index not loaded")})

	updated, ok := model.(*App)
	require.True(t, ok)
	assert.Error(t, updated.Err())
}

func TestApp_Update_SearchCompletedForwarded(t *testing.T) {
	app := newTestApp(t)
	app.SetDimensions(80, 24)

	// Completions only land when they answer the live query.
	app.searchView.SetQuery("mc")
	msg := messages.SearchCompleted{
		Query: "mc",
		Results: []messages.Result{
			{Code: "MC102", Name: "Algoritmos", Score: 0.9, Dataset: domain.DatasetDisciplines},
		},
	}
	model, _ := app.Update(msg)

	updated, ok := model.(*App)
	require.True(t, ok)
	assert.Len(t, updated.Results(), 1)
	assert.Equal(t, "MC102", updated.Results()[0].Code)
}

func TestApp_View_NotReady(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_View_RendersSearch(t *testing.T) {
	app := newTestApp(t)
	app.SetDimensions(80, 24)

	output := app.View()

	assert.Contains(t, output, "gradsearch")
	assert.Contains(t, output, "No results")
}

func TestApp_View_RendersDetail(t *testing.T) {
	app := newTestApp(t)
	app.SetDimensions(80, 24)

	msg := messages.DetailLoaded{
		Result:     messages.Result{Code: "MC102", Dataset: domain.DatasetDisciplines},
		Discipline: &domain.Discipline{Code: "MC102", Name: "Algoritmos"},
	}
	model, _ := app.Update(msg)
	updated, ok := model.(*App)
	require.True(t, ok)

	output := updated.View()

	assert.Contains(t, output, "Discipline")
	assert.Contains(t, output, "MC102")
}

func TestApp_SetDimensions(t *testing.T) {
	app := newTestApp(t)

	app.SetDimensions(120, 50)

	assert.True(t, app.Ready())
	assert.Equal(t, 120, app.width)
	assert.Equal(t, 50, app.height)
}
