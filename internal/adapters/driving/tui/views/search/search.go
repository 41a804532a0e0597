// Package search provides the live search view for the TUI.
package search

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/arara-labs/gradsearch/internal/adapters/driving/tui/components/input"
	"github.com/arara-labs/gradsearch/internal/adapters/driving/tui/components/list"
	"github.com/arara-labs/gradsearch/internal/adapters/driving/tui/components/status"
	"github.com/arara-labs/gradsearch/internal/adapters/driving/tui/keymap"
	"github.com/arara-labs/gradsearch/internal/adapters/driving/tui/messages"
	"github.com/arara-labs/gradsearch/internal/adapters/driving/tui/styles"
	"github.com/arara-labs/gradsearch/internal/core/domain"
	"github.com/arara-labs/gradsearch/internal/core/ports/driving"
)

// resultLimit caps how many hits one query pulls into the list.
const resultLimit = 50

// View is the live search view: a query input above a result list.
// Every keystroke that changes the query re-runs the search; the input
// keeps focus throughout, and arrow keys move the selection.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	ctx           context.Context

	dataset domain.Dataset
	width   int
	height  int
	ready   bool
	err     error
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, searchService driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewSearchInput(s),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		ctx:           context.Background(),
		dataset:       domain.DatasetDisciplines,
		width:         80,
		height:        24,
		ready:         false,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc clears the query first and quits once it is empty.
	if msg.Type == tea.KeyEsc {
		if v.input.Value() != "" {
			v.clearQuery()
			return v, nil
		}
		return v, func() tea.Msg { return messages.Quit{} }
	}

	// Tab toggles the dataset and re-runs the current query against it.
	if msg.Type == tea.KeyTab {
		v.toggleDataset()
		if query := v.input.Value(); query != "" {
			v.statusbar.SetState(status.StateSearching)
			return v, v.performSearch(query)
		}
		return v, nil
	}

	// Enter opens the detail view for the selected hit.
	if msg.Type == tea.KeyEnter {
		result := v.list.SelectedResult()
		if result == nil {
			return v, nil
		}
		return v, v.loadDetail(*result)
	}

	// Arrows move the selection without stealing input focus.
	switch msg.String() {
	case "up", "ctrl+p":
		v.list.MoveUp()
		return v, nil
	case "down", "ctrl+n":
		v.list.MoveDown()
		return v, nil
	}

	// Everything else edits the query; a changed value re-runs the
	// search.
	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	after := v.input.Value()

	if after == before {
		return v, cmd
	}
	if after == "" {
		v.list.SetResults(nil)
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetResultCount(0)
		return v, cmd
	}

	v.statusbar.SetState(status.StateSearching)
	return v, tea.Batch(cmd, v.performSearch(after))
}

// performSearch queries the active dataset.
func (v *View) performSearch(query string) tea.Cmd {
	dataset := v.dataset
	return func() tea.Msg {
		if v.searchService == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}

		switch dataset {
		case domain.DatasetCourses:
			matches, err := v.searchService.SearchCourses(v.ctx, query, resultLimit)
			if err != nil {
				return messages.SearchCompleted{Query: query, Err: err}
			}
			results := make([]messages.Result, len(matches))
			for i, m := range matches {
				results[i] = messages.Result{
					Code:    m.Item.Code,
					Name:    m.Item.Name,
					Score:   m.Score,
					Dataset: domain.DatasetCourses,
				}
			}
			return messages.SearchCompleted{Query: query, Results: results}

		default:
			matches, err := v.searchService.SearchDisciplines(v.ctx, query, resultLimit)
			if err != nil {
				return messages.SearchCompleted{Query: query, Err: err}
			}
			results := make([]messages.Result, len(matches))
			for i, m := range matches {
				results[i] = messages.Result{
					Code:    m.Item.Code,
					Name:    m.Item.Name,
					Score:   m.Score,
					Dataset: domain.DatasetDisciplines,
				}
			}
			return messages.SearchCompleted{Query: query, Results: results}
		}
	}
}

// loadDetail fetches the full record behind a hit.
func (v *View) loadDetail(result messages.Result) tea.Cmd {
	return func() tea.Msg {
		if v.searchService == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}

		if result.Dataset == domain.DatasetCourses {
			course, err := v.searchService.Course(v.ctx, result.Code)
			if err != nil {
				return messages.DetailLoaded{Result: result, Err: err}
			}
			return messages.DetailLoaded{Result: result, Course: course}
		}

		discipline, err := v.searchService.Discipline(v.ctx, result.Code)
		if err != nil {
			return messages.DetailLoaded{Result: result, Err: err}
		}
		requiredBy, err := v.searchService.RequiredBy(v.ctx, result.Code)
		if err != nil {
			return messages.DetailLoaded{Result: result, Err: err}
		}
		return messages.DetailLoaded{
			Result:     result,
			Discipline: discipline,
			RequiredBy: requiredBy,
		}
	}
}

// handleSearchCompleted installs fresh results and drops stale ones.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Query != v.input.Value() {
		return
	}

	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.list.SetResults(msg.Results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(msg.Results))
}

// toggleDataset switches between disciplines and courses.
func (v *View) toggleDataset() {
	if v.dataset == domain.DatasetDisciplines {
		v.dataset = domain.DatasetCourses
	} else {
		v.dataset = domain.DatasetDisciplines
	}
	v.statusbar.SetDataset(v.dataset)
	v.list.SetResults(nil)
	v.statusbar.SetResultCount(0)
}

// clearQuery resets the input and the result list.
func (v *View) clearQuery() {
	v.input.SetValue("")
	v.list.SetResults(nil)
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetResultCount(0)
	v.statusbar.SetMessage("")
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	header := v.styles.Title.Render("gradsearch")
	sections = append(sections, header, "")

	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View())

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-9) // Reserve space for header, input, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Results returns the current search results.
func (v *View) Results() []messages.Result {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *messages.Result {
	return v.list.SelectedResult()
}

// Dataset returns the active dataset.
func (v *View) Dataset() domain.Dataset {
	return v.dataset
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset restores the initial empty-query state.
func (v *View) Reset() {
	v.clearQuery()
	v.input.Focus()
}
