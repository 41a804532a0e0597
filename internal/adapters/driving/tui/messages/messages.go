// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/arara-labs/gradsearch/internal/core/domain"
)

// Result is one ranked catalog hit as rendered by the TUI.
type Result struct {
	Code    string
	Name    string
	Score   float64
	Dataset domain.Dataset
}

// SearchCompleted carries ranked hits back to the search view. Query
// names the input the hits answer; completions for an outdated query
// are dropped.
type SearchCompleted struct {
	Query   string
	Results []Result
	Err     error
}

// DetailLoaded carries one full catalog record for the detail view.
// Exactly one of Discipline and Course is set on success.
type DetailLoaded struct {
	Result     Result
	Discipline *domain.Discipline
	Course     *domain.Course
	RequiredBy domain.CodeSet
	Err        error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the live search input and results view.
	ViewSearch ViewType = iota
	// ViewDetail shows one discipline or degree program record.
	ViewDetail
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
