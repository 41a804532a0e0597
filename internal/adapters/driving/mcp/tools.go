package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/arara-labs/gradsearch/internal/core/domain"
)

const defaultSearchLimit = 10

// SearchInput is the input schema for the search_catalog tool.
type SearchInput struct {
	Query   string `json:"query" jsonschema:"the search query, matched against codes and names"`
	Dataset string `json:"dataset,omitempty" jsonschema:"dataset to search: disciplines or courses (default disciplines)"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search_catalog tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// RefreshInput is the input schema for the refresh_catalog tool.
type RefreshInput struct {
	Dataset string `json:"dataset,omitempty" jsonschema:"dataset to refresh: disciplines or courses (default all)"`
	Fresh   bool   `json:"fresh,omitempty" jsonschema:"bypass the cache and scrape the catalog website"`
}

// RefreshOutput is the output schema for the refresh_catalog tool.
type RefreshOutput struct {
	Counts map[string]int `json:"counts"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_catalog",
		Description: "Fuzzy-search the Unicamp catalog for disciplines or degree programs",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "refresh_catalog",
		Description: "Reload catalog datasets from cache or the catalog website",
	}, s.handleRefresh)
}

// handleSearch handles the search_catalog tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	dataset := domain.DatasetDisciplines
	if input.Dataset != "" {
		var err error
		dataset, err = domain.ParseDataset(input.Dataset)
		if err != nil {
			return nil, SearchOutput{}, err
		}
	}

	var results []SearchResultOutput
	switch dataset {
	case domain.DatasetDisciplines:
		matches, err := s.ports.Search.SearchDisciplines(ctx, input.Query, limit)
		if err != nil {
			return nil, SearchOutput{}, err
		}
		results = make([]SearchResultOutput, len(matches))
		for i, m := range matches {
			results[i] = SearchResultOutput{Code: m.Item.Code, Name: m.Item.Name, Score: m.Score}
		}
	case domain.DatasetCourses:
		matches, err := s.ports.Search.SearchCourses(ctx, input.Query, limit)
		if err != nil {
			return nil, SearchOutput{}, err
		}
		results = make([]SearchResultOutput, len(matches))
		for i, m := range matches {
			results[i] = SearchResultOutput{Code: m.Item.Code, Name: m.Item.Name, Score: m.Score}
		}
	}

	return nil, SearchOutput{Results: results, Count: len(results)}, nil
}

// handleRefresh handles the refresh_catalog tool invocation.
func (s *Server) handleRefresh(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RefreshInput,
) (*mcp.CallToolResult, RefreshOutput, error) {
	if s.ports.Scrape == nil {
		return nil, RefreshOutput{}, ErrMissingScrapeService
	}

	counts := make(map[string]int)

	if input.Dataset != "" {
		dataset, err := domain.ParseDataset(input.Dataset)
		if err != nil {
			return nil, RefreshOutput{}, err
		}
		n, err := s.ports.Scrape.Refresh(ctx, dataset, input.Fresh)
		if err != nil {
			return nil, RefreshOutput{}, err
		}
		counts[dataset.String()] = n
		return nil, RefreshOutput{Counts: counts}, nil
	}

	all, err := s.ports.Scrape.RefreshAll(ctx, input.Fresh)
	if err != nil {
		return nil, RefreshOutput{}, err
	}
	for dataset, n := range all {
		counts[dataset.String()] = n
	}

	return nil, RefreshOutput{Counts: counts}, nil
}
