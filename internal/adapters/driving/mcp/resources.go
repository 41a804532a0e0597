package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/arara-labs/gradsearch/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for gradsearch resources.
	uriScheme = "gradsearch://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing datasets.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "datasets",
		Name:        "datasets",
		Description: "Catalog datasets and their most recent scrape runs",
		MIMEType:    "application/json",
	}, s.handleDatasetsResource)

	// Template for discipline records.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "disciplines/{code}",
		Name:        "discipline",
		Description: "Full catalog record of a discipline, including prerequisites",
		MIMEType:    "application/json",
	}, s.handleDisciplineResource)

	// Template for degree program records.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "courses/{code}",
		Name:        "course",
		Description: "Full catalog record of a degree program, including its curriculum",
		MIMEType:    "application/json",
	}, s.handleCourseResource)
}

// handleDatasetsResource returns the dataset list with last-run details.
func (s *Server) handleDatasetsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type runInfo struct {
		Items     int    `json:"items"`
		StartedAt string `json:"started_at"`
		Duration  string `json:"duration"`
		Error     string `json:"error,omitempty"`
	}
	type datasetInfo struct {
		Name    string   `json:"name"`
		LastRun *runInfo `json:"last_run,omitempty"`
	}

	datasets := domain.Datasets()
	infos := make([]datasetInfo, len(datasets))
	for i, dataset := range datasets {
		infos[i] = datasetInfo{Name: dataset.String()}

		if s.ports.Stats == nil {
			continue
		}
		run, err := s.ports.Stats.LastRun(ctx, dataset)
		if err != nil {
			return nil, fmt.Errorf("looking up last run for %s: %w", dataset, err)
		}
		if run == nil {
			continue
		}
		infos[i].LastRun = &runInfo{
			Items:     run.Items,
			StartedAt: run.StartedAt.UTC().Format(time.RFC3339),
			Duration:  run.Duration.String(),
			Error:     run.Error,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling datasets: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDisciplineResource returns one discipline's full record.
func (s *Server) handleDisciplineResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	code := extractDisciplineCode(req.Params.URI)
	if code == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	discipline, err := s.ports.Search.Discipline(ctx, code)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up discipline %s: %w", code, err)
	}
	if discipline == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := json.MarshalIndent(discipline, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling discipline: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleCourseResource returns one degree program's full record.
func (s *Server) handleCourseResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	code := extractCourseCode(req.Params.URI)
	if code == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	course, err := s.ports.Search.Course(ctx, code)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up course %s: %w", code, err)
	}
	if course == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := json.MarshalIndent(course, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling course: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDisciplineCode extracts the subject code from a URI like
// gradsearch://disciplines/{code}.
func extractDisciplineCode(uri string) string {
	return extractCode(uri, uriScheme+"disciplines/")
}

// extractCourseCode extracts the program code from a URI like
// gradsearch://courses/{code}.
func extractCourseCode(uri string) string {
	return extractCode(uri, uriScheme+"courses/")
}

// extractCode strips prefix and percent-decodes the remainder. Subject
// codes can carry spaces ("F 128"), which arrive encoded as %20.
func extractCode(uri, prefix string) string {
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	raw := strings.TrimPrefix(uri, prefix)
	code, err := url.PathUnescape(raw)
	if err != nil {
		return ""
	}

	return code
}
