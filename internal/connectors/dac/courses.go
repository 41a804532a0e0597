package dac

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/arara-labs/gradsearch/internal/core/domain"
	"github.com/arara-labs/gradsearch/internal/core/ports/driven"
	"github.com/arara-labs/gradsearch/internal/logger"
	"github.com/arara-labs/gradsearch/internal/parallel"
)

// Ensure CourseSource implements the interface.
var _ driven.Source[[]domain.Course] = (*CourseSource)(nil)

// ignoredHeading is the one curriculum page heading that is not a
// variant name.
const ignoredHeading = "observação"

// CourseSource fetches every degree program in the catalog.
type CourseSource struct {
	client *Client
	pool   *parallel.Pool
}

// NewCourseSource creates a program source over the given client.
// Curriculum pages are fetched concurrently through pool.
func NewCourseSource(client *Client, pool *parallel.Pool) *CourseSource {
	return &CourseSource{client: client, pool: pool}
}

// CacheKey returns the dataset key for programs.
func (s *CourseSource) CacheKey() string {
	return string(domain.DatasetCourses)
}

// Count returns the number of fetched programs.
func (s *CourseSource) Count(output []domain.Course) int {
	return len(output)
}

// Fetch downloads the catalog index and every program's suggested
// curriculum, returning all programs in catalog order.
func (s *CourseSource) Fetch(ctx context.Context) ([]domain.Course, error) {
	courses, err := s.fetchIndex(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("Catalog lists %d programs", len(courses))

	err = parallel.ForEach(s.pool, indexRange(len(courses)), func(i int) error {
		if err := s.fetchCurriculum(ctx, &courses[i]); err != nil {
			return fmt.Errorf("program %s: %w", courses[i].Code, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// fetchIndex reads program codes and names off the catalog index.
func (s *CourseSource) fetchIndex(ctx context.Context) ([]domain.Course, error) {
	doc, err := s.client.get(ctx, "index.html")
	if err != nil {
		return nil, err
	}

	var courses []domain.Course
	labels := findAll(doc, func(n *html.Node) bool {
		return attrContains(n, "class", "rotulo-curso")
	})
	for _, label := range labels {
		code, name, ok := strings.Cut(text(label), codeNameSep)
		if !ok {
			continue
		}
		courses = append(courses, domain.Course{Code: code, Name: name})
	}
	if len(courses) == 0 {
		return nil, ErrNoCourses
	}
	return courses, nil
}

// fetchCurriculum downloads a program's suggested-curriculum page and
// attaches its tree, or its named variants when the program offers
// more than one curriculum.
func (s *CourseSource) fetchCurriculum(ctx context.Context, course *domain.Course) error {
	doc, err := s.client.get(ctx, "cursos/"+course.Code+"g/sugestao.html")
	if err != nil {
		return err
	}

	if hasSingleTree(doc) {
		course.Tree = parseTree(doc)
		return nil
	}
	course.Variants = parseVariants(doc)
	return nil
}

// hasSingleTree reports whether the page lays out one curriculum.
// Single-curriculum pages carry an <a> anchor whose name mentions
// "codigo"; variant pages do not.
func hasSingleTree(doc *html.Node) bool {
	anchor := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "a") && attrContains(n, "name", "codigo")
	})
	return anchor != nil
}

// parseVariants reads one named curriculum per <h2> heading, each
// scoped to the heading's enclosing section. The "Observação" heading
// is notes, not a variant, and is skipped.
func parseVariants(doc *html.Node) []domain.Variant {
	headings := findAll(doc, func(n *html.Node) bool {
		return isElement(n, "h2")
	})

	var variants []domain.Variant
	for _, heading := range headings {
		name := text(heading)
		if isIgnoredHeading(name) {
			continue
		}
		variants = append(variants, domain.Variant{
			Name: name,
			Tree: parseTree(heading.Parent),
		})
	}
	return variants
}

// isIgnoredHeading matches the "Observação" heading and its
// abbreviations.
func isIgnoredHeading(name string) bool {
	folded := strings.ToLower(strings.TrimSpace(name))
	return folded == "" || strings.Contains(ignoredHeading, folded)
}

// parseTree reads one semester's subjects per <h3> heading under
// root.
func parseTree(root *html.Node) []domain.CodeSet {
	headings := findAll(root, func(n *html.Node) bool {
		return isElement(n, "h3") && strings.Contains(strings.ToLower(text(n)), "semestre")
	})

	var tree []domain.CodeSet
	for _, heading := range headings {
		content := nextContent(heading)
		if content == nil {
			continue
		}
		tree = append(tree, parsePeriod(content))
	}
	return tree
}

// parsePeriod collects the subject codes linked from one semester
// block.
func parsePeriod(content *html.Node) domain.CodeSet {
	links := findAll(content, func(n *html.Node) bool {
		return attrContains(n, "href", "disc")
	})

	var codes []string
	for _, link := range links {
		if code, ok := disciplineCode(link); ok {
			codes = append(codes, code)
		}
	}
	return domain.NewOrderedSet(codes...)
}

// disciplineCode reads a subject code off a curriculum link. The link
// text carries the code plus credit figures; codes with an internal
// space arrive split across fields, like "F 128".
func disciplineCode(link *html.Node) (string, bool) {
	fields := strings.Fields(text(link))
	if len(fields) == 0 {
		return "", false
	}

	code := fields[0]
	if len(code) == 1 && len(fields) > 1 {
		code += " " + fields[1]
	}
	return code, true
}
