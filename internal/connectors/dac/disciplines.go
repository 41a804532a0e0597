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

// Ensure DisciplineSource implements the interface.
var _ driven.Source[[]domain.Discipline] = (*DisciplineSource)(nil)

const (
	disciplinesPath = "disciplinas/"

	// codeNameSep separates an entry's code from its name in catalog
	// headings, for subjects and programs alike.
	codeNameSep = " - "

	// orSep and andSep structure a prerequisite expression: OR groups
	// of AND members.
	orSep  = " ou "
	andSep = "+"

	// reqLabel marks the element preceding a subject's prerequisite
	// expression.
	reqLabel = "requisitos"
)

// DisciplineSource fetches every subject in the catalog.
type DisciplineSource struct {
	client *Client
	pool   *parallel.Pool
}

// NewDisciplineSource creates a subject source over the given client.
// Institute pages are fetched concurrently through pool.
func NewDisciplineSource(client *Client, pool *parallel.Pool) *DisciplineSource {
	return &DisciplineSource{client: client, pool: pool}
}

// CacheKey returns the dataset key for subjects.
func (s *DisciplineSource) CacheKey() string {
	return string(domain.DatasetDisciplines)
}

// Count returns the number of fetched subjects.
func (s *DisciplineSource) Count(output []domain.Discipline) int {
	return len(output)
}

// Fetch downloads the institute index and every institute page,
// returning all subjects in catalog order.
func (s *DisciplineSource) Fetch(ctx context.Context) ([]domain.Discipline, error) {
	initials, err := s.fetchInitials(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("Catalog lists %d institutes", len(initials))

	// One slot per institute keeps catalog order stable regardless of
	// fetch completion order.
	pages := make([][]domain.Discipline, len(initials))
	err = parallel.ForEach(s.pool, indexRange(len(initials)), func(i int) error {
		page, err := s.fetchInstitute(ctx, initials[i])
		if err != nil {
			return fmt.Errorf("institute %s: %w", initials[i], err)
		}
		pages[i] = page
		return nil
	})
	if err != nil {
		return nil, err
	}

	var disciplines []domain.Discipline
	for _, page := range pages {
		disciplines = append(disciplines, page...)
	}

	// Requirements referencing codes outside the catalog are special:
	// electives, equivalences and placeholders that no catalog page
	// describes. Marked here, while the slice is still private to the
	// fetch; the cached record carries the flags.
	domain.MarkSpecialRequirements(disciplines)
	return disciplines, nil
}

// fetchInitials reads the institute initials off the discipline index.
func (s *DisciplineSource) fetchInitials(ctx context.Context) ([]string, error) {
	doc, err := s.client.get(ctx, disciplinesPath+"index.html")
	if err != nil {
		return nil, err
	}

	initials := parseInitials(doc)
	if len(initials) == 0 {
		return nil, ErrNoInitials
	}
	return initials, nil
}

// fetchInstitute downloads one institute page and parses its subjects.
func (s *DisciplineSource) fetchInstitute(ctx context.Context, initials string) ([]domain.Discipline, error) {
	doc, err := s.client.get(ctx, disciplinesPath+pageName(initials))
	if err != nil {
		return nil, err
	}
	return parseDisciplines(doc), nil
}

// parseInitials extracts institute initials from the index page: the
// nested divs of the div whose class mentions "disc".
func parseInitials(doc *html.Node) []string {
	container := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "div") && attrContains(n, "class", "disc")
	})
	if container == nil {
		return nil
	}

	var initials []string
	divs := findAll(container, func(n *html.Node) bool {
		return isElement(n, "div")
	})
	for _, div := range divs {
		if raw := text(div); raw != "" {
			initials = append(initials, normalizeInitials(raw))
		}
	}
	return initials
}

// normalizeInitials canonicalizes institute initials. Subject codes
// are two initials plus three digits; single-letter institutes pad
// with a space ("F 128") which the site's page names write as an
// underscore.
func normalizeInitials(raw string) string {
	initials := strings.ToUpper(strings.TrimSpace(raw))
	initials = strings.ReplaceAll(initials, " ", "_")
	if len(initials) == 1 {
		initials += "_"
	}
	return initials
}

// pageName converts institute initials to their page file name.
func pageName(initials string) string {
	return strings.ToLower(initials) + ".html"
}

// parseDisciplines extracts every subject from an institute page.
// A subject is a "row"-classed div holding a heading whose id
// mentions "disc" with "CODE - Name" text, plus a prerequisite label
// whose following sibling carries the requirement expression.
// Rows missing either are skipped.
func parseDisciplines(doc *html.Node) []domain.Discipline {
	rows := findAll(doc, func(n *html.Node) bool {
		return isElement(n, "div") && attrContains(n, "class", "row")
	})

	var disciplines []domain.Discipline
	for _, row := range rows {
		if discipline, ok := parseDiscipline(row); ok {
			disciplines = append(disciplines, discipline)
		}
	}
	return disciplines
}

func parseDiscipline(row *html.Node) (domain.Discipline, bool) {
	heading := findFirst(row, func(n *html.Node) bool {
		return attrContains(n, "id", "disc")
	})
	if heading == nil {
		return domain.Discipline{}, false
	}
	code, name, ok := strings.Cut(text(heading), codeNameSep)
	if !ok {
		return domain.Discipline{}, false
	}

	label := findFirst(row, func(n *html.Node) bool {
		return textOnly(n) && strings.Contains(strings.ToLower(text(n)), reqLabel)
	})
	if label == nil {
		return domain.Discipline{}, false
	}
	content := nextContent(label)
	if content == nil {
		return domain.Discipline{}, false
	}

	return domain.Discipline{
		Code: code,
		Name: name,
		Reqs: parseRequirements(text(content)),
	}, true
}

// parseRequirements parses a prerequisite expression like
// "MA111+MA141 ou *F 128" into OR groups of AND members. Any token
// that is not a subject code invalidates the whole expression, which
// is how rows whose requirement text is prose ("Não há pré-requisitos")
// end up with none.
func parseRequirements(raw string) []domain.RequirementGroup {
	var groups []domain.RequirementGroup
	for _, groupText := range strings.Split(raw, orSep) {
		var group domain.RequirementGroup
		for _, token := range strings.Split(groupText, andSep) {
			req, ok := parseRequirement(token)
			if !ok {
				return nil
			}
			group = append(group, req)
		}
		groups = append(groups, group)
	}
	return groups
}

// parseRequirement reads one subject token. A '*' prefix marks the
// requirement as satisfiable by partial attendance.
func parseRequirement(token string) (domain.Requirement, bool) {
	switch {
	case domain.IsDisciplineCode(token):
		return domain.Requirement{Code: token}, true
	case strings.HasPrefix(token, "*") && domain.IsDisciplineCode(token[1:]):
		return domain.Requirement{Code: token[1:], Partial: true}, true
	default:
		return domain.Requirement{}, false
	}
}

// indexRange returns [0, n) for indexed fan-out over the pool.
func indexRange(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}
