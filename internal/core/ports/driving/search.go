package driving

import (
	"context"

	"github.com/arara-labs/gradsearch/internal/core/domain"
)

// SearchService provides ranked catalog search to external actors.
type SearchService interface {
	// SearchDisciplines ranks disciplines against query and returns
	// at most limit matches, best first.
	SearchDisciplines(ctx context.Context, query string, limit int) ([]domain.Match[domain.DisciplineSummary], error)

	// SearchCourses ranks courses against query and returns at most
	// limit matches, best first.
	SearchCourses(ctx context.Context, query string, limit int) ([]domain.Match[domain.CourseSummary], error)

	// Discipline returns the full record for an exact discipline code.
	Discipline(ctx context.Context, code string) (*domain.Discipline, error)

	// Course returns the full record for an exact course code.
	Course(ctx context.Context, code string) (*domain.Course, error)

	// RequiredBy lists the codes of every discipline that names code
	// in at least one requirement group.
	RequiredBy(ctx context.Context, code string) (domain.CodeSet, error)
}
