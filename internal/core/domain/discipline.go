package domain

// Discipline represents one catalog subject.
type Discipline struct {
	// Code is the subject identifier (e.g., "MC102"). Codes are five
	// characters; some carry an internal space, like "F 128".
	Code string `json:"code"`

	// Name is the full subject name.
	Name string `json:"name"`

	// Reqs is the prerequisite expression: a disjunction of
	// conjunction groups, where satisfying any one group satisfies
	// the subject. Nil when the catalog lists no prerequisites.
	Reqs []RequirementGroup `json:"reqs,omitempty"`
}

// RequirementGroup is one conjunction of prerequisites: every member
// must be met for the group to be satisfied.
type RequirementGroup []Requirement

// Requirement references one prerequisite subject.
type Requirement struct {
	// Code is the required subject's code.
	Code string `json:"code"`

	// Partial is true when partial attendance suffices, marked with
	// a '*' prefix in the catalog.
	Partial bool `json:"partial"`

	// Special is true when the referenced code does not exist in the
	// scraped catalog, as with authorization pseudo-subjects.
	Special bool `json:"special,omitempty"`
}

// IsDisciplineCode reports whether raw has the shape of a subject code.
func IsDisciplineCode(raw string) bool {
	return len(raw) == 5
}

// Codes collects every subject code in the catalog.
func Codes(disciplines []Discipline) CodeSet {
	codes := make([]string, len(disciplines))
	for i, d := range disciplines {
		codes[i] = d.Code
	}
	return NewOrderedSet(codes...)
}

// MarkSpecialRequirements flags requirements whose code is absent from
// the catalog. Must be called with the complete scraped catalog;
// partial catalogs would mark real subjects as special.
func MarkSpecialRequirements(disciplines []Discipline) {
	known := Codes(disciplines)
	for i := range disciplines {
		for g := range disciplines[i].Reqs {
			for r := range disciplines[i].Reqs[g] {
				req := &disciplines[i].Reqs[g][r]
				req.Special = !known.Contains(req.Code)
			}
		}
	}
}

// RequiredBy returns the codes of subjects that list code as a
// prerequisite.
func RequiredBy(disciplines []Discipline, code string) CodeSet {
	var dependents []string
	for _, d := range disciplines {
		for _, group := range d.Reqs {
			for _, req := range group {
				if req.Code == code {
					dependents = append(dependents, d.Code)
				}
			}
		}
	}
	return NewOrderedSet(dependents...)
}

// DisciplineSummary is the reduced search projection of a Discipline.
type DisciplineSummary struct {
	// Code is the subject identifier.
	Code string `json:"code"`

	// Name is the full subject name.
	Name string `json:"name"`
}

// DisciplineSearch describes fuzzy search over the subject catalog.
// Code matches weigh double name matches.
var DisciplineSearch = Descriptor[Discipline, DisciplineSummary]{
	Fields: []Field[Discipline]{
		{Name: "code", Weight: 2, Value: func(d Discipline) string { return d.Code }},
		{Name: "name", Weight: 1, Value: func(d Discipline) string { return d.Name }},
	},
	SortKey: func(d Discipline) string { return d.Code },
	Project: func(d Discipline) DisciplineSummary {
		return DisciplineSummary{Code: d.Code, Name: d.Name}
	},
}
