package domain

// Variant is one named curriculum option within a degree program.
type Variant struct {
	// Name is the variant's catalog heading.
	Name string `json:"name"`

	// Tree lists each semester's subjects.
	Tree []CodeSet `json:"tree"`
}

// Course represents one degree program.
type Course struct {
	// Code is the numeric program identifier as listed in the catalog.
	Code string `json:"code"`

	// Name is the program name.
	Name string `json:"name"`

	// Variants holds the named curriculum options for programs that
	// offer them. Empty when the program has a single tree.
	Variants []Variant `json:"variant,omitempty"`

	// Tree lists each semester's subjects for single-curriculum
	// programs. Nil when the program has variants.
	Tree []CodeSet `json:"tree,omitempty"`
}

// Semesters returns the length of the longest curriculum tree across
// the program's variants, or of the single tree.
func (c Course) Semesters() int {
	longest := len(c.Tree)
	for _, v := range c.Variants {
		if len(v.Tree) > longest {
			longest = len(v.Tree)
		}
	}
	return longest
}

// CourseSummary is the reduced search projection of a Course.
type CourseSummary struct {
	// Code is the numeric program identifier.
	Code string `json:"code"`

	// Name is the program name.
	Name string `json:"name"`
}

// CourseSearch describes fuzzy search over the program catalog.
// Programs are usually found by name, so it outweighs the numeric
// code.
var CourseSearch = Descriptor[Course, CourseSummary]{
	Fields: []Field[Course]{
		{Name: "code", Weight: 1, Value: func(c Course) string { return c.Code }},
		{Name: "name", Weight: 2, Value: func(c Course) string { return c.Name }},
	},
	SortKey: func(c Course) string { return c.Code },
	Project: func(c Course) CourseSummary {
		return CourseSummary{Code: c.Code, Name: c.Name}
	},
}
