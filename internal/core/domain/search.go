package domain

// Field is one weighted searchable property of an entity type.
type Field[E any] struct {
	// Name identifies the property in logs.
	Name string

	// Weight scales the property's distance in the aggregate score.
	// Nonnegative; weights across a type need not sum to 1.
	Weight float64

	// Value extracts the property's raw text from an entity.
	Value func(E) string
}

// Descriptor statically describes how one entity type is searched:
// its weighted properties, its designated sort property and its
// reduced projection. Descriptors are per-type constants; weights
// never vary per instance.
type Descriptor[E, P any] struct {
	// Fields are the weighted searchable properties.
	Fields []Field[E]

	// SortKey is the designated sort property, used for tie-breaking
	// and exact lookup. Nil means ties fall back to catalog order.
	SortKey func(E) string

	// Project reduces an entity to its external result shape.
	Project func(E) P
}

// Match pairs a projected result with its aggregate score.
type Match[P any] struct {
	// Item is the reduced projection of the matched entity.
	Item P `json:"item"`

	// Score is the aggregate weighted distance; lower ranks better.
	Score float64 `json:"score"`
}
