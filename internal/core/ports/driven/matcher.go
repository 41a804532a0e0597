package driven

// Matcher scores candidate strings against one fixed query string.
// A matcher holds precomputed state for its query so that repeated
// comparisons stay cheap; it must be closed after the scoring loop.
type Matcher interface {
	// Ratio returns a fuzzy distance in [0,1] between the matcher's
	// query and the candidate. 0 means identical, 1 means no
	// similarity. A closed matcher reports the worst distance.
	Ratio(candidate string) float64

	// Close releases the matcher's precomputed state. Safe to call
	// more than once; comparisons after Close report the worst
	// distance.
	Close()
}

// MatcherFactory builds cached matchers for normalized query strings.
// Backed by rapidfuzz for fuzzy ratio scoring.
type MatcherFactory interface {
	// NewMatcher precomputes matching state for the given query.
	// Construction never fails: on native allocation failure the
	// returned matcher reports the worst distance for every
	// candidate.
	NewMatcher(query string) Matcher

	// Levenshtein returns the normalized edit distance in [0,1]
	// between two strings, independent of any cached state.
	Levenshtein(a, b string) float64
}
