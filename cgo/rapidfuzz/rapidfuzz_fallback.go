//go:build !cgo

package rapidfuzz

import (
	"sync"

	"github.com/arara-labs/gradsearch/internal/core/ports/driven"
)

// Ensure the fallback implementations satisfy the ports.
var (
	_ driven.Matcher        = (*CachedMatcher)(nil)
	_ driven.MatcherFactory = Factory{}
)

// Factory creates pure Go cached matchers.
// This is the fallback for builds without CGO; scoring semantics match
// the native bridge.
type Factory struct{}

// NewMatcher precomputes matching state for the query.
func (Factory) NewMatcher(query string) driven.Matcher {
	return NewCachedMatcher(query)
}

// Levenshtein returns the normalized edit distance between a and b.
func (Factory) Levenshtein(a, b string) float64 {
	return Levenshtein(a, b)
}

// CachedMatcher scores candidates against one query string using
// precomputed bit-parallel pattern masks.
type CachedMatcher struct {
	mu  sync.RWMutex
	pat *pattern
}

// NewCachedMatcher precomputes matching state for the query.
// Construction never fails.
func NewCachedMatcher(query string) *CachedMatcher {
	return &CachedMatcher{pat: newPattern(query)}
}

// Ratio returns a fuzzy distance in [0,1] between the matcher's query
// and the candidate. Safe for concurrent use; the pattern masks are
// read-only after construction.
func (m *CachedMatcher) Ratio(candidate string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.pat == nil {
		return worstDistance
	}
	return m.pat.indelRatio(candidate)
}

// Close releases the matcher's state. Safe to call more than once;
// comparisons after Close report the worst distance.
func (m *CachedMatcher) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pat = nil
}

// Ratio is the one-shot form of CachedMatcher.Ratio for callers that
// compare a pair of strings once.
func Ratio(a, b string) float64 {
	return newPattern(a).indelRatio(b)
}

// Levenshtein returns the normalized Levenshtein distance in [0,1]
// between a and b, independent of any cached state.
func Levenshtein(a, b string) float64 {
	return normalizedLevenshtein(a, b)
}
