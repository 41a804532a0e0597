//go:build cgo

package rapidfuzz

/*
#cgo CXXFLAGS: -std=c++17

#include "rapidfuzz_wrapper.h"
#include <stdlib.h>
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/arara-labs/gradsearch/internal/core/ports/driven"
)

// Ensure the native implementations satisfy the ports.
var (
	_ driven.Matcher        = (*CachedMatcher)(nil)
	_ driven.MatcherFactory = Factory{}
)

// Factory creates native cached matchers.
type Factory struct{}

// NewMatcher precomputes native matching state for the query.
func (Factory) NewMatcher(query string) driven.Matcher {
	return NewCachedMatcher(query)
}

// Levenshtein returns the normalized edit distance between a and b.
func (Factory) Levenshtein(a, b string) float64 {
	return Levenshtein(a, b)
}

// CachedMatcher scores candidates against one query string using a
// precomputed native rapidfuzz block. The native side owns a copy of
// the query; Close releases it.
type CachedMatcher struct {
	mu    sync.RWMutex
	state C.rf_cached
}

// NewCachedMatcher precomputes matching state for the query.
// Construction never fails: on native allocation failure the matcher
// reports the worst distance for every candidate.
func NewCachedMatcher(query string) *CachedMatcher {
	cq := C.CString(query)
	defer C.free(unsafe.Pointer(cq))

	return &CachedMatcher{
		state: C.rf_cached_init(cq, C.size_t(len(query))),
	}
}

// Ratio returns a fuzzy distance in [0,1] between the matcher's query
// and the candidate. Safe for concurrent use; the native scorer is
// read-only after construction.
func (m *CachedMatcher) Ratio(candidate string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state.block == nil {
		return worstDistance
	}

	cc := C.CString(candidate)
	defer C.free(unsafe.Pointer(cc))

	return float64(C.rf_cached_ratio(m.state, cc, C.size_t(len(candidate))))
}

// Close releases the native state. Safe to call more than once;
// comparisons after Close report the worst distance.
func (m *CachedMatcher) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.block != nil || m.state.buffer != nil {
		C.rf_cached_free(&m.state)
	}
}

// Ratio is the one-shot form of CachedMatcher.Ratio for callers that
// compare a pair of strings once.
func Ratio(a, b string) float64 {
	m := NewCachedMatcher(a)
	defer m.Close()
	return m.Ratio(b)
}

// Levenshtein returns the normalized Levenshtein distance in [0,1]
// between a and b, independent of any cached state.
func Levenshtein(a, b string) float64 {
	ca := C.CString(a)
	defer C.free(unsafe.Pointer(ca))

	cb := C.CString(b)
	defer C.free(unsafe.Pointer(cb))

	return float64(C.rf_levenshtein(ca, C.size_t(len(a)), cb, C.size_t(len(b))))
}
