// Package rapidfuzz provides CGO bindings for the rapidfuzz-cpp fuzzy
// string matching library. It implements the driven.MatcherFactory
// interface.
//
// Build requires:
//   - rapidfuzz-cpp headers (header-only library)
//   - C++17 compiler
//
// The ratio algorithm is chosen at build time: whole-string matching
// by default, or substring matching when RF_RATIO_TYPE is defined as
// CachedPartialRatio through CGO_CXXFLAGS.
//
// Builds without CGO fall back to a pure Go scorer with the same
// observable semantics; the cached matcher precomputes bit-parallel
// pattern masks so repeated comparisons stay amortized.
package rapidfuzz
