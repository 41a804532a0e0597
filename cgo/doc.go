// Package cgo provides CGO bindings for native libraries.
// This package isolates all CGO code from the pure Go core.
//
// Sub-packages:
//   - rapidfuzz: rapidfuzz-cpp bindings for fuzzy string matching
package cgo
