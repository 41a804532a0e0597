// Package domain defines the core business entities for gradsearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Discipline: A catalog subject with its prerequisite expression
//   - Course: A degree program with its curriculum tree or variants
//   - OrderedSet: A deduplicated, sorted, comparable value set
//   - Descriptor: A type's weighted searchable properties
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
