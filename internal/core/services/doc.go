// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO; fuzzy scoring reaches the native
// engine only through the MatcherFactory port.
package services
