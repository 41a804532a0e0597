// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Source: Fetches and parses one catalog dataset
//   - CacheStore: Whole-dataset JSON persistence
//   - MatcherFactory: Fuzzy string scoring (RapidFuzz). Scoring backs every search.
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RunStore: Scrape history persistence. Without it, stats show nothing
//     and refreshes go unrecorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
