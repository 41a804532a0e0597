// Package dac fetches the Unicamp 2021 undergraduate catalog from the
// DAC website and parses it into domain records.
//
// Two sources are exposed, one per dataset:
//
//   - DisciplineSource: subject codes, names and prerequisite
//     expressions, read from the per-institute discipline pages.
//   - CourseSource: degree programs with their suggested curriculum
//     trees, read from the catalog index and per-program pages.
//
// All requests go through a shared Client that applies per-host rate
// limiting, so concurrent page fetches stay polite to the catalog
// host.
package dac
