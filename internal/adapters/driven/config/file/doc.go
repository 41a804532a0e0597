// Package file provides the file-based configuration adapter.
// Configuration persists to the local filesystem as TOML.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
package file
