// Package file provides the file-based catalog cache adapter.
// Each dataset persists as one complete JSON document, written
// atomically via temp-file rename.
package file
