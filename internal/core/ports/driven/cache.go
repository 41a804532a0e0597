package driven

// CacheStore persists one JSON record per dataset key. Records are
// whole-dataset blobs: a scrape replaces the record, a cached run
// reads it back.
type CacheStore interface {
	// Load decodes the record for key into v. Missing or unreadable
	// records return an error wrapping domain.ErrCacheLoad.
	Load(key string, v any) error

	// Save encodes v and atomically replaces the record for key.
	Save(key string, v any) error

	// Path reports the file that backs key, existing or not.
	Path(key string) string
}
