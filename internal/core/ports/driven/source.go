package driven

import "context"

// Source is one dataset's scrape capability: an external collaborator
// performing the network fetch and parse. The core never knows how a
// dataset is acquired, only how to cache and count it.
type Source[T any] interface {
	// Fetch retrieves and parses the dataset. Failures surface to the
	// caller of the scrape operation.
	Fetch(ctx context.Context) (T, error)

	// CacheKey names the dataset's cache record. Keys are sanitized
	// by the cache store; distinct keys may collide after
	// sanitization.
	CacheKey() string

	// Count reports the result cardinality for logging.
	Count(output T) int
}
