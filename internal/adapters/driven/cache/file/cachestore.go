package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"

	"github.com/arara-labs/gradsearch/internal/core/domain"
	"github.com/arara-labs/gradsearch/internal/core/ports/driven"
)

// Ensure CacheStore implements the interface.
var _ driven.CacheStore = (*CacheStore)(nil)

// CacheStore persists one JSON document per dataset key inside a cache
// directory. Writes land in a temp file and rename into place, so a
// concurrent reader observes either the previous or the new complete
// document, never a partial one.
type CacheStore struct {
	dir string
}

// NewCacheStore creates a store rooted at dir. If dir is empty it
// defaults to ~/.gradsearch/cache. The directory is created when
// absent and recreated when a non-directory occupies the path.
func NewCacheStore(dir string) (*CacheStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".gradsearch", "cache")
	}

	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	return &CacheStore{dir: dir}, nil
}

// Dir returns the cache directory.
func (s *CacheStore) Dir() string {
	return s.dir
}

// Path reports the file backing key, existing or not. Keys sanitize
// to slugs, so distinct keys can collide; dataset keys are chosen to
// stay distinct after sanitization.
func (s *CacheStore) Path(key string) string {
	return filepath.Join(s.dir, slug.Make(key)+".json")
}

// Load decodes the record for key into v. Missing, unreadable and
// malformed records all wrap domain.ErrCacheLoad.
func (s *CacheStore) Load(key string, v any) error {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheLoad, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrCacheLoad, s.Path(key), err)
	}
	return nil
}

// Save encodes v and atomically replaces the record for key.
func (s *CacheStore) Save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheWrite, err)
	}

	// The directory may have been removed or shadowed since startup.
	if err := ensureDir(s.dir); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheWrite, err)
	}

	tmp, err := os.CreateTemp(s.dir, slug.Make(key)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheWrite, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", domain.ErrCacheWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", domain.ErrCacheWrite, err)
	}

	if err := os.Rename(tmp.Name(), s.Path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", domain.ErrCacheWrite, err)
	}
	return nil
}

// ensureDir creates dir, replacing any non-directory at that path.
func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}
	if err == nil {
		if err := os.Remove(dir); err != nil {
			return err
		}
	}
	return os.MkdirAll(dir, 0755)
}
