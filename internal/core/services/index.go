package services

import (
	"errors"
	"sort"
	"time"

	"github.com/arara-labs/gradsearch/internal/core/domain"
	"github.com/arara-labs/gradsearch/internal/core/ports/driven"
	"github.com/arara-labs/gradsearch/internal/logger"
	"github.com/arara-labs/gradsearch/internal/parallel"
)

// indexEntry holds one candidate's pre-folded property values, aligned
// with the descriptor's fields. Folding once at construction keeps the
// per-query work down to scoring.
type indexEntry struct {
	values  []string
	sortKey string
}

// lookupEntry maps a folded sort key back to its catalog position.
type lookupEntry struct {
	key      string
	position int
}

// Index ranks one homogeneous catalog by weighted fuzzy distance to a
// query. An Index is immutable after construction and safe for
// concurrent searches.
type Index[E, P any] struct {
	descriptor domain.Descriptor[E, P]
	items      []E
	entries    []indexEntry
	positions  []int
	lookup     []lookupEntry
	matchers   driven.MatcherFactory
	pool       *parallel.Pool
}

// scoredEntry pairs a catalog position with its aggregate distance.
type scoredEntry struct {
	position int
	score    float64
}

// NewIndex folds every searchable property of catalog up front and
// returns an index ready for querying. The catalog slice is retained;
// callers must not modify it afterwards.
func NewIndex[E, P any](
	descriptor domain.Descriptor[E, P],
	catalog []E,
	matchers driven.MatcherFactory,
	pool *parallel.Pool,
) *Index[E, P] {
	idx := &Index[E, P]{
		descriptor: descriptor,
		items:      catalog,
		entries:    make([]indexEntry, len(catalog)),
		positions:  make([]int, len(catalog)),
		matchers:   matchers,
		pool:       pool,
	}

	for i, item := range catalog {
		values := make([]string, len(descriptor.Fields))
		for f, field := range descriptor.Fields {
			values[f] = Fold(field.Value(item))
		}

		entry := indexEntry{values: values}
		if descriptor.SortKey != nil {
			entry.sortKey = descriptor.SortKey(item)
		}
		idx.entries[i] = entry
		idx.positions[i] = i
	}

	if descriptor.SortKey != nil {
		idx.lookup = make([]lookupEntry, len(catalog))
		for i := range idx.entries {
			idx.lookup[i] = lookupEntry{key: Fold(idx.entries[i].sortKey), position: i}
		}
		sort.Slice(idx.lookup, func(a, b int) bool {
			if idx.lookup[a].key != idx.lookup[b].key {
				return idx.lookup[a].key < idx.lookup[b].key
			}
			return idx.lookup[a].position < idx.lookup[b].position
		})
	}

	return idx
}

// Len reports the catalog size.
func (s *Index[E, P]) Len() int {
	return len(s.items)
}

// Items returns the catalog in declaration order. The slice is shared;
// callers must not modify it.
func (s *Index[E, P]) Items() []E {
	return s.items
}

// Search ranks the whole catalog against query and returns at most
// limit matches ordered by ascending aggregate distance. Ties break on
// the designated sort property, then on catalog declaration order, so
// output is reproducible for an unchanged catalog. An empty query or a
// limit of zero or less returns an empty sequence without scoring.
func (s *Index[E, P]) Search(query string, limit int) ([]domain.Match[P], error) {
	if s.matchers == nil {
		return nil, errors.New("matcher factory unavailable")
	}

	folded := Fold(query)
	if folded == "" || limit <= 0 {
		logger.Debug("Empty query or non-positive limit, returning no results")
		return []domain.Match[P]{}, nil
	}

	logger.Debug("Search: query=%q folded=%q limit=%d candidates=%d",
		query, folded, limit, len(s.entries))

	// Every weighted property compares against the same folded query,
	// so one matcher state serves the whole scan. It is released no
	// matter how scoring ends.
	matcher := s.matchers.NewMatcher(folded)
	defer matcher.Close()

	start := time.Now()
	scored, err := parallel.Map(s.pool, s.positions, func(pos int) (scoredEntry, error) {
		entry := s.entries[pos]

		var aggregate float64
		for f, field := range s.descriptor.Fields {
			aggregate += field.Weight * matcher.Ratio(entry.values[f])
		}
		return scoredEntry{position: pos, score: aggregate}, nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("Scored %d candidates in %s", len(scored), time.Since(start).Round(time.Microsecond))

	sort.Slice(scored, func(a, b int) bool {
		if scored[a].score != scored[b].score {
			return scored[a].score < scored[b].score
		}
		keyA, keyB := s.entries[scored[a].position].sortKey, s.entries[scored[b].position].sortKey
		if keyA != keyB {
			return keyA < keyB
		}
		return scored[a].position < scored[b].position
	})

	if limit < len(scored) {
		scored = scored[:limit]
	}

	matches := make([]domain.Match[P], len(scored))
	for i, sc := range scored {
		matches[i] = domain.Match[P]{
			Item:  s.descriptor.Project(s.items[sc.position]),
			Score: sc.score,
		}
	}
	return matches, nil
}

// Lookup finds the first catalog entry whose designated sort property
// folds equal to key. It reports false when the type has no sort
// property or no entry matches.
func (s *Index[E, P]) Lookup(key string) (E, bool) {
	var zero E
	if len(s.lookup) == 0 {
		return zero, false
	}

	folded := Fold(key)
	found := sort.Search(len(s.lookup), func(i int) bool {
		return s.lookup[i].key >= folded
	})
	if found == len(s.lookup) || s.lookup[found].key != folded {
		return zero, false
	}
	return s.items[s.lookup[found].position], true
}
