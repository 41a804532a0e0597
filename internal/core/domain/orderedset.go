package domain

import (
	"cmp"
	"encoding/json"
	"slices"
)

// OrderedSet is a deduplicated value set that iterates in ascending
// order. Sets compare lexicographically, with a strict prefix ordered
// before its extensions. The zero value is an empty set.
type OrderedSet[T cmp.Ordered] struct {
	items []T
}

// NewOrderedSet builds a set from any collection, discarding
// duplicates and sorting ascending.
func NewOrderedSet[T cmp.Ordered](items ...T) OrderedSet[T] {
	sorted := slices.Clone(items)
	slices.Sort(sorted)
	return OrderedSet[T]{items: slices.Compact(sorted)}
}

// Values returns the elements in ascending order.
// The returned slice is a copy; mutating it does not affect the set.
func (s OrderedSet[T]) Values() []T {
	return slices.Clone(s.items)
}

// Len returns the number of elements.
func (s OrderedSet[T]) Len() int {
	return len(s.items)
}

// Contains reports whether v is in the set.
func (s OrderedSet[T]) Contains(v T) bool {
	_, ok := slices.BinarySearch(s.items, v)
	return ok
}

// Compare orders two sets lexicographically, returning -1, 0 or +1.
// A strict prefix is smaller than its extensions.
func (s OrderedSet[T]) Compare(other OrderedSet[T]) int {
	return slices.Compare(s.items, other.items)
}

// Equal reports structural equality.
func (s OrderedSet[T]) Equal(other OrderedSet[T]) bool {
	return slices.Equal(s.items, other.items)
}

// MarshalJSON encodes the set as a plain ordered array.
func (s OrderedSet[T]) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

// UnmarshalJSON decodes a plain array, re-applying deduplication and
// sorting. Input order is never trusted.
func (s *OrderedSet[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewOrderedSet(items...)
	return nil
}

// CodeSet is an ordered set of discipline codes.
type CodeSet = OrderedSet[string]
