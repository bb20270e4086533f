package collections

import (
	"cmp"
	"maps"
	"slices"

	"github.com/samber/lo"
)

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}

// Values returns the values of m ordered by their keys.
func Values[K cmp.Ordered, V any](m map[K]V) []V {
	keys := SortedKeys(m)
	out := make([]V, len(keys))
	for i, k := range keys {
		out[i] = m[k]
	}
	return out
}

// Invert swaps keys and values. When values repeat, an arbitrary key wins.
func Invert[K, V comparable](m map[K]V) map[V]K {
	return lo.Invert(m)
}

// MergeMaps copies all maps into a new one; later maps win on conflicts.
func MergeMaps[K comparable, V any](ms ...map[K]V) map[K]V {
	return lo.Assign(ms...)
}
