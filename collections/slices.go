// Package collections provides generic helpers for slices, arrays and maps, and
// CacheMap, a bounded map that evicts its eldest entries.
//
// Helpers never modify their inputs unless the name says InPlace; results are
// freshly allocated.
package collections

import (
	"cmp"
	"math/rand"
	"slices"

	"github.com/samber/lo"

	"github.com/dendrascience/utilkit/validate"
)

// Filter returns the elements for which keep returns true.
func Filter[T any](s []T, keep func(T) bool) []T {
	return lo.Filter(s, func(v T, _ int) bool { return keep(v) })
}

// Map applies fn to every element.
func Map[T, U any](s []T, fn func(T) U) []U {
	return lo.Map(s, func(v T, _ int) U { return fn(v) })
}

// Reduce folds s from the left starting with init.
func Reduce[T, A any](s []T, init A, fn func(A, T) A) A {
	return lo.Reduce(s, func(acc A, v T, _ int) A { return fn(acc, v) }, init)
}

// Partition splits s into the elements that match pred and those that do not.
func Partition[T any](s []T, pred func(T) bool) (matched, rest []T) {
	for _, v := range s {
		if pred(v) {
			matched = append(matched, v)
		} else {
			rest = append(rest, v)
		}
	}
	return matched, rest
}

// Chunk splits s into consecutive groups of at most size elements.
// It returns nil when size is not positive.
func Chunk[T any](s []T, size int) [][]T {
	if size <= 0 || len(s) == 0 {
		return nil
	}
	out := lo.Chunk(s, size)
	for i := range out {
		out[i] = slices.Clone(out[i])
	}
	return out
}

// Distinct removes duplicates, keeping the first occurrence.
func Distinct[T comparable](s []T) []T {
	return lo.Uniq(s)
}

// GroupBy buckets elements by key, preserving order inside each group.
func GroupBy[T any, K comparable](s []T, key func(T) K) map[K][]T {
	return lo.GroupBy(s, key)
}

// Frequencies counts how often each value occurs.
func Frequencies[T comparable](s []T) map[T]int {
	return lo.CountValues(s)
}

// Flatten concatenates nested slices.
func Flatten[T any](s [][]T) []T {
	return lo.Flatten(s)
}

// Pair holds two values of possibly different types.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip pairs elements up to the length of the shorter slice.
func Zip[A, B any](a []A, b []B) []Pair[A, B] {
	n := min(len(a), len(b))
	out := make([]Pair[A, B], n)
	for i := range n {
		out[i] = Pair[A, B]{a[i], b[i]}
	}
	return out
}

// Concat joins slices into a new one.
func Concat[T any](s ...[]T) []T {
	return Flatten(s)
}

// IndexOf returns the first index of v, or -1.
func IndexOf[T comparable](s []T, v T) int {
	return lo.IndexOf(s, v)
}

// LastIndexOf returns the last index of v, or -1.
func LastIndexOf[T comparable](s []T, v T) int {
	return lo.LastIndexOf(s, v)
}

// Contains reports whether v is in s.
func Contains[T comparable](s []T, v T) bool {
	return lo.Contains(s, v)
}

// Reverse returns a reversed copy of s.
func Reverse[T any](s []T) []T {
	out := slices.Clone(s)
	slices.Reverse(out)
	return out
}

// ReverseInPlace reverses s.
func ReverseInPlace[T any](s []T) {
	slices.Reverse(s)
}

// Fill returns a slice of n copies of v.
func Fill[T any](n int, v T) []T {
	if n <= 0 {
		return nil
	}
	return lo.Times(n, func(int) T { return v })
}

// Swap exchanges s[i] and s[j] in place.
func Swap[T any](s []T, i, j int) error {
	if err := validate.All(validate.Index("i", i, len(s)), validate.Index("j", j, len(s))); err != nil {
		return err
	}
	s[i], s[j] = s[j], s[i]
	return nil
}

// InsertAt returns a copy of s with v inserted at index i (0 <= i <= len(s)).
func InsertAt[T any](s []T, i int, v ...T) ([]T, error) {
	if err := validate.Between("index", i, 0, len(s)); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(s)+len(v))
	out = append(out, s[:i]...)
	out = append(out, v...)
	return append(out, s[i:]...), nil
}

// RemoveAt returns a copy of s without the element at index i.
func RemoveAt[T any](s []T, i int) ([]T, error) {
	if err := validate.Index("index", i, len(s)); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...), nil
}

// Shuffle returns a shuffled copy of s using r.
func Shuffle[T any](s []T, r *rand.Rand) []T {
	out := slices.Clone(s)
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// First returns the first element.
func First[T any](s []T) (T, bool) {
	if len(s) == 0 {
		var zero T
		return zero, false
	}
	return s[0], true
}

// Last returns the last element.
func Last[T any](s []T) (T, bool) {
	if len(s) == 0 {
		var zero T
		return zero, false
	}
	return s[len(s)-1], true
}

// MinBy returns the element with the smallest key. Ties keep the first.
func MinBy[T any, K cmp.Ordered](s []T, key func(T) K) (T, bool) {
	return bestBy(s, key, func(a, b K) bool { return a < b })
}

// MaxBy returns the element with the largest key. Ties keep the first.
func MaxBy[T any, K cmp.Ordered](s []T, key func(T) K) (T, bool) {
	return bestBy(s, key, func(a, b K) bool { return a > b })
}

func bestBy[T any, K cmp.Ordered](s []T, key func(T) K, better func(a, b K) bool) (T, bool) {
	if len(s) == 0 {
		var zero T
		return zero, false
	}
	best, bestKey := s[0], key(s[0])
	for _, v := range s[1:] {
		if k := key(v); better(k, bestKey) {
			best, bestKey = v, k
		}
	}
	return best, true
}
