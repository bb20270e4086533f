package validate

import (
	"cmp"
	"errors"
	"math"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/exp/constraints"
)

// Number is any integer or floating point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// NonNil fails when v is nil, including typed nil pointers, maps, slices,
// channels, functions and interfaces stored in v.
func NonNil(name string, v any) error {
	if isNil(v) {
		return fail(name, ErrNil, "")
	}
	return nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// NonEmpty fails when s has no elements.
func NonEmpty[T any](name string, s []T) error {
	if len(s) == 0 {
		return fail(name, ErrEmpty, "")
	}
	return nil
}

// NonEmptyString fails when s is "".
func NonEmptyString(name, s string) error {
	if s == "" {
		return fail(name, ErrEmpty, "")
	}
	return nil
}

// NonEmptyMap fails when m has no entries.
func NonEmptyMap[K comparable, V any](name string, m map[K]V) error {
	if len(m) == 0 {
		return fail(name, ErrEmpty, "")
	}
	return nil
}

// NotBlank fails when s is empty or consists only of Unicode whitespace.
func NotBlank(name, s string) error {
	if strings.TrimFunc(s, unicode.IsSpace) == "" {
		return fail(name, ErrBlank, "")
	}
	return nil
}

// Positive fails unless v > 0.
func Positive[T Number](name string, v T) error {
	if !(v > 0) {
		return fail(name, ErrNotPositive, "must be positive, got %v", v)
	}
	return nil
}

// NonNegative fails when v < 0 (or is NaN).
func NonNegative[T Number](name string, v T) error {
	if !(v >= 0) {
		return fail(name, ErrNegative, "must not be negative, got %v", v)
	}
	return nil
}

// Between fails unless lo <= v <= hi. A reversed interval is itself an
// invalid argument.
func Between[T cmp.Ordered](name string, v, lo, hi T) error {
	if cmp.Compare(lo, hi) > 0 {
		return fail(name, ErrInvalidArgument, "invalid interval [%v, %v]", lo, hi)
	}
	if cmp.Compare(v, lo) < 0 || cmp.Compare(v, hi) > 0 {
		return fail(name, ErrOutOfRange, "%v not in [%v, %v]", v, lo, hi)
	}
	return nil
}

// Index fails unless 0 <= i < length.
func Index(name string, i, length int) error {
	if i < 0 || i >= length {
		return fail(name, ErrInvalidIndex, "index %d out of range [0, %d)", i, length)
	}
	return nil
}

// Range checks sub-slice bounds: 0 <= from <= to <= length.
func Range(from, to, length int) error {
	if from < 0 || from > to || to > length {
		return fail("range", ErrInvalidIndex, "range [%d, %d) out of bounds for length %d", from, to, length)
	}
	return nil
}

// Finite fails for NaN and infinities.
func Finite(name string, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fail(name, ErrNotFinite, "must be finite, got %v", f)
	}
	return nil
}

// NoNilElements fails on the first element of s that NonNil rejects.
func NoNilElements[T any](name string, s []T) error {
	for i, v := range s {
		if isNil(any(v)) {
			return fail(name, ErrNilElement, "element %d is nil", i)
		}
	}
	return nil
}

// Matches fails unless re matches s.
func Matches(name, s string, re *regexp.Regexp) error {
	if re == nil {
		return fail("pattern", ErrNil, "")
	}
	if !re.MatchString(s) {
		return fail(name, ErrPattern, "%q does not match %s", s, re.String())
	}
	return nil
}

// Argument fails with reason when ok is false.
func Argument(ok bool, name, reason string) error {
	if !ok {
		return fail(name, ErrInvalidArgument, "%s", reason)
	}
	return nil
}

// State fails with reason when ok is false.
func State(ok bool, reason string) error {
	if !ok {
		return fail("", ErrIllegalState, "%s", reason)
	}
	return nil
}

// All joins every non-nil error. It returns nil when all checks passed.
func All(errs ...error) error {
	return errors.Join(errs...)
}

// Must panics when err is non-nil.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// MustValue returns v, or panics when err is non-nil.
func MustValue[T any](v T, err error) T {
	Must(err)
	return v
}
