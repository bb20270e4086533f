package validate

import (
	"errors"
	"math"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonNil(t *testing.T) {
	var nilPtr *int
	var nilMap map[string]int
	var nilSlice []int
	var nilFunc func()
	var nilIface error
	x := 3

	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{"untyped nil", nil, true},
		{"typed nil pointer", nilPtr, true},
		{"nil map", nilMap, true},
		{"nil slice", nilSlice, true},
		{"nil func", nilFunc, true},
		{"nil interface", nilIface, true},
		{"pointer", &x, false},
		{"zero int", 0, false},
		{"empty string", "", false},
		{"empty slice", []int{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NonNil("v", tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrNil)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestErrorFormat(t *testing.T) {
	err := Positive("count", -2)
	require.Error(t, err)
	assert.Equal(t, "count: must be positive, got -2", err.Error())

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "count", verr.Name)
	assert.ErrorIs(t, err, ErrNotPositive)

	err = State(false, "already closed")
	assert.Equal(t, "already closed", err.Error())
	assert.ErrorIs(t, err, ErrIllegalState)
}

func TestStringsAndCollections(t *testing.T) {
	assert.ErrorIs(t, NonEmptyString("s", ""), ErrEmpty)
	assert.NoError(t, NonEmptyString("s", " "))

	assert.ErrorIs(t, NotBlank("s", " \t\n "), ErrBlank)
	assert.NoError(t, NotBlank("s", " x "))

	assert.ErrorIs(t, NonEmpty[int]("s", nil), ErrEmpty)
	assert.NoError(t, NonEmpty("s", []int{1}))

	assert.ErrorIs(t, NonEmptyMap("m", map[string]int{}), ErrEmpty)
	assert.NoError(t, NonEmptyMap("m", map[string]int{"a": 1}))
}

func TestNumbers(t *testing.T) {
	assert.NoError(t, Positive("n", 1))
	assert.ErrorIs(t, Positive("n", 0), ErrNotPositive)
	assert.ErrorIs(t, Positive("n", math.NaN()), ErrNotPositive)

	assert.NoError(t, NonNegative("n", 0))
	assert.ErrorIs(t, NonNegative("n", -0.5), ErrNegative)
	assert.NoError(t, NonNegative("n", uint8(0)))

	assert.NoError(t, Finite("f", 1e300))
	assert.ErrorIs(t, Finite("f", math.Inf(-1)), ErrNotFinite)
	assert.ErrorIs(t, Finite("f", math.NaN()), ErrNotFinite)
}

func TestBetween(t *testing.T) {
	tests := []struct {
		name    string
		v       int
		lo, hi  int
		wantErr error
	}{
		{"lower bound", 1, 1, 10, nil},
		{"upper bound", 10, 1, 10, nil},
		{"inside", 5, 1, 10, nil},
		{"below", 0, 1, 10, ErrOutOfRange},
		{"above", 11, 1, 10, ErrOutOfRange},
		{"reversed interval", 5, 10, 1, ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Between("v", tt.v, tt.lo, tt.hi)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.NoError(t, Between("s", "m", "a", "z"))
}

func TestIndexAndRange(t *testing.T) {
	assert.NoError(t, Index("i", 0, 1))
	assert.ErrorIs(t, Index("i", 1, 1), ErrInvalidIndex)
	assert.ErrorIs(t, Index("i", -1, 5), ErrInvalidIndex)

	assert.NoError(t, Range(0, 0, 0))
	assert.NoError(t, Range(2, 5, 5))
	assert.ErrorIs(t, Range(3, 2, 5), ErrInvalidIndex)
	assert.ErrorIs(t, Range(0, 6, 5), ErrInvalidIndex)
	assert.ErrorIs(t, Range(-1, 2, 5), ErrInvalidIndex)
}

func TestNoNilElements(t *testing.T) {
	a, b := 1, 2
	assert.NoError(t, NoNilElements("ptrs", []*int{&a, &b}))

	err := NoNilElements("ptrs", []*int{&a, nil, &b})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNilElement)
	assert.Contains(t, err.Error(), "element 1")

	assert.NoError(t, NoNilElements("ints", []int{0, 0}))
}

func TestMatches(t *testing.T) {
	re := regexp.MustCompile(`^[a-z]+$`)
	assert.NoError(t, Matches("name", "abc", re))
	assert.ErrorIs(t, Matches("name", "ab1", re), ErrPattern)
	assert.ErrorIs(t, Matches("name", "abc", nil), ErrNil)
}

func TestAllAndMust(t *testing.T) {
	assert.NoError(t, All(nil, nil))

	err := All(Positive("a", 0), nil, NotBlank("b", ""))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotPositive)
	assert.ErrorIs(t, err, ErrBlank)

	assert.NotPanics(t, func() { Must(nil) })
	assert.Panics(t, func() { Must(Argument(false, "x", "bad")) })
	assert.Equal(t, 4, MustValue(4, nil))
}
