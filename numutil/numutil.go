// Package numutil provides small numeric helpers that the standard math package
// does not: generic clamping, interpolation, rounding and integer arithmetic.
package numutil

import (
	"math"
	"math/bits"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// Number is any integer or floating point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Clamp limits v to [lo, hi]. Reversed bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if lo > hi {
		lo, hi = hi, lo
	}
	return min(max(v, lo), hi)
}

// InRange reports whether lo <= v <= hi.
func InRange[T constraints.Ordered](v, lo, hi T) bool {
	return v >= lo && v <= hi
}

// Abs returns the absolute value of v.
func Abs[T constraints.Signed | constraints.Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign[T constraints.Signed | constraints.Float](v T) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// Sum adds all values.
func Sum[T Number](values ...T) T {
	var s T
	for _, v := range values {
		s += v
	}
	return s
}

// Mean returns the arithmetic mean, or 0 for no values.
func Mean[T Number](values ...T) float64 {
	if len(values) == 0 {
		return 0
	}
	var s float64
	for _, v := range values {
		s += float64(v)
	}
	return s / float64(len(values))
}

// Median returns the median, or 0 for no values. The input is not modified.
func Median[T Number](values ...T) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return (float64(sorted[n/2-1]) + float64(sorted[n/2])) / 2
}

// MinMax returns the smallest and largest value. ok is false for no values.
func MinMax[T constraints.Ordered](values ...T) (lo, hi T, ok bool) {
	if len(values) == 0 {
		return lo, hi, false
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi, true
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InverseLerp returns t such that Lerp(a, b, t) == v. It returns 0 when a == b.
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return (v - a) / (b - a)
}

// MapRange maps v from [inLo, inHi] onto [outLo, outHi] without clamping.
func MapRange(v, inLo, inHi, outLo, outHi float64) float64 {
	return Lerp(outLo, outHi, InverseLerp(inLo, inHi, v))
}

// NearlyEqual reports whether |a-b| <= eps.
func NearlyEqual(a, b, eps float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= eps
}

// RoundTo rounds v to the given number of decimal places, half away from zero.
// Negative places round to tens, hundreds and so on. Rounding works on the
// shortest decimal form of v, so 2.675 rounds to 2.68.
func RoundTo(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
		return v
	}
	mant, exp, _ := strings.Cut(strconv.FormatFloat(math.Abs(v), 'e', -1, 64), "e")
	digits := strings.Replace(mant, ".", "", 1)
	e, _ := strconv.Atoi(exp)

	// keep is the number of significant digits left of the rounding point.
	keep := e + 1 + places
	if keep >= len(digits) {
		return v
	}
	if keep < 0 {
		return math.Copysign(0, v)
	}
	var n int64
	if keep > 0 {
		n, _ = strconv.ParseInt(digits[:keep], 10, 64)
	}
	if digits[keep] >= '5' {
		n++
	}
	r, _ := strconv.ParseFloat(strconv.FormatInt(n, 10)+"e"+strconv.Itoa(-places), 64)
	return math.Copysign(r, v)
}

// Wrap maps v into [lo, hi) modularly.
func Wrap(v, lo, hi float64) float64 {
	span := hi - lo
	if span == 0 {
		return lo
	}
	r := math.Mod(v-lo, span)
	if r < 0 {
		r += span
	}
	return lo + r
}

// WrapInt maps v into [lo, hi) modularly.
func WrapInt(v, lo, hi int) int {
	span := hi - lo
	if span == 0 {
		return lo
	}
	r := (v - lo) % span
	if r < 0 {
		r += span
	}
	return lo + r
}

// GCD returns the greatest common divisor of |a| and |b|.
func GCD[T constraints.Integer](a, b T) T {
	a, b = absInt(a), absInt(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of |a| and |b|, or 0 if either is 0.
func LCM[T constraints.Integer](a, b T) T {
	if a == 0 || b == 0 {
		return 0
	}
	return absInt(a / GCD(a, b) * b)
}

func absInt[T constraints.Integer](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// IsPowerOfTwo reports whether v is a positive power of two.
func IsPowerOfTwo[T constraints.Integer](v T) bool {
	return v > 0 && v&(v-1) == 0
}

// NextPowerOfTwo returns the smallest power of two >= v. It returns 1 for 0
// and saturates at 1<<63.
func NextPowerOfTwo(v uint64) uint64 {
	if v <= 1 {
		return 1
	}
	if v > 1<<63 {
		return 1 << 63
	}
	return 1 << (64 - bits.LeadingZeros64(v-1))
}

// Log2Floor returns floor(log2(v)), or -1 for 0.
func Log2Floor(v uint64) int {
	return bits.Len64(v) - 1
}

// CountDigits returns the number of decimal digits in v, ignoring the sign.
func CountDigits(v int64) int {
	if v == 0 {
		return 1
	}
	n := 0
	for v != 0 {
		v /= 10
		n++
	}
	return n
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// ParseIntOr parses a trimmed base-10 integer, returning def on failure.
func ParseIntOr(s string, def int64) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return def
	}
	return v
}

// ParseFloatOr parses a trimmed float, returning def on failure.
func ParseFloatOr(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return v
}
