package packing

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cast"
	"gopkg.in/inf.v0"

	"github.com/arloliu/ncgrid/errs"
)

// Parse parses a plain decimal literal such as "-999", "0.25" or "3.".
//
// Exponent notation is not accepted; numbers coming from floating point sources
// should go through FromFloat32 or FromFloat64 instead.
func Parse(s string) (*inf.Dec, error) {
	d, ok := new(inf.Dec).SetString(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidDecimal, s)
	}

	return d, nil
}

// MustParse is like Parse but panics on malformed input. It is meant for
// package-level literals and tests.
func MustParse(s string) *inf.Dec {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return d
}

// FromInt returns the exact decimal value of v.
func FromInt(v int64) *inf.Dec {
	return inf.NewDec(v, 0)
}

// FromFloat32 returns the decimal whose text is the shortest representation that
// round-trips v at 32-bit precision, so float32(0.1) becomes exactly 0.1.
//
// The second result is false for NaN and infinities, which have no decimal form.
func FromFloat32(v float32) (*inf.Dec, bool) {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return nil, false
	}

	return fromText(strconv.FormatFloat(float64(v), 'f', -1, 32))
}

// FromFloat64 is the 64-bit counterpart of FromFloat32.
func FromFloat64(v float64) (*inf.Dec, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}

	return fromText(strconv.FormatFloat(v, 'f', -1, 64))
}

// FromNumber converts any Go numeric scalar (or a decimal string) to an exact decimal.
//
// Floats keep the precision of their own bit width; integers are converted exactly.
//
// Parameters:
//   - v: int/uint of any width, float32, float64, string or *inf.Dec
//
// Returns:
//   - *inf.Dec: The decimal value (a fresh copy for *inf.Dec input)
//   - error: errs.ErrInvalidDecimal for non-finite floats or unparsable input
func FromNumber(v any) (*inf.Dec, error) {
	switch n := v.(type) {
	case *inf.Dec:
		if n == nil {
			return nil, errs.ErrNilValue
		}

		return new(inf.Dec).Set(n), nil
	case float32:
		if d, ok := FromFloat32(n); ok {
			return d, nil
		}

		return nil, fmt.Errorf("%w: non-finite float %v", errs.ErrInvalidDecimal, n)
	case float64:
		if d, ok := FromFloat64(n); ok {
			return d, nil
		}

		return nil, fmt.Errorf("%w: non-finite float %v", errs.ErrInvalidDecimal, n)
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidDecimal, err)
	}

	return Parse(s)
}

// Equal reports whether a and b denote the same number, ignoring their scales
// (so 20 equals 20.00). Nil values are only equal to each other.
func Equal(a, b *inf.Dec) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Cmp(b) == 0
}

// Float64 converts d to the nearest float64. Intended for statistics and display,
// never for missing-value comparison.
func Float64(d *inf.Dec) float64 {
	f, _ := strconv.ParseFloat(d.String(), 64)
	return f
}

func fromText(s string) (*inf.Dec, bool) {
	return new(inf.Dec).SetString(s)
}
