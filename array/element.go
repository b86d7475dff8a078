package array

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/inf.v0"

	"github.com/arloliu/ncgrid/errs"
	"github.com/arloliu/ncgrid/format"
	"github.com/arloliu/ncgrid/packing"
)

// Decimal returns the exact decimal value of the element at flat offset i.
//
// The second result is false when the element has no decimal value (NaN or an
// infinity in a float array). The caller must ensure 0 <= i < Len().
func (a *Array) Decimal(i int) (*inf.Dec, bool) {
	switch a.typ {
	case format.TypeByte:
		return inf.NewDec(int64(a.i8[i]), 0), true
	case format.TypeChar:
		return inf.NewDec(int64(a.ch[i]), 0), true
	case format.TypeShort:
		return inf.NewDec(int64(a.i16[i]), 0), true
	case format.TypeInt:
		return inf.NewDec(int64(a.i32[i]), 0), true
	case format.TypeFloat:
		return packing.FromFloat32(a.f32[i])
	case format.TypeDouble:
		return packing.FromFloat64(a.f64[i])
	default:
		return nil, false
	}
}

// Float64 returns the element at flat offset i as a float64.
func (a *Array) Float64(i int) float64 {
	switch a.typ {
	case format.TypeByte:
		return float64(a.i8[i])
	case format.TypeChar:
		return float64(a.ch[i])
	case format.TypeShort:
		return float64(a.i16[i])
	case format.TypeInt:
		return float64(a.i32[i])
	case format.TypeFloat:
		return float64(a.f32[i])
	case format.TypeDouble:
		return a.f64[i]
	default:
		return 0
	}
}

// Set stores v at flat offset i, converting it to the element type.
//
// Integral targets drop the fraction (toward zero) and then wrap the way Go's integer
// conversions do; out-of-range values are not rejected. Float targets take the
// nearest representable value, saturating to an infinity on overflow.
//
// Parameters:
//   - i: Flat offset, 0 <= i < Len()
//   - v: Value to store
//
// Returns:
//   - error: errs.ErrNilValue, or errs.ErrIndexOutOfRange
func (a *Array) Set(i int, v *inf.Dec) error {
	if v == nil {
		return fmt.Errorf("%w: element %d", errs.ErrNilValue, i)
	}

	if i < 0 || i >= a.Len() {
		return fmt.Errorf("%w: offset %d, length %d", errs.ErrIndexOutOfRange, i, a.Len())
	}

	switch a.typ {
	case format.TypeByte:
		a.i8[i] = int8(truncate(v))
	case format.TypeChar:
		a.ch[i] = byte(truncate(v))
	case format.TypeShort:
		a.i16[i] = int16(truncate(v))
	case format.TypeInt:
		a.i32[i] = int32(truncate(v))
	case format.TypeFloat:
		f, _ := strconv.ParseFloat(v.String(), 32)
		a.f32[i] = float32(f)
	case format.TypeDouble:
		f, _ := strconv.ParseFloat(v.String(), 64)
		a.f64[i] = f
	default:
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedType, a.typ)
	}

	return nil
}

// SetRow writes s into row r of a rank-2 char array. The text is truncated to the
// row width and the remainder of the row is NUL padded.
func (a *Array) SetRow(r int, s string) error {
	if a.typ != format.TypeChar {
		return fmt.Errorf("%w: SetRow on %s array", errs.ErrTypeMismatch, a.typ)
	}

	if len(a.shape) != 2 {
		return fmt.Errorf("%w: SetRow needs rank 2, got %d", errs.ErrRankMismatch, len(a.shape))
	}

	if r < 0 || r >= a.shape[0] {
		return fmt.Errorf("%w: row %d, rows %d", errs.ErrIndexOutOfRange, r, a.shape[0])
	}

	width := a.shape[1]
	row := a.ch[r*width : (r+1)*width]
	n := copy(row, s)
	clear(row[n:])

	return nil
}

// Strings returns the rows of a char array as strings, each cut at its first NUL
// and stripped of trailing blanks. A rank-1 char array is a single row.
func (a *Array) Strings() ([]string, error) {
	if a.typ != format.TypeChar {
		return nil, fmt.Errorf("%w: Strings on %s array", errs.ErrTypeMismatch, a.typ)
	}

	var rows, width int
	switch len(a.shape) {
	case 1:
		rows, width = 1, a.shape[0]
	case 2:
		rows, width = a.shape[0], a.shape[1]
	default:
		return nil, fmt.Errorf("%w: char strings need rank 1 or 2, got %d", errs.ErrRankMismatch, len(a.shape))
	}

	out := make([]string, rows)
	for r := range out {
		row := a.ch[r*width : (r+1)*width]
		if n := strings.IndexByte(string(row), 0); n >= 0 {
			row = row[:n]
		}
		out[r] = strings.TrimRight(string(row), " ")
	}

	return out, nil
}

func truncate(v *inf.Dec) int64 {
	t := new(inf.Dec).Round(v, 0, inf.RoundDown)

	return t.UnscaledBig().Int64()
}
