package store

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/inf.v0"

	"github.com/arloliu/ncgrid/errs"
	"github.com/arloliu/ncgrid/packing"
)

// Attribute is a named attribute value of a variable or of the file.
//
// The value is one of []uint8 (BYTE), string (CHAR), []int16, []int32, []float32
// or []float64.
type Attribute struct {
	name  string
	value any
}

// Name returns the attribute name.
func (a Attribute) Name() string { return a.name }

// Value returns the raw attribute value. It is shared and must not be modified.
func (a Attribute) Value() any { return a.value }

// IsString reports whether the attribute holds character data.
func (a Attribute) IsString() bool {
	_, ok := a.value.(string)
	return ok
}

// Len returns the number of elements, or the string length for text attributes.
func (a Attribute) Len() int {
	switch v := a.value.(type) {
	case string:
		return len(v)
	case []uint8:
		return len(v)
	case []int16:
		return len(v)
	case []int32:
		return len(v)
	case []float32:
		return len(v)
	case []float64:
		return len(v)
	default:
		return 0
	}
}

// StringValue returns text attributes without trailing NULs. Numeric attributes are
// rendered element by element, separated by commas.
func (a Attribute) StringValue() string {
	if s, ok := a.value.(string); ok {
		return strings.TrimRight(s, "\x00")
	}

	parts := make([]string, 0, a.Len())
	for i := 0; i < a.Len(); i++ {
		d, err := a.element(i)
		if err != nil {
			parts = append(parts, "?")
			continue
		}
		parts = append(parts, d.String())
	}

	return strings.Join(parts, ",")
}

// NumericValue returns the first element of the attribute as an exact decimal.
// Text attributes are parsed as decimal literals.
//
// Returns:
//   - *inf.Dec: The value
//   - error: errs.ErrEmptyInput for empty attributes, errs.ErrInvalidDecimal for
//     unparsable text or non-finite floats
func (a Attribute) NumericValue() (*inf.Dec, error) {
	if a.Len() == 0 {
		return nil, fmt.Errorf("%w: attribute %s", errs.ErrEmptyInput, a.name)
	}

	d, err := a.element(0)
	if err != nil {
		return nil, fmt.Errorf("attribute %s: %w", a.name, err)
	}

	return d, nil
}

func (a Attribute) element(i int) (*inf.Dec, error) {
	switch v := a.value.(type) {
	case string:
		return packing.Parse(strings.TrimSpace(strings.TrimRight(v, "\x00")))
	case []uint8:
		// NetCDF BYTE is signed.
		return packing.FromInt(int64(int8(v[i]))), nil
	case []int16:
		return packing.FromNumber(v[i])
	case []int32:
		return packing.FromNumber(v[i])
	case []float32:
		return packing.FromNumber(v[i])
	case []float64:
		return packing.FromNumber(v[i])
	default:
		return nil, fmt.Errorf("%w: %T", errs.ErrUnsupportedType, a.value)
	}
}

// attributeValue converts a Go value into a value accepted by the NetCDF header.
//
// Strings map to CHAR, int8/uint8 to BYTE, int16 to SHORT, int32 and int to INT,
// float32 to FLOAT, float64 and *inf.Dec to DOUBLE. Slices of those element types
// are accepted as well.
func attributeValue(value any) (any, error) {
	switch v := value.(type) {
	case string, []uint8, []int16, []int32, []float32, []float64:
		return v, nil
	case int8:
		return []uint8{uint8(v)}, nil
	case []int8:
		out := make([]uint8, len(v))
		for i, b := range v {
			out[i] = uint8(b)
		}

		return out, nil
	case uint8:
		return []uint8{v}, nil
	case int16:
		return []int16{v}, nil
	case int32:
		return []int32{v}, nil
	case int:
		n, err := cast.ToInt32E(v)
		if err != nil || int(n) != v {
			return nil, fmt.Errorf("%w: int attribute %d overflows INT", errs.ErrUnsupportedType, v)
		}

		return []int32{n}, nil
	case float32:
		return []float32{v}, nil
	case float64:
		return []float64{v}, nil
	case *inf.Dec:
		if v == nil {
			return nil, errs.ErrNilValue
		}

		return []float64{packing.Float64(v)}, nil
	default:
		return nil, fmt.Errorf("%w: attribute value of type %T", errs.ErrUnsupportedType, value)
	}
}
