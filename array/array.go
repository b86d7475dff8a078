// Package array provides Array, the shape-tagged row-major element buffer exchanged
// between the format store and the grid codec.
//
// An Array holds elements of exactly one NetCDF element type. Decoders treat it as
// immutable and only read it through index accessors; the grid assembler fills a
// freshly allocated Array with Set before handing it out.
//
// Element conversion to exact decimals follows the stored representation: integers
// convert directly, floats use their shortest round-trip text at their own bit
// width, and non-finite floats have no decimal value.
package array

import (
	"fmt"

	"github.com/arloliu/ncgrid/errs"
	"github.com/arloliu/ncgrid/format"
	"github.com/arloliu/ncgrid/index"
)

// Array is a row-major multi-dimensional buffer of one element type.
//
// Exactly one of the typed slices is in use, selected by typ. Byte arrays are
// signed (NetCDF BYTE); char arrays hold raw 8-bit characters.
type Array struct {
	typ   format.ElementType
	shape []int

	i8  []int8
	ch  []byte
	i16 []int16
	i32 []int32
	f32 []float32
	f64 []float64
}

// Zeros allocates a zero-filled array of the given element type and shape.
//
// Parameters:
//   - typ: Element type, one of the six NetCDF classic types
//   - shape: Per-axis extents; an empty shape is a scalar of one element
//
// Returns:
//   - *Array: The new array
//   - error: errs.ErrUnsupportedType or errs.ErrInvalidShape
func Zeros(typ format.ElementType, shape ...int) (*Array, error) {
	if err := validateShape(shape); err != nil {
		return nil, err
	}

	n := index.Size(shape)
	a := &Array{typ: typ, shape: cloneShape(shape)}

	switch typ {
	case format.TypeByte:
		a.i8 = make([]int8, n)
	case format.TypeChar:
		a.ch = make([]byte, n)
	case format.TypeShort:
		a.i16 = make([]int16, n)
	case format.TypeInt:
		a.i32 = make([]int32, n)
	case format.TypeFloat:
		a.f32 = make([]float32, n)
	case format.TypeDouble:
		a.f64 = make([]float64, n)
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedType, typ)
	}

	return a, nil
}

// NewByte wraps data as a byte array of the given shape. The array takes ownership
// of data.
func NewByte(data []int8, shape ...int) (*Array, error) {
	if err := checkLen(len(data), shape); err != nil {
		return nil, err
	}

	return &Array{typ: format.TypeByte, shape: cloneShape(shape), i8: data}, nil
}

// NewChar wraps data as a char array of the given shape.
func NewChar(data []byte, shape ...int) (*Array, error) {
	if err := checkLen(len(data), shape); err != nil {
		return nil, err
	}

	return &Array{typ: format.TypeChar, shape: cloneShape(shape), ch: data}, nil
}

// NewShort wraps data as a 16-bit integer array of the given shape.
func NewShort(data []int16, shape ...int) (*Array, error) {
	if err := checkLen(len(data), shape); err != nil {
		return nil, err
	}

	return &Array{typ: format.TypeShort, shape: cloneShape(shape), i16: data}, nil
}

// NewInt wraps data as a 32-bit integer array of the given shape.
func NewInt(data []int32, shape ...int) (*Array, error) {
	if err := checkLen(len(data), shape); err != nil {
		return nil, err
	}

	return &Array{typ: format.TypeInt, shape: cloneShape(shape), i32: data}, nil
}

// NewFloat wraps data as a 32-bit float array of the given shape.
func NewFloat(data []float32, shape ...int) (*Array, error) {
	if err := checkLen(len(data), shape); err != nil {
		return nil, err
	}

	return &Array{typ: format.TypeFloat, shape: cloneShape(shape), f32: data}, nil
}

// NewDouble wraps data as a 64-bit float array of the given shape.
func NewDouble(data []float64, shape ...int) (*Array, error) {
	if err := checkLen(len(data), shape); err != nil {
		return nil, err
	}

	return &Array{typ: format.TypeDouble, shape: cloneShape(shape), f64: data}, nil
}

// FromValues wraps a typed slice produced by a storage reader. The slice type must
// match typ; byte arrays are accepted as []int8 or, as NetCDF libraries hand them
// out, as []uint8.
func FromValues(typ format.ElementType, values any, shape ...int) (*Array, error) {
	switch v := values.(type) {
	case []int8:
		if typ == format.TypeByte {
			return NewByte(v, shape...)
		}
	case []uint8:
		switch typ {
		case format.TypeChar:
			return NewChar(v, shape...)
		case format.TypeByte:
			signed := make([]int8, len(v))
			for i, b := range v {
				signed[i] = int8(b)
			}

			return NewByte(signed, shape...)
		}
	case []int16:
		if typ == format.TypeShort {
			return NewShort(v, shape...)
		}
	case []int32:
		if typ == format.TypeInt {
			return NewInt(v, shape...)
		}
	case []float32:
		if typ == format.TypeFloat {
			return NewFloat(v, shape...)
		}
	case []float64:
		if typ == format.TypeDouble {
			return NewDouble(v, shape...)
		}
	}

	return nil, fmt.Errorf("%w: %T for %s array", errs.ErrTypeMismatch, values, typ)
}

// Type returns the element type.
func (a *Array) Type() format.ElementType { return a.typ }

// Shape returns a copy of the per-axis extents.
func (a *Array) Shape() []int { return cloneShape(a.shape) }

// Rank returns the number of axes.
func (a *Array) Rank() int { return len(a.shape) }

// Dim returns the extent of the given axis, or 0 if the axis does not exist.
func (a *Array) Dim(axis int) int {
	if axis < 0 || axis >= len(a.shape) {
		return 0
	}

	return a.shape[axis]
}

// Len returns the total number of elements.
func (a *Array) Len() int { return index.Size(a.shape) }

// Values returns the underlying typed slice: []int8, []byte, []int16, []int32,
// []float32 or []float64. The slice is shared with the array and must not be
// modified by callers that did not create the array.
func (a *Array) Values() any {
	switch a.typ {
	case format.TypeByte:
		return a.i8
	case format.TypeChar:
		return a.ch
	case format.TypeShort:
		return a.i16
	case format.TypeInt:
		return a.i32
	case format.TypeFloat:
		return a.f32
	case format.TypeDouble:
		return a.f64
	default:
		return nil
	}
}

// Offset returns the flat offset of idx, or errs.ErrIndexOutOfRange when idx does
// not address an element of the array.
func (a *Array) Offset(idx ...int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, fmt.Errorf("%w: index rank %d, array rank %d", errs.ErrRankMismatch, len(idx), len(a.shape))
	}

	for i, x := range idx {
		if x < 0 || x >= a.shape[i] {
			return 0, fmt.Errorf("%w: axis %d index %d, extent %d", errs.ErrIndexOutOfRange, i, x, a.shape[i])
		}
	}

	return index.Offset(idx, a.shape), nil
}

func validateShape(shape []int) error {
	for i, s := range shape {
		if s < 0 {
			return fmt.Errorf("%w: axis %d has negative extent %d", errs.ErrInvalidShape, i, s)
		}
	}

	return nil
}

func checkLen(n int, shape []int) error {
	if err := validateShape(shape); err != nil {
		return err
	}

	if want := index.Size(shape); n != want {
		return fmt.Errorf("%w: %d values for shape %v (%d cells)", errs.ErrSizeMismatch, n, shape, want)
	}

	return nil
}

func cloneShape(shape []int) []int {
	out := make([]int, len(shape))
	copy(out, shape)

	return out
}
