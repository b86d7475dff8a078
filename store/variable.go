package store

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
	"gopkg.in/inf.v0"

	"github.com/arloliu/ncgrid/array"
	"github.com/arloliu/ncgrid/errs"
	"github.com/arloliu/ncgrid/format"
	"github.com/arloliu/ncgrid/index"
	"github.com/arloliu/ncgrid/packing"
)

// Variable is a named variable of an open Store.
type Variable struct {
	store  *Store
	name   string
	dims   []string
	typ    format.ElementType
	record bool
}

// Name returns the variable name.
func (v *Variable) Name() string { return v.name }

// Dimensions returns the names of the variable's dimensions, outermost first.
func (v *Variable) Dimensions() []string { return slices.Clone(v.dims) }

// Rank returns the number of dimensions; 0 for scalars.
func (v *Variable) Rank() int { return len(v.dims) }

// DataType returns the element type.
func (v *Variable) DataType() format.ElementType { return v.typ }

// IsRecord reports whether the outermost dimension is the unlimited dimension.
func (v *Variable) IsRecord() bool { return v.record }

// Shape returns the per-axis extents. For record variables shape[0] is the current
// number of records.
func (v *Variable) Shape() []int {
	shape := slices.Clone(v.store.file.Header.Lengths(v.name))
	if v.record {
		shape[0] = v.store.numRecs()
	}

	return shape
}

// Read reads the whole variable.
func (v *Variable) Read() (*array.Array, error) {
	shape := v.Shape()

	return v.ReadSection(make([]int, len(shape)), shape)
}

// ReadSection reads the hyperslab starting at origin with the given per-axis
// extents.
//
// Parameters:
//   - origin: First index on every axis
//   - shape: Extent on every axis; a zero extent yields an empty array
//
// Returns:
//   - *array.Array: Row-major section of the variable's element type
//   - error: errs.ErrRankMismatch, errs.ErrIndexOutOfRange, errs.ErrClosed, or
//     errs.ErrReadFailed wrapping the I/O failure
func (v *Variable) ReadSection(origin, shape []int) (*array.Array, error) {
	s := v.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, errs.ErrClosed
	}

	full := s.file.Header.Lengths(v.name)
	if err := checkSection(origin, shape, full, v.record, s.numRecs()); err != nil {
		return nil, fmt.Errorf("variable %s: %w", v.name, err)
	}

	total := index.Size(shape)
	if total == 0 {
		return array.Zeros(v.typ, shape...)
	}

	runs := sectionRuns(origin, shape, full)

	var (
		values any
		err    error
	)
	switch v.typ {
	case format.TypeByte, format.TypeChar:
		buf := make([]uint8, total)
		values, err = buf, readRuns(s.file, v.name, buf, runs)
	case format.TypeShort:
		buf := make([]int16, total)
		values, err = buf, readRuns(s.file, v.name, buf, runs)
	case format.TypeInt:
		buf := make([]int32, total)
		values, err = buf, readRuns(s.file, v.name, buf, runs)
	case format.TypeFloat:
		buf := make([]float32, total)
		values, err = buf, readRuns(s.file, v.name, buf, runs)
	case format.TypeDouble:
		buf := make([]float64, total)
		values, err = buf, readRuns(s.file, v.name, buf, runs)
	default:
		return nil, fmt.Errorf("%w: variable %s", errs.ErrUnsupportedType, v.name)
	}

	if err != nil {
		s.logger.Warn("variable read failed",
			zap.String("path", s.path),
			zap.String("variable", v.name),
			zap.Ints("origin", origin),
			zap.Ints("shape", shape),
			zap.Error(err))

		return nil, fmt.Errorf("%w: variable %s: %w", errs.ErrReadFailed, v.name, err)
	}

	return array.FromValues(v.typ, values, shape...)
}

// Attributes returns the variable attributes in definition order.
func (v *Variable) Attributes() ([]Attribute, error) {
	return v.store.attributes(v.name)
}

// FindAttribute returns the named attribute, or errs.ErrNotFound.
func (v *Variable) FindAttribute(name string) (Attribute, error) {
	return v.store.attribute(v.name, name)
}

// HasAttribute reports whether the named attribute exists.
func (v *Variable) HasAttribute(name string) bool {
	_, err := v.FindAttribute(name)
	return err == nil
}

// Factor derives the packing factor of the variable from its attributes.
//
// Scale comes from scale_factor (default 1), offset from add_offset (default 0).
// The missing value is _FillValue, then missing_value, then defaultMissing.
//
// Parameters:
//   - defaultMissing: Missing sentinel used when the variable declares none
//
// Returns:
//   - packing.Factor: The validated factor
//   - error: Attribute conversion or factor validation error
func (v *Variable) Factor(defaultMissing *inf.Dec) (packing.Factor, error) {
	f := packing.IdentityWithMissing(defaultMissing)

	scale, err := v.numericAttribute(AttrScaleFactor)
	if err != nil {
		return packing.Factor{}, err
	}
	if scale != nil {
		f.Scale = scale
	}

	offset, err := v.numericAttribute(AttrAddOffset)
	if err != nil {
		return packing.Factor{}, err
	}
	if offset != nil {
		f.Offset = offset
	}

	for _, key := range []string{AttrFillValue, AttrMissingValue} {
		missing, err := v.numericAttribute(key)
		if err != nil {
			return packing.Factor{}, err
		}
		if missing != nil {
			f.Missing = missing
			break
		}
	}

	if err := f.Validate(); err != nil {
		return packing.Factor{}, fmt.Errorf("variable %s: %w", v.name, err)
	}

	return f, nil
}

// numericAttribute returns nil without error when the attribute is absent.
func (v *Variable) numericAttribute(key string) (*inf.Dec, error) {
	attr, err := v.FindAttribute(key)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	d, err := attr.NumericValue()
	if err != nil {
		return nil, fmt.Errorf("variable %s: %w", v.name, err)
	}

	return d, nil
}
