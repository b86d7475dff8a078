package grid

import (
	"fmt"

	"gopkg.in/inf.v0"

	"github.com/arloliu/ncgrid/array"
	"github.com/arloliu/ncgrid/errs"
	"github.com/arloliu/ncgrid/format"
	"github.com/arloliu/ncgrid/index"
)

// AssembleOneDimension builds a rank-1 array of element type typ holding values in
// order.
func AssembleOneDimension(typ format.ElementType, values []*inf.Dec) (*array.Array, error) {
	a, err := array.Zeros(typ, len(values))
	if err != nil {
		return nil, err
	}

	if err := fill(a, values, 0); err != nil {
		return nil, err
	}

	return a, nil
}

// AssembleYX builds a rank-2 [ySize, xSize] array from a row-major list.
//
// Parameters:
//   - typ: Element type of the result
//   - values: Row-major values, exactly ySize*xSize of them
//   - ySize: Number of rows, must be positive
//   - xSize: Number of columns, must be positive
//
// Returns:
//   - *array.Array: The assembled array
//   - error: errs.ErrInvalidShape, errs.ErrSizeMismatch or errs.ErrNilValue
func AssembleYX(typ format.ElementType, values []*inf.Dec, ySize, xSize int) (*array.Array, error) {
	if err := checkGrid(ySize, xSize); err != nil {
		return nil, err
	}

	if len(values) != ySize*xSize {
		return nil, fmt.Errorf("%w: %d values for %dx%d grid", errs.ErrSizeMismatch, len(values), ySize, xSize)
	}

	a, err := array.Zeros(typ, ySize, xSize)
	if err != nil {
		return nil, err
	}

	if err := fill(a, values, 0); err != nil {
		return nil, err
	}

	return a, nil
}

// AssembleTYX builds a rank-3 [len(values), ySize, xSize] array from one row-major
// Y-X list per time step.
func AssembleTYX(typ format.ElementType, values [][]*inf.Dec, ySize, xSize int) (*array.Array, error) {
	return AssembleTYXWithOrder(typ, values, ySize, xSize, index.TimeYX)
}

// AssembleTYXWithOrder is like AssembleTYX but lays the axes out in the given
// storage order, e.g. index.YXTime produces a [ySize, xSize, times] array.
func AssembleTYXWithOrder(typ format.ElementType, values [][]*inf.Dec, ySize, xSize int, order index.AxisOrder) (*array.Array, error) {
	if err := checkGrid(ySize, xSize); err != nil {
		return nil, err
	}

	if !order.Valid() {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidAxisOrder, order)
	}

	plane := ySize * xSize
	for t, step := range values {
		if len(step) != plane {
			return nil, fmt.Errorf("%w: time %d has %d values for %dx%d grid", errs.ErrSizeMismatch, t, len(step), ySize, xSize)
		}
	}

	shape := index.Shape3D(len(values), ySize, xSize, order)
	a, err := array.Zeros(typ, shape...)
	if err != nil {
		return nil, err
	}

	for t, step := range values {
		for i, v := range step {
			row, col := index.Unflatten2D(i, xSize)
			pos := index.Flatten3D(t, row, col, order)
			if err := set(a, index.Offset(pos[:], shape), v, t*plane+i); err != nil {
				return nil, err
			}
		}
	}

	return a, nil
}

// AssembleChars builds a rank-2 [len(strs), width] char array. Each string is
// truncated to width bytes and NUL padded.
func AssembleChars(strs []string, width int) (*array.Array, error) {
	if len(strs) == 0 {
		return nil, fmt.Errorf("%w: no strings", errs.ErrEmptyInput)
	}

	if width <= 0 {
		return nil, fmt.Errorf("%w: char width %d", errs.ErrInvalidShape, width)
	}

	a, err := array.Zeros(format.TypeChar, len(strs), width)
	if err != nil {
		return nil, err
	}

	for r, s := range strs {
		if err := a.SetRow(r, s); err != nil {
			return nil, err
		}
	}

	return a, nil
}

func checkGrid(ySize, xSize int) error {
	if ySize <= 0 || xSize <= 0 {
		return fmt.Errorf("%w: %dx%d grid", errs.ErrInvalidShape, ySize, xSize)
	}

	return nil
}

func fill(a *array.Array, values []*inf.Dec, base int) error {
	for i, v := range values {
		if err := set(a, base+i, v, base+i); err != nil {
			return err
		}
	}

	return nil
}

// set stores v at flat offset off; pos is the position of v in the caller's input
// and is only used for error messages.
func set(a *array.Array, off int, v *inf.Dec, pos int) error {
	if v == nil {
		return fmt.Errorf("%w: value %d", errs.ErrNilValue, pos)
	}

	return a.Set(off, v)
}
