package grid

import (
	"fmt"

	"gopkg.in/inf.v0"

	"github.com/arloliu/ncgrid/array"
	"github.com/arloliu/ncgrid/errs"
	"github.com/arloliu/ncgrid/index"
	"github.com/arloliu/ncgrid/traverse"
)

// Value decodes the element at flat offset i.
//
// Raw values equal to the missing sentinel, and float elements without a decimal
// value (NaN, infinities), decode to the missing sentinel.
func (d *Decoder) Value(a *array.Array, i int) (*inf.Dec, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: array", errs.ErrNilValue)
	}

	if i < 0 || i >= a.Len() {
		return nil, fmt.Errorf("%w: offset %d, length %d", errs.ErrIndexOutOfRange, i, a.Len())
	}

	return d.value(a, i), nil
}

// ValueAt decodes the element at the N-d index idx.
func (d *Decoder) ValueAt(a *array.Array, idx ...int) (*inf.Dec, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: array", errs.ErrNilValue)
	}

	off, err := a.Offset(idx...)
	if err != nil {
		return nil, err
	}

	return d.value(a, off), nil
}

// OneDimension decodes a rank-1 array in storage order.
func (d *Decoder) OneDimension(a *array.Array) ([]*inf.Dec, error) {
	if err := checkRank(a, 1); err != nil {
		return nil, err
	}

	return traverse.Map(a.Dim(0), d.workers, func(i int) (*inf.Dec, error) {
		return d.value(a, i), nil
	})
}

// YX decodes a rank-2 [y, x] array into a row-major list of ySize*xSize values.
//
// With WithInvertRow the rows are emitted last to first; columns are always
// ascending.
//
// Example:
//
//	// arr holds [[1, 2], [3, 4]]
//	dec.YX(arr) // [1 2 3 4], or [3 4 1 2] with WithInvertRow(true)
func (d *Decoder) YX(a *array.Array) ([]*inf.Dec, error) {
	if err := checkRank(a, 2); err != nil {
		return nil, err
	}

	rows, cols := a.Dim(0), a.Dim(1)

	return traverse.Map2D(rows, cols, d.invertRow, d.workers, func(c traverse.YX) (*inf.Dec, error) {
		return d.value(a, c.Offset(cols)), nil
	})
}

// TYX decodes a rank-3 array into one Y-X list per time step.
func (d *Decoder) TYX(a *array.Array) ([][]*inf.Dec, error) {
	if err := checkRank(a, 3); err != nil {
		return nil, err
	}

	times, _, _ := d.extents(a)
	out := make([][]*inf.Dec, times)
	for t := range out {
		values, err := d.slice(a, t)
		if err != nil {
			return nil, err
		}
		out[t] = values
	}

	return out, nil
}

// SliceTYX decodes the Y-X grid of time step t of a rank-3 array.
//
// Parameters:
//   - a: Rank-3 array
//   - t: Time index, 0 <= t < number of time steps
//
// Returns:
//   - []*inf.Dec: Row-major values of the time step
//   - error: errs.ErrRankMismatch or errs.ErrIndexOutOfRange
func (d *Decoder) SliceTYX(a *array.Array, t int) ([]*inf.Dec, error) {
	if err := checkRank(a, 3); err != nil {
		return nil, err
	}

	times, _, _ := d.extents(a)
	if t < 0 || t >= times {
		return nil, fmt.Errorf("%w: time %d, time steps %d", errs.ErrIndexOutOfRange, t, times)
	}

	return d.slice(a, t)
}

// TimeStation decodes the time series of station s from a rank-2 [time, station]
// array.
func (d *Decoder) TimeStation(a *array.Array, s int) ([]*inf.Dec, error) {
	if err := checkRank(a, 2); err != nil {
		return nil, err
	}

	times, stations := a.Dim(0), a.Dim(1)
	if s < 0 || s >= stations {
		return nil, fmt.Errorf("%w: station %d, stations %d", errs.ErrIndexOutOfRange, s, stations)
	}

	return traverse.Map(times, d.workers, func(t int) (*inf.Dec, error) {
		return d.value(a, index.Flatten2D(t, s, stations)), nil
	})
}

// Strings decodes a rank-2 char array into one string per row.
func (d *Decoder) Strings(a *array.Array) ([]string, error) {
	if err := checkRank(a, 2); err != nil {
		return nil, err
	}

	return a.Strings()
}

func (d *Decoder) slice(a *array.Array, t int) ([]*inf.Dec, error) {
	shape := a.Shape()
	_, rows, cols := d.extents(a)

	return traverse.Map2D(rows, cols, d.invertRow, d.workers, func(c traverse.YX) (*inf.Dec, error) {
		pos := index.Flatten3D(t, c.Row, c.Col, d.order)
		return d.value(a, index.Offset(pos[:], shape)), nil
	})
}

// extents returns the semantic (times, rows, cols) extents of a rank-3 array.
func (d *Decoder) extents(a *array.Array) (times, rows, cols int) {
	return a.Dim(d.order.Time), a.Dim(d.order.Row), a.Dim(d.order.Col)
}

func (d *Decoder) value(a *array.Array, i int) *inf.Dec {
	raw, ok := a.Decimal(i)
	if !ok {
		return new(inf.Dec).Set(d.factor.Missing)
	}

	return d.factor.UnpackUnchecked(raw)
}

func checkRank(a *array.Array, rank int) error {
	if a == nil {
		return fmt.Errorf("%w: array", errs.ErrNilValue)
	}

	if a.Rank() != rank {
		return fmt.Errorf("%w: want rank %d, got shape %v", errs.ErrRankMismatch, rank, a.Shape())
	}

	return nil
}
