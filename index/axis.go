package index

import (
	"fmt"

	"github.com/arloliu/ncgrid/errs"
)

// AxisOrder records the storage position (0, 1 or 2) of each semantic axis of a
// three dimensional variable.
//
// AxisOrder is a plain comparable value. The zero value is not a valid order; use
// one of the presets or NewAxisOrder.
type AxisOrder struct {
	Time int
	Row  int
	Col  int
}

var (
	// TimeYX stores time first, then rows, then columns. It is the default layout.
	TimeYX = AxisOrder{Time: 0, Row: 1, Col: 2}
	// TimeXY stores time first, then columns, then rows.
	TimeXY = AxisOrder{Time: 0, Row: 2, Col: 1}
	// YXTime stores rows, columns, then time.
	YXTime = AxisOrder{Time: 2, Row: 0, Col: 1}
	// XYTime stores columns, rows, then time.
	XYTime = AxisOrder{Time: 2, Row: 1, Col: 0}
)

// NewAxisOrder creates an axis order from the storage positions of the time, row
// and column axes.
//
// Parameters:
//   - time: Storage position of the time axis
//   - row: Storage position of the row (Y) axis
//   - col: Storage position of the column (X) axis
//
// Returns:
//   - AxisOrder: The validated order
//   - error: errs.ErrInvalidAxisOrder unless the positions are a permutation of 0, 1, 2
func NewAxisOrder(time, row, col int) (AxisOrder, error) {
	o := AxisOrder{Time: time, Row: row, Col: col}
	if !o.Valid() {
		return AxisOrder{}, fmt.Errorf("%w: (time=%d, row=%d, col=%d)", errs.ErrInvalidAxisOrder, time, row, col)
	}

	return o, nil
}

// Valid reports whether the positions form a permutation of 0, 1, 2.
func (o AxisOrder) Valid() bool {
	var seen [3]bool
	for _, p := range [3]int{o.Time, o.Row, o.Col} {
		if p < 0 || p > 2 || seen[p] {
			return false
		}
		seen[p] = true
	}

	return true
}

func (o AxisOrder) String() string {
	var names [3]string
	if !o.Valid() {
		return fmt.Sprintf("AxisOrder(%d,%d,%d)", o.Time, o.Row, o.Col)
	}
	names[o.Time] = "T"
	names[o.Row] = "Y"
	names[o.Col] = "X"

	return names[0] + names[1] + names[2]
}

// Flatten3D places each semantic index at its storage position.
//
// With TimeYX the result is [time, row, col]; with YXTime it is [row, col, time].
// The order must be valid; an invalid order yields an unspecified result.
func Flatten3D(time, row, col int, order AxisOrder) [3]int {
	var out [3]int
	out[order.Time] = time
	out[order.Row] = row
	out[order.Col] = col

	return out
}

// Shape3D arranges the semantic extents into storage order, the same way
// Flatten3D arranges indices.
func Shape3D(times, rows, cols int, order AxisOrder) []int {
	s := Flatten3D(times, rows, cols, order)

	return s[:]
}
