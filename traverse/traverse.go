// Package traverse produces the visitation order of 1D, 2D and 3D index spaces and
// maps functions over them in parallel without losing that order.
//
// The generators are lazy iter.Seq values and have no failure modes. Map, Map2D and
// Map3D fan the work out over goroutines in contiguous stripes and write each result
// at its own position, so the returned slice is always in sequential visitation
// order regardless of the worker count.
package traverse

import (
	"iter"

	"github.com/arloliu/ncgrid/index"
)

// YX is a grid coordinate: column (X) and row (Y).
type YX struct {
	Col int
	Row int
}

// Offset returns the row-major flat offset of the coordinate in a grid that is
// xSize columns wide.
func (c YX) Offset(xSize int) int {
	return index.Flatten2D(c.Row, c.Col, xSize)
}

// TYX is a time-grid coordinate: column (X), row (Y) and time step.
type TYX struct {
	Col  int
	Row  int
	Time int
}

// Offset returns the flat offset of the coordinate in a Time-Y-X buffer.
func (c TYX) Offset(ySize, xSize int) int {
	return index.Flatten3DOffset(c.Time, c.Row, c.Col, ySize, xSize)
}

// Range1D yields 0..n-1, or n-1..0 when inverted. Nothing is yielded for n <= 0.
func Range1D(n int, inverted bool) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < n; i++ {
			v := i
			if inverted {
				v = n - 1 - i
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Range2D yields every coordinate of a rows x cols grid in row-major order.
//
// With invertRow the rows are visited from rows-1 down to 0, while columns stay
// ascending inside each row. This is how grids stored south-up are read north-up.
//
// Example:
//
//	for c := range traverse.Range2D(2, 2, true) {
//	    // (row=1,col=0) (row=1,col=1) (row=0,col=0) (row=0,col=1)
//	}
func Range2D(rows, cols int, invertRow bool) iter.Seq[YX] {
	return func(yield func(YX) bool) {
		if cols <= 0 {
			return
		}
		for r := range Range1D(rows, invertRow) {
			for c := 0; c < cols; c++ {
				if !yield(YX{Col: c, Row: r}) {
					return
				}
			}
		}
	}
}

// Range3D yields every coordinate of a times x rows x cols space, time ascending and
// row-major inside each time step.
func Range3D(times, rows, cols int) iter.Seq[TYX] {
	return func(yield func(TYX) bool) {
		if rows <= 0 || cols <= 0 {
			return
		}
		for t := 0; t < times; t++ {
			for r := 0; r < rows; r++ {
				for c := 0; c < cols; c++ {
					if !yield(TYX{Col: c, Row: r, Time: t}) {
						return
					}
				}
			}
		}
	}
}

// At2D returns the i-th coordinate yielded by Range2D(rows, cols, invertRow).
func At2D(i, rows, cols int, invertRow bool) YX {
	r, c := index.Unflatten2D(i, cols)
	if invertRow {
		r = rows - 1 - r
	}

	return YX{Col: c, Row: r}
}

// At3D returns the i-th coordinate yielded by Range3D(times, rows, cols).
func At3D(i, rows, cols int) TYX {
	plane := rows * cols
	r, c := index.Unflatten2D(i%plane, cols)

	return TYX{Col: c, Row: r, Time: i / plane}
}
