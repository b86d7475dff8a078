// Package index maps between semantic grid coordinates and flat row-major storage
// offsets.
//
// All functions are pure and O(1) (O(rank) for the N-d helpers). They never
// validate their inputs: bounds checking is the responsibility of the decoders that
// call them, which report errs.ErrIndexOutOfRange before an offset is computed.
package index

// Flatten2D returns the row-major flat offset of (row, col) in a grid that is
// xSize columns wide.
//
// Example:
//
//	index.Flatten2D(3, 3, 3) // 12
func Flatten2D(row, col, xSize int) int {
	return row*xSize + col
}

// Unflatten2D is the inverse of Flatten2D.
//
// Parameters:
//   - offset: Flat offset, 0 <= offset < ySize*xSize
//   - xSize: Number of columns, must be positive
//
// Returns:
//   - row: offset / xSize
//   - col: offset % xSize
func Unflatten2D(offset, xSize int) (row, col int) {
	return offset / xSize, offset % xSize
}

// Offset returns the row-major flat offset of idx in an array of the given shape.
//
// Both slices must have the same length; the last axis varies fastest.
func Offset(idx, shape []int) int {
	off := 0
	for i := range idx {
		off = off*shape[i] + idx[i]
	}

	return off
}

// Unflatten is the inverse of Offset. It returns a new index slice of len(shape).
func Unflatten(offset int, shape []int) []int {
	idx := make([]int, len(shape))
	for i := len(shape) - 1; i >= 0; i-- {
		if shape[i] == 0 {
			continue
		}
		idx[i] = offset % shape[i]
		offset /= shape[i]
	}

	return idx
}

// Flatten3DOffset returns the flat offset of (time, row, col) in a buffer laid out
// as Time-Y-X with ySize rows and xSize columns per time slice.
func Flatten3DOffset(time, row, col, ySize, xSize int) int {
	return time*(ySize*xSize) + row*xSize + col
}

// Size returns the number of elements of an array with the given shape.
// An empty shape describes a scalar and has size 1.
func Size(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}

	return n
}
