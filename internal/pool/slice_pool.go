package pool

import "sync"

var float64SlicePool = sync.Pool{
	New: func() any { return &[]float64{} },
}

// GetFloat64Slice retrieves an empty float64 slice with at least the given capacity.
//
// The caller appends to the returned slice and must call the returned cleanup
// function (typically with defer) once the slice, and anything aliasing it, is no
// longer used.
//
// Parameters:
//   - capacity: Minimum capacity of the returned slice
//
// Returns:
//   - []float64: A zero-length slice with cap >= capacity
//   - func(): Cleanup function returning the slice to the pool
//
// Example:
//
//	values, cleanup := pool.GetFloat64Slice(n)
//	defer cleanup()
//	values = append(values, x)
func GetFloat64Slice(capacity int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := (*ptr)[:0]

	if cap(slice) < capacity {
		slice = make([]float64, 0, capacity)
	}
	*ptr = slice

	return slice, func() { float64SlicePool.Put(ptr) }
}
