package traverse

import (
	"runtime"
	"sync"
)

// InlineThreshold is the number of cells below which Map runs on the calling
// goroutine.
const InlineThreshold = 1024

// Workers resolves a requested worker count: non-positive means GOMAXPROCS.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}

	return n
}

// Map calls fn for every index in 0..n-1 and collects the results in index order.
//
// The index space is split into contiguous stripes, one per worker. Each worker stops
// at the first failure inside its stripe; when several stripes fail, the error of
// the lowest failing index is returned, the same error a sequential loop would hit
// first.
//
// Parameters:
//   - n: Number of cells
//   - workers: Goroutine count; <= 0 means runtime.GOMAXPROCS(0)
//   - fn: Function evaluated per cell; must be safe for concurrent use
//
// Returns:
//   - []T: Results, out[i] == fn(i)
//   - error: First error in index order, or nil
func Map[T any](n, workers int, fn func(i int) (T, error)) ([]T, error) {
	if n <= 0 {
		return []T{}, nil
	}

	out := make([]T, n)

	workers = min(Workers(workers), n)
	if workers == 1 || n < InlineThreshold {
		if err := mapStripe(out, 0, n, fn); err != nil {
			return nil, err
		}

		return out, nil
	}

	perWorker := (n + workers - 1) / workers
	failures := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * perWorker
		if start >= n {
			break
		}
		end := min(start+perWorker, n)

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			failures[w] = mapStripe(out, start, end, fn)
		}(w, start, end)
	}
	wg.Wait()

	// Stripes are contiguous and ordered, so the first failing stripe holds the
	// lowest failing index.
	for _, err := range failures {
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Map2D maps fn over the coordinates of Range2D(rows, cols, invertRow) and returns
// the results in that visitation order.
func Map2D[T any](rows, cols int, invertRow bool, workers int, fn func(YX) (T, error)) ([]T, error) {
	if rows <= 0 || cols <= 0 {
		return []T{}, nil
	}

	return Map(rows*cols, workers, func(i int) (T, error) {
		return fn(At2D(i, rows, cols, invertRow))
	})
}

// Map3D maps fn over the coordinates of Range3D(times, rows, cols) and returns the
// results in that visitation order.
func Map3D[T any](times, rows, cols, workers int, fn func(TYX) (T, error)) ([]T, error) {
	if times <= 0 || rows <= 0 || cols <= 0 {
		return []T{}, nil
	}

	return Map(times*rows*cols, workers, func(i int) (T, error) {
		return fn(At3D(i, rows, cols))
	})
}

func mapStripe[T any](out []T, start, end int, fn func(int) (T, error)) error {
	for i := start; i < end; i++ {
		v, err := fn(i)
		if err != nil {
			return err
		}
		out[i] = v
	}

	return nil
}
