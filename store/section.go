package store

import (
	"errors"
	"fmt"
	"io"

	"github.com/ctessum/cdf"

	"github.com/arloliu/ncgrid/errs"
	"github.com/arloliu/ncgrid/index"
)

// run is one contiguous stretch of a hyperslab: elements begin..end (inclusive
// corners) in the file, stored at dst[off:off+n] in the row-major section buffer.
type run struct {
	begin []int
	end   []int
	off   int
	n     int
}

// sectionRuns splits the section (origin, shape) of a variable with extents full
// into contiguous runs.
//
// Trailing axes covered completely are merged with the first partial axis, so a
// whole-variable section is a single run.
func sectionRuns(origin, shape, full []int) []run {
	rank := len(shape)
	if rank == 0 {
		return []run{{begin: []int{}, end: []int{}, n: 1}}
	}

	j := rank - 1
	for j > 0 && origin[j] == 0 && shape[j] == full[j] {
		j--
	}

	length := index.Size(shape[j:])
	outer := shape[:j]
	count := index.Size(outer)

	runs := make([]run, 0, count)
	for r := 0; r < count; r++ {
		idx := index.Unflatten(r, outer)

		begin := make([]int, rank)
		end := make([]int, rank)
		for i := 0; i < rank; i++ {
			switch {
			case i < j:
				begin[i] = origin[i] + idx[i]
				end[i] = begin[i]
			default:
				begin[i] = origin[i]
				end[i] = origin[i] + shape[i] - 1
			}
		}

		runs = append(runs, run{begin: begin, end: end, off: r * length, n: length})
	}

	return runs
}

// checkSection validates a section against the variable extents. Record axes
// (unlimited) are checked against limit, the current record count, unless limit
// is negative.
func checkSection(origin, shape, full []int, record bool, limit int) error {
	if len(origin) != len(full) || len(shape) != len(full) {
		return fmt.Errorf("%w: section rank %d/%d, variable rank %d", errs.ErrRankMismatch, len(origin), len(shape), len(full))
	}

	for i := range full {
		if origin[i] < 0 || shape[i] < 0 {
			return fmt.Errorf("%w: axis %d origin %d shape %d", errs.ErrIndexOutOfRange, i, origin[i], shape[i])
		}

		extent := full[i]
		if i == 0 && record {
			if limit < 0 {
				continue
			}
			extent = limit
		}

		if origin[i]+shape[i] > extent {
			return fmt.Errorf("%w: axis %d origin %d shape %d, extent %d", errs.ErrIndexOutOfRange, i, origin[i], shape[i], extent)
		}
	}

	return nil
}

// cdfElement lists the slice element types accepted by cdf readers and writers.
type cdfElement interface {
	uint8 | int16 | int32 | float32 | float64
}

func readRuns[T cdfElement](f *cdf.File, name string, dst []T, runs []run) error {
	for _, r := range runs {
		rd := f.Reader(name, r.begin, r.end)
		if rd == nil {
			return fmt.Errorf("%w: variable %s", errs.ErrNotFound, name)
		}

		n, err := rd.Read(dst[r.off : r.off+r.n])
		if err != nil && !(errors.Is(err, io.EOF) && n == r.n) {
			return err
		}
		if n != r.n {
			return fmt.Errorf("short read at %v: %d of %d elements", r.begin, n, r.n)
		}
	}

	return nil
}

func writeRuns[T cdfElement](f *cdf.File, name string, src []T, runs []run) error {
	for _, r := range runs {
		w := f.Writer(name, r.begin, r.end)
		if w == nil {
			return fmt.Errorf("%w: variable %s", errs.ErrNotFound, name)
		}

		// cdf reports io.EOF once the run reaches its end corner.
		n, err := w.Write(src[r.off : r.off+r.n])
		if err != nil && !(errors.Is(err, io.EOF) && n == r.n) {
			return err
		}
		if n != r.n {
			return fmt.Errorf("short write at %v: %d of %d elements", r.begin, n, r.n)
		}
	}

	return nil
}
