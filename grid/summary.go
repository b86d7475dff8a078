package grid

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/inf.v0"

	"github.com/arloliu/ncgrid/internal/pool"
	"github.com/arloliu/ncgrid/packing"
)

// Summary describes the non-missing values of a decoded list.
//
// Min, Max, Mean and StdDev are NaN when Count is zero. StdDev is the sample
// standard deviation and is zero for a single value.
type Summary struct {
	Count   int
	Missing int
	Min     float64
	Max     float64
	Mean    float64
	StdDev  float64
	Sum     float64
}

// Summarize computes statistics over values, skipping nil entries and entries equal
// to missing. Statistics are computed in float64 and are meant for display.
func Summarize(values []*inf.Dec, missing *inf.Dec) Summary {
	data, cleanup := pool.GetFloat64Slice(len(values))
	defer cleanup()

	s := Summary{}
	for _, v := range values {
		if v == nil || (missing != nil && v.Cmp(missing) == 0) {
			s.Missing++
			continue
		}
		data = append(data, packing.Float64(v))
	}

	s.Count = len(data)
	if s.Count == 0 {
		nan := math.NaN()
		s.Min, s.Max, s.Mean, s.StdDev = nan, nan, nan, nan

		return s
	}

	s.Min = floats.Min(data)
	s.Max = floats.Max(data)
	s.Sum = floats.Sum(data)
	if s.Count == 1 {
		s.Mean = data[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(data, nil)

	return s
}
