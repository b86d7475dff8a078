package store

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"gopkg.in/inf.v0"

	"github.com/arloliu/ncgrid/errs"
	"github.com/arloliu/ncgrid/packing"
)

// Times reads the time variable and multiplies every value by factor, typically
// one of the TimeFactor constants to get epoch milliseconds. Fractional values are
// truncated. A file without a time variable yields an empty result.
func (s *Store) Times(factor int64) ([]int64, error) {
	v, err := s.FindVariable(VarTime)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	arr, err := v.Read()
	if err != nil {
		return nil, err
	}

	times := make([]int64, arr.Len())
	for i := range times {
		d, ok := arr.Decimal(i)
		if !ok {
			return nil, fmt.Errorf("%w: time value at index %d is not finite", errs.ErrInvalidDecimal, i)
		}
		whole := new(inf.Dec).Round(d, 0, inf.RoundDown)
		times[i] = whole.UnscaledBig().Int64() * factor
	}

	return times, nil
}

// StationIDs reads the station_id character variable. A file without station ids
// yields an empty result.
func (s *Store) StationIDs() ([]string, error) {
	v, err := s.FindVariable(VarStationID)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	arr, err := v.Read()
	if err != nil {
		return nil, err
	}

	return arr.Strings()
}

// FirstY returns the first value of the y coordinate variable (lat for row/col
// grids), usually the southern edge. It returns nil when the file has no such
// coordinate or the value is the default missing sentinel.
func (s *Store) FirstY() (*inf.Dec, error) {
	name := s.yName()
	if name == "" {
		return nil, nil
	}

	return s.firstValue(name)
}

// FirstX returns the first value of the x coordinate variable (lon for row/col
// grids), usually the western edge. See FirstY.
func (s *Store) FirstX() (*inf.Dec, error) {
	name := s.xName()
	if name == "" {
		return nil, nil
	}

	return s.firstValue(name)
}

// BoundingBox is the extent of the y and x coordinate variables of a grid.
type BoundingBox struct {
	MinY *inf.Dec
	MaxY *inf.Dec
	MinX *inf.Dec
	MaxX *inf.Dec
}

// BoundingBox returns the minimum and maximum of the y and x coordinate variables
// (lat and lon for row/col grids). Missing and non-finite coordinates are skipped.
//
// Returns:
//   - BoundingBox: The extent as exact decimals
//   - bool: False when either coordinate variable is absent or holds no valid value
//   - error: Read or attribute conversion error
func (s *Store) BoundingBox() (BoundingBox, bool, error) {
	minY, maxY, err := s.extent(s.yName())
	if err != nil || minY == nil {
		return BoundingBox{}, false, err
	}

	minX, maxX, err := s.extent(s.xName())
	if err != nil || minX == nil {
		return BoundingBox{}, false, err
	}

	return BoundingBox{MinY: minY, MaxY: maxY, MinX: minX, MaxX: maxX}, true, nil
}

// TimeRange is the first and last instant of the time axis, in UTC.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// DateRange returns the earliest and latest value of the time variable. factor
// converts stored values to epoch milliseconds, as for Times.
//
// The second result is false when the file has no time variable or no records.
func (s *Store) DateRange(factor int64) (TimeRange, bool, error) {
	times, err := s.Times(factor)
	if err != nil || len(times) == 0 {
		return TimeRange{}, false, err
	}

	return TimeRange{
		Start: time.UnixMilli(slices.Min(times)).UTC(),
		End:   time.UnixMilli(slices.Max(times)).UTC(),
	}, true, nil
}

// HasTime reports whether the file has a time dimension.
func (s *Store) HasTime() bool {
	return s.HasDimension(DimTime)
}

// Is2D reports whether the file is a grid: it has x and y, or col and row dimensions.
func (s *Store) Is2D() bool {
	return (s.HasDimension(DimX) && s.HasDimension(DimY)) ||
		(s.HasDimension(DimCol) && s.HasDimension(DimRow))
}

// Is1D reports whether the file holds station series, or is not a grid.
func (s *Store) Is1D() bool {
	return s.HasDimension(DimStations) || !s.Is2D()
}

// IsWGS84 reports whether coordinates are geographic: the file has a lat variable,
// or its x variable is described as a WGS 1984 coordinate.
func (s *Store) IsWGS84() bool {
	if s.HasVariable(VarLat) {
		return true
	}

	v, err := s.FindVariable(VarX)
	if err != nil {
		return false
	}

	attr, err := v.FindAttribute(AttrLongName)
	if err != nil {
		return false
	}

	return strings.Contains(attr.StringValue(), LongNameXWGS84)
}

func (s *Store) yName() string {
	switch {
	case s.HasDimension(DimY):
		return VarY
	case s.HasDimension(DimRow):
		return VarLat
	default:
		return ""
	}
}

func (s *Store) xName() string {
	switch {
	case s.HasDimension(DimX):
		return VarX
	case s.HasDimension(DimCol):
		return VarLon
	default:
		return ""
	}
}

// extent returns nil bounds when the variable is absent or has no valid value.
func (s *Store) extent(name string) (lo, hi *inf.Dec, err error) {
	if name == "" {
		return nil, nil, nil
	}

	v, err := s.FindVariable(name)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	f, err := v.Factor(packing.DefaultMissing())
	if err != nil {
		return nil, nil, err
	}

	arr, err := v.Read()
	if err != nil {
		return nil, nil, err
	}

	for i := 0; i < arr.Len(); i++ {
		d, ok := arr.Decimal(i)
		if !ok || f.IsMissing(d) {
			continue
		}

		d = f.UnpackUnchecked(d)
		if lo == nil || d.Cmp(lo) < 0 {
			lo = d
		}
		if hi == nil || d.Cmp(hi) > 0 {
			hi = d
		}
	}

	return lo, hi, nil
}

func (s *Store) firstValue(name string) (*inf.Dec, error) {
	v, err := s.FindVariable(name)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	origin := make([]int, v.Rank())
	shape := make([]int, v.Rank())
	for i := range shape {
		shape[i] = 1
	}

	if v.Rank() > 0 && v.Shape()[0] == 0 {
		return nil, nil
	}

	arr, err := v.ReadSection(origin, shape)
	if err != nil {
		return nil, err
	}

	d, ok := arr.Decimal(0)
	if !ok || packing.Equal(d, packing.DefaultMissing()) {
		return nil, nil
	}

	return d, nil
}
