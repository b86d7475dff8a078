// Package ncgrid reads and writes gridded scientific data stored in NetCDF classic
// files.
//
// It converts between flat row-major storage and Y-X, Time-Y-X and Time-Station
// grids, applies and reverses the scale/offset/missing packing convention with
// exact decimals, and decodes large grids in parallel while keeping the output in
// storage order.
//
// # Core Features
//
//   - Exact decimal packing (gopkg.in/inf.v0); missing values are matched exactly
//   - Row inversion for grids stored north-up or south-up
//   - Axis order permutation for Time-Y-X data stored as Y-X-Time and friends
//   - Parallel decode with deterministic, storage-ordered results
//   - Transparent whole-file compression (.nc.gz, .nc.zst, .nc.lz4, .nc.sz)
//
// # Basic Usage
//
// Decoding an array already in memory:
//
//	values, err := ncgrid.ReadYX(arr,
//	    grid.WithScale(packing.MustParse("0.1")),
//	    grid.WithMissing(packing.GridMissing()),
//	    grid.WithInvertRow(true),
//	)
//
// Decoding a variable straight from a file, with the packing factor taken from its
// scale_factor, add_offset and _FillValue attributes:
//
//	st, err := ncgrid.Open("rain.nc.gz")
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	v, err := st.FindVariable("rainfall")
//	grids, err := ncgrid.ReadVariableTYX(v)
//
// # Package Structure
//
// This package wraps the grid, packing and store packages for the most common use
// cases. Use those packages directly for fine-grained control.
package ncgrid

import (
	"fmt"

	"gopkg.in/inf.v0"

	"github.com/arloliu/ncgrid/array"
	"github.com/arloliu/ncgrid/errs"
	"github.com/arloliu/ncgrid/format"
	"github.com/arloliu/ncgrid/grid"
	"github.com/arloliu/ncgrid/index"
	"github.com/arloliu/ncgrid/packing"
	"github.com/arloliu/ncgrid/store"
)

// Open opens a NetCDF classic file, decompressing it first when its extension names
// a compression. See store.Open.
func Open(path string, opts ...store.Option) (*store.Store, error) {
	return store.Open(path, opts...)
}

// NewDefiner starts the definition of a new file. See store.Definer.
func NewDefiner() *store.Definer {
	return store.NewDefiner()
}

// Create materializes the definition d at path and returns its writer.
func Create(path string, d *store.Definer, opts ...store.Option) (*store.Writer, error) {
	return d.Create(path, opts...)
}

// ReadValue decodes the element at flat offset i.
func ReadValue(a *array.Array, i int, opts ...grid.DecodeOption) (*inf.Dec, error) {
	d, err := grid.NewDecoder(opts...)
	if err != nil {
		return nil, err
	}

	return d.Value(a, i)
}

// ReadOneDimension decodes a rank-1 array in storage order.
func ReadOneDimension(a *array.Array, opts ...grid.DecodeOption) ([]*inf.Dec, error) {
	d, err := grid.NewDecoder(opts...)
	if err != nil {
		return nil, err
	}

	return d.OneDimension(a)
}

// ReadYX decodes a rank-2 [y, x] array into a row-major list.
//
// Parameters:
//   - a: Rank-2 array
//   - opts: Decoder options; the default is the identity factor without row inversion
//
// Returns:
//   - []*inf.Dec: ySize*xSize physical values
//   - error: errs.ErrRankMismatch, or an option error
func ReadYX(a *array.Array, opts ...grid.DecodeOption) ([]*inf.Dec, error) {
	d, err := grid.NewDecoder(opts...)
	if err != nil {
		return nil, err
	}

	return d.YX(a)
}

// ReadTYX decodes a rank-3 array into one Y-X list per time step.
func ReadTYX(a *array.Array, opts ...grid.DecodeOption) ([][]*inf.Dec, error) {
	d, err := grid.NewDecoder(opts...)
	if err != nil {
		return nil, err
	}

	return d.TYX(a)
}

// SliceTYX decodes the Y-X grid at time index t of a rank-3 array.
func SliceTYX(a *array.Array, t int, opts ...grid.DecodeOption) ([]*inf.Dec, error) {
	d, err := grid.NewDecoder(opts...)
	if err != nil {
		return nil, err
	}

	return d.SliceTYX(a, t)
}

// ReadTimeStation decodes the series of station s from a rank-2 [time, station]
// array.
func ReadTimeStation(a *array.Array, s int, opts ...grid.DecodeOption) ([]*inf.Dec, error) {
	d, err := grid.NewDecoder(opts...)
	if err != nil {
		return nil, err
	}

	return d.TimeStation(a, s)
}

// ReadVariableOneDimension reads and decodes a rank-1 variable.
//
// The packing factor comes from the variable's attributes (see
// store.Variable.Factor, with -999 as the fallback missing value); explicit
// options override it.
func ReadVariableOneDimension(v *store.Variable, opts ...grid.DecodeOption) ([]*inf.Dec, error) {
	d, err := variableDecoder(v, opts)
	if err != nil {
		return nil, err
	}

	a, err := v.Read()
	if err != nil {
		return nil, err
	}

	return d.OneDimension(a)
}

// ReadVariableYX reads and decodes a rank-2 variable. See ReadVariableOneDimension
// for the packing factor.
func ReadVariableYX(v *store.Variable, opts ...grid.DecodeOption) ([]*inf.Dec, error) {
	d, err := variableDecoder(v, opts)
	if err != nil {
		return nil, err
	}

	a, err := v.Read()
	if err != nil {
		return nil, err
	}

	return d.YX(a)
}

// ReadVariableTYX reads and decodes a rank-3 variable into one list per time step.
func ReadVariableTYX(v *store.Variable, opts ...grid.DecodeOption) ([][]*inf.Dec, error) {
	d, err := variableDecoder(v, opts)
	if err != nil {
		return nil, err
	}

	a, err := v.Read()
	if err != nil {
		return nil, err
	}

	return d.TYX(a)
}

// ReadVariableSliceTYX decodes time step t of a rank-3 variable. For Time-Y-X
// storage only that time step is read from the file.
func ReadVariableSliceTYX(v *store.Variable, t int, opts ...grid.DecodeOption) ([]*inf.Dec, error) {
	d, err := variableDecoder(v, opts)
	if err != nil {
		return nil, err
	}

	shape := v.Shape()
	if d.AxisOrder() != index.TimeYX || len(shape) != 3 {
		a, err := v.Read()
		if err != nil {
			return nil, err
		}

		return d.SliceTYX(a, t)
	}

	if t < 0 || t >= shape[0] {
		return nil, fmt.Errorf("%w: time %d, time steps %d", errs.ErrIndexOutOfRange, t, shape[0])
	}

	a, err := v.ReadSection([]int{t, 0, 0}, []int{1, shape[1], shape[2]})
	if err != nil {
		return nil, err
	}

	return d.SliceTYX(a, 0)
}

// ReadVariableTimeStation decodes the series of station s from a rank-2
// [time, station] variable, reading only that column.
func ReadVariableTimeStation(v *store.Variable, s int, opts ...grid.DecodeOption) ([]*inf.Dec, error) {
	d, err := variableDecoder(v, opts)
	if err != nil {
		return nil, err
	}

	shape := v.Shape()
	if len(shape) != 2 || s < 0 || s >= shape[1] {
		a, err := v.Read()
		if err != nil {
			return nil, err
		}

		return d.TimeStation(a, s)
	}

	a, err := v.ReadSection([]int{0, s}, []int{shape[0], 1})
	if err != nil {
		return nil, err
	}

	return d.TimeStation(a, 0)
}

// ReadVariableStrings reads a rank-2 character variable as trimmed strings.
func ReadVariableStrings(v *store.Variable) ([]string, error) {
	a, err := v.Read()
	if err != nil {
		return nil, err
	}

	return a.Strings()
}

// WriteOneDimension packs physical values with factor and writes them to a rank-1
// variable of type typ.
//
// Integral types store the packed value rounded half-up. Float and double types
// store (value - offset) / scale with its fraction, so an identity factor writes
// physical values unchanged.
func WriteOneDimension(w *store.Writer, name string, typ format.ElementType, factor packing.Factor, values []*inf.Dec) error {
	raws, err := packValues(typ, factor, values)
	if err != nil {
		return err
	}

	a, err := grid.AssembleOneDimension(typ, raws)
	if err != nil {
		return err
	}

	return w.Write(name, a)
}

// WriteYX packs a row-major Y-X list with factor and writes it to a rank-2
// variable.
//
// Parameters:
//   - w: Writer of the target file
//   - name: Variable name
//   - typ: Variable element type
//   - factor: Packing factor applied before storage
//   - values: ySize*xSize physical values
//   - ySize, xSize: Grid extents
//
// Returns:
//   - error: Packing, assembly or write error
func WriteYX(w *store.Writer, name string, typ format.ElementType, factor packing.Factor, values []*inf.Dec, ySize, xSize int) error {
	raws, err := packValues(typ, factor, values)
	if err != nil {
		return err
	}

	a, err := grid.AssembleYX(typ, raws, ySize, xSize)
	if err != nil {
		return err
	}

	return w.Write(name, a)
}

// WriteTYX packs one Y-X list per time step with factor and writes them to a
// rank-3 Time-Y-X variable starting at time index t0.
func WriteTYX(w *store.Writer, name string, typ format.ElementType, factor packing.Factor, values [][]*inf.Dec, ySize, xSize, t0 int) error {
	raws := make([][]*inf.Dec, len(values))
	for t, step := range values {
		packed, err := packValues(typ, factor, step)
		if err != nil {
			return err
		}
		raws[t] = packed
	}

	a, err := grid.AssembleTYX(typ, raws, ySize, xSize)
	if err != nil {
		return err
	}

	return w.Write(name, a, t0, 0, 0)
}

// packValues applies factor for storage in a variable of type typ.
func packValues(typ format.ElementType, factor packing.Factor, values []*inf.Dec) ([]*inf.Dec, error) {
	if typ.IsIntegral() {
		return factor.PackAll(values)
	}

	return factor.PackAllReal(values)
}

func variableDecoder(v *store.Variable, opts []grid.DecodeOption) (*grid.Decoder, error) {
	f, err := v.Factor(packing.DefaultMissing())
	if err != nil {
		return nil, err
	}

	all := make([]grid.DecodeOption, 0, len(opts)+1)
	all = append(all, grid.WithFactor(f))
	all = append(all, opts...)

	return grid.NewDecoder(all...)
}
