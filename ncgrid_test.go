package ncgrid

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/inf.v0"

	"github.com/arloliu/ncgrid/array"
	"github.com/arloliu/ncgrid/errs"
	"github.com/arloliu/ncgrid/format"
	"github.com/arloliu/ncgrid/grid"
	"github.com/arloliu/ncgrid/index"
	"github.com/arloliu/ncgrid/packing"
	"github.com/arloliu/ncgrid/store"
)

func decs(values ...string) []*inf.Dec {
	out := make([]*inf.Dec, len(values))
	for i, v := range values {
		out[i] = packing.MustParse(v)
	}

	return out
}

func requireDecs(t *testing.T, want []string, got []*inf.Dec) {
	t.Helper()

	require.Len(t, got, len(want))
	for i := range want {
		require.True(t, packing.Equal(packing.MustParse(want[i]), got[i]), "index %d: want %s, got %s", i, want[i], got[i])
	}
}

func TestReadYX_InvertRow(t *testing.T) {
	a, err := array.NewShort([]int16{1, 2, 3, 4, 5, -9999}, 2, 3)
	require.NoError(t, err)

	values, err := ReadYX(a,
		grid.WithScale(packing.MustParse("0.5")),
		grid.WithMissing(packing.GridMissing()),
	)
	require.NoError(t, err)
	requireDecs(t, []string{"0.5", "1", "1.5", "2", "2.5", "-9999"}, values)

	values, err = ReadYX(a, grid.WithInvertRow(true))
	require.NoError(t, err)
	requireDecs(t, []string{"4", "5", "-9999", "1", "2", "3"}, values)

	_, err = ReadYX(a, grid.WithScale(packing.MustParse("0")))
	require.ErrorIs(t, err, errs.ErrZeroScale)
}

func TestReadTYX_AndSlice(t *testing.T) {
	a, err := array.NewInt([]int32{1, 2, 3, 4, 5, 6, 7, 8}, 2, 2, 2)
	require.NoError(t, err)

	grids, err := ReadTYX(a, grid.WithOffset(packing.MustParse("100")))
	require.NoError(t, err)
	require.Len(t, grids, 2)
	requireDecs(t, []string{"105", "106", "107", "108"}, grids[1])

	step, err := SliceTYX(a, 0)
	require.NoError(t, err)
	requireDecs(t, []string{"1", "2", "3", "4"}, step)

	_, err = SliceTYX(a, 2)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)

	_, err = SliceTYX(a, 0, grid.WithAxisOrder(index.AxisOrder{}))
	require.ErrorIs(t, err, errs.ErrInvalidAxisOrder)
}

func TestReadOneDimension_Value_TimeStation(t *testing.T) {
	a, err := array.NewFloat([]float32{0.1, 0.25, -999}, 3)
	require.NoError(t, err)

	values, err := ReadOneDimension(a)
	require.NoError(t, err)
	requireDecs(t, []string{"0.1", "0.25", "-999"}, values)

	v, err := ReadValue(a, 1, grid.WithScale(packing.MustParse("4")))
	require.NoError(t, err)
	requireDecs(t, []string{"1"}, []*inf.Dec{v})

	ts, err := array.NewShort([]int16{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)

	series, err := ReadTimeStation(ts, 2)
	require.NoError(t, err)
	requireDecs(t, []string{"3", "6"}, series)

	_, err = ReadTimeStation(ts, 3)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

// writeTemperature creates a file with a packed Time-Y-X temperature grid, an
// unpacked elevation grid, station observations and station names.
func writeTemperature(t *testing.T, path string) {
	t.Helper()

	d := NewDefiner().
		AddUnlimitedDimension(store.DimTime).
		AddDimension(store.DimY, 2).
		AddDimension(store.DimX, 2).
		AddDimension(store.DimStations, 3).
		AddVariable("temp", format.TypeShort, store.DimTime, store.DimY, store.DimX).
		AddVariableAttribute("temp", store.AttrScaleFactor, float32(0.5)).
		AddVariableAttribute("temp", store.AttrAddOffset, float32(10)).
		AddVariableAttribute("temp", store.AttrFillValue, int16(-9999)).
		AddVariable("elev", format.TypeDouble, store.DimY, store.DimX).
		AddVariable("obs", format.TypeInt, store.DimTime, store.DimStations).
		AddVariableAttribute("obs", store.AttrFillValue, int32(-999)).
		AddVariable("levels", format.TypeFloat, store.DimStations).
		AddStringVariable("names", 6, store.DimStations)

	w, err := Create(path, d)
	require.NoError(t, err)

	tempFactor, err := packing.ParseFactor("0.5", "10", "-9999")
	require.NoError(t, err)
	require.NoError(t, WriteTYX(w, "temp", format.TypeShort, tempFactor, [][]*inf.Dec{
		decs("10.5", "11", "-9999", "12"),
		decs("13", "14.5", "15", "16"),
	}, 2, 2, 0))

	require.NoError(t, WriteYX(w, "elev", format.TypeDouble, packing.Identity(), decs("1", "2", "3", "4"), 2, 2))
	require.NoError(t, WriteOneDimension(w, "levels", format.TypeFloat, packing.Identity(), decs("0.25", "0.5", "1")))

	obs, err := array.NewInt([]int32{1, 2, 3, 4, 5, -999}, 2, 3)
	require.NoError(t, err)
	require.NoError(t, w.Write("obs", obs))

	names, err := grid.AssembleChars([]string{"a", "bb", "ccc"}, 6)
	require.NoError(t, err)
	require.NoError(t, w.Write("names", names))

	require.NoError(t, w.Close())
}

func openTemperature(t *testing.T, name string) *store.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	writeTemperature(t, path)

	st, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return st
}

func findVariable(t *testing.T, st *store.Store, name string) *store.Variable {
	t.Helper()

	v, err := st.FindVariable(name)
	require.NoError(t, err)

	return v
}

func TestReadVariableTYX_FactorFromAttributes(t *testing.T) {
	for _, name := range []string{"temp.nc", "temp.nc.zst"} {
		t.Run(name, func(t *testing.T) {
			st := openTemperature(t, name)
			temp := findVariable(t, st, "temp")

			grids, err := ReadVariableTYX(temp)
			require.NoError(t, err)
			require.Len(t, grids, 2)
			requireDecs(t, []string{"10.5", "11", "-9999", "12"}, grids[0])
			requireDecs(t, []string{"13", "14.5", "15", "16"}, grids[1])
		})
	}
}

func TestReadVariableSliceTYX(t *testing.T) {
	st := openTemperature(t, "temp.nc")
	temp := findVariable(t, st, "temp")

	step, err := ReadVariableSliceTYX(temp, 1, grid.WithInvertRow(true))
	require.NoError(t, err)
	requireDecs(t, []string{"15", "16", "13", "14.5"}, step)

	_, err = ReadVariableSliceTYX(temp, 2)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)

	// A non-default axis order reads the whole variable; the 2x2x2 extents keep
	// the call valid.
	step, err = ReadVariableSliceTYX(temp, 0, grid.WithAxisOrder(index.YXTime))
	require.NoError(t, err)
	require.Len(t, step, 4)
}

func TestReadVariableYX_OptionsOverrideAttributes(t *testing.T) {
	st := openTemperature(t, "temp.nc")
	elev := findVariable(t, st, "elev")

	values, err := ReadVariableYX(elev)
	require.NoError(t, err)
	requireDecs(t, []string{"1", "2", "3", "4"}, values)

	values, err = ReadVariableYX(elev, grid.WithScale(packing.MustParse("2")))
	require.NoError(t, err)
	requireDecs(t, []string{"2", "4", "6", "8"}, values)

	temp := findVariable(t, st, "temp")
	_, err = ReadVariableYX(temp)
	require.ErrorIs(t, err, errs.ErrRankMismatch)
}

func TestReadVariableTimeStation(t *testing.T) {
	st := openTemperature(t, "temp.nc")
	obs := findVariable(t, st, "obs")

	series, err := ReadVariableTimeStation(obs, 2)
	require.NoError(t, err)
	requireDecs(t, []string{"3", "-999"}, series)

	series, err = ReadVariableTimeStation(obs, 0, grid.WithOffset(packing.MustParse("1")))
	require.NoError(t, err)
	requireDecs(t, []string{"2", "5"}, series)

	_, err = ReadVariableTimeStation(obs, 3)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestReadVariableOneDimension_AndStrings(t *testing.T) {
	st := openTemperature(t, "temp.nc")

	levels, err := ReadVariableOneDimension(findVariable(t, st, "levels"))
	require.NoError(t, err)
	requireDecs(t, []string{"0.25", "0.5", "1"}, levels)

	names, err := ReadVariableStrings(findVariable(t, st, "names"))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "bb", "ccc"}, names)
}

func TestWriteYX_Errors(t *testing.T) {
	d := NewDefiner().
		AddDimension(store.DimY, 2).
		AddDimension(store.DimX, 2).
		AddVariable("elev", format.TypeShort, store.DimY, store.DimX)

	w, err := Create(filepath.Join(t.TempDir(), "bad.nc"), d)
	require.NoError(t, err)
	defer func() { require.NoError(t, w.Close()) }()

	err = WriteYX(w, "elev", format.TypeShort, packing.Identity(), decs("1", "2", "3"), 2, 2)
	require.ErrorIs(t, err, errs.ErrSizeMismatch)

	err = WriteYX(w, "elev", format.TypeShort, packing.Factor{}, decs("1", "2", "3", "4"), 2, 2)
	require.ErrorIs(t, err, errs.ErrNilFactor)

	err = WriteYX(w, "elev", format.TypeDouble, packing.Identity(), decs("1", "2", "3", "4"), 2, 2)
	require.ErrorIs(t, err, errs.ErrTypeMismatch)

	err = WriteYX(w, "missing", format.TypeShort, packing.Identity(), decs("1", "2", "3", "4"), 2, 2)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestWriteYX_FloatTargetsKeepFraction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t2m.nc")

	d := NewDefiner().
		AddDimension(store.DimY, 1).
		AddDimension(store.DimX, 2).
		AddVariable("t2m", format.TypeDouble, store.DimY, store.DimX).
		AddVariable("wind", format.TypeFloat, store.DimY, store.DimX).
		AddVariable("pressure", format.TypeDouble, store.DimY, store.DimX).
		AddVariableAttribute("pressure", store.AttrScaleFactor, 0.5).
		AddVariableAttribute("pressure", store.AttrAddOffset, 10.0).
		AddVariableAttribute("pressure", store.AttrFillValue, -9999.0)

	w, err := Create(path, d)
	require.NoError(t, err)

	require.NoError(t, WriteYX(w, "t2m", format.TypeDouble, packing.Identity(), decs("21.75", "-3.5"), 1, 2))
	require.NoError(t, WriteYX(w, "wind", format.TypeFloat, packing.Identity(), decs("0.1", "2.5"), 1, 2))

	pressureFactor, err := packing.ParseFactor("0.5", "10", "-9999")
	require.NoError(t, err)
	require.NoError(t, WriteYX(w, "pressure", format.TypeDouble, pressureFactor, decs("11.3", "-9999"), 1, 2))
	require.NoError(t, w.Close())

	st, err := Open(path)
	require.NoError(t, err)
	defer st.Close()

	values, err := ReadVariableYX(findVariable(t, st, "t2m"))
	require.NoError(t, err)
	requireDecs(t, []string{"21.75", "-3.5"}, values)

	values, err = ReadVariableYX(findVariable(t, st, "wind"))
	require.NoError(t, err)
	requireDecs(t, []string{"0.1", "2.5"}, values)

	raw, err := findVariable(t, st, "pressure").Read()
	require.NoError(t, err)
	require.Equal(t, []float64{2.6, -9999}, raw.Values())

	values, err = ReadVariableYX(findVariable(t, st, "pressure"))
	require.NoError(t, err)
	requireDecs(t, []string{"11.3", "-9999"}, values)
}
