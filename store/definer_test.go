package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/inf.v0"

	"github.com/arloliu/ncgrid/array"
	"github.com/arloliu/ncgrid/errs"
	"github.com/arloliu/ncgrid/format"
)

func TestDefiner_Errors(t *testing.T) {
	tests := []struct {
		name string
		d    *Definer
		want error
	}{
		{
			name: "duplicate dimension",
			d:    NewDefiner().AddDimension(DimX, 2).AddDimension(DimX, 3),
			want: errs.ErrAlreadyExists,
		},
		{
			name: "non-positive dimension",
			d:    NewDefiner().AddDimension(DimX, 0),
			want: errs.ErrInvalidShape,
		},
		{
			name: "second unlimited dimension",
			d:    NewDefiner().AddUnlimitedDimension(DimTime).AddUnlimitedDimension("run"),
			want: errs.ErrAlreadyExists,
		},
		{
			name: "unknown dimension",
			d:    NewDefiner().AddVariable("v", format.TypeInt, DimX),
			want: errs.ErrNotFound,
		},
		{
			name: "unlimited not outermost",
			d: NewDefiner().AddUnlimitedDimension(DimTime).AddDimension(DimX, 2).
				AddVariable("v", format.TypeInt, DimX, DimTime),
			want: errs.ErrInvalidShape,
		},
		{
			name: "duplicate variable",
			d:    NewDefiner().AddScalarVariable("v", format.TypeInt).AddScalarVariable("v", format.TypeShort),
			want: errs.ErrAlreadyExists,
		},
		{
			name: "invalid type",
			d:    NewDefiner().AddScalarVariable("v", format.TypeInvalid),
			want: errs.ErrUnsupportedType,
		},
		{
			name: "attribute on unknown variable",
			d:    NewDefiner().AddVariableAttribute("v", AttrUnits, "m"),
			want: errs.ErrNotFound,
		},
		{
			name: "duplicate global attribute",
			d:    NewDefiner().AddGlobalAttribute(AttrTitle, "a").AddGlobalAttribute(AttrTitle, "b"),
			want: errs.ErrAlreadyExists,
		},
		{
			name: "unsupported attribute value",
			d:    NewDefiner().AddGlobalAttribute(AttrTitle, struct{}{}),
			want: errs.ErrUnsupportedType,
		},
		{
			name: "rename missing attribute",
			d:    NewDefiner().RenameGlobalAttribute(AttrTitle, AttrSummary),
			want: errs.ErrNotFound,
		},
		{
			name: "delete missing attribute",
			d:    NewDefiner().AddScalarVariable("v", format.TypeInt).DeleteVariableAttribute("v", AttrUnits),
			want: errs.ErrNotFound,
		},
		{
			name: "rename variable onto existing",
			d: NewDefiner().AddScalarVariable("a", format.TypeInt).AddScalarVariable("b", format.TypeInt).
				RenameVariable("a", "b"),
			want: errs.ErrAlreadyExists,
		},
		{
			name: "rename missing dimension",
			d:    NewDefiner().RenameDimension(DimX, DimCol),
			want: errs.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.d.Err(), tt.want)

			_, err := tt.d.Create(filepath.Join(t.TempDir(), "out.nc"))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDefiner_StickyError(t *testing.T) {
	d := NewDefiner().
		AddVariable("v", format.TypeInt, DimX).
		AddDimension(DimX, 2)

	require.ErrorIs(t, d.Err(), errs.ErrNotFound)
	require.Empty(t, d.dims, "calls after the first error are ignored")
}

func TestDefiner_NotDefineModeAfterCreate(t *testing.T) {
	d := NewDefiner().AddDimension(DimX, 2).AddVariable("v", format.TypeInt, DimX)

	w, err := d.Create(filepath.Join(t.TempDir(), "out.nc"))
	require.NoError(t, err)
	defer w.Close()

	d.AddDimension(DimY, 3)
	require.ErrorIs(t, d.Err(), errs.ErrNotDefineMode)

	_, err = d.Create(filepath.Join(t.TempDir(), "again.nc"))
	require.ErrorIs(t, err, errs.ErrNotDefineMode)
}

func TestDefiner_RenameAndDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renamed.nc")

	w, err := NewDefiner().
		AddDimension("lng", 3).
		AddVariable("temp", format.TypeFloat, "lng").
		AddVariableAttribute("temp", "unit", "K").
		AddVariableAttribute("temp", AttrLongName, "temperature").
		AddVariableAttribute("temp", AttrMissingValue, inf.NewDec(-999, 0)).
		AddGlobalAttribute("ttl", "renamed").
		AddGlobalAttribute(AttrHistory, "draft").
		RenameDimension("lng", DimLon).
		RenameVariable("temp", "temperature").
		RenameVariableAttribute("temperature", "unit", AttrUnits).
		DeleteVariableAttribute("temperature", AttrLongName).
		RenameGlobalAttribute("ttl", AttrTitle).
		DeleteGlobalAttribute(AttrHistory).
		Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	st, err := Open(path)
	require.NoError(t, err)
	defer st.Close()

	require.True(t, st.HasDimension(DimLon))
	require.False(t, st.HasDimension("lng"))

	v, err := st.FindVariable("temperature")
	require.NoError(t, err)
	require.Equal(t, []string{DimLon}, v.Dimensions())

	attrs, err := v.Attributes()
	require.NoError(t, err)
	require.Len(t, attrs, 2)
	require.Equal(t, AttrUnits, attrs[0].Name())
	require.Equal(t, "K", attrs[0].StringValue())

	f, err := v.Factor(inf.NewDec(-1, 0))
	require.NoError(t, err)
	require.Equal(t, "-999", f.Missing.String())

	globals, err := st.GlobalAttributes()
	require.NoError(t, err)
	require.Len(t, globals, 1)
	require.Equal(t, AttrTitle, globals[0].Name())
}

func TestDefiner_StringVariable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.nc")

	d := NewDefiner().
		AddDimension(DimStations, 3).
		AddStringVariable(VarStationNames, 8, DimStations)
	require.NoError(t, d.Err())

	w, err := d.Create(path)
	require.NoError(t, err)

	names, err := array.Zeros(format.TypeChar, 3, 8)
	require.NoError(t, err)
	for i, s := range []string{"Taipei", "Hsinchu", "Kaohsiung"} {
		require.NoError(t, names.SetRow(i, s))
	}
	require.NoError(t, w.Write(VarStationNames, names))
	require.NoError(t, w.Close())

	st, err := Open(path)
	require.NoError(t, err)
	defer st.Close()

	require.Equal(t, 8, st.DimensionLength(VarStationNames+"_strlen"))

	v, err := st.FindVariable(VarStationNames)
	require.NoError(t, err)

	arr, err := v.Read()
	require.NoError(t, err)

	got, err := arr.Strings()
	require.NoError(t, err)
	require.Equal(t, []string{"Taipei", "Hsinchu", "Kaohsiun"}, got)
}

func TestWriter_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.nc")

	w, err := NewDefiner().
		AddUnlimitedDimension(DimTime).
		AddDimension(DimX, 2).
		AddVariable("v", format.TypeShort, DimX).
		AddVariable("series", format.TypeInt, DimTime, DimX).
		Create(path)
	require.NoError(t, err)

	short, err := array.NewShort([]int16{1, 2}, 2)
	require.NoError(t, err)

	require.ErrorIs(t, w.Write("missing", short), errs.ErrNotFound)
	require.ErrorIs(t, w.Write("v", nil), errs.ErrNilValue)

	ints, err := array.NewInt([]int32{1, 2}, 2)
	require.NoError(t, err)
	require.ErrorIs(t, w.Write("v", ints), errs.ErrTypeMismatch)

	flat, err := array.NewInt([]int32{1, 2}, 2)
	require.NoError(t, err)
	require.ErrorIs(t, w.Write("series", flat), errs.ErrRankMismatch)

	require.ErrorIs(t, w.Write("v", short, 1), errs.ErrIndexOutOfRange)

	// Record variables grow along the unlimited axis.
	row, err := array.NewInt([]int32{7, 8}, 1, 2)
	require.NoError(t, err)
	require.NoError(t, w.Write("series", row, 3, 0))

	require.NoError(t, w.Close())
	require.ErrorIs(t, w.Write("v", short), errs.ErrClosed)

	st, err := Open(path)
	require.NoError(t, err)
	defer st.Close()

	series, err := st.FindVariable("series")
	require.NoError(t, err)
	require.Equal(t, []int{4, 2}, series.Shape())

	arr, err := series.Read()
	require.NoError(t, err)
	fill := int32(-2147483647)
	require.Equal(t, []int32{fill, fill, fill, fill, fill, fill, 7, 8}, arr.Values())
}

func TestNewDefinerFrom_CopiesStructureAndData(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "rain.nc")
	writeSample(t, src)

	in, err := Open(src)
	require.NoError(t, err)
	defer in.Close()

	d, err := NewDefinerFrom(in)
	require.NoError(t, err)

	dst := filepath.Join(dir, "copy.nc.gz")
	w, err := d.Create(dst)
	require.NoError(t, err)

	vars, err := in.Variables()
	require.NoError(t, err)
	for _, v := range vars {
		arr, err := v.Read()
		require.NoError(t, err)
		require.NoError(t, w.Write(v.Name(), arr))
	}
	require.NoError(t, w.Close())

	out, err := Open(dst)
	require.NoError(t, err)
	defer out.Close()

	for _, v := range vars {
		want, err := v.Read()
		require.NoError(t, err)

		copied, err := out.FindVariable(v.Name())
		require.NoError(t, err)

		got, err := copied.Read()
		require.NoError(t, err)
		require.Equal(t, want.Values(), got.Values(), v.Name())
		require.Equal(t, want.Checksum(), got.Checksum(), v.Name())
	}

	title, err := out.FindGlobalAttribute(AttrTitle)
	require.NoError(t, err)
	require.Equal(t, "rainfall sample", title.StringValue())
}
