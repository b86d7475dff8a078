package cli

import (
	"fmt"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/inf.v0"

	"github.com/arloliu/ncgrid"
	"github.com/arloliu/ncgrid/errs"
	"github.com/arloliu/ncgrid/format"
	"github.com/arloliu/ncgrid/grid"
	"github.com/arloliu/ncgrid/packing"
	"github.com/arloliu/ncgrid/store"
)

// decodeFlags are the flags shared by dump and stats.
type decodeFlags struct {
	time    int
	station int
	invert  bool
	raw     bool
	preset  string
	scale   string
	offset  string
	missing string

	flags *pflag.FlagSet
}

func (f *decodeFlags) register(flags *pflag.FlagSet) {
	f.flags = flags
	flags.IntVar(&f.time, "time", -1, "decode only this time step of a Time-Y-X variable")
	flags.IntVar(&f.station, "station", -1, "decode only this station of a Time-Station variable")
	flags.BoolVar(&f.invert, "invert", false, "visit grid rows from last to first")
	flags.BoolVar(&f.raw, "raw", false, "print stored values without scale and offset")
	flags.StringVar(&f.preset, "preset", "", "named packing preset from the configuration")
	flags.StringVar(&f.scale, "scale", "", "scale factor overriding the variable attributes")
	flags.StringVar(&f.offset, "offset", "", "offset overriding the variable attributes")
	flags.StringVar(&f.missing, "missing", "", "missing value overriding the variable attributes")
}

// block is a run of decoded values printed cols per line under an optional label.
type block struct {
	label  string
	cols   int
	values []*inf.Dec
}

// decoded is the result of decoding one variable.
type decoded struct {
	missing *inf.Dec
	blocks  []block
	strings []string
}

// values returns every decoded value in block order.
func (d decoded) values() []*inf.Dec {
	var all []*inf.Dec
	for _, b := range d.blocks {
		all = append(all, b.values...)
	}

	return all
}

// decodeOptions resolves the decoder options of v. Later sources win: variable
// attributes, a preset bound to the variable, --preset, --raw, then explicit
// --scale, --offset and --missing. Row inversion follows the same rule: an
// explicit --invert wins over the configuration.
func (a *app) decodeOptions(v *store.Variable, f *decodeFlags) ([]grid.DecodeOption, error) {
	factor, err := v.Factor(packing.DefaultMissing())
	if err != nil {
		return nil, err
	}

	bound, ok, err := a.cfg.PresetForVariable(v.Name())
	if err != nil {
		return nil, err
	}
	if ok {
		factor = bound
	}

	if f.preset != "" {
		factor, err = a.cfg.Preset(f.preset)
		if err != nil {
			return nil, err
		}
	}

	if f.raw {
		factor = packing.IdentityWithMissing(factor.Missing)
	}

	for _, o := range []struct {
		flag  string
		value string
		dst   **inf.Dec
	}{
		{"scale", f.scale, &factor.Scale},
		{"offset", f.offset, &factor.Offset},
		{"missing", f.missing, &factor.Missing},
	} {
		if o.value == "" {
			continue
		}
		d, err := packing.Parse(o.value)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", o.flag, err)
		}
		*o.dst = d
	}

	a.logger.Debug("decode factor",
		zap.String("variable", v.Name()),
		zap.Stringer("factor", factor),
		zap.Int("workers", a.workers))

	return []grid.DecodeOption{
		grid.WithFactor(factor),
		grid.WithInvertRow(a.invertRow(f)),
		grid.WithWorkers(a.workers),
	}, nil
}

// invertRow lets an explicit --invert override invert_row from the configuration.
func (a *app) invertRow(f *decodeFlags) bool {
	if f.flags != nil && f.flags.Changed("invert") {
		return f.invert
	}

	return a.cfg.InvertRow
}

// decodeVariable decodes v according to its rank and the --time and --station
// selections.
func (a *app) decodeVariable(v *store.Variable, f *decodeFlags) (decoded, error) {
	opts, err := a.decodeOptions(v, f)
	if err != nil {
		return decoded{}, err
	}

	d, err := grid.NewDecoder(opts...)
	if err != nil {
		return decoded{}, err
	}
	out := decoded{missing: d.Factor().Missing}

	shape := v.Shape()
	switch {
	case v.DataType() == format.TypeChar && len(shape) == 2:
		out.strings, err = ncgrid.ReadVariableStrings(v)

	case len(shape) == 0:
		arr, rerr := v.Read()
		if rerr != nil {
			return decoded{}, rerr
		}
		var value *inf.Dec
		value, err = d.Value(arr, 0)
		out.blocks = []block{{cols: 1, values: []*inf.Dec{value}}}

	case len(shape) == 1:
		var values []*inf.Dec
		values, err = ncgrid.ReadVariableOneDimension(v, opts...)
		out.blocks = []block{{cols: max(len(values), 1), values: values}}

	case len(shape) == 2 && f.station >= 0:
		var values []*inf.Dec
		values, err = ncgrid.ReadVariableTimeStation(v, f.station, opts...)
		out.blocks = []block{{label: fmt.Sprintf("station %d", f.station), cols: 1, values: values}}

	case len(shape) == 2:
		var values []*inf.Dec
		values, err = ncgrid.ReadVariableYX(v, opts...)
		out.blocks = []block{{cols: shape[1], values: values}}

	case len(shape) == 3 && f.time >= 0:
		var values []*inf.Dec
		values, err = ncgrid.ReadVariableSliceTYX(v, f.time, opts...)
		out.blocks = []block{{label: fmt.Sprintf("time %d", f.time), cols: shape[2], values: values}}

	case len(shape) == 3:
		var steps [][]*inf.Dec
		steps, err = ncgrid.ReadVariableTYX(v, opts...)
		for t, values := range steps {
			out.blocks = append(out.blocks, block{label: fmt.Sprintf("time %d", t), cols: shape[2], values: values})
		}

	default:
		err = fmt.Errorf("%w: variable %s has shape %v", errs.ErrRankMismatch, v.Name(), shape)
	}

	if err != nil {
		return decoded{}, err
	}

	return out, nil
}
