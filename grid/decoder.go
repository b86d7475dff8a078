package grid

import (
	"fmt"

	"gopkg.in/inf.v0"

	"github.com/arloliu/ncgrid/errs"
	"github.com/arloliu/ncgrid/index"
	"github.com/arloliu/ncgrid/internal/options"
	"github.com/arloliu/ncgrid/packing"
)

// Decoder decodes raw arrays into physical values.
//
// A Decoder is immutable after construction and safe for concurrent use.
type Decoder struct {
	factor    packing.Factor
	invertRow bool
	order     index.AxisOrder
	workers   int
}

// DecodeOption configures a Decoder.
type DecodeOption = options.Option[*Decoder]

// NewDecoder creates a decoder.
//
// Without options it decodes with the identity factor (scale 1, offset 0, missing
// -999), visits rows in storage order, expects Time-Y-X axis order and uses
// GOMAXPROCS workers.
//
// Parameters:
//   - opts: Decoder options
//
// Returns:
//   - *Decoder: The decoder
//   - error: An option error, or a factor validation error
func NewDecoder(opts ...DecodeOption) (*Decoder, error) {
	d, err := options.Build(defaultDecoder, opts...)
	if err != nil {
		return nil, err
	}

	if err := d.factor.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

func defaultDecoder() *Decoder {
	return &Decoder{
		factor: packing.Identity(),
		order:  index.TimeYX,
	}
}

// WithFactor sets the whole packing factor.
func WithFactor(f packing.Factor) DecodeOption {
	return options.NoError(func(d *Decoder) {
		d.factor = f
	})
}

// WithScale overrides the scale of the packing factor.
func WithScale(scale *inf.Dec) DecodeOption {
	return options.NoError(func(d *Decoder) {
		d.factor.Scale = scale
	})
}

// WithOffset overrides the offset of the packing factor.
func WithOffset(offset *inf.Dec) DecodeOption {
	return options.NoError(func(d *Decoder) {
		d.factor.Offset = offset
	})
}

// WithMissing overrides the missing sentinel of the packing factor.
func WithMissing(missing *inf.Dec) DecodeOption {
	return options.NoError(func(d *Decoder) {
		d.factor.Missing = missing
	})
}

// WithInvertRow makes Y-X decodes visit rows from the last to the first.
func WithInvertRow(invert bool) DecodeOption {
	return options.NoError(func(d *Decoder) {
		d.invertRow = invert
	})
}

// WithAxisOrder sets the storage order of the time, row and column axes of
// three dimensional arrays.
func WithAxisOrder(order index.AxisOrder) DecodeOption {
	return options.New(func(d *Decoder) error {
		if !order.Valid() {
			return fmt.Errorf("%w: %s", errs.ErrInvalidAxisOrder, order)
		}
		d.order = order

		return nil
	})
}

// WithWorkers sets the number of goroutines used for large decodes.
// A value <= 0 selects runtime.GOMAXPROCS(0).
func WithWorkers(n int) DecodeOption {
	return options.NoError(func(d *Decoder) {
		d.workers = n
	})
}

// Factor returns the decoder's packing factor.
func (d *Decoder) Factor() packing.Factor {
	return d.factor
}

// AxisOrder returns the storage order of three dimensional arrays.
func (d *Decoder) AxisOrder() index.AxisOrder {
	return d.order
}
