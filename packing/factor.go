package packing

import (
	"fmt"

	"gopkg.in/inf.v0"

	"github.com/arloliu/ncgrid/errs"
)

// Factor is the (scale, offset, missing) triple describing how a physical quantity is
// packed into raw storage values.
//
// The same Factor must be used to pack and to unpack a given quantity. A Factor is a
// plain value; its decimals are never modified by the methods of this package.
type Factor struct {
	Scale   *inf.Dec
	Offset  *inf.Dec
	Missing *inf.Dec
}

// RealScale is the number of decimal places kept by PackReal.
const RealScale inf.Scale = 17

// DefaultMissing returns the generic missing sentinel, -999.
func DefaultMissing() *inf.Dec { return inf.NewDec(-999, 0) }

// GridMissing returns the missing sentinel conventionally used for grid products, -9999.
func GridMissing() *inf.Dec { return inf.NewDec(-9999, 0) }

// ShortMissing returns the missing sentinel conventionally used for 16-bit packed data, -32768.
func ShortMissing() *inf.Dec { return inf.NewDec(-32768, 0) }

// Identity returns the factor with scale 1, offset 0 and the default missing value.
func Identity() Factor {
	return Factor{
		Scale:   inf.NewDec(1, 0),
		Offset:  inf.NewDec(0, 0),
		Missing: DefaultMissing(),
	}
}

// IdentityWithMissing returns scale 1 and offset 0 with the given missing value.
func IdentityWithMissing(missing *inf.Dec) Factor {
	f := Identity()
	f.Missing = missing

	return f
}

// NewFactor creates a validated factor.
//
// Parameters:
//   - scale: Multiplier applied to raw values (must be non-nil and non-zero)
//   - offset: Value added after scaling (must be non-nil)
//   - missing: Sentinel meaning "no data" (must be non-nil)
//
// Returns:
//   - Factor: The factor
//   - error: errs.ErrNilFactor naming the nil argument, or errs.ErrZeroScale
func NewFactor(scale, offset, missing *inf.Dec) (Factor, error) {
	f := Factor{Scale: scale, Offset: offset, Missing: missing}
	if err := f.Validate(); err != nil {
		return Factor{}, err
	}

	return f, nil
}

// ParseFactor creates a validated factor from decimal literals.
func ParseFactor(scale, offset, missing string) (Factor, error) {
	s, err := Parse(scale)
	if err != nil {
		return Factor{}, fmt.Errorf("scale: %w", err)
	}

	o, err := Parse(offset)
	if err != nil {
		return Factor{}, fmt.Errorf("offset: %w", err)
	}

	m, err := Parse(missing)
	if err != nil {
		return Factor{}, fmt.Errorf("missing: %w", err)
	}

	return NewFactor(s, o, m)
}

// Validate checks the factor invariants: every member is set and scale is not zero.
func (f Factor) Validate() error {
	switch {
	case f.Scale == nil:
		return fmt.Errorf("%w: scale", errs.ErrNilFactor)
	case f.Offset == nil:
		return fmt.Errorf("%w: offset", errs.ErrNilFactor)
	case f.Missing == nil:
		return fmt.Errorf("%w: missing", errs.ErrNilFactor)
	case f.Scale.Sign() == 0:
		return errs.ErrZeroScale
	}

	return nil
}

// IsMissing reports whether v equals the missing sentinel exactly.
func (f Factor) IsMissing(v *inf.Dec) bool {
	return v != nil && f.Missing != nil && v.Cmp(f.Missing) == 0
}

// Unpack converts a raw stored value to its physical value.
//
// If raw equals the missing sentinel (exact decimal comparison) a copy of the
// sentinel is returned; otherwise raw*scale + offset.
//
// Parameters:
//   - raw: The stored value
//
// Returns:
//   - *inf.Dec: A freshly allocated physical value
//   - error: Validation error for an invalid factor or errs.ErrNilValue
func (f Factor) Unpack(raw *inf.Dec) (*inf.Dec, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	if raw == nil {
		return nil, fmt.Errorf("%w: raw", errs.ErrNilValue)
	}

	return f.unpack(raw), nil
}

// Pack converts a physical value to its raw stored value.
//
// If physical equals the missing sentinel a copy of the sentinel is returned without
// applying scale or offset; otherwise (physical - offset) / scale is rounded half-up
// to an integer-valued decimal.
func (f Factor) Pack(physical *inf.Dec) (*inf.Dec, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	if physical == nil {
		return nil, fmt.Errorf("%w: physical", errs.ErrNilValue)
	}

	return f.pack(physical), nil
}

// PackReal converts a physical value to the raw value stored in a floating point
// variable. It is Pack without the rounding to an integer: the quotient keeps
// RealScale decimal places, rounded half-up.
func (f Factor) PackReal(physical *inf.Dec) (*inf.Dec, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	if physical == nil {
		return nil, fmt.Errorf("%w: physical", errs.ErrNilValue)
	}

	return f.packReal(physical), nil
}

// UnpackAll unpacks every value of raws into a new slice of the same order.
func (f Factor) UnpackAll(raws []*inf.Dec) ([]*inf.Dec, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	out := make([]*inf.Dec, len(raws))
	for i, raw := range raws {
		if raw == nil {
			return nil, fmt.Errorf("%w: raw value at index %d", errs.ErrNilValue, i)
		}
		out[i] = f.unpack(raw)
	}

	return out, nil
}

// PackAll packs every value of physicals into a new slice of the same order.
func (f Factor) PackAll(physicals []*inf.Dec) ([]*inf.Dec, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	out := make([]*inf.Dec, len(physicals))
	for i, v := range physicals {
		if v == nil {
			return nil, fmt.Errorf("%w: physical value at index %d", errs.ErrNilValue, i)
		}
		out[i] = f.pack(v)
	}

	return out, nil
}

// PackAllReal is the PackReal counterpart of PackAll.
func (f Factor) PackAllReal(physicals []*inf.Dec) ([]*inf.Dec, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	out := make([]*inf.Dec, len(physicals))
	for i, v := range physicals {
		if v == nil {
			return nil, fmt.Errorf("%w: physical value at index %d", errs.ErrNilValue, i)
		}
		out[i] = f.packReal(v)
	}

	return out, nil
}

// UnpackUnchecked is Unpack without validation. The caller must have validated f
// and must pass a non-nil raw; it exists for the grid decoder's inner loop.
func (f Factor) UnpackUnchecked(raw *inf.Dec) *inf.Dec {
	return f.unpack(raw)
}

func (f Factor) String() string {
	return fmt.Sprintf("scale=%s offset=%s missing=%s", decString(f.Scale), decString(f.Offset), decString(f.Missing))
}

func (f Factor) unpack(raw *inf.Dec) *inf.Dec {
	if raw.Cmp(f.Missing) == 0 {
		return new(inf.Dec).Set(f.Missing)
	}

	scaled := new(inf.Dec).Mul(raw, f.Scale)

	return new(inf.Dec).Add(scaled, f.Offset)
}

func (f Factor) pack(physical *inf.Dec) *inf.Dec {
	if physical.Cmp(f.Missing) == 0 {
		return new(inf.Dec).Set(f.Missing)
	}

	shifted := new(inf.Dec).Sub(physical, f.Offset)

	return new(inf.Dec).QuoRound(shifted, f.Scale, 0, inf.RoundHalfUp)
}

func (f Factor) packReal(physical *inf.Dec) *inf.Dec {
	if physical.Cmp(f.Missing) == 0 {
		return new(inf.Dec).Set(f.Missing)
	}

	shifted := new(inf.Dec).Sub(physical, f.Offset)

	return new(inf.Dec).QuoRound(shifted, f.Scale, RealScale, inf.RoundHalfUp)
}

func decString(d *inf.Dec) string {
	if d == nil {
		return "<nil>"
	}

	return d.String()
}

// Unpack converts raw to its physical value using the given factor members.
// See Factor.Unpack.
func Unpack(raw, scale, offset, missing *inf.Dec) (*inf.Dec, error) {
	return Factor{Scale: scale, Offset: offset, Missing: missing}.Unpack(raw)
}

// Pack converts physical to its raw value using the given factor members.
// See Factor.Pack.
func Pack(physical, scale, offset, missing *inf.Dec) (*inf.Dec, error) {
	return Factor{Scale: scale, Offset: offset, Missing: missing}.Pack(physical)
}
