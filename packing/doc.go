// Package packing implements the scale/offset/missing-value packing convention used
// to store real-valued geophysical quantities as compact integers.
//
// A physical value v is stored as the raw value r through a Factor (scale, offset, missing):
//
//	r = v == missing ? missing : round_half_up((v - offset) / scale)
//	v = r == missing ? missing : r*scale + offset
//
// All arithmetic uses exact decimals (gopkg.in/inf.v0), never IEEE doubles, so repeated
// pack/unpack round trips do not drift and the missing sentinel is matched by exact
// decimal equality rather than an epsilon comparison.
//
// # Basic Usage
//
//	factor, _ := packing.ParseFactor("0.01", "3", "-9999")
//
//	raw, _ := factor.Pack(packing.MustParse("20"))   // 1700
//	phys, _ := factor.Unpack(raw)                     // 20.00
//
// # Defaults and Presets
//
// Identity returns scale 1, offset 0 and the default missing value -999. Other
// sentinels commonly used for grid data are available through GridMissing (-9999)
// and ShortMissing (-32768). Presets are returned as fresh values so callers can
// never mutate shared state; variable-level reads should prefer the variable's own
// _FillValue or missing_value attribute.
package packing
