package array

import (
	"math"
	"unsafe"

	"github.com/arloliu/ncgrid/endian"
	"github.com/arloliu/ncgrid/format"
	"github.com/arloliu/ncgrid/internal/hash"
	"github.com/arloliu/ncgrid/internal/pool"
)

// AppendBinary appends the elements in NetCDF storage order (row-major, big-endian)
// to dst and returns the extended slice. On big-endian hosts the element memory is
// copied as is.
func (a *Array) AppendBinary(dst []byte) []byte {
	native := endian.IsNativeBigEndian()
	engine := endian.StorageEngine()

	switch a.typ {
	case format.TypeByte:
		for _, v := range a.i8 {
			dst = append(dst, byte(v))
		}
	case format.TypeChar:
		dst = append(dst, a.ch...)
	case format.TypeShort:
		if native {
			return append(dst, nativeBytes(a.i16)...)
		}
		for _, v := range a.i16 {
			dst = engine.AppendUint16(dst, uint16(v))
		}
	case format.TypeInt:
		if native {
			return append(dst, nativeBytes(a.i32)...)
		}
		for _, v := range a.i32 {
			dst = engine.AppendUint32(dst, uint32(v))
		}
	case format.TypeFloat:
		if native {
			return append(dst, nativeBytes(a.f32)...)
		}
		for _, v := range a.f32 {
			dst = engine.AppendUint32(dst, math.Float32bits(v))
		}
	case format.TypeDouble:
		if native {
			return append(dst, nativeBytes(a.f64)...)
		}
		for _, v := range a.f64 {
			dst = engine.AppendUint64(dst, math.Float64bits(v))
		}
	}

	return dst
}

// nativeBytes views the memory of values in host byte order.
func nativeBytes[T int16 | int32 | float32 | float64](values []T) []byte {
	if len(values) == 0 {
		return nil
	}

	var zero T

	return unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*int(unsafe.Sizeof(zero)))
}

// Checksum returns the xxHash64 digest of the array's element type, shape and
// storage-order contents. Two arrays have the same checksum when they hold the same
// elements in the same layout.
func (a *Array) Checksum() uint64 {
	buf := pool.GetEncodeBuffer()
	defer pool.PutEncodeBuffer(buf)

	engine := endian.StorageEngine()

	buf.Grow(1 + 4*len(a.shape) + a.Len()*a.typ.Size())
	buf.B = append(buf.B, byte(a.typ))
	for _, s := range a.shape {
		buf.B = engine.AppendUint32(buf.B, uint32(s))
	}
	buf.B = a.AppendBinary(buf.B)

	return hash.Checksum(buf.B)
}
