// Package endian provides the byte order engines used to serialize array elements.
//
// NetCDF classic files store every element big-endian regardless of the host, so
// ncgrid's canonical element encoding (used for checksums and raw dumps) is
// big-endian too. Use StorageEngine to get it:
//
//	engine := endian.StorageEngine()
//	buf = engine.AppendUint32(buf, math.Float32bits(v))
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness returns the host's byte order.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeBigEndian reports whether the host stores integers big-endian, in which
// case storage-order buffers can be reinterpreted without byte swapping.
func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// StorageEngine returns the engine matching the NetCDF classic on-disk byte order.
func StorageEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
