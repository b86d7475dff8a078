// Package format defines the enumerations shared by the array, store and compress packages.
package format

type (
	ElementType     uint8
	CompressionType uint8
)

const (
	TypeInvalid ElementType = 0x0
	TypeByte    ElementType = 0x1 // TypeByte represents 8-bit signed integers (NetCDF BYTE).
	TypeChar    ElementType = 0x2 // TypeChar represents 8-bit characters (NetCDF CHAR).
	TypeShort   ElementType = 0x3 // TypeShort represents 16-bit signed integers (NetCDF SHORT).
	TypeInt     ElementType = 0x4 // TypeInt represents 32-bit signed integers (NetCDF INT).
	TypeFloat   ElementType = 0x5 // TypeFloat represents IEEE 754 32-bit floats (NetCDF FLOAT).
	TypeDouble  ElementType = 0x6 // TypeDouble represents IEEE 754 64-bit floats (NetCDF DOUBLE).

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
	CompressionGzip CompressionType = 0x5 // CompressionGzip represents gzip compression.
)

// Size returns the storage size of one element in bytes, or 0 for an invalid type.
func (e ElementType) Size() int {
	switch e {
	case TypeByte, TypeChar:
		return 1
	case TypeShort:
		return 2
	case TypeInt, TypeFloat:
		return 4
	case TypeDouble:
		return 8
	default:
		return 0
	}
}

// IsNumeric reports whether the type holds numbers rather than characters.
func (e ElementType) IsNumeric() bool {
	switch e {
	case TypeByte, TypeShort, TypeInt, TypeFloat, TypeDouble:
		return true
	default:
		return false
	}
}

// IsIntegral reports whether the type holds integers.
func (e ElementType) IsIntegral() bool {
	switch e {
	case TypeByte, TypeShort, TypeInt:
		return true
	default:
		return false
	}
}

func (e ElementType) String() string {
	switch e {
	case TypeByte:
		return "Byte"
	case TypeChar:
		return "Char"
	case TypeShort:
		return "Short"
	case TypeInt:
		return "Int"
	case TypeFloat:
		return "Float"
	case TypeDouble:
		return "Double"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionGzip:
		return "Gzip"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a lower-case name ("none", "zstd", "s2", "lz4", "gzip")
// to its CompressionType. The second result is false for unknown names.
func ParseCompression(name string) (CompressionType, bool) {
	switch name {
	case "", "none":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	case "gzip", "gz":
		return CompressionGzip, true
	default:
		return 0, false
	}
}
