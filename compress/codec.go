package compress

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arloliu/ncgrid/errs"
	"github.com/arloliu/ncgrid/format"
)

// Compressor compresses a complete file image.
type Compressor interface {
	// Compress compresses data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is owned by the caller (the no-op codec returns data itself)
	//   - Input slice is not modified
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a file image produced by the matching Compressor.
//
// Example:
//
//	decompressor := NewZstdCompressor()
//	file, err := decompressor.Decompress(payload)
//	if err != nil {
//	    return fmt.Errorf("decompression failed: %w", err)
//	}
type Decompressor interface {
	// Decompress decompresses data and returns the original bytes.
	//
	// Error conditions:
	//   - Returns error if data is corrupted or was produced by another algorithm
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// Stats describes a single compression run. The CLI reports it after re-encoding a
// file.
type Stats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of the input before compression
	OriginalSize int64

	// CompressedSize is the size of the output after compression
	CompressedSize int64
}

// CompressionRatio returns compressed size / original size, or 0 for empty input.
//
// Values less than 1.0 indicate successful compression.
func (s Stats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec creates a new Codec for the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, LZ4 or Gzip)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: errs.ErrUnsupportedCompression for an unknown type
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionGzip:
		return NewGzipCompressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s for %s", errs.ErrUnsupportedCompression, compressionType, target)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
	format.CompressionGzip: NewGzipCompressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

var extensions = map[string]format.CompressionType{
	".gz":   format.CompressionGzip,
	".gzip": format.CompressionGzip,
	".zst":  format.CompressionZstd,
	".zstd": format.CompressionZstd,
	".sz":   format.CompressionS2,
	".s2":   format.CompressionS2,
	".lz4":  format.CompressionLZ4,
}

// DetectFromPath returns the compression implied by the file extension of path,
// or format.CompressionNone when the extension names no compression.
//
// Example:
//
//	compress.DetectFromPath("rain.nc.gz") // format.CompressionGzip
//	compress.DetectFromPath("rain.nc")    // format.CompressionNone
func DetectFromPath(path string) format.CompressionType {
	if ct, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return ct
	}

	return format.CompressionNone
}

// Extension returns the canonical file extension for a compression type,
// including the leading dot, or "" for none.
func Extension(ct format.CompressionType) string {
	switch ct {
	case format.CompressionGzip:
		return ".gz"
	case format.CompressionZstd:
		return ".zst"
	case format.CompressionS2:
		return ".sz"
	case format.CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}
