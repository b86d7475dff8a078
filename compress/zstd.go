package compress

// ZstdCompressor provides Zstandard compression of whole NetCDF files.
//
// Gridded data with large uniform or missing-value regions typically compresses
// well with Zstd. The implementation is selected at build time: gozstd (cgo) or
// klauspost/compress/zstd (pure Go). Both read and write standard Zstandard frames,
// so files are interchangeable between builds.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
