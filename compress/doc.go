// Package compress provides whole-file codecs for compressed NetCDF files.
//
// NetCDF classic files are frequently distributed compressed (temperature.nc.gz,
// radar.nc.zst). The store decompresses such files into memory on open and
// compresses its output on close, using the codec selected by the file extension
// or an explicit format.CompressionType.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): data passes through unchanged.
//   - Zstd (format.CompressionZstd): best ratio for gridded data. Uses
//     github.com/valyala/gozstd when cgo is available and
//     github.com/klauspost/compress/zstd otherwise; both produce standard frames.
//   - S2 (format.CompressionS2): fast block compression from klauspost/compress.
//   - LZ4 (format.CompressionLZ4): LZ4 frame format from github.com/pierrec/lz4/v4.
//   - Gzip (format.CompressionGzip): klauspost/compress/gzip, interoperable with
//     the gzip tool.
//
// # Usage
//
//	ct := compress.DetectFromPath("obs.nc.zst") // format.CompressionZstd
//	codec, _ := compress.GetCodec(ct)
//	raw, err := codec.Decompress(fileBytes)
//
// All built-in codecs are stateless values and safe for concurrent use; internal
// encoders and decoders are pooled.
package compress
