package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/ncgrid/errs"
	"github.com/arloliu/ncgrid/format"
)

// fakeNetCDF builds a payload resembling a classic file: a header followed by a
// large block of repeated fill values.
func fakeNetCDF() []byte {
	var buf bytes.Buffer
	buf.WriteString("CDF\x01")
	for i := 0; i < 4096; i++ {
		buf.Write([]byte{0xFF, 0xFF, 0xD8, 0xF1})
	}
	for i := 0; i < 1024; i++ {
		buf.WriteByte(byte(i % 251))
	}

	return buf.Bytes()
}

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
	format.CompressionGzip,
}

func TestCodecs_RoundTrip(t *testing.T) {
	data := fakeNetCDF()

	for _, ct := range allTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			if ct != format.CompressionNone {
				require.Less(t, len(compressed), len(data))
			}

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, data, restored)
		})
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	for _, ct := range allTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			out, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Empty(t, out)
		})
	}
}

func TestCodecs_CorruptInput(t *testing.T) {
	garbage := []byte("definitely not a compressed stream")

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionLZ4, format.CompressionGzip} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			_, err = codec.Decompress(garbage)
			require.Error(t, err)
		})
	}
}

func TestCodecs_ConcurrentUse(t *testing.T) {
	data := fakeNetCDF()
	codec := NewLZ4Compressor()

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			compressed, err := codec.Compress(data)
			if err != nil {
				done <- err
				return
			}
			restored, err := codec.Decompress(compressed)
			if err == nil && !bytes.Equal(restored, data) {
				err = errs.ErrReadFailed
			}
			done <- err
		}()
	}

	for i := 0; i < 8; i++ {
		require.NoError(t, <-done)
	}
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := CreateCodec(ct, "test file")
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := CreateCodec(format.CompressionType(0x7F), "test file")
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
	require.Contains(t, err.Error(), "test file")

	_, err = GetCodec(format.CompressionType(0x7F))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestDetectFromPath(t *testing.T) {
	tests := []struct {
		path string
		want format.CompressionType
	}{
		{"temperature.nc", format.CompressionNone},
		{"temperature.nc.gz", format.CompressionGzip},
		{"/data/RAIN.NC.GZ", format.CompressionGzip},
		{"radar.nc.zst", format.CompressionZstd},
		{"radar.nc.zstd", format.CompressionZstd},
		{"obs.nc.lz4", format.CompressionLZ4},
		{"obs.nc.sz", format.CompressionS2},
		{"noext", format.CompressionNone},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.want, DetectFromPath(tt.path))
		})
	}
}

func TestExtension(t *testing.T) {
	require.Equal(t, "", Extension(format.CompressionNone))

	for _, ct := range allTypes[1:] {
		ext := Extension(ct)
		require.NotEmpty(t, ext)
		require.Equal(t, ct, DetectFromPath("file.nc"+ext))
	}
}

func TestStats(t *testing.T) {
	s := Stats{Algorithm: format.CompressionZstd, OriginalSize: 1000, CompressedSize: 250}
	require.InDelta(t, 0.25, s.CompressionRatio(), 1e-9)
	require.InDelta(t, 75.0, s.SpaceSavings(), 1e-9)

	require.Zero(t, Stats{}.CompressionRatio())
}
