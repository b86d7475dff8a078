package pool

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "new buffer should have zero length")
	assert.Equal(t, 1024, bb.Cap(), "new buffer should have specified capacity")
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(EncodeBufferDefaultSize)

	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("hello"), bb.Bytes())

	originalCap := bb.Cap()
	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, originalCap, bb.Cap(), "Reset should preserve capacity")
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("no-op with enough capacity", func(t *testing.T) {
		bb := NewByteBuffer(64)
		bb.Grow(32)
		assert.Equal(t, 64, bb.Cap())
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(8)
		_, _ = bb.Write([]byte("abcdefgh"))
		bb.Grow(1)
		assert.Equal(t, 8+EncodeBufferDefaultSize, bb.Cap())
		assert.Equal(t, []byte("abcdefgh"), bb.Bytes(), "Grow must preserve contents")
	})

	t.Run("large request wins", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(EncodeBufferDefaultSize * 3)
		assert.GreaterOrEqual(t, bb.Cap(), EncodeBufferDefaultSize*3)
	})
}

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.ExtendOrGrow(10)
	assert.Equal(t, 10, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), 10)
}

func TestByteBuffer_SetLength(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.SetLength(8)
	assert.Equal(t, 8, bb.Len())

	assert.Panics(t, func() { bb.SetLength(-1) })
	assert.Panics(t, func() { bb.SetLength(17) })
}

func TestByteBuffer_WriteAtReadAt(t *testing.T) {
	bb := NewByteBuffer(0)

	n, err := bb.WriteAt([]byte{1, 2, 3}, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte{0, 0, 0, 0, 1, 2, 3}, bb.Bytes(), "gap must be zero-filled")

	_, err = bb.WriteAt([]byte{9, 9}, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 9, 9, 0, 1, 2, 3}, bb.Bytes())

	p := make([]byte, 3)
	n, err = bb.ReadAt(p, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte{1, 2, 3}, p)

	n, err = bb.ReadAt(p, 5)
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 2, n)

	_, err = bb.ReadAt(p, 100)
	require.ErrorIs(t, err, io.EOF)
}

func TestByteBuffer_WriteAtReusedCapacityIsZeroed(t *testing.T) {
	bb := NewByteBuffer(16)
	_, _ = bb.Write([]byte("garbage!"))
	bb.Reset()

	_, err := bb.WriteAt([]byte{7}, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 7}, bb.Bytes())
}

func TestByteBuffer_ReadFromWriteTo(t *testing.T) {
	src := bytes.Repeat([]byte("netcdf"), EncodeBufferDefaultSize)

	bb := NewByteBuffer(0)
	n, err := bb.ReadFrom(bytes.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, int64(len(src)), n)
	assert.Equal(t, src, bb.Bytes())

	var out bytes.Buffer
	m, err := bb.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(len(src)), m)
	assert.Equal(t, src, out.Bytes())
}

func TestByteBufferPool_GetPut(t *testing.T) {
	p := NewByteBufferPool(32, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	_, _ = bb.Write([]byte("data"))
	p.Put(bb)

	again := p.Get()
	require.NotNil(t, again)
	assert.Equal(t, 0, again.Len(), "pooled buffers come back empty")

	p.Put(nil)
	p.Put(NewByteBuffer(128)) // above threshold, discarded
}

func TestDefaultPools(t *testing.T) {
	enc := GetEncodeBuffer()
	require.NotNil(t, enc)
	PutEncodeBuffer(enc)

	file := GetFileBuffer()
	require.NotNil(t, file)
	assert.GreaterOrEqual(t, file.Cap(), 0)
	PutFileBuffer(file)
}

func TestGetFloat64Slice(t *testing.T) {
	s, cleanup := GetFloat64Slice(100)
	assert.Equal(t, 0, len(s))
	assert.GreaterOrEqual(t, cap(s), 100)

	s = append(s, 1, 2, 3)
	assert.Equal(t, []float64{1, 2, 3}, s)
	cleanup()

	s2, cleanup2 := GetFloat64Slice(10)
	defer cleanup2()
	assert.Equal(t, 0, len(s2))
}
