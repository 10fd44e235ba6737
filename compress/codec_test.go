package compress_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mtcodec/mtcodec/compress"
	"github.com/mtcodec/mtcodec/format"
	"github.com/mtcodec/mtcodec/internal/pool"
)

func newCodec(t *testing.T, kind format.CodecType, level int) compress.FrameCodec {
	t.Helper()
	c, err := compress.New(kind, level)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, c.Close()) })
	return c
}

func TestFrameCodecRoundTrip(t *testing.T) {
	kinds := []struct {
		kind  format.CodecType
		level int
	}{
		{format.CodecNone, 0},
		{format.CodecZstd, 3},
		{format.CodecZstd, 19},
		{format.CodecLZ4, 1},
		{format.CodecLZ4, 9},
		{format.CodecS2, 1},
		{format.CodecS2, 3},
	}

	inputs := [][]byte{
		{},
		[]byte("A"),
		make([]byte, 1<<20), // highly compressible: all zero
		[]byte("the quick brown fox jumps over the lazy dog, repeatedly, repeatedly, repeatedly"),
	}

	for _, k := range kinds {
		for i, in := range inputs {
			t.Run(k.kind.String(), func(t *testing.T) {
				codec := newCodec(t, k.kind, k.level)
				codec.Reset()

				dst := pool.NewByteBuffer(64)
				require.NoError(t, codec.CompressFrame(dst, in))

				out := pool.NewByteBuffer(64)
				require.NoError(t, codec.DecompressFrame(out, dst.Bytes()))

				require.Equal(t, in, out.Bytes(), "case %d: %q", i, in)
			})
		}
	}
}

func TestFrameCodecBoundNeverExceeded(t *testing.T) {
	codec := newCodec(t, format.CodecLZ4, 1)
	chunk := make([]byte, 4096)
	for i := range chunk {
		chunk[i] = byte(i)
	}

	dst := pool.NewByteBuffer(0)
	require.NoError(t, codec.CompressFrame(dst, chunk))
	require.LessOrEqual(t, dst.Len(), codec.Bound(len(chunk)))
}

func TestLZ4StoresIncompressibleChunkRatherThanDropIt(t *testing.T) {
	codec := newCodec(t, format.CodecLZ4, 1)

	// Random-ish, non-repeating bytes: lz4's CompressBlock legitimately
	// returns (0, nil) for input that would not shrink.
	chunk := make([]byte, 32)
	for i := range chunk {
		chunk[i] = byte(i*167 + 13)
	}

	dst := pool.NewByteBuffer(0)
	require.NoError(t, codec.CompressFrame(dst, chunk))
	require.NotEmpty(t, dst.Bytes())

	out := pool.NewByteBuffer(0)
	require.NoError(t, codec.DecompressFrame(out, dst.Bytes()))
	require.Equal(t, chunk, out.Bytes())
}

func TestNewUnsupportedCodec(t *testing.T) {
	_, err := compress.New(format.CodecType(0xFF), 1)
	require.Error(t, err)
}
