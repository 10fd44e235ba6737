package compress

import (
	"fmt"

	"github.com/mtcodec/mtcodec/format"
	"github.com/mtcodec/mtcodec/internal/pool"
)

// FrameCodec is a stateful, worker-private wrapper around a single-frame
// codec. Reset prepares the codec to produce the next independent frame;
// it is called once per chunk, before CompressFrame.
//
// Implementations are NOT expected to be safe for concurrent use: the
// engine guarantees exactly one goroutine owns a given FrameCodec for its
// entire lifetime.
type FrameCodec interface {
	// Reset prepares the codec for the next independent frame.
	Reset()

	// Bound returns the maximum number of bytes CompressFrame can append
	// for an input chunk of the given size.
	Bound(chunkSize int) int

	// CompressFrame compresses chunk and appends the result to dst.
	// It must produce exactly one independent, self-contained frame.
	CompressFrame(dst *pool.ByteBuffer, chunk []byte) error

	// DecompressFrame decompresses payload (one previously-compressed
	// frame) and appends the result to dst.
	DecompressFrame(dst *pool.ByteBuffer, payload []byte) error

	// Close releases any resources held by the codec (e.g. a cgo context).
	Close() error
}

// New constructs a FrameCodec for the given algorithm and compression
// level. level is ignored by CodecNone and by decompress-only callers that
// pass 0.
func New(kind format.CodecType, level int) (FrameCodec, error) {
	switch kind {
	case format.CodecNone:
		return NewNoOpFrameCodec(), nil
	case format.CodecZstd:
		return NewZstdFrameCodec(level)
	case format.CodecZstdCGO:
		return newZstdCGOFrameCodec(level)
	case format.CodecLZ4:
		return NewLZ4FrameCodec(level)
	case format.CodecS2:
		return NewS2FrameCodec(level)
	default:
		return nil, fmt.Errorf("compress: unsupported codec: %s", kind)
	}
}

// LevelMax returns the highest valid compression level for kind, or 0 for
// codecs that have no meaningful level (CodecNone).
func LevelMax(kind format.CodecType) int {
	switch kind {
	case format.CodecZstd, format.CodecZstdCGO:
		return 22
	case format.CodecLZ4:
		return 15
	case format.CodecS2:
		return 3 // Encode / EncodeBetter / EncodeBest
	default:
		return 0
	}
}
