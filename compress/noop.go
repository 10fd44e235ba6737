package compress

import "github.com/mtcodec/mtcodec/internal/pool"

// NoOpFrameCodec bypasses compression entirely. Useful for isolating the
// engine's chunking, ordering, and envelope overhead from codec cost in
// benchmarks and for exercising the worker pool without pulling in a real
// compression library.
type NoOpFrameCodec struct{}

var _ FrameCodec = NoOpFrameCodec{}

// NewNoOpFrameCodec creates a no-op frame codec.
func NewNoOpFrameCodec() NoOpFrameCodec { return NoOpFrameCodec{} }

// Reset is a no-op.
func (NoOpFrameCodec) Reset() {}

// Bound returns chunkSize unchanged: the identity codec never expands.
func (NoOpFrameCodec) Bound(chunkSize int) int { return chunkSize }

// CompressFrame appends chunk to dst unchanged.
func (NoOpFrameCodec) CompressFrame(dst *pool.ByteBuffer, chunk []byte) error {
	dst.B = append(dst.B, chunk...)
	return nil
}

// DecompressFrame appends payload to dst unchanged.
func (NoOpFrameCodec) DecompressFrame(dst *pool.ByteBuffer, payload []byte) error {
	dst.B = append(dst.B, payload...)
	return nil
}

// Close releases no resources.
func (NoOpFrameCodec) Close() error { return nil }
