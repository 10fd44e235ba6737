package compress

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/mtcodec/mtcodec/internal/pool"
)

// ZstdFrameCodec is the pure-Go zstd adapter, backed by one dedicated
// *zstd.Encoder and *zstd.Decoder pair per worker.
//
// klauspost/compress/zstd's Encoder/Decoder are explicitly documented as
// safe and efficient to keep and reuse across calls once warmed up, which
// is exactly the "per-worker codec context, constructed once" contract
// the engine requires.
type ZstdFrameCodec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

var _ FrameCodec = (*ZstdFrameCodec)(nil)

// NewZstdFrameCodec creates a zstd frame codec at the given compression
// level (1-22).
func NewZstdFrameCodec(level int) (*ZstdFrameCodec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	if err != nil {
		return nil, fmt.Errorf("compress: create zstd encoder: %w", err)
	}

	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("compress: create zstd decoder: %w", err)
	}

	return &ZstdFrameCodec{enc: enc, dec: dec}, nil
}

// Reset is a no-op: EncodeAll/DecodeAll are stateless per call, so no
// mid-stream state needs to be cleared between frames.
func (z *ZstdFrameCodec) Reset() {}

// Bound implements the ZSTD_COMPRESSBOUND formula from the reference C
// library plus 64 bytes of headroom, since klauspost/compress/zstd does
// not export a bound directly.
func (z *ZstdFrameCodec) Bound(chunkSize int) int {
	return zstdCompressBound(chunkSize)
}

func zstdCompressBound(srcSize int) int {
	bound := srcSize + (srcSize >> 8)
	if srcSize < (128 << 10) {
		bound += ((128 << 10) - srcSize) >> 11
	}
	return bound + 64
}

// CompressFrame appends one independent zstd frame to dst.
func (z *ZstdFrameCodec) CompressFrame(dst *pool.ByteBuffer, chunk []byte) error {
	dst.B = z.enc.EncodeAll(chunk, dst.B)
	return nil
}

// DecompressFrame appends the decoded contents of one zstd frame to dst.
func (z *ZstdFrameCodec) DecompressFrame(dst *pool.ByteBuffer, payload []byte) error {
	out, err := z.dec.DecodeAll(payload, dst.B)
	if err != nil {
		return fmt.Errorf("compress: zstd decode: %w", err)
	}
	dst.B = out
	return nil
}

// Close releases the encoder and decoder.
func (z *ZstdFrameCodec) Close() error {
	z.enc.Close()
	z.dec.Close()
	return nil
}
