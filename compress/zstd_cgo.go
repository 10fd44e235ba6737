//go:build zstdcgo

package compress

import (
	"bytes"
	"fmt"

	"github.com/valyala/gozstd"

	"github.com/mtcodec/mtcodec/internal/pool"
)

// ZstdCGOFrameCodec is the cgo zstd adapter, backed by the reference C
// library through github.com/valyala/gozstd. It is the adapter that
// actually performs a ZSTD_initCStream-style reset before every frame;
// the pure-Go ZstdFrameCodec sidesteps the issue entirely by using the
// library's stateless EncodeAll.
//
// Built only with -tags zstdcgo, since it requires cgo and libzstd.
type ZstdCGOFrameCodec struct {
	level int
	w     *gozstd.Writer
	r     *gozstd.Reader
}

var _ FrameCodec = (*ZstdCGOFrameCodec)(nil)

func newZstdCGOFrameCodec(level int) (*ZstdCGOFrameCodec, error) {
	return &ZstdCGOFrameCodec{
		level: level,
		w:     gozstd.NewWriterLevel(nil, level),
		r:     gozstd.NewReader(nil),
	}, nil
}

// Reset is a no-op here: the per-frame ZSTD_initCStream-equivalent reset
// happens in CompressFrame, since gozstd.Writer.Reset needs the
// destination writer at hand.
func (z *ZstdCGOFrameCodec) Reset() {}

// Bound delegates to the reference library's own ZSTD_compressBound.
func (z *ZstdCGOFrameCodec) Bound(chunkSize int) int {
	return gozstd.CompressBound(chunkSize)
}

// CompressFrame resets the underlying C stream to write into dst, then
// streams chunk through it and finalizes — one call, one independent frame.
func (z *ZstdCGOFrameCodec) CompressFrame(dst *pool.ByteBuffer, chunk []byte) error {
	z.w.Reset(dst, nil, z.level)

	if _, err := z.w.Write(chunk); err != nil {
		return fmt.Errorf("compress: zstd cgo write: %w", err)
	}
	if err := z.w.Close(); err != nil {
		return fmt.Errorf("compress: zstd cgo close: %w", err)
	}

	return nil
}

// DecompressFrame decodes one independent zstd frame, resetting z.r onto
// payload rather than calling the package-level one-shot Decompress, so
// the same C-side reader context is reused across every frame this codec
// decodes.
func (z *ZstdCGOFrameCodec) DecompressFrame(dst *pool.ByteBuffer, payload []byte) error {
	z.r.Reset(bytes.NewReader(payload), nil)

	if _, err := z.r.WriteTo(dst); err != nil {
		return fmt.Errorf("compress: zstd cgo decode: %w", err)
	}
	return nil
}

// Close releases the C-side writer and reader contexts.
func (z *ZstdCGOFrameCodec) Close() error {
	z.w.Release()
	z.r.Release()
	return nil
}
