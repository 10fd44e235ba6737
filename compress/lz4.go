package compress

import (
	"fmt"

	"github.com/pierrec/lz4/v4"

	"github.com/mtcodec/mtcodec/internal/pool"
)

// lz4Block matches the CompressBlock method shared by lz4.Compressor and
// lz4.CompressorHC, so LZ4FrameCodec can pick the fast or high-compression
// path based on level without duplicating the frame logic.
type lz4Block interface {
	CompressBlock(src, dst []byte) (int, error)
}

// storedFlag marks a frame payload as raw, uncompressed bytes.
// compressedFlag marks it as an lz4 block.
//
// pierrec's CompressBlock returns (0, nil), not an error, when the block
// would not shrink; naively taking dst[:n] would silently drop the frame.
// This adapter instead falls back to storing the chunk raw, which is
// required for the round-trip to hold on every input, including
// incompressible ones.
const (
	storedFlag     = 0
	compressedFlag = 1
)

// LZ4FrameCodec is the pierrec/lz4/v4 block-format adapter. Level 1 uses
// the fast Compressor; levels 2-15 use CompressorHC for a better ratio.
type LZ4FrameCodec struct {
	fast *lz4.Compressor
	hc   *lz4.CompressorHC
	pick lz4Block
}

var _ FrameCodec = (*LZ4FrameCodec)(nil)

// hcLevels maps engine levels 2-15 onto pierrec's nine named
// high-compression levels (level 1 uses the fast compressor instead).
var hcLevels = [...]lz4.CompressionLevel{
	lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5,
	lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

// NewLZ4FrameCodec creates an LZ4 frame codec at the given level (1-15).
func NewLZ4FrameCodec(level int) (*LZ4FrameCodec, error) {
	c := &LZ4FrameCodec{}
	if level <= 1 {
		c.fast = &lz4.Compressor{}
		c.pick = c.fast
		return c, nil
	}

	idx := (level - 2) * len(hcLevels) / 14
	if idx >= len(hcLevels) {
		idx = len(hcLevels) - 1
	}
	c.hc = &lz4.CompressorHC{Level: hcLevels[idx]}
	c.pick = c.hc
	return c, nil
}

// Reset is a no-op: pierrec's compressors carry no cross-call state that
// needs clearing between independent frames.
func (l *LZ4FrameCodec) Reset() {}

// Bound accounts for the one-byte stored/compressed flag this adapter
// prepends to every frame.
func (l *LZ4FrameCodec) Bound(chunkSize int) int {
	return lz4.CompressBlockBound(chunkSize) + 1
}

// CompressFrame appends one flag byte followed by either the lz4 block or,
// if the block would not have shrunk, the raw chunk.
func (l *LZ4FrameCodec) CompressFrame(dst *pool.ByteBuffer, chunk []byte) error {
	need := lz4.CompressBlockBound(len(chunk))
	start := dst.Len()
	dst.Grow(1 + need)

	dst.B = dst.B[:start+1+need]
	n, err := l.pick.CompressBlock(chunk, dst.B[start+1:])
	if err != nil {
		return fmt.Errorf("compress: lz4 compress block: %w", err)
	}

	if n == 0 {
		dst.B[start] = storedFlag
		copy(dst.B[start+1:start+1+len(chunk)], chunk)
		dst.SetLength(start + 1 + len(chunk))
		return nil
	}

	dst.B[start] = compressedFlag
	dst.SetLength(start + 1 + n)
	return nil
}

// DecompressFrame reads the stored/compressed flag and either copies the
// raw payload or inflates it, doubling the output buffer guess on
// ErrInvalidSourceShortBuffer up to a 128MiB safety limit.
func (l *LZ4FrameCodec) DecompressFrame(dst *pool.ByteBuffer, payload []byte) error {
	if len(payload) == 0 {
		return fmt.Errorf("compress: lz4 frame missing flag byte")
	}

	flag, body := payload[0], payload[1:]
	if flag == storedFlag {
		dst.B = append(dst.B, body...)
		return nil
	}

	const maxSize = 128 << 20
	bufSize := len(body) * 4
	if bufSize == 0 {
		bufSize = 64
	}

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(body, buf)
		if err == nil {
			dst.B = append(dst.B, buf[:n]...)
			return nil
		}
		if err != lz4.ErrInvalidSourceShortBuffer || bufSize >= maxSize {
			return fmt.Errorf("compress: lz4 decompress block: %w", err)
		}
		bufSize *= 2
	}

	return lz4.ErrInvalidSourceShortBuffer
}

// Close releases no resources; pierrec's block compressors hold none.
func (l *LZ4FrameCodec) Close() error { return nil }
