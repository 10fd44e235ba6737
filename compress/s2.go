package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/mtcodec/mtcodec/internal/pool"
)

// S2FrameCodec is the klauspost/compress/s2 adapter (Snappy-compatible,
// tuned for speed), wired in as an extra FrameCodec alongside Zstd and
// LZ4 since the engine is agnostic to which codec it drives.
type S2FrameCodec struct {
	level int
}

var _ FrameCodec = (*S2FrameCodec)(nil)

// NewS2FrameCodec creates an S2 frame codec. level selects the encode mode:
// 1 = Encode (fastest), 2 = EncodeBetter, 3 = EncodeBest.
func NewS2FrameCodec(level int) (*S2FrameCodec, error) {
	if level < 1 {
		level = 1
	}
	if level > 3 {
		level = 3
	}
	return &S2FrameCodec{level: level}, nil
}

// Reset is a no-op: s2's Encode/Decode free functions carry no state.
func (s *S2FrameCodec) Reset() {}

// Bound uses s2's own MaxEncodedLen.
func (s *S2FrameCodec) Bound(chunkSize int) int {
	return s2.MaxEncodedLen(chunkSize)
}

// CompressFrame appends one s2-encoded block to dst.
func (s *S2FrameCodec) CompressFrame(dst *pool.ByteBuffer, chunk []byte) error {
	start := dst.Len()
	need := s2.MaxEncodedLen(len(chunk))
	dst.Grow(need)
	dst.B = dst.B[:start+need]

	var out []byte
	switch s.level {
	case 1:
		out = s2.Encode(dst.B[start:], chunk)
	case 2:
		out = s2.EncodeBetter(dst.B[start:], chunk)
	default:
		out = s2.EncodeBest(dst.B[start:], chunk)
	}

	dst.SetLength(start + len(out))
	return nil
}

// DecompressFrame decodes one s2 block. s2's format embeds the
// decompressed length, so no adaptive buffer sizing is needed.
func (s *S2FrameCodec) DecompressFrame(dst *pool.ByteBuffer, payload []byte) error {
	n, err := s2.DecodedLen(payload)
	if err != nil {
		return fmt.Errorf("compress: s2 decoded length: %w", err)
	}

	start := dst.Len()
	dst.Grow(n)
	dst.B = dst.B[:start+n]

	out, err := s2.Decode(dst.B[start:], payload)
	if err != nil {
		return fmt.Errorf("compress: s2 decode: %w", err)
	}
	dst.SetLength(start + len(out))
	return nil
}

// Close releases no resources.
func (s *S2FrameCodec) Close() error { return nil }
