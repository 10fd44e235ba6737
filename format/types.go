// Package format holds the small value types shared between the compress
// and engine packages, so neither has to import the other just to agree
// on which codec a frame was produced with.
package format

// CodecType identifies which frame codec adapter compressed a stream.
type CodecType uint8

const (
	CodecNone    CodecType = 0x1 // CodecNone bypasses compression entirely.
	CodecZstd    CodecType = 0x2 // CodecZstd is the pure-Go klauspost/compress/zstd adapter.
	CodecZstdCGO CodecType = 0x3 // CodecZstdCGO is the cgo valyala/gozstd adapter (build tag zstdcgo).
	CodecLZ4     CodecType = 0x4 // CodecLZ4 is the pierrec/lz4 block-format adapter.
	CodecS2      CodecType = 0x5 // CodecS2 is the klauspost/compress/s2 adapter.
)

func (c CodecType) String() string {
	switch c {
	case CodecNone:
		return "None"
	case CodecZstd:
		return "Zstd"
	case CodecZstdCGO:
		return "ZstdCGO"
	case CodecLZ4:
		return "LZ4"
	case CodecS2:
		return "S2"
	default:
		return "Unknown"
	}
}
