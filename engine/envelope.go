package engine

import (
	"encoding/binary"
	"fmt"
)

const (
	// MagicSkippable is the Zstandard skippable-frame magic number. Using
	// it means any conforming single-threaded Zstandard decoder skips our
	// envelope transparently, regardless of which codec actually produced
	// the payload inside it — the envelope is this engine's format, not
	// the wrapped codec's.
	MagicSkippable uint32 = 0x184D2A50

	// skippableLengthField is the fixed value of the skippable frame's own
	// "length of length" field: our envelope always announces a 4-byte
	// payload_length, so this is a constant, not a computed field.
	skippableLengthField uint32 = 4

	// EnvelopeSize is the fixed size, in bytes, of the header every
	// compressed frame is wrapped in.
	EnvelopeSize = 12
)

// WriteEnvelope writes the fixed 12-byte little-endian envelope header
// into dst[:12], recording a payload of payloadLen bytes.
func WriteEnvelope(dst []byte, payloadLen uint32) {
	_ = dst[EnvelopeSize-1] // bounds check hint
	binary.LittleEndian.PutUint32(dst[0:4], MagicSkippable)
	binary.LittleEndian.PutUint32(dst[4:8], skippableLengthField)
	binary.LittleEndian.PutUint32(dst[8:12], payloadLen)
}

// ParseEnvelope reads a 12-byte envelope header and returns the payload
// length it announces.
func ParseEnvelope(src []byte) (payloadLen uint32, err error) {
	if len(src) < EnvelopeSize {
		return 0, fmt.Errorf("engine: envelope header truncated: got %d bytes, want %d", len(src), EnvelopeSize)
	}

	magic := binary.LittleEndian.Uint32(src[0:4])
	lengthField := binary.LittleEndian.Uint32(src[4:8])

	if magic != MagicSkippable {
		return 0, fmt.Errorf("engine: bad envelope magic %#x, want %#x", magic, MagicSkippable)
	}
	if lengthField != skippableLengthField {
		return 0, fmt.Errorf("engine: bad envelope length field %d, want %d", lengthField, skippableLengthField)
	}

	return binary.LittleEndian.Uint32(src[8:12]), nil
}
