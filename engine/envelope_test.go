package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	buf := make([]byte, EnvelopeSize)
	WriteEnvelope(buf, 12345)

	got, err := ParseEnvelope(buf)
	require.NoError(t, err)
	require.Equal(t, uint32(12345), got)
}

func TestEnvelopeUsesSkippableMagic(t *testing.T) {
	buf := make([]byte, EnvelopeSize)
	WriteEnvelope(buf, 0)

	// 0x184D2A50 little-endian.
	require.Equal(t, byte(0x50), buf[0])
	require.Equal(t, byte(0x2A), buf[1])
	require.Equal(t, byte(0x4D), buf[2])
	require.Equal(t, byte(0x18), buf[3])
}

func TestParseEnvelopeRejectsTruncated(t *testing.T) {
	_, err := ParseEnvelope(make([]byte, EnvelopeSize-1))
	require.Error(t, err)
}

func TestParseEnvelopeRejectsBadMagic(t *testing.T) {
	buf := make([]byte, EnvelopeSize)
	WriteEnvelope(buf, 0)
	buf[0] ^= 0xFF

	_, err := ParseEnvelope(buf)
	require.Error(t, err)
}

func TestParseEnvelopeRejectsBadLengthField(t *testing.T) {
	buf := make([]byte, EnvelopeSize)
	WriteEnvelope(buf, 0)
	buf[4] = 5

	_, err := ParseEnvelope(buf)
	require.Error(t, err)
}
