package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFingerprintDeterministic(t *testing.T) {
	a := NewFingerprint()
	a.Write([]byte("hello "))
	a.Write([]byte("world"))

	b := NewFingerprint()
	b.Write([]byte("hello world"))

	require.Equal(t, a.Sum64(), b.Sum64(), "fingerprint must not depend on write chunking")
}

func TestFingerprintOfMatchesRunning(t *testing.T) {
	data := []byte("frame payload bytes")

	f := NewFingerprint()
	f.Write(data)

	require.Equal(t, Of(data), f.Sum64())
}
