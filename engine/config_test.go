package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mtcodec/mtcodec/errs"
	"github.com/mtcodec/mtcodec/format"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)
	require.Equal(t, format.CodecZstd, cfg.Codec)
	require.Equal(t, 1, cfg.ThreadCount)
	require.Equal(t, 3, cfg.Level)
	require.Equal(t, DefaultChunkSize(3), cfg.ChunkSize)
}

func TestNewConfigRejectsBadThreadCount(t *testing.T) {
	_, err := NewConfig(WithThreadCount(0))
	require.ErrorIs(t, err, errs.ErrBadParameter)

	_, err = NewConfig(WithThreadCount(ThreadMax + 1))
	require.ErrorIs(t, err, errs.ErrBadParameter)
}

func TestNewConfigRejectsBadLevel(t *testing.T) {
	_, err := NewConfig(WithCodec(format.CodecZstd), WithLevel(0))
	require.ErrorIs(t, err, errs.ErrBadParameter)

	_, err = NewConfig(WithCodec(format.CodecZstd), WithLevel(23))
	require.ErrorIs(t, err, errs.ErrBadParameter)
}

func TestNewConfigRejectsNegativeChunkSize(t *testing.T) {
	_, err := NewConfig(WithChunkSize(-1))
	require.ErrorIs(t, err, errs.ErrBadParameter)
}

func TestNewConfigHonorsExplicitChunkSize(t *testing.T) {
	cfg, err := NewConfig(WithChunkSize(4096))
	require.NoError(t, err)
	require.Equal(t, 4096, cfg.ChunkSize)
}

func TestDefaultChunkSizeTable(t *testing.T) {
	require.Equal(t, 1<<20, DefaultChunkSize(1))
	require.Equal(t, 1<<20, DefaultChunkSize(2))
	require.Equal(t, 2<<20, DefaultChunkSize(3))
	require.Equal(t, 2<<20, DefaultChunkSize(7))
	require.Equal(t, 8<<20, DefaultChunkSize(8))
	require.Equal(t, 8<<20, DefaultChunkSize(14))
	require.Equal(t, 16<<20, DefaultChunkSize(15))
	require.Equal(t, 16<<20, DefaultChunkSize(22))
}
