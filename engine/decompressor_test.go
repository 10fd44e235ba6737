package engine_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mtcodec/mtcodec/engine"
	"github.com/mtcodec/mtcodec/errs"
	"github.com/mtcodec/mtcodec/internal/testhost"
)

func newDecompressor(t *testing.T, opts ...engine.Option) *engine.DecompressionEngine {
	t.Helper()
	cfg, err := engine.NewConfig(opts...)
	require.NoError(t, err)
	e, err := engine.NewDecompressionEngine(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, e.Close()) })
	return e
}

func compressAll(t *testing.T, data []byte, threads, chunkSize int) []byte {
	t.Helper()
	cfg, err := engine.NewConfig(engine.WithThreadCount(threads), engine.WithChunkSize(chunkSize))
	require.NoError(t, err)
	e, err := engine.NewCompressionEngine(cfg)
	require.NoError(t, err)
	defer e.Close()

	src := testhost.NewReader(data)
	dst := &testhost.Writer{}
	_, err = e.Run(context.Background(), src.Read, dst.Write)
	require.NoError(t, err)
	return dst.Bytes()
}

func TestDecompressionEngineRoundTrip(t *testing.T) {
	const chunkSize = 8192
	data := bytes.Repeat([]byte("round-trip-data-"), (chunkSize*10)/16)
	compressed := compressAll(t, data, 4, chunkSize)

	e := newDecompressor(t, engine.WithThreadCount(4), engine.WithChunkSize(chunkSize))
	src := testhost.NewReader(compressed)
	dst := &testhost.Writer{}

	stats, err := e.Run(context.Background(), src.Read, dst.Write)
	require.NoError(t, err)
	require.Equal(t, data, dst.Bytes())
	require.Equal(t, int64(len(data)), stats.OutSize)
}

func TestDecompressionEngineEmptyInput(t *testing.T) {
	e := newDecompressor(t, engine.WithThreadCount(4))
	src := testhost.NewReader(nil)
	dst := &testhost.Writer{}

	stats, err := e.Run(context.Background(), src.Read, dst.Write)
	require.NoError(t, err)
	require.Equal(t, int64(0), stats.FramesEmitted)
	require.Empty(t, dst.Bytes())
}

func TestDecompressionEngineRejectsCorruptEnvelope(t *testing.T) {
	e := newDecompressor(t, engine.WithThreadCount(1))
	bad := make([]byte, engine.EnvelopeSize)
	engine.WriteEnvelope(bad, 4)
	bad[0] ^= 0xFF // corrupt magic
	bad = append(bad, []byte("data")...)

	src := testhost.NewReader(bad)
	dst := &testhost.Writer{}

	_, err := e.Run(context.Background(), src.Read, dst.Write)
	require.ErrorIs(t, err, errs.ErrReadFail)
}

func TestDecompressionEngineCanceledContextTranslatesToReadFail(t *testing.T) {
	const chunkSize = 4096
	compressed := compressAll(t, bytes.Repeat([]byte("x"), chunkSize*4), 1, chunkSize)

	e := newDecompressor(t, engine.WithThreadCount(1), engine.WithChunkSize(chunkSize))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := testhost.NewReader(compressed)
	dst := &testhost.Writer{}

	_, err := e.Run(ctx, src.Read, dst.Write)
	require.ErrorIs(t, err, errs.ErrReadFail)
}

func TestDecompressionEngineRunAfterCloseReturnsErrClosed(t *testing.T) {
	cfg, err := engine.NewConfig(engine.WithThreadCount(1))
	require.NoError(t, err)
	e, err := engine.NewDecompressionEngine(cfg)
	require.NoError(t, err)
	require.NoError(t, e.Close())

	src := testhost.NewReader(nil)
	dst := &testhost.Writer{}
	_, err = e.Run(context.Background(), src.Read, dst.Write)
	require.ErrorIs(t, err, errs.ErrClosed)
}
