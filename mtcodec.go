// Package mtcodec provides a multi-threaded, streaming frame codec: a
// worker pool that reads a single input stream through host-supplied
// callbacks, splits it into independently compressible chunks, and
// re-serializes the compressed frames to a single output stream in the
// exact order they were read.
//
// # Basic usage
//
// Compressing an in-memory buffer into another:
//
//	c, err := mtcodec.NewCompressor(
//		engine.WithCodec(format.CodecZstd),
//		engine.WithThreadCount(4),
//		engine.WithLevel(9),
//	)
//	if err != nil {
//		// handle err
//	}
//	defer c.Close()
//
//	stats, err := c.Run(ctx, readFromSrc, writeToDst)
//
// Decompressing is symmetric, via NewDecompressor and the same Run
// signature; the frame boundaries the compressor wrote are recovered from
// each frame's own envelope header rather than passed back in.
//
// The concrete codec, the transport a ReadFunc/WriteFunc pair is backed
// by, and the CLI or SDK wrapper around either are all separate concerns;
// this package only owns the ordering and concurrency contract described
// above.
package mtcodec

import (
	"context"

	"github.com/mtcodec/mtcodec/engine"
)

// Re-exported so callers configuring a Compressor or Decompressor never
// need to import package engine directly for the common path.
type (
	// Option configures a Compressor or Decompressor.
	Option = engine.Option
	// Stats is a point-in-time snapshot of one run's counters.
	Stats = engine.Stats
	// ReadFunc supplies the next chunk of input, per engine.ReadFunc.
	ReadFunc = engine.ReadFunc
	// WriteFunc consumes one chunk of output, per engine.WriteFunc.
	WriteFunc = engine.WriteFunc
	// Buffer is the callback-facing view of one owned byte region.
	Buffer = engine.Buffer
)

// Compressor drives a worker pool that compresses one input stream into a
// sequence of enveloped frames, emitted in input order.
type Compressor struct {
	eng *engine.CompressionEngine
}

// NewCompressor builds a Compressor. Its worker goroutines are not started
// until Run is called.
func NewCompressor(opts ...Option) (*Compressor, error) {
	cfg, err := engine.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	eng, err := engine.NewCompressionEngine(cfg)
	if err != nil {
		return nil, err
	}

	return &Compressor{eng: eng}, nil
}

// Run compresses everything read reports until it signals EOF (an empty,
// nil-error read), blocking until every worker has finished or one has
// failed. It may be called only once per Compressor.
func (c *Compressor) Run(ctx context.Context, read ReadFunc, write WriteFunc) (Stats, error) {
	return c.eng.Run(ctx, read, write)
}

// Stats returns a point-in-time snapshot of the run's counters. Safe to
// call concurrently with Run.
func (c *Compressor) Stats() Stats {
	return c.eng.Stats()
}

// Close releases every worker's codec context. Idempotent.
func (c *Compressor) Close() error {
	return c.eng.Close()
}

// Decompressor drives a worker pool that reverses a Compressor's output:
// reading enveloped frames, decoding each independently, and emitting the
// decoded bytes in the same order the frames were compressed.
type Decompressor struct {
	eng *engine.DecompressionEngine
}

// NewDecompressor builds a Decompressor. Decoding a frame does not depend
// on the level it was compressed at, so the configured level is not used;
// it is still range-checked, and an out-of-range engine.WithLevel fails
// with errs.ErrBadParameter.
func NewDecompressor(opts ...Option) (*Decompressor, error) {
	cfg, err := engine.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	eng, err := engine.NewDecompressionEngine(cfg)
	if err != nil {
		return nil, err
	}

	return &Decompressor{eng: eng}, nil
}

// Run decompresses everything read reports until it signals EOF, blocking
// until every worker has finished or one has failed. It may be called only
// once per Decompressor.
func (d *Decompressor) Run(ctx context.Context, read ReadFunc, write WriteFunc) (Stats, error) {
	return d.eng.Run(ctx, read, write)
}

// Stats returns a point-in-time snapshot of the run's counters. Safe to
// call concurrently with Run.
func (d *Decompressor) Stats() Stats {
	return d.eng.Stats()
}

// Close releases every worker's codec context. Idempotent.
func (d *Decompressor) Close() error {
	return d.eng.Close()
}
