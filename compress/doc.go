// Package compress provides the per-worker streaming frame codec adapters
// the engine drives to turn one input chunk into one independent,
// self-contained compressed frame.
//
// # Architecture
//
// The engine depends only on the FrameCodec interface, never on a specific
// algorithm. One FrameCodec instance is constructed per worker at engine
// construction time and lives for that worker's entire lifetime — unlike a
// package-level sync.Pool shared across arbitrary goroutines, there is no
// reset contention because nothing else ever touches a worker's codec.
//
//	type FrameCodec interface {
//	    Reset()
//	    Bound(chunkSize int) int
//	    CompressFrame(dst *pool.ByteBuffer, chunk []byte) error
//	    DecompressFrame(dst *pool.ByteBuffer, payload []byte) error
//	    Close() error
//	}
//
// # Supported algorithms
//
//   - Zstd: github.com/klauspost/compress/zstd, pure Go, the default.
//   - ZstdCGO: github.com/valyala/gozstd, cgo bindings to the reference C
//     library, built only under -tags zstdcgo. This is the adapter that
//     actually exercises a ZSTD_initCStream-style per-frame reset.
//   - LZ4: github.com/pierrec/lz4/v4, block format with a one-byte
//     stored/compressed flag so incompressible chunks never lose data
//     (pierrec's CompressBlock returns n=0, not an error, when the input
//     would not shrink).
//   - S2: github.com/klauspost/compress/s2, Snappy-compatible, fast.
//   - None: identity passthrough, useful for isolating chunking/reordering
//     overhead from codec cost in benchmarks.
package compress
