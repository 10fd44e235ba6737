package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/mtcodec/mtcodec/compress"
	"github.com/mtcodec/mtcodec/errs"
	"github.com/mtcodec/mtcodec/internal/pool"
)

// CompressionEngine drives thread_count workers that each read a private
// chunk, compress it into an owned output slot, and emit completed slots
// to the sink in strict input order.
type CompressionEngine struct {
	cfg    Config
	codecs []compress.FrameCodec

	readMu  sync.Mutex
	writeMu sync.Mutex

	queues *slotQueues
	stats  counters
	eof    atomic.Bool
	closed atomic.Bool

	read  ReadFunc
	write WriteFunc
}

// NewCompressionEngine constructs the worker pool's per-worker codec
// contexts and mutexes. It does not start any goroutines — those are
// spawned by Run, so construction can never fail because of thread
// startup.
func NewCompressionEngine(cfg Config) (*CompressionEngine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	codecs := make([]compress.FrameCodec, cfg.ThreadCount)
	for i := range codecs {
		c, err := compress.New(cfg.Codec, cfg.Level)
		if err != nil {
			for _, done := range codecs[:i] {
				done.Close()
			}
			return nil, errs.New(errs.ErrOutOfMemory, err)
		}
		codecs[i] = c
	}

	slotSize := codecs[0].Bound(cfg.ChunkSize) + EnvelopeSize

	return &CompressionEngine{
		cfg:    cfg,
		codecs: codecs,
		queues: newSlotQueues(pool.NewSlotBufferPool(slotSize)),
	}, nil
}

// Run spawns thread_count workers, joins all of them, and returns the
// first non-zero worker error along with the final Stats snapshot. Every
// worker is joined even after the first failure — no worker is ever
// abandoned. Returns ErrClosed if Close has already been called.
func (e *CompressionEngine) Run(ctx context.Context, read ReadFunc, write WriteFunc) (Stats, error) {
	if e.closed.Load() {
		return Stats{}, errs.New(errs.ErrClosed, nil)
	}

	e.read = read
	e.write = write

	var wg sync.WaitGroup
	var errOnce sync.Once
	var firstErr error

	wg.Add(e.cfg.ThreadCount)
	for i := 0; i < e.cfg.ThreadCount; i++ {
		go func(workerID int) {
			defer wg.Done()
			if err := e.workerLoop(ctx, workerID); err != nil {
				errOnce.Do(func() { firstErr = err })
			}
		}(i)
	}
	wg.Wait()

	e.writeMu.Lock()
	e.queues.drainAll()
	e.writeMu.Unlock()

	return e.stats.snapshot(), firstErr
}

// workerLoop runs one worker's read-compress-envelope-emit cycle until it
// observes EOF or hits an unrecoverable error.
func (e *CompressionEngine) workerLoop(ctx context.Context, workerID int) error {
	codec := e.codecs[workerID]
	chunk := make([]byte, e.cfg.ChunkSize)

	for {
		// Step 1: acquire an output slot before reading, so a worker
		// stalled on allocation can never starve another worker's read.
		e.writeMu.Lock()
		slot := e.queues.acquire()
		e.writeMu.Unlock()

		// Step 2: read one chunk under the read mutex.
		e.readMu.Lock()

		if ctx.Err() != nil {
			e.readMu.Unlock()
			e.writeMu.Lock()
			e.queues.releaseBusy(slot)
			e.writeMu.Unlock()
			return errs.New(errs.ErrReadFail, ctx.Err())
		}

		if e.eof.Load() {
			e.readMu.Unlock()
			e.writeMu.Lock()
			e.queues.releaseBusy(slot)
			e.writeMu.Unlock()
			return nil
		}

		buf := &Buffer{B: chunk[:cap(chunk)]}
		if err := e.read(ctx, buf); err != nil {
			e.readMu.Unlock()
			e.writeMu.Lock()
			e.queues.releaseBusy(slot)
			e.writeMu.Unlock()
			return errs.New(errs.ErrReadFail, err)
		}

		n := len(buf.B)
		if n == 0 {
			// Ordered EOF: sticky for every worker from here on.
			e.eof.Store(true)
			e.readMu.Unlock()
			e.writeMu.Lock()
			e.queues.releaseBusy(slot)
			e.writeMu.Unlock()
			return nil
		}

		frameIndex := e.stats.nextFrame.Add(1) - 1
		e.stats.inSize.Add(int64(n))
		e.readMu.Unlock()

		slot.FrameIndex = frameIndex

		// Step 3: compress into the slot's buffer, offset 12.
		codec.Reset()

		need := codec.Bound(n) + EnvelopeSize
		slot.Buf.Reset()
		slot.Buf.Grow(need)
		slot.Buf.SetLength(EnvelopeSize)

		if err := codec.CompressFrame(slot.Buf, chunk[:n]); err != nil {
			e.writeMu.Lock()
			e.queues.releaseBusy(slot)
			e.writeMu.Unlock()
			return errs.Codec(frameIndex, err.Error(), err)
		}

		// A codec that fully consumes its input either returns an error or
		// produces output within its own declared Bound(); the block-
		// oriented codec APIs this engine drives (EncodeAll/CompressBlock/
		// Encode) always do one or the other, so the only way to reach this
		// path is a codec that violated its own Bound() contract.
		payloadLen := slot.Buf.Len() - EnvelopeSize
		if payloadLen < 0 || payloadLen > codec.Bound(n) {
			e.writeMu.Lock()
			e.queues.releaseBusy(slot)
			e.writeMu.Unlock()
			return errs.ForFrame(errs.ErrFrameCompress, frameIndex, nil)
		}

		// Step 4: write the envelope.
		WriteEnvelope(slot.Buf.B[:EnvelopeSize], uint32(payloadLen))

		// Step 5: enqueue for emit.
		e.writeMu.Lock()
		e.queues.finish(slot)
		err := e.emitLocked(ctx)
		e.writeMu.Unlock()
		if err != nil {
			return err
		}
	}
}

// emitLocked repeatedly drains done while its head-of-line slot's frame
// index matches the next frame due to be emitted, writing each to the
// sink in turn. Must be called with writeMu held.
func (e *CompressionEngine) emitLocked(ctx context.Context) error {
	for {
		next := e.stats.nextEmit.Load()
		slot := e.queues.takeHeadOfLine(next)
		if slot == nil {
			return nil
		}

		if ctx.Err() != nil {
			e.queues.requeue(slot)
			return errs.New(errs.ErrWriteFail, ctx.Err())
		}

		buf := &Buffer{B: slot.Buf.Bytes()}
		if err := e.write(ctx, buf); err != nil {
			e.queues.requeue(slot)
			return errs.ForFrame(errs.ErrWriteFail, next, err)
		}

		e.stats.outSize.Add(int64(len(slot.Buf.Bytes())))
		e.stats.nextEmit.Add(1)
		e.queues.release(slot)
	}
}

// Stats returns a point-in-time snapshot of the engine's counters.
func (e *CompressionEngine) Stats() Stats {
	return e.stats.snapshot()
}

// Close releases every worker's codec context. It is idempotent and safe
// to call even if Run was never invoked or failed.
func (e *CompressionEngine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}

	var firstErr error
	for _, c := range e.codecs {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
