package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/mtcodec/mtcodec/compress"
	"github.com/mtcodec/mtcodec/errs"
	"github.com/mtcodec/mtcodec/internal/pool"
)

// DecompressionEngine is structurally identical to CompressionEngine: the
// same two-mutex, three-queue, in-order-emit design, with three
// differences — frames are read as a known-size envelope plus payload
// rather than a raw chunk, the codec runs in decode mode, and there is no
// compression level.
type DecompressionEngine struct {
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

// NewDecompressionEngine constructs the per-worker decode contexts. Level
// plays no part in decoding, but cfg.Level is still range-checked by
// validate like any other field.
func NewDecompressionEngine(cfg Config) (*DecompressionEngine, error) {
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

	return &DecompressionEngine{
		cfg:    cfg,
		codecs: codecs,
		queues: newSlotQueues(pool.NewSlotBufferPool(cfg.ChunkSize)),
	}, nil
}

// Run spawns thread_count workers and joins all of them, exactly like
// CompressionEngine.Run.
func (e *DecompressionEngine) Run(ctx context.Context, read ReadFunc, write WriteFunc) (Stats, error) {
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

// workerLoop mirrors CompressionEngine.workerLoop, but the unit of "one
// read" is an envelope header followed by exactly the payload it announces.
// The core owns framing rather than pushing it onto the host, so both
// engines present the host with the same "read a bounded amount, tell me
// how much you got" shape.
func (e *DecompressionEngine) workerLoop(ctx context.Context, workerID int) error {
	codec := e.codecs[workerID]
	header := make([]byte, EnvelopeSize)
	payload := make([]byte, e.cfg.ChunkSize+EnvelopeSize)

	for {
		e.writeMu.Lock()
		slot := e.queues.acquire()
		e.writeMu.Unlock()

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

		frameIndex, payloadBytes, err := e.readFrame(ctx, header, &payload)
		if err != nil {
			e.readMu.Unlock()
			e.writeMu.Lock()
			e.queues.releaseBusy(slot)
			e.writeMu.Unlock()
			return err
		}
		if payloadBytes == nil {
			// Ordered EOF.
			e.eof.Store(true)
			e.readMu.Unlock()
			e.writeMu.Lock()
			e.queues.releaseBusy(slot)
			e.writeMu.Unlock()
			return nil
		}

		e.stats.inSize.Add(int64(EnvelopeSize + len(payloadBytes)))
		e.readMu.Unlock()

		slot.FrameIndex = frameIndex

		slot.Buf.Reset()
		if err := codec.DecompressFrame(slot.Buf, payloadBytes); err != nil {
			e.writeMu.Lock()
			e.queues.releaseBusy(slot)
			e.writeMu.Unlock()
			return errs.Codec(frameIndex, err.Error(), err)
		}

		e.writeMu.Lock()
		e.queues.finish(slot)
		emitErr := e.emitLocked(ctx)
		e.writeMu.Unlock()
		if emitErr != nil {
			return emitErr
		}
	}
}

// readFrame must be called with readMu held. It returns (0, nil, nil) on
// EOF, without assigning a frame index, or the frame's index and payload
// slice (valid until the next call) otherwise. *payload is grown in place if a frame's announced length
// exceeds its current capacity.
func (e *DecompressionEngine) readFrame(ctx context.Context, header []byte, payload *[]byte) (int64, []byte, error) {
	headerBuf := &Buffer{B: header[:EnvelopeSize]}
	if err := e.read(ctx, headerBuf); err != nil {
		return 0, nil, errs.New(errs.ErrReadFail, err)
	}

	if len(headerBuf.B) == 0 {
		return 0, nil, nil
	}
	if len(headerBuf.B) != EnvelopeSize {
		return 0, nil, errs.New(errs.ErrReadFail, fmt.Errorf("engine: truncated envelope header: got %d bytes, want %d", len(headerBuf.B), EnvelopeSize))
	}

	payloadLen, err := ParseEnvelope(headerBuf.B)
	if err != nil {
		return 0, nil, errs.New(errs.ErrReadFail, err)
	}

	if int(payloadLen) > cap(*payload) {
		*payload = make([]byte, payloadLen)
	}
	payloadBuf := &Buffer{B: (*payload)[:payloadLen]}
	if err := e.read(ctx, payloadBuf); err != nil {
		return 0, nil, errs.New(errs.ErrReadFail, err)
	}
	if uint32(len(payloadBuf.B)) != payloadLen {
		return 0, nil, errs.New(errs.ErrReadFail, fmt.Errorf("engine: truncated frame payload: got %d bytes, want %d", len(payloadBuf.B), payloadLen))
	}

	frameIndex := e.stats.nextFrame.Add(1) - 1
	return frameIndex, payloadBuf.B, nil
}

// emitLocked drains done in ascending frame_index order, exactly like
// CompressionEngine.emitLocked but writing raw decompressed bytes rather
// than enveloped frames.
func (e *DecompressionEngine) emitLocked(ctx context.Context) error {
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
func (e *DecompressionEngine) Stats() Stats {
	return e.stats.snapshot()
}

// Close releases every worker's codec context. Idempotent.
func (e *DecompressionEngine) Close() error {
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
