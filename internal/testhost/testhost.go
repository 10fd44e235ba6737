// Package testhost provides in-memory engine.ReadFunc/engine.WriteFunc
// implementations for exercising the engine and mtcodec packages without a
// real file or socket. Every type here is safe for concurrent use, since
// the engine calls read and write from arbitrary worker goroutines
// (serialized by its own mutexes, but never by the same goroutine twice in
// a row).
package testhost

import (
	"context"
	"fmt"
	"sync"

	"github.com/mtcodec/mtcodec/engine"
)

// Reader hands out data []byte one host-chosen slice at a time, honoring
// whatever maximum size the engine's Buffer offers. Once data is
// exhausted, it reports EOF forever after.
type Reader struct {
	mu   sync.Mutex
	data []byte
	pos  int

	// FailAfter, if > 0, makes the FailAfter'th call return Err (or a
	// generated error when Err is nil) instead of reading. Calls are
	// counted from 1.
	FailAfter int
	Err       error

	calls int
}

// NewReader wraps data for sequential reading.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Read implements engine.ReadFunc.
func (r *Reader) Read(_ context.Context, buf *engine.Buffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls++
	if r.FailAfter > 0 && r.calls == r.FailAfter {
		if r.Err == nil {
			return fmt.Errorf("testhost: simulated read failure on call %d", r.calls)
		}
		return r.Err
	}

	n := copy(buf.B, r.data[r.pos:])
	buf.B = buf.B[:n]
	r.pos += n
	return nil
}

// BytesRead returns how many bytes have been handed out so far.
func (r *Reader) BytesRead() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pos
}

// ChunkedReader is like Reader but never returns more than MaxChunk bytes
// per call even if the engine offered a larger buffer, to exercise a host
// whose natural I/O granularity is smaller than chunk_size.
type ChunkedReader struct {
	Reader
	MaxChunk int
}

// NewChunkedReader wraps data, capping every read at maxChunk bytes.
func NewChunkedReader(data []byte, maxChunk int) *ChunkedReader {
	return &ChunkedReader{Reader: Reader{data: data}, MaxChunk: maxChunk}
}

// Read implements engine.ReadFunc.
func (r *ChunkedReader) Read(ctx context.Context, buf *engine.Buffer) error {
	if r.MaxChunk > 0 && len(buf.B) > r.MaxChunk {
		buf.B = buf.B[:r.MaxChunk]
	}
	return r.Reader.Read(ctx, buf)
}

// Writer accumulates every write into Out, in the order it receives them
// (which, per the engine's own ordering guarantee, is always input order).
type Writer struct {
	mu  sync.Mutex
	Out []byte

	// FailAfter, if > 0, makes the FailAfter'th call return Err (or a
	// generated error when Err is nil) instead of accepting the write.
	// Calls are counted from 1.
	FailAfter int
	Err       error

	calls int
}

// Write implements engine.WriteFunc.
func (w *Writer) Write(_ context.Context, buf *engine.Buffer) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.calls++
	if w.FailAfter > 0 && w.calls == w.FailAfter {
		if w.Err == nil {
			return fmt.Errorf("testhost: simulated write failure on call %d", w.calls)
		}
		return w.Err
	}

	w.Out = append(w.Out, buf.B...)
	return nil
}

// Bytes returns everything written so far.
func (w *Writer) Bytes() []byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Out
}

// Calls reports how many times Write has been invoked.
func (w *Writer) Calls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls
}
