// Package pool provides the pooled byte buffer used by every output slot,
// so steady-state compression allocates nothing once the free list has
// stabilized at thread_count slots.
package pool

import "sync"

// SlotBufferDefaultSize is a starting size for callers that do not know
// the eventual frame size yet. The engine does not use it: it sizes each
// SlotBufferPool from its configured chunk_size.
const SlotBufferDefaultSize = 64 * 1024

// ByteBuffer is an owned, growable byte region. Unlike bytes.Buffer it
// exposes the raw backing slice so callers can write directly into it
// (e.g. a codec writing straight past the envelope header) without an
// intermediate copy.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the given starting capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the buffer's current content.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Reset empties the buffer while retaining its allocated capacity.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// Len returns the length of the buffer's content.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Cap returns the buffer's allocated capacity.
func (bb *ByteBuffer) Cap() int { return cap(bb.B) }

// SetLength sets the content length to n, panicking if n exceeds capacity.
// Used after a codec writes directly into bb.B[:cap(bb.B)] to record how
// many bytes it actually produced.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 || n > cap(bb.B) {
		panic("pool: SetLength: invalid length")
	}
	bb.B = bb.B[:n]
}

// Grow ensures the buffer can hold at least requiredBytes more bytes past
// its current length without reallocating, copying existing content if it
// must reallocate.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	if cap(bb.B)-len(bb.B) >= requiredBytes {
		return
	}

	newCap := cap(bb.B)*2 + requiredBytes
	newBuf := make([]byte, len(bb.B), newCap)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends data to the buffer, growing it as needed. It always
// returns len(data), nil, matching io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// SlotBufferPool pools ByteBuffers sized for one worker's output slots.
//
// Unlike a package-global sync.Pool shared across arbitrary goroutines,
// the engine gives its slot queues (engine.slotQueues) their own SlotBufferPool
// instance, so a slot's buffer is only ever reused within the free/busy/done
// cycle described in spec — never borrowed by an unrelated caller.
type SlotBufferPool struct {
	pool sync.Pool
	size int
}

// NewSlotBufferPool creates a pool that hands out buffers with at least
// size bytes of capacity.
func NewSlotBufferPool(size int) *SlotBufferPool {
	return &SlotBufferPool{
		pool: sync.Pool{New: func() any { return NewByteBuffer(size) }},
		size: size,
	}
}

// Get retrieves a ByteBuffer from the pool, allocating a new one sized to
// the pool's configured size if the pool is empty or returns something
// undersized.
func (p *SlotBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	if bb == nil || cap(bb.B) < p.size {
		bb = NewByteBuffer(p.size)
	}
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (p *SlotBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	bb.Reset()
	p.pool.Put(bb)
}
