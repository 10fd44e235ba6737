package engine

import "github.com/mtcodec/mtcodec/internal/pool"

// Slot is one reusable output buffer plus the frame index it currently
// holds. A slot is exclusively owned by whichever of the three queues
// below currently lists it.
type Slot struct {
	FrameIndex int64
	Buf        *pool.ByteBuffer
}

// slotQueues holds the free/busy/done slices that track slot ownership as a
// frame moves from "not yet claimed" through "being compressed" to
// "waiting for its turn to be emitted".
//
// Every method here assumes the engine's writeMu is already held by the
// caller — these are not safe for concurrent use on their own. Unlike the
// reference design's intrusive pointer-linked lists, slots live in an
// owned pool and queue membership is tracked by which slice currently
// holds the slot's pointer; moving a slot between queues is an append plus
// a swap-remove, never pointer reparenting.
type slotQueues struct {
	free []*Slot
	busy []*Slot
	done []*Slot
	bufs *pool.SlotBufferPool
}

func newSlotQueues(bufs *pool.SlotBufferPool) *slotQueues {
	return &slotQueues{bufs: bufs}
}

// acquire pops the most recently freed slot (the last element of free),
// or allocates a new slot if free is empty,
// and moves it onto busy. A worker calls this before it reads its next
// chunk, so a worker stalled on allocation never blocks another worker's
// read.
func (q *slotQueues) acquire() *Slot {
	var s *Slot
	if n := len(q.free); n > 0 {
		s = q.free[n-1]
		q.free = q.free[:n-1]
	} else {
		s = &Slot{Buf: q.bufs.Get()}
	}
	q.busy = append(q.busy, s)
	return s
}

// releaseBusy moves a slot straight from busy back to free without ever
// reaching done — used on the EOF path and on any error after acquire.
func (q *slotQueues) releaseBusy(s *Slot) {
	q.removeBusy(s)
	s.Buf.Reset()
	q.free = append(q.free, s)
}

// finish moves a slot from busy to done, once its frame has been fully
// compressed and enveloped (or, for decompression, fully decoded) and is
// ready to be emitted once its turn comes up.
func (q *slotQueues) finish(s *Slot) {
	q.removeBusy(s)
	q.done = append(q.done, s)
}

func (q *slotQueues) removeBusy(s *Slot) {
	for i, b := range q.busy {
		if b == s {
			last := len(q.busy) - 1
			q.busy[i] = q.busy[last]
			q.busy = q.busy[:last]
			return
		}
	}
}

// takeHeadOfLine removes and returns the done slot whose FrameIndex equals
// frameIndex, or nil if no such slot is present yet.
func (q *slotQueues) takeHeadOfLine(frameIndex int64) *Slot {
	for i, d := range q.done {
		if d.FrameIndex == frameIndex {
			last := len(q.done) - 1
			q.done[i] = q.done[last]
			q.done = q.done[:last]
			return d
		}
	}
	return nil
}

// release returns a slot to free after its contents have been emitted.
func (q *slotQueues) release(s *Slot) {
	s.Buf.Reset()
	q.free = append(q.free, s)
}

// requeue puts a slot that emitLocked already popped off done back onto
// busy, when the write it was waiting on fails or the context is
// canceled before that write happens. The slot is not in any queue for
// the instant between takeHeadOfLine and this call; requeue closes that
// gap so drainAll still reclaims it once Run joins every worker.
func (q *slotQueues) requeue(s *Slot) {
	q.busy = append(q.busy, s)
}

// drainAll frees every slot's buffer regardless of which queue currently
// holds it, including anything still sitting in busy or done — a slot
// left mid-flight when a run fails is still an allocation that must come
// back to the pool. Run only calls this after every worker has been
// joined, so nothing can still be writing into a slot found here.
func (q *slotQueues) drainAll() {
	for _, s := range q.free {
		q.bufs.Put(s.Buf)
	}
	for _, s := range q.busy {
		q.bufs.Put(s.Buf)
	}
	for _, s := range q.done {
		q.bufs.Put(s.Buf)
	}
	q.free, q.busy, q.done = nil, nil, nil
}
