package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mtcodec/mtcodec/errs"
	"github.com/mtcodec/mtcodec/internal/pool"
)

func TestSlotQueuesAcquireAllocatesWhenFreeEmpty(t *testing.T) {
	q := newSlotQueues(pool.NewSlotBufferPool(64))
	s := q.acquire()
	require.NotNil(t, s)
	require.NotNil(t, s.Buf)
	require.Len(t, q.busy, 1)
	require.Empty(t, q.free)
}

func TestSlotQueuesFinishMovesBusyToDone(t *testing.T) {
	q := newSlotQueues(pool.NewSlotBufferPool(64))
	s := q.acquire()
	s.FrameIndex = 7
	q.finish(s)

	require.Empty(t, q.busy)
	require.Len(t, q.done, 1)
	require.Same(t, s, q.done[0])
}

func TestSlotQueuesTakeHeadOfLineOnlyMatchingIndex(t *testing.T) {
	q := newSlotQueues(pool.NewSlotBufferPool(64))
	s0 := q.acquire()
	s0.FrameIndex = 0
	q.finish(s0)

	s1 := q.acquire()
	s1.FrameIndex = 1
	q.finish(s1)

	require.Nil(t, q.takeHeadOfLine(2))
	got1 := q.takeHeadOfLine(1)
	require.Same(t, s1, got1)
	got0 := q.takeHeadOfLine(0)
	require.Same(t, s0, got0)
	require.Empty(t, q.done)
}

func TestSlotQueuesReleaseReturnsToFree(t *testing.T) {
	q := newSlotQueues(pool.NewSlotBufferPool(64))
	s := q.acquire()
	q.finish(s)
	q.takeHeadOfLine(s.FrameIndex)
	q.release(s)

	require.Len(t, q.free, 1)
	require.Empty(t, q.done)
	require.Equal(t, 0, s.Buf.Len())
}

func TestSlotQueuesDrainAllFreesEveryQueue(t *testing.T) {
	q := newSlotQueues(pool.NewSlotBufferPool(64))
	busy := q.acquire()
	toDone := q.acquire()
	q.finish(toDone)
	inFree := q.acquire()
	q.releaseBusy(inFree)

	require.NotEmpty(t, q.free)
	require.NotEmpty(t, q.busy)
	require.NotEmpty(t, q.done)

	q.drainAll()
	require.Empty(t, q.free)
	require.Empty(t, q.busy)
	require.Empty(t, q.done)
	_ = busy
}

func TestSlotQueuesRequeuePutsSlotBackOnBusy(t *testing.T) {
	q := newSlotQueues(pool.NewSlotBufferPool(64))
	s := q.acquire()
	s.FrameIndex = 0
	q.finish(s)

	got := q.takeHeadOfLine(0)
	require.Same(t, s, got)
	require.Empty(t, q.busy)
	require.Empty(t, q.done)

	q.requeue(got)
	require.Len(t, q.busy, 1)
	require.Same(t, s, q.busy[0])

	q.drainAll()
	require.Empty(t, q.busy)
}

func TestCompressionEngineEmitLockedTranslatesCanceledContext(t *testing.T) {
	cfg, err := NewConfig(WithThreadCount(1), WithChunkSize(64))
	require.NoError(t, err)
	e, err := NewCompressionEngine(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, e.Close()) })

	e.write = func(context.Context, *Buffer) error {
		t.Fatal("write must not be called once the context is already canceled")
		return nil
	}

	slot := e.queues.acquire()
	slot.FrameIndex = 0
	slot.Buf.Write([]byte("frame"))
	e.queues.finish(slot)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = e.emitLocked(ctx)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrWriteFail)

	// The slot popped off done by takeHeadOfLine must still be reclaimable.
	require.Len(t, e.queues.busy, 1)
}
