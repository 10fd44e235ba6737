package engine

import "sync/atomic"

// Stats is a point-in-time snapshot of the engine's counters. Values
// observed mid-run may lag by up to one frame, since a snapshot can land
// between a worker finishing a frame and that frame's turn to be emitted.
type Stats struct {
	// InSize is the total bytes accepted from successful read callbacks.
	InSize int64
	// OutSize is the total bytes accepted by successful write callbacks.
	OutSize int64
	// FramesEmitted is the number of frames written to the sink so far.
	FramesEmitted int64
}

// counters holds the engine's four monotonic statistics as atomics so
// Stats() can be called from any goroutine without taking either mutex.
type counters struct {
	inSize    atomic.Int64
	outSize   atomic.Int64
	nextFrame atomic.Int64
	nextEmit  atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		InSize:        c.inSize.Load(),
		OutSize:       c.outSize.Load(),
		FramesEmitted: c.nextEmit.Load(),
	}
}
