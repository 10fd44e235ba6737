package engine

import "context"

// Buffer is the callback-facing view of one owned byte region. On entry to
// a ReadFunc, len(B) is the maximum number of bytes the callback may
// produce; the callback must reslice B down to the number of bytes it
// actually read (0 means EOF). On entry to a WriteFunc, B holds exactly
// the bytes the callback must consume in full.
type Buffer struct {
	B []byte
}

// ReadFunc supplies the next chunk of input. Returning a nil error with
// len(buf.B) == 0 signals EOF; once any worker observes EOF, the engine
// never issues another read to any worker (spec's "EOF stickiness").
// Returning a non-nil error is the Go idiom for the reference contract's
// read() returning -1, and fails the run with ErrReadFail.
type ReadFunc func(ctx context.Context, buf *Buffer) error

// WriteFunc consumes exactly len(buf.B) bytes. Returning a non-nil error
// is the Go idiom for the reference contract's write() returning -1, and
// fails the run with ErrWriteFail. A WriteFunc that consumes fewer bytes
// than were supplied must report that as an error: the engine sees only
// the returned error, so a partial write returned as nil goes undetected.
// Each invocation is treated as all-or-fail: the core never retries a
// partial write.
type WriteFunc func(ctx context.Context, buf *Buffer) error
