// Package errs defines the error taxonomy shared by the engine, compress,
// and root mtcodec packages. Every error a worker can return is one of the
// sentinels below, wrapped in an *Error so callers can recover the frame
// index and, for codec failures, the codec's native diagnostic string via
// errors.As instead of a global side channel.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Compare with errors.Is, never with ==.
var (
	ErrBadParameter   = errors.New("mtcodec: bad parameter")
	ErrOutOfMemory    = errors.New("mtcodec: out of memory")
	ErrReadFail       = errors.New("mtcodec: read callback failed")
	ErrWriteFail      = errors.New("mtcodec: write callback failed")
	ErrCompressionLib = errors.New("mtcodec: compression library error")
	ErrFrameCompress  = errors.New("mtcodec: frame codec did not consume all input")
	ErrClosed         = errors.New("mtcodec: engine already closed")
)

// Error wraps one of the sentinel Kinds above with the context needed to
// diagnose which frame and, for codec errors, which native error caused it.
//
// It never replaces the sentinel: errors.Is(err, ErrCompressionLib) still
// works because Error.Unwrap returns Kind.
type Error struct {
	Kind   error // one of the Err* sentinels
	Frame  int64 // frame index involved, -1 if not applicable
	Native string // codec's native error string, set only for ErrCompressionLib
	Err    error  // underlying error, if any (e.g. the host's read/write error)
}

func (e *Error) Error() string {
	switch {
	case e.Native != "":
		return fmt.Sprintf("%s (frame %d, native: %s)", e.Kind, e.Frame, e.Native)
	case e.Frame >= 0:
		return fmt.Sprintf("%s (frame %d): %v", e.Kind, e.Frame, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.Error()
	}
}

func (e *Error) Unwrap() error { return e.Kind }

// New builds an *Error for a failure that is not tied to a specific frame.
func New(kind error, err error) *Error {
	return &Error{Kind: kind, Frame: -1, Err: err}
}

// ForFrame builds an *Error tied to a specific frame index.
func ForFrame(kind error, frame int64, err error) *Error {
	return &Error{Kind: kind, Frame: frame, Err: err}
}

// Codec builds an *Error carrying a codec's native diagnostic string.
func Codec(frame int64, native string, err error) *Error {
	return &Error{Kind: ErrCompressionLib, Frame: frame, Native: native, Err: err}
}
