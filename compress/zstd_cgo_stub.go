//go:build !zstdcgo

package compress

import "fmt"

// newZstdCGOFrameCodec is stubbed out unless built with -tags zstdcgo,
// since the real adapter requires cgo and a linked libzstd.
func newZstdCGOFrameCodec(level int) (FrameCodec, error) {
	return nil, fmt.Errorf("compress: zstd cgo codec requires building with -tags zstdcgo")
}
