package errs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mtcodec/mtcodec/errs"
)

func TestErrorIsMatchesSentinelThroughWrapping(t *testing.T) {
	err := errs.ForFrame(errs.ErrWriteFail, 3, errors.New("pipe closed"))
	require.ErrorIs(t, err, errs.ErrWriteFail)
	require.NotErrorIs(t, err, errs.ErrReadFail)
}

func TestCodecErrorCarriesNativeString(t *testing.T) {
	err := errs.Codec(7, "ZSTD_error_corruption_detected", errors.New("boom"))
	require.ErrorIs(t, err, errs.ErrCompressionLib)

	var target *errs.Error
	require.ErrorAs(t, err, &target)
	require.Equal(t, int64(7), target.Frame)
	require.Equal(t, "ZSTD_error_corruption_detected", target.Native)
}

func TestErrorStringIncludesFrameIndex(t *testing.T) {
	err := errs.ForFrame(errs.ErrReadFail, 5, errors.New("disk gone"))
	require.Contains(t, err.Error(), "5")
}
