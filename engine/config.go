package engine

import (
	"fmt"

	"github.com/mtcodec/mtcodec/compress"
	"github.com/mtcodec/mtcodec/errs"
	"github.com/mtcodec/mtcodec/format"
)

// ThreadMax is the highest thread_count the engine accepts.
const ThreadMax = 128

// Config holds the fixed-size configuration accepted at construction time.
// Every field is validated by NewConfig and again by the engine
// constructors; the engine never re-checks it mid-run.
type Config struct {
	// Codec selects the frame codec adapter. Defaults to format.CodecZstd.
	Codec format.CodecType
	// ThreadCount is the number of long-lived worker goroutines, 1..ThreadMax.
	ThreadCount int
	// Level is the compressor's compression level. Unused for decompression,
	// but range-checked for every codec except CodecNone.
	Level int
	// ChunkSize is the maximum uncompressed bytes per frame. 0 derives a
	// default from Level via DefaultChunkSize.
	ChunkSize int
}

// Option configures a Config. A single concrete Config type needs nothing
// more elaborate than the plain closure-over-pointer idiom used throughout
// the Go ecosystem (e.g. klauspost/compress/zstd's WithEncoderLevel).
type Option func(*Config)

// WithCodec selects the frame codec adapter.
func WithCodec(kind format.CodecType) Option {
	return func(c *Config) { c.Codec = kind }
}

// WithThreadCount sets the worker pool size.
func WithThreadCount(n int) Option {
	return func(c *Config) { c.ThreadCount = n }
}

// WithLevel sets the compression level (compressor only).
func WithLevel(level int) Option {
	return func(c *Config) { c.Level = level }
}

// WithChunkSize sets the maximum uncompressed bytes per frame. 0 restores
// the level-derived default.
func WithChunkSize(n int) Option {
	return func(c *Config) { c.ChunkSize = n }
}

func defaultConfig() Config {
	return Config{
		Codec:       format.CodecZstd,
		ThreadCount: 1,
		Level:       3,
		ChunkSize:   0,
	}
}

// NewConfig builds and validates a Config from options, deriving
// ChunkSize from Level when it is left at 0.
func NewConfig(opts ...Option) (Config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = DefaultChunkSize(cfg.Level)
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.ThreadCount < 1 || c.ThreadCount > ThreadMax {
		return errs.New(errs.ErrBadParameter,
			fmt.Errorf("thread_count %d out of range [1,%d]", c.ThreadCount, ThreadMax))
	}

	if levelMax := compress.LevelMax(c.Codec); levelMax > 0 {
		if c.Level < 1 || c.Level > levelMax {
			return errs.New(errs.ErrBadParameter,
				fmt.Errorf("level %d out of range [1,%d] for codec %s", c.Level, levelMax, c.Codec))
		}
	}

	if c.ChunkSize < 0 {
		return errs.New(errs.ErrBadParameter, fmt.Errorf("chunk_size must be >= 0, got %d", c.ChunkSize))
	}

	return nil
}

// chunkSizeTable derives the default chunk size for levels 1-7, scaling
// monotonically from 1 MiB at level 1 up to the full 2 MiB by level 3, so
// cheap, fast levels also use a smaller chunk. See DESIGN.md for how this
// table was chosen.
var chunkSizeTable = [8]int{
	0,       // unused, levels are 1-indexed
	1 << 20, // level 1
	1 << 20, // level 2
	2 << 20, // level 3
	2 << 20, // level 4
	2 << 20, // level 5
	2 << 20, // level 6
	2 << 20, // level 7
}

// DefaultChunkSize derives the default chunk_size for a given compression
// level: 1-7 scales up to 2 MiB, 8-14 is 8 MiB, 15 and above is 16 MiB.
func DefaultChunkSize(level int) int {
	switch {
	case level <= 0:
		return chunkSizeTable[1]
	case level <= 7:
		return chunkSizeTable[level]
	case level <= 14:
		return 8 << 20
	default:
		return 16 << 20
	}
}
