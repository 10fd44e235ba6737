// Command mtzstd is a thin stdin/stdout wrapper around the mtcodec engine.
// It exists to give the library a runnable shell; all the interesting
// behavior lives in package mtcodec and package engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mtcodec/mtcodec"
	"github.com/mtcodec/mtcodec/engine"
	"github.com/mtcodec/mtcodec/format"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "mtzstd: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) error {
	fs := flag.NewFlagSet("mtzstd", flag.ContinueOnError)
	fs.SetOutput(stderr)

	decompress := fs.Bool("d", false, "decompress instead of compress")
	threads := fs.Int("threads", 4, "worker thread count")
	level := fs.Int("level", 3, "compression level (unused with -d, but still range-checked)")
	chunkSize := fs.Int("chunk-size", 0, "uncompressed bytes per frame, 0 selects a level-derived default")
	codecName := fs.String("codec", "zstd", "frame codec: zstd, lz4, s2, none")

	if err := fs.Parse(args); err != nil {
		return err
	}

	codec, err := parseCodec(*codecName)
	if err != nil {
		return err
	}

	opts := []engine.Option{
		engine.WithCodec(codec),
		engine.WithThreadCount(*threads),
		engine.WithLevel(*level),
		engine.WithChunkSize(*chunkSize),
	}

	read, write := stdioCallbacks(stdin, stdout)
	ctx := context.Background()

	if *decompress {
		d, err := mtcodec.NewDecompressor(opts...)
		if err != nil {
			return err
		}
		defer d.Close()
		_, err = d.Run(ctx, read, write)
		return err
	}

	c, err := mtcodec.NewCompressor(opts...)
	if err != nil {
		return err
	}
	defer c.Close()
	_, err = c.Run(ctx, read, write)
	return err
}

func parseCodec(name string) (format.CodecType, error) {
	switch name {
	case "zstd":
		return format.CodecZstd, nil
	case "zstd-cgo":
		return format.CodecZstdCGO, nil
	case "lz4":
		return format.CodecLZ4, nil
	case "s2":
		return format.CodecS2, nil
	case "none":
		return format.CodecNone, nil
	default:
		return 0, fmt.Errorf("unknown codec %q", name)
	}
}

// stdioCallbacks adapts io.Reader/io.Writer to engine.ReadFunc/WriteFunc.
// The reader is expected to behave like os.Stdin: a short read is not EOF
// on its own, only io.EOF (or io.ErrUnexpectedEOF at end of stream) is.
func stdioCallbacks(r io.Reader, w io.Writer) (engine.ReadFunc, engine.WriteFunc) {
	read := func(_ context.Context, buf *engine.Buffer) error {
		n, err := io.ReadFull(r, buf.B)
		switch {
		case err == nil:
			buf.B = buf.B[:n]
			return nil
		case err == io.EOF, err == io.ErrUnexpectedEOF:
			buf.B = buf.B[:n]
			return nil
		default:
			return err
		}
	}

	write := func(_ context.Context, buf *engine.Buffer) error {
		_, err := w.Write(buf.B)
		return err
	}

	return read, write
}
