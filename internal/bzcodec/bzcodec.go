// Package bzcodec adapts github.com/dsnet/compress/bzip2 to the two
// operations the patch format needs: an append-only compressing stream
// writer, and a buffer-to-buffer decompressor that grows its output
// allocation on demand.
package bzcodec

import (
	"bytes"
	"errors"
	"io"

	"github.com/dsnet/compress/bzip2"

	"github.com/nmoro/go-bsdiff/pkg/bsdifferr"
)

// DefaultMaxDecompressedSize bounds how large DecompressToVec will grow
// its output buffer before giving up. Configurable per call via
// WithMaxSize; must be kept at or above 128 MiB.
const DefaultMaxDecompressedSize = 256 * 1024 * 1024

// minMaxDecompressedSize is the floor WithMaxSize is clamped to.
const minMaxDecompressedSize = 128 * 1024 * 1024

// Writer wraps a bzip2 writer over w. Close must be called to flush the
// final block; it does not close w itself.
type Writer struct {
	zw *bzip2.Writer
}

// NewWriter opens a bzip2 stream writer at block size 9 (the format's
// hardcoded BestCompression level) over w.
func NewWriter(w io.Writer) (*Writer, error) {
	zw, err := bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		return nil, bsdifferr.NewCompression(err)
	}
	return &Writer{zw: zw}, nil
}

// Write appends p to the compressed stream.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.zw.Write(p)
	if err != nil {
		return n, bsdifferr.NewCompression(err)
	}
	return n, nil
}

// Close flushes and finalizes the bzip2 stream.
func (w *Writer) Close() error {
	if err := w.zw.Close(); err != nil {
		return bsdifferr.NewCompression(err)
	}
	return nil
}

// decompressOptions configures DecompressToVec.
type decompressOptions struct {
	hint   int64 // known/expected decompressed size, -1 if unknown
	maxCap int64
}

// Option configures a DecompressToVec call.
type Option func(*decompressOptions)

// WithHint supplies the expected decompressed size, when known, so the
// first allocation attempt is sized correctly instead of guessed from
// the compressed input length.
func WithHint(size int64) Option {
	return func(o *decompressOptions) { o.hint = size }
}

// WithMaxSize overrides the cap on how large the output buffer may grow.
// Values below the 128 MiB floor are clamped up to it.
func WithMaxSize(max int64) Option {
	return func(o *decompressOptions) {
		if max < minMaxDecompressedSize {
			max = minMaxDecompressedSize
		}
		o.maxCap = max
	}
}

// DecompressToVec decompresses a complete bzip2 block held in input,
// growing its output buffer across retries when the codec reports the
// buffer was too small, and failing with bsdifferr.CompressionError on
// any other codec error.
func DecompressToVec(input []byte, opts ...Option) ([]byte, error) {
	cfg := decompressOptions{hint: -1, maxCap: DefaultMaxDecompressedSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	size := startSize(cfg.hint, int64(len(input)))
	for {
		out, err := tryDecompress(input, size)
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, errShortBuffer) {
			return nil, bsdifferr.NewCompression(err)
		}
		if size >= cfg.maxCap {
			return nil, bsdifferr.NewOutOfMemory(size * 2)
		}
		size *= 2
		if size > cfg.maxCap {
			size = cfg.maxCap
		}
	}
}

func startSize(hint, inputLen int64) int64 {
	if hint >= 0 {
		return hint + 16
	}
	guess := 1024 + 8*inputLen
	if doubled := 2 * inputLen; doubled > guess {
		guess = doubled
	}
	if guess < 1 {
		guess = 1024
	}
	return guess
}

// errShortBuffer is returned by tryDecompress to signal "grow and retry",
// distinguishing it from a genuine codec failure.
var errShortBuffer = errors.New("bzcodec: output buffer too small")

// tryDecompress decompresses input into a freshly allocated buffer of
// capacity bufSize, reading until the stream's natural EOF. Filling the
// buffer before EOF is treated as "buffer too small"; any other read
// error (including a truncated stream) is returned as is.
func tryDecompress(input []byte, bufSize int64) ([]byte, error) {
	zr, err := bzip2.NewReader(bytes.NewReader(input), nil)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	// One sentinel byte beyond bufSize lets us tell "decompressed size is
	// exactly bufSize" apart from "decompressed size exceeds bufSize"
	// without guessing ahead of the stream's own EOF signal.
	buf := make([]byte, bufSize+1)
	var total int64
	for total < int64(len(buf)) {
		n, err := zr.Read(buf[total:])
		total += int64(n)
		if err == io.EOF {
			if total > bufSize {
				return nil, errShortBuffer
			}
			return buf[:total], nil
		}
		if err != nil {
			return nil, err
		}
	}
	return nil, errShortBuffer
}
