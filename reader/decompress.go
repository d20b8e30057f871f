package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// ErrTooLarge means a compressed input inflates past the allowed size.
var ErrTooLarge = errors.New("decompressed size too large")

// Decompress unwraps a Parquet file stored inside a whole-file compression
// container.
//
// gzip, zstd and lz4 frames are recognized by their magic bytes. Brotli has
// no magic number and is only recognized by a ".br" suffix on name. Any other
// input, including plain Parquet, is returned unchanged.
//
// When maxSize is positive, output beyond maxSize bytes stops decoding and
// returns an error wrapping ErrTooLarge. Zero or less means no limit.
func Decompress(name string, data []byte, maxSize int64) ([]byte, error) {
	var (
		r     io.Reader
		codec string
	)

	switch {
	case bytes.HasPrefix(data, gzipMagic):
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer func() { _ = gz.Close() }()
		r, codec = gz, "gzip"

	case bytes.HasPrefix(data, zstdMagic):
		var opts []zstd.DOption
		if maxSize > 0 {
			opts = append(opts, zstd.WithDecoderMaxMemory(uint64(maxSize)))
		}
		dec, err := zstd.NewReader(bytes.NewReader(data), opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		defer dec.Close()
		r, codec = dec, "zstd"

	case bytes.HasPrefix(data, lz4Magic):
		r, codec = lz4.NewReader(bytes.NewReader(data)), "lz4"

	case strings.EqualFold(filepath.Ext(name), ".br"):
		r, codec = brotli.NewReader(bytes.NewReader(data)), "brotli"

	default:
		return data, nil
	}

	if maxSize > 0 {
		r = io.LimitReader(r, maxSize+1)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		if errors.Is(err, zstd.ErrDecoderSizeExceeded) || errors.Is(err, zstd.ErrWindowSizeExceeded) {
			return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, codec, maxSize)
		}
		return nil, fmt.Errorf("failed to decompress %s: %w", codec, err)
	}
	if maxSize > 0 && int64(len(out)) > maxSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, codec, maxSize)
	}
	return out, nil
}
