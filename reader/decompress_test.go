package reader

import (
	"bytes"
	"io"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compressWith(t *testing.T, newWriter func(io.Writer) io.WriteCloser, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := newWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDecompress_RoundTrip(t *testing.T) {
	raw := writeViewerParquet(t, 1024)

	tests := []struct {
		name      string
		filename  string
		newWriter func(io.Writer) io.WriteCloser
	}{
		{"gzip", "data.parquet.gz", func(w io.Writer) io.WriteCloser { return gzip.NewWriter(w) }},
		{"gzip without suffix", "data.parquet", func(w io.Writer) io.WriteCloser { return gzip.NewWriter(w) }},
		{"zstd", "data.parquet.zst", func(w io.Writer) io.WriteCloser {
			enc, err := zstd.NewWriter(w)
			require.NoError(t, err)
			return enc
		}},
		{"lz4", "data.parquet.lz4", func(w io.Writer) io.WriteCloser { return lz4.NewWriter(w) }},
		{"brotli", "data.parquet.br", func(w io.Writer) io.WriteCloser { return brotli.NewWriter(w) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed := compressWith(t, tt.newWriter, raw)
			require.NotEqual(t, raw, packed)

			out, err := Decompress(tt.filename, packed, 0)
			require.NoError(t, err)
			assert.Equal(t, raw, out)
		})
	}
}

func TestDecompress_SizeLimit(t *testing.T) {
	zeros := make([]byte, 1<<20)

	tests := []struct {
		name      string
		filename  string
		newWriter func(io.Writer) io.WriteCloser
	}{
		{"gzip", "zeros.gz", func(w io.Writer) io.WriteCloser { return gzip.NewWriter(w) }},
		{"zstd", "zeros.zst", func(w io.Writer) io.WriteCloser {
			enc, err := zstd.NewWriter(w, zstd.WithWindowSize(32<<10))
			require.NoError(t, err)
			return enc
		}},
		{"lz4", "zeros.lz4", func(w io.Writer) io.WriteCloser { return lz4.NewWriter(w) }},
		{"brotli", "zeros.br", func(w io.Writer) io.WriteCloser { return brotli.NewWriter(w) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed := compressWith(t, tt.newWriter, zeros)
			require.Less(t, len(packed), 64<<10)

			_, err := Decompress(tt.filename, packed, 64<<10)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTooLarge)

			out, err := Decompress(tt.filename, packed, int64(len(zeros)))
			require.NoError(t, err, "output of exactly maxSize bytes is allowed")
			assert.Len(t, out, len(zeros))
		})
	}
}

func TestDecompress_Passthrough(t *testing.T) {
	raw := writeViewerParquet(t, 1024)

	out, err := Decompress("data.parquet", raw, 0)
	require.NoError(t, err)
	assert.Equal(t, raw, out)

	// brotli is only detected by name
	out, err = Decompress("data.bin", []byte("hello"), 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), out)
}

func TestDecompress_Corrupt(t *testing.T) {
	_, err := Decompress("data.parquet.gz", []byte{0x1f, 0x8b, 0x08, 0x00, 0xde, 0xad}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gzip")

	_, err = Decompress("data.parquet.zst", []byte{0x28, 0xb5, 0x2f, 0xfd, 0xff, 0xff, 0xff}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zstd")
}
