package reader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/vegasq/pqview/format"
)

// Failure phases of a conversion. Errors returned by this package wrap
// exactly one of them together with the underlying cause.
var (
	// ErrCreateReader means the input is not a readable Parquet file
	// (bad magic, truncated footer, corrupt metadata).
	ErrCreateReader = errors.New("failed to create reader")

	// ErrBuildReader means the Arrow schema or the batch reader could not be
	// set up for an otherwise valid file.
	ErrBuildReader = errors.New("failed to build reader")

	// ErrReadBatch means a record batch failed to decode mid-stream.
	ErrReadBatch = errors.New("failed to read batch")
)

// newFileReader is replaced in tests to exercise the build phase.
var newFileReader = pqarrow.NewFileReader

// DefaultBatchSize is the number of rows per decoded record batch.
const DefaultBatchSize = 1024

// maxFiles bounds how many files a glob pattern may expand to.
const maxFiles = 1000

// Options controls decoding and rendering.
type Options struct {
	// BatchSize is the number of rows per record batch. Zero selects
	// DefaultBatchSize.
	BatchSize int64

	// Formatter renders cells. Nil selects format.New().
	Formatter *format.Formatter

	// Allocator backs the decoded Arrow buffers. Nil selects
	// memory.DefaultAllocator.
	Allocator memory.Allocator
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Formatter == nil {
		o.Formatter = format.New()
	}
	if o.Allocator == nil {
		o.Allocator = memory.DefaultAllocator
	}
	return o
}

// ReadBytes decodes a complete Parquet file held in memory and renders it as
// a Table.
//
// The whole table is materialized before returning. On failure no partial
// table is returned and the error wraps ErrCreateReader, ErrBuildReader or
// ErrReadBatch.
//
// Example:
//
//	table, err := reader.ReadBytes(ctx, data, reader.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(table.Columns, table.TotalRows)
func ReadBytes(ctx context.Context, data []byte, opts Options) (*Table, error) {
	opts = opts.withDefaults()

	pf, err := file.NewParquetReader(bytes.NewReader(data),
		file.WithReadProps(parquet.NewReaderProperties(opts.Allocator)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateReader, err)
	}
	defer func() { _ = pf.Close() }()

	fr, err := newFileReader(pf, pqarrow.ArrowReadProperties{BatchSize: opts.BatchSize}, opts.Allocator)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildReader, err)
	}

	rr, err := fr.GetRecordReader(ctx, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildReader, err)
	}
	defer rr.Release()

	return Assemble(rr, opts.Formatter)
}

// ReadFile reads the Parquet file at path and renders it as a Table.
//
// gzip, zstd, lz4 and brotli compressed files are decompressed first; see
// Decompress.
func ReadFile(ctx context.Context, path string, opts Options) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	data, err = Decompress(path, data, 0)
	if err != nil {
		return nil, err
	}

	return ReadBytes(ctx, data, opts)
}

// FileTable pairs a rendered table with the file it came from.
type FileTable struct {
	Path  string
	Table *Table
}

// ReadMultipleFiles reads every Parquet file matching a glob pattern.
//
// The pattern can include wildcards:
//   - * matches any sequence of non-separator characters
//   - ? matches any single non-separator character
//   - [range] matches any character in range
//
// A pattern without wildcards reads a single file. Tables are returned in
// lexical path order. Returns an error if no files match or if any file
// fails to read.
func ReadMultipleFiles(ctx context.Context, pattern string, opts Options) ([]FileTable, error) {
	paths, err := ExpandPattern(pattern)
	if err != nil {
		return nil, err
	}

	tables := make([]FileTable, 0, len(paths))
	for _, path := range paths {
		t, err := ReadFile(ctx, path, opts)
		if err != nil {
			if len(paths) == 1 {
				return nil, err
			}
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		tables = append(tables, FileTable{Path: path, Table: t})
	}

	return tables, nil
}

// ExpandPattern resolves a path or glob pattern to the files it names.
func ExpandPattern(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[]") {
		return []string{pattern}, nil
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", pattern)
	}
	if len(matches) > maxFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxFiles)
	}

	return matches, nil
}
