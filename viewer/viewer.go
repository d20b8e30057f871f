// Package viewer is the host-neutral entry point for converting a Parquet
// file into a display table.
//
// Hosts call Init once at startup, then Convert or ConvertJSON for every
// file. Each call is independent; nothing is cached between calls.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/segmentio/encoding/json"

	"github.com/vegasq/pqview/reader"
)

var (
	// ErrSerialize means a converted table could not be encoded as JSON.
	ErrSerialize = errors.New("failed to serialize")

	// ErrInternal means the conversion panicked. The panic is recovered and
	// reported through the diagnostic hook when Init has run.
	ErrInternal = errors.New("internal error")
)

var (
	initOnce sync.Once
	hook     atomic.Pointer[log.Logger]
)

// Init installs the process-wide diagnostic hook: full goroutine tracebacks
// for fatal errors and a stderr logger that reports recovered panics with
// their stack. It is safe to call any number of times from any goroutine;
// only the first call has an effect.
func Init() {
	initOnce.Do(func() {
		debug.SetTraceback("all")

		logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
		logger = log.With(logger, "ts", log.DefaultTimestampUTC, "component", "viewer")
		hook.Store(&logger)
	})
}

// Initialized reports whether Init has run.
func Initialized() bool {
	return hook.Load() != nil
}

var marshal = json.Marshal

// Converter converts Parquet bytes with fixed options.
type Converter struct {
	opts   reader.Options
	logger log.Logger
}

// NewConverter returns a Converter decoding with opts. A nil logger
// discards conversion logs.
func NewConverter(opts reader.Options, logger log.Logger) *Converter {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Converter{opts: opts, logger: logger}
}

var defaultConverter = NewConverter(reader.Options{}, nil)

// Convert decodes data with default options. See (*Converter).Convert.
func Convert(ctx context.Context, data []byte) (*reader.Table, error) {
	return defaultConverter.Convert(ctx, data)
}

// ConvertJSON decodes data with default options and encodes the table as
// JSON. See (*Converter).ConvertJSON.
func ConvertJSON(ctx context.Context, data []byte) ([]byte, error) {
	return defaultConverter.ConvertJSON(ctx, data)
}

// Convert decodes a complete Parquet file and renders every cell.
//
// Decoding errors wrap reader.ErrCreateReader, reader.ErrBuildReader or
// reader.ErrReadBatch. A panic during conversion is returned as ErrInternal
// instead of crashing the host.
func (c *Converter) Convert(ctx context.Context, data []byte) (table *reader.Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.reportPanic(r)
			table, err = nil, fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	start := time.Now()
	table, err = reader.ReadBytes(ctx, data, c.opts)
	if err != nil {
		level.Debug(c.logger).Log("msg", "conversion failed", "bytes", len(data), "err", err)
		return nil, err
	}

	level.Debug(c.logger).Log(
		"msg", "converted",
		"bytes", len(data),
		"columns", len(table.Columns),
		"rows", table.TotalRows,
		"duration", time.Since(start),
	)
	return table, nil
}

// ConvertJSON converts data and encodes the result as
// {"columns": [...], "rows": [[...]], "total_rows": N}.
func (c *Converter) ConvertJSON(ctx context.Context, data []byte) ([]byte, error) {
	table, err := c.Convert(ctx, data)
	if err != nil {
		return nil, err
	}

	b, err := marshal(table)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialize, err)
	}
	return b, nil
}

func (c *Converter) reportPanic(r any) {
	stack := string(debug.Stack())
	level.Error(c.logger).Log("msg", "recovered panic", "panic", fmt.Sprint(r))

	if l := hook.Load(); l != nil {
		level.Error(*l).Log("msg", "recovered panic", "panic", fmt.Sprint(r), "stack", stack)
	}
}
