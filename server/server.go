// Package server exposes Parquet conversion over HTTP.
//
// Routes:
//
//	POST /api/v1/parquet         body: Parquet file, response: the rendered table as JSON
//	POST /api/v1/parquet/schema  body: Parquet file, response: leaf column descriptions
//	GET  /healthz                liveness check
//
// Bodies may be gzip, zstd or lz4 compressed. Brotli bodies must be sent
// with "Content-Encoding: br" since brotli streams carry no magic number.
package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"
	"golang.org/x/time/rate"

	"github.com/vegasq/pqview/reader"
	"github.com/vegasq/pqview/viewer"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-Id"

// DefaultMaxBodyBytes is used when Options.MaxBodyBytes is zero.
const DefaultMaxBodyBytes = 256 << 20

// Options configures a Server.
type Options struct {
	Reader reader.Options

	// MaxBodyBytes caps request bodies; larger requests get 413.
	MaxBodyBytes int64

	// RateLimitRPS limits conversion requests per second across all
	// clients. Zero disables limiting.
	RateLimitRPS float64
	RateBurst    int

	Logger log.Logger
}

// Server converts uploaded Parquet files.
type Server struct {
	conv    *viewer.Converter
	opts    Options
	limiter *rate.Limiter
	logger  log.Logger
}

// New constructs a Server.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.NewNopLogger()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	s := &Server{
		conv:   viewer.NewConverter(opts.Reader, opts.Logger),
		opts:   opts,
		logger: opts.Logger,
	}
	if opts.RateLimitRPS > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), burst)
	}
	return s
}

// Handler returns an http.Handler that serves the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/parquet", s.handleConvert)
	mux.HandleFunc("/api/v1/parquet/schema", s.handleSchema)
	mux.HandleFunc("/healthz", s.handleHealth)
	return s.instrument(mux)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}

	limit := 0
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", v))
			return
		}
		limit = n
	}

	table, err := s.conv.Convert(r.Context(), data)
	if err != nil {
		writeError(w, conversionStatus(err), err.Error())
		return
	}

	b, err := json.Marshal(table.Head(limit))
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("%w: %w", viewer.ErrSerialize, err).Error())
		return
	}
	writeJSONBytes(w, http.StatusOK, b)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}

	infos, err := reader.ExtractSchemaInfo(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if infos == nil {
		infos = []reader.SchemaInfo{}
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok\n")
}

// readBody enforces POST, the rate limit and the body size cap, then strips
// any compression. The size cap applies to the decompressed body as well.
// It writes the error response itself and reports whether to continue.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return nil, false
	}
	if s.limiter != nil && !s.limiter.Allow() {
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return nil, false
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit))
			return nil, false
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("read body: %v", err))
		return nil, false
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "empty body")
		return nil, false
	}

	name := "body"
	if strings.EqualFold(strings.TrimSpace(r.Header.Get("Content-Encoding")), "br") {
		name = "body.br"
	}
	data, err = reader.Decompress(name, data, s.opts.MaxBodyBytes)
	if err != nil {
		if errors.Is(err, reader.ErrTooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("decompressed body exceeds %d bytes", s.opts.MaxBodyBytes))
			return nil, false
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return data, true
}

// instrument assigns a request id and logs one line per request.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		logger := level.Info(s.logger)
		if rec.status >= http.StatusInternalServerError {
			logger = level.Error(s.logger)
		}
		logger.Log(
			"msg", "request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"bytes_in", r.ContentLength,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// conversionStatus maps conversion errors to HTTP status codes. Decoding
// failures are the client's file; anything else is ours.
func conversionStatus(err error) int {
	switch {
	case errors.Is(err, reader.ErrCreateReader),
		errors.Is(err, reader.ErrBuildReader),
		errors.Is(err, reader.ErrReadBatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to serialize", http.StatusInternalServerError)
		return
	}
	writeJSONBytes(w, status, b)
}

func writeJSONBytes(w http.ResponseWriter, status int, b []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
