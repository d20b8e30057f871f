package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/vegasq/pqview/internal/config"
	"github.com/vegasq/pqview/server"
	"github.com/vegasq/pqview/viewer"
)

func main() {
	var (
		configPath string
		listen     string
		logLevel   string
	)
	flag.StringVar(&configPath, "config", os.Getenv("PQVIEW_CONFIG"), "Path to a YAML config file (also supports env: PQVIEW_CONFIG)")
	flag.StringVar(&listen, "listen", "", "Listen address, overrides server.listen")
	flag.StringVar(&logLevel, "log.level", "info", "Minimum log level: debug, info, warn, error")
	flag.Parse()

	logger, err := newLogger(os.Stderr, logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if listen != "" {
		cfg.Server.Listen = listen
	}

	readerOpts, err := cfg.ReaderOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	viewer.Init()

	srv := server.New(server.Options{
		Reader:       readerOpts,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		RateLimitRPS: cfg.Server.RateLimitRPS,
		RateBurst:    cfg.Server.RateBurst,
		Logger:       logger,
	})
	httpServer := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		level.Info(logger).Log("msg", "listening", "addr", cfg.Server.Listen, "fallback", cfg.Fallback, "batch_size", cfg.BatchSize)
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			level.Error(logger).Log("msg", "server error", "err", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		level.Info(logger).Log("msg", "received shutdown signal")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			level.Error(logger).Log("msg", "shutdown error", "err", err)
		}
	}
}

// newLogger returns a logfmt logger on w that drops entries below lvl.
func newLogger(w io.Writer, lvl string) (log.Logger, error) {
	var allow level.Option
	switch lvl {
	case "debug":
		allow = level.AllowDebug()
	case "info":
		allow = level.AllowInfo()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	default:
		return nil, fmt.Errorf("invalid log level %q (want debug, info, warn or error)", lvl)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, allow)
	return log.With(logger, "ts", log.DefaultTimestampUTC), nil
}
