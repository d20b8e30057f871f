// Package config loads pqview settings from a YAML file and PQVIEW_*
// environment variables.
//
// Precedence, lowest first: built-in defaults, the YAML file, the
// environment, then whatever the caller applies on top (command line flags).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vegasq/pqview/format"
	"github.com/vegasq/pqview/output"
	"github.com/vegasq/pqview/reader"
)

// Config is the runtime configuration shared by the command line tool and
// the HTTP server.
type Config struct {
	// BatchSize is the number of rows per decoded record batch.
	BatchSize int64 `yaml:"batch_size"`
	// Fallback names the out-of-range policy: legacy, marker or clamp.
	Fallback string `yaml:"fallback"`
	// Format is the default output format of the command line tool.
	Format string `yaml:"format"`
	// Limit caps printed rows; zero prints everything.
	Limit int `yaml:"limit"`
	// MaxCellWidth truncates table cells; zero disables truncation.
	MaxCellWidth int `yaml:"max_cell_width"`

	Server Server `yaml:"server"`
}

// Server holds settings used only by pqview-server.
type Server struct {
	Listen       string `yaml:"listen"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
	// RateLimitRPS is the sustained request rate; zero disables limiting.
	RateLimitRPS float64 `yaml:"rate_limit_rps"`
	RateBurst    int     `yaml:"rate_burst"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BatchSize:    reader.DefaultBatchSize,
		Fallback:     format.FallbackLegacy.String(),
		Format:       output.FormatJSONL,
		MaxCellWidth: 40,
		Server: Server{
			Listen:       ":8080",
			MaxBodyBytes: 256 << 20,
			RateBurst:    10,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment, then validates it.
func Load(path string) (Config, error) {
	cfg, err := LoadUnvalidated(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadUnvalidated is Load without the final Validate, for callers that
// apply further overrides first and validate the result themselves.
// Malformed YAML or unparsable environment values are still errors.
func LoadUnvalidated(path string) (Config, error) {
	cfg := Default()

	if p := strings.TrimSpace(path); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse config YAML: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var err error
	if c.BatchSize, err = envInt64("PQVIEW_BATCH_SIZE", c.BatchSize); err != nil {
		return err
	}
	c.Fallback = envString("PQVIEW_FALLBACK", c.Fallback)
	c.Format = envString("PQVIEW_FORMAT", c.Format)
	if c.Limit, err = envInt("PQVIEW_LIMIT", c.Limit); err != nil {
		return err
	}
	if c.MaxCellWidth, err = envInt("PQVIEW_MAX_CELL_WIDTH", c.MaxCellWidth); err != nil {
		return err
	}
	c.Server.Listen = envString("PQVIEW_LISTEN", c.Server.Listen)
	if c.Server.MaxBodyBytes, err = envInt64("PQVIEW_MAX_BODY_BYTES", c.Server.MaxBodyBytes); err != nil {
		return err
	}
	if c.Server.RateLimitRPS, err = envFloat("PQVIEW_RATE_LIMIT_RPS", c.Server.RateLimitRPS); err != nil {
		return err
	}
	if c.Server.RateBurst, err = envInt("PQVIEW_RATE_BURST", c.Server.RateBurst); err != nil {
		return err
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if _, err := format.ParseFallback(c.Fallback); err != nil {
		return err
	}
	if !isFormat(c.Format) {
		return fmt.Errorf("unsupported format '%s' (supported: %s)", c.Format, strings.Join(output.Formats, ", "))
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", c.Limit)
	}
	if c.MaxCellWidth < 0 {
		return fmt.Errorf("max_cell_width must be non-negative, got %d", c.MaxCellWidth)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	if c.Server.RateLimitRPS < 0 {
		return fmt.Errorf("server.rate_limit_rps must be non-negative, got %g", c.Server.RateLimitRPS)
	}
	if c.Server.RateLimitRPS > 0 && c.Server.RateBurst < 1 {
		return fmt.Errorf("server.rate_burst must be at least 1 when rate limiting, got %d", c.Server.RateBurst)
	}
	return nil
}

// ReaderOptions converts the decoding settings into reader options.
func (c Config) ReaderOptions() (reader.Options, error) {
	fb, err := format.ParseFallback(c.Fallback)
	if err != nil {
		return reader.Options{}, err
	}
	return reader.Options{
		BatchSize: c.BatchSize,
		Formatter: format.New(format.WithFallback(fb)),
	}, nil
}

func isFormat(name string) bool {
	for _, f := range output.Formats {
		if strings.EqualFold(name, f) {
			return true
		}
	}
	return false
}

func envString(varName, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(varName)); v != "" {
		return v
	}
	return fallback
}

func envInt(varName string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(varName))
	if v == "" {
		return fallback, nil
	}
	out, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", varName, v, err)
	}
	return out, nil
}

func envInt64(varName string, fallback int64) (int64, error) {
	v := strings.TrimSpace(os.Getenv(varName))
	if v == "" {
		return fallback, nil
	}
	out, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", varName, v, err)
	}
	return out, nil
}

func envFloat(varName string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(varName))
	if v == "" {
		return fallback, nil
	}
	out, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", varName, v, err)
	}
	return out, nil
}
