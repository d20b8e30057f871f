package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/vegasq/pqview/internal/config"
	"github.com/vegasq/pqview/output"
	"github.com/vegasq/pqview/reader"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	prog := "pqview"
	flags := flag.NewFlagSet(prog, flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		formatFlag   = flags.String("f", "", "Output format: json, jsonl, csv, table (default jsonl)")
		limitFlag    = flags.Int("limit", 0, "Limit number of rows (0 = unlimited)")
		schemaFlag   = flags.Bool("schema", false, "Show schema information instead of data")
		configFlag   = flags.String("config", os.Getenv("PQVIEW_CONFIG"), "Path to a YAML config file")
		fallbackFlag = flags.String("fallback", "", "Out-of-range temporal values: legacy, marker, clamp (default legacy)")
		batchFlag    = flags.Int64("batch-size", 0, "Rows per decoded record batch (default 1024)")
		widthFlag    = flags.Int("width", 0, "Maximum cell width for the table format, 0 disables truncation (default 40)")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [options] <file.parquet|glob>\n\n", prog)
		fmt.Fprintf(stderr, "Renders Parquet files as text.\n\n")
		fmt.Fprintf(stderr, "IMPORTANT: All flags must come BEFORE file arguments.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  %s data.parquet\n", prog)
		fmt.Fprintf(stderr, "  %s -f table -limit 20 data.parquet.gz\n", prog)
		fmt.Fprintf(stderr, "  %s -f csv 'logs/*.parquet'\n", prog)
		fmt.Fprintf(stderr, "  %s -schema data.parquet\n", prog)
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	cfg, err := config.LoadUnvalidated(*configFlag)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// explicitly set flags win over config and environment
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "f":
			cfg.Format = *formatFlag
		case "limit":
			cfg.Limit = *limitFlag
		case "fallback":
			cfg.Fallback = *fallbackFlag
		case "batch-size":
			cfg.BatchSize = *batchFlag
		case "width":
			cfg.MaxCellWidth = *widthFlag
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if flags.NArg() < 1 {
		fmt.Fprintf(stderr, "Error: missing parquet file argument\n\n")
		flags.Usage()
		return 1
	}
	if flags.NArg() > 1 {
		fmt.Fprintf(stderr, "Error: expected one file or glob, got %d arguments (flags must come before the file)\n", flags.NArg())
		return 1
	}
	filename := flags.Arg(0)

	formatter, err := output.New(cfg.Format, stdout, cfg.MaxCellWidth)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	var table *reader.Table
	if *schemaFlag {
		table, err = loadSchema(filename, stderr)
	} else {
		table, err = loadData(ctx, filename, cfg)
	}
	if err != nil {
		reportError(stderr, err)
		return 1
	}

	if err := formatter.Format(table.Head(cfg.Limit)); err != nil {
		fmt.Fprintf(stderr, "Error formatting output: %v\n", err)
		return 1
	}
	return 0
}

// loadData reads every file matching pattern. Several files are stacked
// into one table with a leading _file column.
func loadData(ctx context.Context, pattern string, cfg config.Config) (*reader.Table, error) {
	opts, err := cfg.ReaderOptions()
	if err != nil {
		return nil, err
	}

	tables, err := reader.ReadMultipleFiles(ctx, pattern, opts)
	if err != nil {
		return nil, err
	}
	if len(tables) == 1 {
		return tables[0].Table, nil
	}
	return reader.Concat(tables)
}

// loadSchema describes the first file matching pattern.
func loadSchema(pattern string, stderr io.Writer) (*reader.Table, error) {
	paths, err := reader.ExpandPattern(pattern)
	if err != nil {
		return nil, err
	}
	path := paths[0]
	if len(paths) > 1 {
		fmt.Fprintf(stderr, "# Showing schema from: %s (%d files matched)\n", path, len(paths))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	data, err = reader.Decompress(path, data, 0)
	if err != nil {
		return nil, err
	}

	infos, err := reader.ExtractSchemaInfo(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return output.SchemaTable(infos), nil
}

func reportError(stderr io.Writer, err error) {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "Error: file '%s' not found\n", pathErr.Path)
		fmt.Fprintf(stderr, "Please check the file path and try again.\n")
		return
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
}
