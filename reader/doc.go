// Package reader decodes Parquet files into display tables.
//
// A Parquet file is decoded with the arrow-go pqarrow reader into a stream of
// Arrow record batches. Every cell of every batch is rendered with the format
// package, producing a Table: the ordered column names, one row of strings per
// decoded row, and the total row count.
//
// # Basic Usage
//
// Converting a file held in memory:
//
//	table, err := reader.ReadBytes(ctx, data, reader.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(table.Columns)
//	for _, row := range table.Rows {
//	    fmt.Println(row)
//	}
//
// Reading from disk, including gzip, zstd, lz4 and brotli compressed files:
//
//	table, err := reader.ReadFile(ctx, "data.parquet.gz", reader.Options{})
//
// # Multi-file Operations
//
// Reading every file matching a glob pattern:
//
//	tables, err := reader.ReadMultipleFiles(ctx, "data/*.parquet", reader.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, ft := range tables {
//	    fmt.Printf("%s: %d rows\n", ft.Path, ft.Table.TotalRows)
//	}
//
// # Errors
//
// A conversion either returns the complete table or fails. Failures wrap one
// of ErrCreateReader, ErrBuildReader or ErrReadBatch, so callers can tell the
// phases apart with errors.Is:
//
//	if errors.Is(err, reader.ErrCreateReader) {
//	    // not a Parquet file
//	}
//
// Cells that cannot be rendered never fail a conversion; they render as
// "NULL" or "Unsupported type: ..." instead.
//
// # Schema Introspection
//
// ExtractSchemaInfo lists leaf columns with their Parquet physical and
// logical types (read with github.com/parquet-go/parquet-go) alongside the
// Arrow type the viewer renders them as:
//
//	infos, err := reader.ExtractSchemaInfo(data)
//	for _, info := range infos {
//	    fmt.Printf("%s: %s (%s)\n", info.Name, info.Type, info.ArrowType)
//	}
package reader
