// Package output provides formatters for writing rendered Parquet tables.
//
// Every formatter consumes a *reader.Table, whose cells are already display
// strings, and differs only in layout.
//
// # Supported Formats
//
//   - json: the whole table as one JSON object
//   - jsonl: the column names, then one JSON array per row
//   - csv: comma-separated values with a header row
//   - table: a drawn table for terminals
//
// # Basic Usage
//
//	formatter, err := output.New("table", os.Stdout, 40)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(table); err != nil {
//	    log.Fatal(err)
//	}
//
// Schema information goes through the same formatters once converted with
// SchemaTable:
//
//	infos, _ := reader.ExtractSchemaInfo(data)
//	err := output.NewCSVFormatter(os.Stdout).Format(output.SchemaTable(infos))
//
// # CSV Injection
//
// CSV cells beginning with =, +, -, @, |, tab or a line break are prefixed
// with a single quote so spreadsheet applications do not evaluate them.
// Cells that parse as numbers are written unchanged.
package output
