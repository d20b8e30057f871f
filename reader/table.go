package reader

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/vegasq/pqview/format"
)

// Table is the display form of a decoded Parquet file.
//
// Rows holds one string per column for every row, in file order, and
// TotalRows always equals len(Rows).
type Table struct {
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	TotalRows int        `json:"total_rows"`
}

// Head returns a copy of the table limited to the first n rows.
// A non-positive n returns the table unchanged.
func (t *Table) Head(n int) *Table {
	if n <= 0 || n >= len(t.Rows) {
		return t
	}
	return &Table{
		Columns:   t.Columns,
		Rows:      t.Rows[:n:n],
		TotalRows: n,
	}
}

// Assemble drains rr and renders every cell with f.
//
// Batches are processed in arrival order, rows within a batch in order and
// columns by ordinal, so row i of the result is the i-th row of the stream.
// Records are not retained past their conversion. If the stream fails,
// the partially built table is discarded and an error wrapping ErrReadBatch
// is returned.
func Assemble(rr array.RecordReader, f *format.Formatter) (*Table, error) {
	if f == nil {
		f = format.New()
	}

	fields := rr.Schema().Fields()
	columns := make([]string, len(fields))
	for i, field := range fields {
		columns[i] = field.Name
	}

	rows := make([][]string, 0)
	for rr.Next() {
		rec := rr.Record()
		numRows := int(rec.NumRows())
		numCols := int(rec.NumCols())

		for r := 0; r < numRows; r++ {
			row := make([]string, numCols)
			for c := 0; c < numCols; c++ {
				row[c] = f.Value(rec.Column(c), r)
			}
			rows = append(rows, row)
		}
	}
	if err := rr.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrReadBatch, err)
	}

	return &Table{
		Columns:   columns,
		Rows:      rows,
		TotalRows: len(rows),
	}, nil
}

// FileColumn is the leading column Concat adds to name each row's source.
const FileColumn = "_file"

// Concat stacks tables read from several files into one, prefixing every
// row with its source path under FileColumn. All tables must have the same
// columns in the same order.
func Concat(tables []FileTable) (*Table, error) {
	if len(tables) == 0 {
		return &Table{Columns: []string{FileColumn}, Rows: make([][]string, 0)}, nil
	}

	first := tables[0]
	columns := append([]string{FileColumn}, first.Table.Columns...)

	total := 0
	for _, ft := range tables {
		if !slices.Equal(ft.Table.Columns, first.Table.Columns) {
			return nil, fmt.Errorf("schema mismatch: %s has columns %v, %s has %v",
				first.Path, first.Table.Columns, ft.Path, ft.Table.Columns)
		}
		total += len(ft.Table.Rows)
	}

	rows := make([][]string, 0, total)
	for _, ft := range tables {
		for _, row := range ft.Table.Rows {
			rows = append(rows, append([]string{ft.Path}, row...))
		}
	}

	return &Table{Columns: columns, Rows: rows, TotalRows: len(rows)}, nil
}
