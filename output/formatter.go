package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/pqview/reader"
)

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to write a table in the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes t in the formatter's specific format
	Format(t *reader.Table) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// Names of the supported formats, as accepted by New.
const (
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatCSV   = "csv"
	FormatTable = "table"
)

// Formats lists every name New accepts.
var Formats = []string{FormatJSON, FormatJSONL, FormatCSV, FormatTable}

// New returns the formatter registered under name, writing to w.
// maxCellWidth only applies to the table format; zero disables truncation.
func New(name string, w io.Writer, maxCellWidth int) (Formatter, error) {
	switch strings.ToLower(name) {
	case FormatJSON:
		return NewJSONFormatter(w), nil
	case FormatJSONL:
		return NewJSONLFormatter(w), nil
	case FormatCSV:
		return NewCSVFormatter(w), nil
	case FormatTable:
		return NewTableFormatter(w, maxCellWidth), nil
	default:
		return nil, fmt.Errorf("unsupported format '%s' (supported: %s)", name, strings.Join(Formats, ", "))
	}
}

// SchemaTable lays out schema information as a table so it can go through
// the same formatters as data.
func SchemaTable(infos []reader.SchemaInfo) *reader.Table {
	t := &reader.Table{
		Columns: []string{"name", "type", "physical_type", "logical_type", "required", "optional", "repeated", "arrow_type", "renderable"},
		Rows:    make([][]string, 0, len(infos)),
	}
	for _, info := range infos {
		t.Rows = append(t.Rows, []string{
			info.Name,
			info.Type,
			info.PhysicalType,
			info.LogicalType,
			fmt.Sprint(info.Required),
			fmt.Sprint(info.Optional),
			fmt.Sprint(info.Repeated),
			info.ArrowType,
			fmt.Sprint(info.Renderable),
		})
	}
	t.TotalRows = len(t.Rows)
	return t
}
