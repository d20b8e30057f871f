package output

import (
	"io"

	"github.com/segmentio/encoding/json"

	"github.com/vegasq/pqview/reader"
)

// JSONFormatter writes the whole table as a single JSON document:
// {"columns": [...], "rows": [[...], ...], "total_rows": N}.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes t as one JSON object followed by a newline
func (j *JSONFormatter) Format(t *reader.Table) error {
	return json.NewEncoder(j.writer).Encode(t)
}

// JSONLFormatter outputs a table as JSON Lines: the column names as a JSON
// array on the first line, then one JSON array of cells per row.
//
// Rows are arrays rather than objects because column names are not unique.
type JSONLFormatter struct {
	writer io.Writer
}

// NewJSONLFormatter creates a new JSON Lines formatter
func NewJSONLFormatter(w io.Writer) *JSONLFormatter {
	return &JSONLFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONLFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes the header line and one line per row
func (j *JSONLFormatter) Format(t *reader.Table) error {
	encoder := json.NewEncoder(j.writer)
	if err := encoder.Encode(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := encoder.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
