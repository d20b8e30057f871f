package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vegasq/pqview/reader"
)

// CSVFormatter outputs a table as CSV with a header row
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes the column names followed by every row
func (c *CSVFormatter) Format(t *reader.Table) error {
	csvWriter := csv.NewWriter(c.writer)

	if err := csvWriter.Write(t.Columns); err != nil {
		return err
	}

	record := make([]string, 0, len(t.Columns))
	for _, row := range t.Rows {
		record = record[:0]
		for _, cell := range row {
			record = append(record, sanitizeCell(cell))
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}

// sanitizeCell guards against CSV injection by quoting cells that would
// start a formula in a spreadsheet. Numbers are left alone so negative
// values survive.
func sanitizeCell(cell string) string {
	if cell == "" {
		return cell
	}
	switch cell[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		if cell[0] == '-' || cell[0] == '+' {
			if _, err := strconv.ParseFloat(cell, 64); err == nil {
				return cell
			}
		}
		return "'" + strings.ReplaceAll(cell, "'", "''")
	}
	return cell
}
