package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/pqview/reader"
)

const ellipsis = "…"

// TableFormatter draws a table for terminals. Cell widths are measured in
// terminal columns, so CJK text such as interval labels lines up.
type TableFormatter struct {
	writer   io.Writer
	maxWidth int
}

// NewTableFormatter creates a table formatter. Cells wider than maxWidth
// terminal columns are cut and end in an ellipsis; zero keeps cells whole.
func NewTableFormatter(w io.Writer, maxWidth int) *TableFormatter {
	return &TableFormatter{writer: w, maxWidth: maxWidth}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders the table followed by a row count line
func (t *TableFormatter) Format(table *reader.Table) error {
	tw := tablewriter.NewWriter(t.writer)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetHeader(t.cells(table.Columns))

	for _, row := range table.Rows {
		tw.Append(t.cells(row))
	}
	tw.Render()

	noun := "rows"
	if table.TotalRows == 1 {
		noun = "row"
	}
	_, err := fmt.Fprintf(t.writer, "(%d %s)\n", table.TotalRows, noun)
	return err
}

func (t *TableFormatter) cells(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = t.cell(v)
	}
	return out
}

func (t *TableFormatter) cell(v string) string {
	v = strings.NewReplacer("\r", `\r`, "\n", `\n`, "\t", `\t`).Replace(v)
	if t.maxWidth > 0 && runewidth.StringWidth(v) > t.maxWidth {
		return runewidth.Truncate(v, t.maxWidth, ellipsis)
	}
	return v
}
