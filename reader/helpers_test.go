package reader

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	pq "github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"
)

// viewerSchema mirrors the mixed-type files the viewer is typically pointed at.
var viewerSchema = arrow.NewSchema([]arrow.Field{
	{Name: "id", Type: arrow.PrimitiveTypes.Int64},
	{Name: "name", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "active", Type: arrow.FixedWidthTypes.Boolean, Nullable: true},
	{Name: "score", Type: arrow.PrimitiveTypes.Float64},
	{Name: "born", Type: arrow.FixedWidthTypes.Date32, Nullable: true},
	{Name: "updated", Type: &arrow.TimestampType{Unit: arrow.Millisecond}, Nullable: true},
	{Name: "alarm", Type: arrow.FixedWidthTypes.Time64us},
	{Name: "blob", Type: arrow.BinaryTypes.Binary},
}, nil)

type viewerRow struct {
	id      int64
	name    *string
	active  *bool
	score   float64
	born    *int32
	updated *int64
	alarm   int64
	blob    []byte
}

func ptr[T any](v T) *T { return &v }

var viewerRows = []viewerRow{
	{1, ptr("alice"), ptr(true), 95.5, ptr(int32(0)), ptr(int64(0)), 0, []byte{1, 2, 3}},
	{2, ptr("bob"), ptr(false), 82.25, ptr(int32(19000)), ptr(int64(1700000000123)), 45296789012, []byte{}},
	{3, nil, nil, -1, nil, nil, 3600000000, []byte{255}},
	{4, ptr("発売日"), ptr(true), 0, ptr(int32(-1)), ptr(int64(-1)), 1, []byte("a")},
	{5, ptr("eve"), ptr(false), 1e20, ptr(int32(2932896)), ptr(int64(1500)), 86399000000, nil},
}

var viewerWant = [][]string{
	{"1", "alice", "true", "95.5", "1970-01-01", "1970-01-01 00:00:00", "00:00:00", "[1, 2, 3]"},
	{"2", "bob", "false", "82.25", "2022-01-08", "2023-11-14 22:13:20.123000", "12:34:56.789012", "[]"},
	{"3", "NULL", "NULL", "-1", "NULL", "NULL", "01:00:00", "[255]"},
	{"4", "発売日", "true", "0", "1969-12-31", "1969-12-31 23:59:59.999000", "00:00:00.000001", "[97]"},
	{"5", "eve", "false", "100000000000000000000", "9999-12-31", "1970-01-01 00:00:01.500000", "23:59:59", "[]"},
}

// buildViewerRecord builds one record batch holding rows[from:to].
func buildViewerRecord(t *testing.T, mem memory.Allocator, from, to int) arrow.Record {
	t.Helper()
	b := array.NewRecordBuilder(mem, viewerSchema)
	defer b.Release()

	for _, r := range viewerRows[from:to] {
		b.Field(0).(*array.Int64Builder).Append(r.id)
		if r.name != nil {
			b.Field(1).(*array.StringBuilder).Append(*r.name)
		} else {
			b.Field(1).AppendNull()
		}
		if r.active != nil {
			b.Field(2).(*array.BooleanBuilder).Append(*r.active)
		} else {
			b.Field(2).AppendNull()
		}
		b.Field(3).(*array.Float64Builder).Append(r.score)
		if r.born != nil {
			b.Field(4).(*array.Date32Builder).Append(arrow.Date32(*r.born))
		} else {
			b.Field(4).AppendNull()
		}
		if r.updated != nil {
			b.Field(5).(*array.TimestampBuilder).Append(arrow.Timestamp(*r.updated))
		} else {
			b.Field(5).AppendNull()
		}
		b.Field(6).(*array.Time64Builder).Append(arrow.Time64(r.alarm))
		b.Field(7).(*array.BinaryBuilder).Append(r.blob)
	}

	return b.NewRecord()
}

// writeViewerParquet encodes viewerRows as Parquet, splitting them into row
// groups of rowGroupSize rows.
func writeViewerParquet(t *testing.T, rowGroupSize int64) []byte {
	t.Helper()
	mem := memory.NewGoAllocator()
	rec := buildViewerRecord(t, mem, 0, len(viewerRows))
	defer rec.Release()

	var buf bytes.Buffer
	props := parquet.NewWriterProperties(parquet.WithMaxRowGroupLength(rowGroupSize))
	w, err := pqarrow.NewFileWriter(viewerSchema, &buf, props,
		pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema()))
	require.NoError(t, err)
	require.NoError(t, w.Write(rec))
	require.NoError(t, w.Close())

	return buf.Bytes()
}

// simpleRow is written with parquet-go, the same way user files produced by
// other Go tools look.
type simpleRow struct {
	ID   int64  `parquet:"id"`
	Name string `parquet:"name"`
}

func createSimpleParquetFile(t *testing.T, dir, filename string, rows []simpleRow) string {
	t.Helper()
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	require.NoError(t, err)

	w := pq.NewGenericWriter[simpleRow](f)
	_, err = w.Write(rows)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	return path
}
