package reader

import (
	"bytes"
	"strings"
	"testing"
	"time"

	pq "github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type schemaAddress struct {
	Street string `parquet:"street"`
	Zip    int32  `parquet:"zip"`
}

type schemaRow struct {
	ID      int64         `parquet:"id"`
	Name    string        `parquet:"name,optional"`
	Score   float32       `parquet:"score"`
	Created time.Time     `parquet:"created"`
	Address schemaAddress `parquet:"address"`
	Tags    []string      `parquet:"tags"`
}

func writeSchemaParquet(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := pq.NewGenericWriter[schemaRow](&buf)
	_, err := w.Write([]schemaRow{{
		ID:      1,
		Name:    "alice",
		Score:   1.5,
		Created: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Address: schemaAddress{Street: "Main", Zip: 12345},
		Tags:    []string{"a", "b"},
	}})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtractSchemaInfo(t *testing.T) {
	infos, err := ExtractSchemaInfo(writeSchemaParquet(t))
	require.NoError(t, err)

	byName := make(map[string]SchemaInfo, len(infos))
	for _, info := range infos {
		byName[info.Name] = info
	}
	require.Len(t, byName, 7)

	id := byName["id"]
	assert.Equal(t, "INT64", id.Type)
	assert.Equal(t, "INT64", id.PhysicalType)
	assert.True(t, id.Required)
	assert.Equal(t, "int64", id.ArrowType)
	assert.True(t, id.Renderable)

	name := byName["name"]
	assert.Equal(t, "STRING", name.Type)
	assert.Equal(t, "BYTE_ARRAY", name.PhysicalType)
	assert.True(t, name.Optional)
	assert.False(t, name.Required)
	assert.Equal(t, "utf8", name.ArrowType)
	assert.True(t, name.Renderable)

	score := byName["score"]
	assert.Equal(t, "FLOAT32", score.Type)
	assert.Equal(t, "FLOAT", score.PhysicalType)
	assert.True(t, score.Renderable)

	created := byName["created"]
	assert.Equal(t, "TIMESTAMP", created.Type)
	assert.True(t, strings.HasPrefix(created.LogicalType, "TIMESTAMP"), created.LogicalType)
	assert.True(t, strings.HasPrefix(created.ArrowType, "timestamp["), created.ArrowType)
	assert.True(t, created.Renderable)

	for _, leaf := range []string{"address.street", "address.zip"} {
		info, ok := byName[leaf]
		require.True(t, ok, leaf)
		assert.True(t, strings.HasPrefix(info.ArrowType, "struct<"), info.ArrowType)
		assert.False(t, info.Renderable, "nested columns render as unsupported")
	}
	assert.Equal(t, "STRING", byName["address.street"].Type)
	assert.Equal(t, "INT32", byName["address.zip"].Type)

	tags := byName["tags"]
	assert.True(t, tags.Repeated)
	assert.Equal(t, "STRING", tags.Type)
	assert.False(t, tags.Renderable)
}

func TestExtractSchemaInfo_NotParquet(t *testing.T) {
	_, err := ExtractSchemaInfo([]byte("nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCreateReader)
}
