package reader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/pqview/format"
)

// SchemaInfo describes a single leaf column of a Parquet file and how the
// viewer will render it.
type SchemaInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	PhysicalType string `json:"physical_type"`
	LogicalType  string `json:"logical_type"`
	Required     bool   `json:"required"`
	Optional     bool   `json:"optional"`
	Repeated     bool   `json:"repeated"`

	// ArrowType is the decoded type of the top-level column this leaf
	// belongs to, e.g. "date32[day]" or "timestamp[ms]".
	ArrowType string `json:"arrow_type"`

	// Renderable is false when cells of the column render as
	// "Unsupported type: ...".
	Renderable bool `json:"renderable"`
}

// ExtractSchemaInfo lists the leaf columns of a Parquet file held in memory.
//
// Nested fields use dot notation (e.g. "address.street"). Each leaf is
// annotated with the Arrow type of its top-level column, which is the type
// the format package dispatches on. Returns an error wrapping ErrCreateReader
// if data is not a Parquet file.
func ExtractSchemaInfo(data []byte) ([]SchemaInfo, error) {
	pf, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateReader, err)
	}

	arrowTypes, err := topLevelArrowTypes(data)
	if err != nil {
		return nil, err
	}

	var infos []SchemaInfo
	for _, field := range pf.Schema().Fields() {
		dt := arrowTypes[field.Name()]
		infos = appendLeaves(infos, field, "", false, dt)
	}

	return infos, nil
}

// topLevelArrowTypes maps each top-level column name to the Arrow type
// pqarrow decodes it as.
func topLevelArrowTypes(data []byte) (map[string]arrow.DataType, error) {
	pf, err := file.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateReader, err)
	}
	defer func() { _ = pf.Close() }()

	fr, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildReader, err)
	}
	schema, err := fr.Schema()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildReader, err)
	}

	types := make(map[string]arrow.DataType, schema.NumFields())
	for _, f := range schema.Fields() {
		types[f.Name] = f.Type
	}
	return types, nil
}

// appendLeaves walks field depth-first and appends one SchemaInfo per leaf.
// Repetition is inherited from any repeated ancestor.
func appendLeaves(infos []SchemaInfo, field parquet.Field, prefix string, parentRepeated bool, top arrow.DataType) []SchemaInfo {
	name := field.Name()
	if prefix != "" {
		name = prefix + "." + name
	}
	repeated := parentRepeated || field.Repeated()

	if children := field.Fields(); len(children) > 0 {
		for _, child := range children {
			infos = appendLeaves(infos, child, name, repeated, top)
		}
		return infos
	}

	info := SchemaInfo{
		Name:         name,
		Type:         displayType(field),
		PhysicalType: physicalType(field),
		LogicalType:  logicalType(field),
		Required:     field.Required(),
		Optional:     field.Optional(),
		Repeated:     repeated,
	}
	if top != nil {
		info.ArrowType = top.String()
		info.Renderable = format.Supports(top)
	}

	return append(infos, info)
}

var physicalNames = map[parquet.Kind]string{
	parquet.Boolean:           "BOOLEAN",
	parquet.Int32:             "INT32",
	parquet.Int64:             "INT64",
	parquet.Int96:             "INT96",
	parquet.Float:             "FLOAT",
	parquet.Double:            "DOUBLE",
	parquet.ByteArray:         "BYTE_ARRAY",
	parquet.FixedLenByteArray: "FIXED_LEN_BYTE_ARRAY",
}

func physicalType(field parquet.Field) string {
	if field.Type() == nil {
		return "GROUP"
	}
	if name, ok := physicalNames[field.Type().Kind()]; ok {
		return name
	}
	return "UNKNOWN"
}

func logicalType(field parquet.Field) string {
	if field.Type() == nil {
		return ""
	}
	lt := field.Type().LogicalType()
	if lt == nil {
		return ""
	}
	return lt.String()
}

// displayType condenses the physical and logical type into one name.
// Logical annotations win; INT annotations and unannotated columns fall back
// to the physical type, with FLOAT and DOUBLE spelled FLOAT32 and FLOAT64.
func displayType(field parquet.Field) string {
	if field.Type() == nil {
		return "GROUP"
	}

	lt := logicalType(field)
	switch {
	case lt == "STRING" || lt == "UTF8":
		return "STRING"
	case strings.HasPrefix(lt, "DATE"):
		return "DATE"
	case strings.HasPrefix(lt, "TIMESTAMP"):
		return "TIMESTAMP"
	case strings.HasPrefix(lt, "TIME"):
		return "TIME"
	case strings.HasPrefix(lt, "DECIMAL"):
		return "DECIMAL"
	case lt == "ENUM" || lt == "UUID" || lt == "JSON" || lt == "BSON":
		return lt
	}

	switch field.Type().Kind() {
	case parquet.Float:
		return "FLOAT32"
	case parquet.Double:
		return "FLOAT64"
	}
	return physicalType(field)
}
