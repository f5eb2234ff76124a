// Package export writes datasets and pivot tables to columnar and text
// formats.
//
// Datasets are exported in long format: one row per cell, one string
// column per dimension holding the category label, then a nullable
// "value" column and a nullable "status" column. Pivot tables produced by
// jsonstat.Dataset.Table are exported as they are laid out.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	json "github.com/goccy/go-json"

	"github.com/robert-malhotra/go-jsonstat/jsonstat"
)

// Format represents the supported export formats
type Format int

const (
	FormatParquet Format = iota
	FormatCSV
	FormatJSON
)

var formatNames = map[Format]string{
	FormatParquet: "parquet",
	FormatCSV:     "csv",
	FormatJSON:    "json",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if strings.EqualFold(n, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown export format %q", name)
}

// Column names of the measure columns appended after the dimensions.
const (
	ValueColumn  = "value"
	StatusColumn = "status"
)

// Schema returns the long-format schema for ds.
func Schema(ds *jsonstat.Dataset) (*arrow.Schema, error) {
	ids := ds.IDs()
	fields := make([]arrow.Field, 0, len(ids)+2)
	for _, id := range ids {
		if id == ValueColumn || id == StatusColumn {
			return nil, fmt.Errorf("dimension id %q collides with a measure column", id)
		}
		fields = append(fields, arrow.Field{Name: id, Type: arrow.BinaryTypes.String})
	}
	fields = append(fields,
		arrow.Field{Name: ValueColumn, Type: arrow.PrimitiveTypes.Float64, Nullable: true},
		arrow.Field{Name: StatusColumn, Type: arrow.BinaryTypes.String, Nullable: true},
	)
	return arrow.NewSchema(fields, nil), nil
}

// Record builds an Arrow record holding every cell of ds in offset order.
// The caller must release the record.
func Record(ds *jsonstat.Dataset, mem memory.Allocator) (arrow.Record, error) {
	schema, err := Schema(ds)
	if err != nil {
		return nil, err
	}

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	b.Reserve(ds.NumCells())

	ndims := ds.NumDimensions()
	valueB := b.Field(ndims).(*array.Float64Builder)
	statusB := b.Field(ndims + 1).(*array.StringBuilder)

	err = ds.Walk(func(coord []int, cell jsonstat.Cell) error {
		for i, label := range cell.Labels {
			b.Field(i).(*array.StringBuilder).Append(label)
		}

		if f, ok := cell.Value.Float64(); ok {
			valueB.Append(f)
		} else {
			valueB.AppendNull()
		}

		code, ok, err := ds.Status(coord)
		if err != nil {
			return err
		}
		if ok {
			statusB.Append(code)
		} else {
			statusB.AppendNull()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("building record: %w", err)
	}

	return b.NewRecord(), nil
}

// WriteParquet writes every cell of ds to w as a Snappy compressed Parquet
// file.
func WriteParquet(w io.Writer, ds *jsonstat.Dataset) error {
	rec, err := Record(ds, memory.NewGoAllocator())
	if err != nil {
		return err
	}
	defer rec.Release()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(rec.Schema(), w, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}

	if err := writer.Write(rec); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write record to parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}

// WriteCellsCSV writes every cell of ds to w in long format with a header
// row of column names.
func WriteCellsCSV(w io.Writer, ds *jsonstat.Dataset) error {
	rec, err := Record(ds, memory.NewGoAllocator())
	if err != nil {
		return err
	}
	defer rec.Release()

	writer := csv.NewWriter(w)

	schema := rec.Schema()
	headers := make([]string, schema.NumFields())
	for i, field := range schema.Fields() {
		headers[i] = field.Name
	}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	row := make([]string, rec.NumCols())
	for rowIdx := 0; rowIdx < int(rec.NumRows()); rowIdx++ {
		for colIdx, col := range rec.Columns() {
			row[colIdx] = formatValue(col, rowIdx)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatValue converts an Arrow column value at a specific position to a string
func formatValue(col arrow.Array, pos int) string {
	if col.IsNull(pos) {
		return ""
	}
	switch c := col.(type) {
	case *array.String:
		return c.Value(pos)
	case *array.Float64:
		return jsonstat.NumberValue(c.Value(pos)).String()
	default:
		return col.ValueStr(pos)
	}
}

// WriteCSV writes a pivot table grid to w, one record per row.
func WriteCSV(w io.Writer, grid [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(grid); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// WriteJSON writes a pivot table grid to w as an indented JSON array of
// rows.
func WriteJSON(w io.Writer, grid [][]string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(grid); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
