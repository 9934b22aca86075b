package yoloconv

// Tabular output of the converted records.

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// ColumnKind is the value type of a table column.
type ColumnKind int

// The column kinds.
const (
	Text ColumnKind = iota
	Integer
	Real
)

// Column is a named, typed table column.
type Column struct {
	Name string
	Kind ColumnKind
}

// Table is a named table of rows. Every row holds one value per column, of type string, int or
// float64 according to the column kind.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]interface{}
}

// Table names.
const (
	UnifiedTableName   = "unified"
	COCOTableName      = "coco"
	PascalVOCTableName = "pascal_voc"
)

var (
	unifiedColumns = []Column{
		{"image_name", Text}, {"image_width", Integer}, {"image_height", Integer},
		{"label", Text}, {"x_center", Real}, {"y_center", Real}, {"width", Real},
		{"height", Real}, {"label_id", Integer},
	}
	cocoColumns = []Column{
		{"image_name", Text}, {"image_width", Integer}, {"image_height", Integer},
		{"label", Text}, {"label_id", Integer}, {"x_coco", Real}, {"y_coco", Real},
		{"width_coco", Real}, {"height_coco", Real},
	}
	vocColumns = []Column{
		{"image_name", Text}, {"image_width", Integer}, {"image_height", Integer},
		{"label", Text}, {"label_id", Integer}, {"xmin", Real}, {"ymin", Real}, {"xmax", Real},
		{"ymax", Real},
	}
)

// UnifiedTable returns the unified table for records.
func UnifiedTable(records []JoinedRecord) Table {
	t := Table{Name: UnifiedTableName, Columns: unifiedColumns,
		Rows: make([][]interface{}, len(records))}
	for i, r := range records {
		t.Rows[i] = []interface{}{r.ImageName, r.ImageWidth, r.ImageHeight, r.Label, r.XCenter,
			r.YCenter, r.Width, r.Height, r.LabelID}
	}
	return t
}

// COCOTable returns the COCO table for records.
func COCOTable(records []COCORecord) Table {
	t := Table{Name: COCOTableName, Columns: cocoColumns, Rows: make([][]interface{}, len(records))}
	for i, r := range records {
		t.Rows[i] = []interface{}{r.ImageName, r.ImageWidth, r.ImageHeight, r.Label, r.LabelID,
			r.XCOCO, r.YCOCO, r.WidthCOCO, r.HeightCOCO}
	}
	return t
}

// VOCTable returns the Pascal VOC table for records.
func VOCTable(records []VOCRecord) Table {
	t := Table{Name: PascalVOCTableName, Columns: vocColumns,
		Rows: make([][]interface{}, len(records))}
	for i, r := range records {
		t.Rows[i] = []interface{}{r.ImageName, r.ImageWidth, r.ImageHeight, r.Label, r.LabelID,
			r.XMin, r.YMin, r.XMax, r.YMax}
	}
	return t
}

// Header returns the column names.
func (t Table) Header() []string {
	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Name
	}
	return header
}

// WriteCSV writes t as CSV, with a header line, to the file at path.
func WriteCSV(path string, t Table) error {
	return createFile(path, func(w io.Writer) error {
		return EncodeCSV(w, t)
	})
}

// EncodeCSV writes t as CSV, with a header line, to w.
func EncodeCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return err
	}

	fields := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row {
			s, err := formatValue(v)
			if err != nil {
				return fmt.Errorf("table %s, column %s: %w", t.Name, t.Columns[i].Name, err)
			}
			fields[i] = s
		}
		if err := cw.Write(fields); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatValue formats a table value for text output. Floats use the shortest exact
// representation.
func formatValue(v interface{}) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("unsupported value type %T", v)
}

// WriteJSON writes v, typically a slice of records, as indented JSON to the file at path.
func WriteJSON(path string, v interface{}) error {
	enc, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return createFile(path, func(w io.Writer) error {
		_, err := w.Write(enc)
		return err
	})
}
