// Package export renders record lists as xlsx workbooks.
package export

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Column is one spreadsheet column. Value extracts the cell from a record.
type Column[T any] struct {
	Header string
	Value  func(T) any
}

// Spreadsheet describes a single-sheet workbook. Empty cells (nil, nil
// pointers and empty strings) are written as Placeholder.
type Spreadsheet[T any] struct {
	Sheet       string
	Placeholder string
	Columns     []Column[T]
}

// Build writes a header row followed by one row per record.
func (s Spreadsheet[T]) Build(rows []T) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(s.Columns))
	for i, col := range s.Columns {
		header[i] = col.Header
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for r, row := range rows {
		values := make([]interface{}, len(s.Columns))
		for i, col := range s.Columns {
			values[i] = s.cell(col.Value(row))
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", r+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s Spreadsheet[T]) cell(v any) any {
	if v == nil {
		return s.Placeholder
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return s.Placeholder
		}
		v = rv.Elem().Interface()
	}
	if str, ok := v.(string); ok && str == "" {
		return s.Placeholder
	}
	return v
}

// Attachment sends data as a downloadable workbook.
func Attachment(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, ContentType, data)
}
