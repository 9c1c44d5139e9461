package export

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/shopdesk/backend/internal/application/report"
	"github.com/tealeg/xlsx"
)

const maxSheetName = 31

// XLSXEncoder writes tables as a single-sheet Excel workbook with a bold
// header row
type XLSXEncoder struct{}

// NewXLSXEncoder creates an XLSX encoder
func NewXLSXEncoder() *XLSXEncoder {
	return &XLSXEncoder{}
}

// Encode writes the workbook to w
func (e *XLSXEncoder) Encode(w io.Writer, table report.Table) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName(table.Sheet))
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	headerStyle := xlsx.NewStyle()
	headerStyle.Font.Bold = true
	headerStyle.ApplyFont = true

	header := sheet.AddRow()
	for _, title := range table.Header {
		cell := header.AddCell()
		cell.SetString(title)
		cell.SetStyle(headerStyle)
	}

	for _, values := range table.Rows {
		row := sheet.AddRow()
		for _, v := range values {
			row.AddCell().SetString(v)
		}
	}

	for i := range table.Header {
		if err := sheet.SetColWidth(i, i, columnWidth(table, i)); err != nil {
			return fmt.Errorf("size column %d: %w", i, err)
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ContentType returns the XLSX media type
func (e *XLSXEncoder) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension returns "xlsx"
func (e *XLSXEncoder) Extension() string { return "xlsx" }

// sheetName trims name to the workbook limit, defaulting to "Sheet1"
func sheetName(name string) string {
	if name == "" {
		return "Sheet1"
	}
	if utf8.RuneCountInString(name) <= maxSheetName {
		return name
	}
	return string([]rune(name)[:maxSheetName])
}

// columnWidth fits column i to its widest value, capped at 60 characters
func columnWidth(table report.Table, i int) float64 {
	width := utf8.RuneCountInString(table.Header[i])
	for _, row := range table.Rows {
		if i < len(row) {
			width = max(width, utf8.RuneCountInString(row[i]))
		}
	}
	return float64(min(width, 60) + 2)
}

var _ report.TableEncoder = (*XLSXEncoder)(nil)
