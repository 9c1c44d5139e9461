package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/shopdesk/backend/internal/application/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func sampleTable() report.Table {
	return report.Table{
		Sheet:  "Orders",
		Header: []string{"Order ID", "Status", "Total"},
		Rows: [][]string{
			{"8d1f", "pending", "19.99"},
			{"a02c", "shipped", "1,250.00"},
			{"ff31", "cancelled", "note with \"quotes\"\nand newline"},
		},
	}
}

func TestCSVEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVEncoder().Encode(&buf, sampleTable()))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, utf8BOM))

	records, err := csv.NewReader(bytes.NewReader(data[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Order ID", "Status", "Total"}, records[0])
	assert.Equal(t, "1,250.00", records[2][2])
	assert.Equal(t, "note with \"quotes\"\nand newline", records[3][2])
}

func TestCSVEncoder_WithoutBOM(t *testing.T) {
	var buf bytes.Buffer
	enc := &CSVEncoder{}
	require.NoError(t, enc.Encode(&buf, report.Table{Header: []string{"a", "b"}}))

	assert.Equal(t, "a,b\n", buf.String())
	assert.Equal(t, "text/csv", enc.ContentType())
	assert.Equal(t, "csv", enc.Extension())
}

func TestXLSXEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewXLSXEncoder()
	require.NoError(t, enc.Encode(&buf, sampleTable()))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Orders", sheet.Name)
	require.Len(t, sheet.Rows, 4)
	assert.Equal(t, "Order ID", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "shipped", sheet.Rows[2].Cells[1].Value)
	assert.Equal(t, "1,250.00", sheet.Rows[2].Cells[2].Value)

	assert.Equal(t, "xlsx", enc.Extension())
	assert.Contains(t, enc.ContentType(), "spreadsheetml")
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Sheet1", sheetName(""))
	assert.Equal(t, "Payments", sheetName("Payments"))
	assert.Len(t, []rune(sheetName(strings.Repeat("é", 40))), maxSheetName)
}

func TestColumnWidth(t *testing.T) {
	table := report.Table{
		Header: []string{"ID", "Notes"},
		Rows:   [][]string{{"1", strings.Repeat("x", 100)}, {"22"}},
	}
	assert.Equal(t, float64(4), columnWidth(table, 0))
	assert.Equal(t, float64(62), columnWidth(table, 1))
}

func TestEncoders(t *testing.T) {
	encoders := Encoders()
	require.Len(t, encoders, 2)
	assert.IsType(t, &CSVEncoder{}, encoders[report.FormatCSV])
	assert.IsType(t, &XLSXEncoder{}, encoders[report.FormatXLSX])
}
