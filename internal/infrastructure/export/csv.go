// Package export renders report tables as CSV and XLSX files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopdesk/backend/internal/application/report"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVEncoder writes tables as RFC 4180 CSV
type CSVEncoder struct {
	// BOM prefixes the output with a UTF-8 byte order mark so spreadsheet
	// applications detect the encoding
	BOM bool
}

// NewCSVEncoder creates a CSV encoder that writes a byte order mark
func NewCSVEncoder() *CSVEncoder {
	return &CSVEncoder{BOM: true}
}

// Encode writes the header followed by every row
func (e *CSVEncoder) Encode(w io.Writer, table report.Table) error {
	if e.BOM {
		if _, err := w.Write(utf8BOM); err != nil {
			return err
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(table.Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range table.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ContentType returns the CSV media type
func (e *CSVEncoder) ContentType() string { return "text/csv" }

// Extension returns "csv"
func (e *CSVEncoder) Extension() string { return "csv" }

var _ report.TableEncoder = (*CSVEncoder)(nil)
