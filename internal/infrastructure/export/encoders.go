package export

import "github.com/shopdesk/backend/internal/application/report"

// Encoders returns the encoder for every supported export format
func Encoders() map[report.Format]report.TableEncoder {
	return map[report.Format]report.TableEncoder{
		report.FormatCSV:  NewCSVEncoder(),
		report.FormatXLSX: NewXLSXEncoder(),
	}
}
