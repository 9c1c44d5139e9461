package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strconv"
	"time"

	orderapp "github.com/shopdesk/backend/internal/application/order"
	paymentapp "github.com/shopdesk/backend/internal/application/payment"
	"github.com/shopdesk/backend/internal/domain/order"
	"github.com/shopdesk/backend/internal/domain/payment"
	"github.com/shopdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format is an export file format
type Format string

// Supported export formats
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const exportPageSize = 500

// ParseFormat validates an export format literal. An empty value means CSV.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX:
		return Format(value), nil
	default:
		return "", shared.NewFieldValidationError("format", fmt.Sprintf("Unsupported export format %q", value))
	}
}

// Table is a rectangular export: one header row followed by data rows
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]string
}

// TableEncoder writes a table in one file format
type TableEncoder interface {
	Encode(w io.Writer, table Table) error
	ContentType() string
	Extension() string
}

// ArchiveStorage stores generated export files
type ArchiveStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}

// ArchiveLinker is implemented by archives that can hand out temporary
// download links
type ArchiveLinker interface {
	DownloadURL(ctx context.Context, key string) (string, error)
}

// ExportRequest selects the format and whether the file is archived
type ExportRequest struct {
	Format  string `form:"format" binding:"omitempty,oneof=csv xlsx"`
	Archive bool   `form:"archive"`
}

// ExportResult is a generated export file
type ExportResult struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Rows        int    `json:"rows"`
	ArchiveKey  string `json:"archive_key,omitempty"`
	ArchiveURL  string `json:"archive_url,omitempty"`
	Data        []byte `json:"-"`
}

// ExportService renders order and payment listings as downloadable files
type ExportService struct {
	orderRepo   order.Repository
	paymentRepo payment.Repository
	encoders    map[Format]TableEncoder
	archive     ArchiveStorage
	prefix      string
	logger      *zap.Logger
	now         func() time.Time
}

// NewExportService creates a new ExportService
func NewExportService(
	orderRepo order.Repository,
	paymentRepo payment.Repository,
	encoders map[Format]TableEncoder,
	logger *zap.Logger,
) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		encoders:    encoders,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// SetArchive enables archiving under prefix in object storage
func (s *ExportService) SetArchive(archive ArchiveStorage, prefix string) {
	s.archive = archive
	s.prefix = prefix
}

// ExportOrders exports every order matching the list filter. Pagination
// in the filter is ignored.
func (s *ExportService) ExportOrders(ctx context.Context, filter orderapp.OrderListFilter, req ExportRequest) (*ExportResult, error) {
	format, encoder, err := s.encoder(req.Format)
	if err != nil {
		return nil, err
	}

	domainFilter := orderapp.ToDomainFilter(filter)
	orders, err := collect(ctx, domainFilter, s.orderRepo.FindAll)
	if err != nil {
		return nil, err
	}

	table := Table{
		Sheet:  "Orders",
		Header: []string{"Order ID", "Customer ID", "Status", "Items", "Quantity", "Total Amount", "Placed At", "Created At"},
		Rows:   make([][]string, 0, len(orders)),
	}
	for _, o := range orders {
		table.Rows = append(table.Rows, []string{
			o.ID.String(),
			o.CustomerID.String(),
			StatusLabel(o.Status.String()),
			strconv.Itoa(o.ItemCount()),
			strconv.Itoa(o.TotalQuantity()),
			o.TotalAmount.String(),
			formatTime(o.PlacedAt),
			o.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return s.render(ctx, "orders", format, encoder, table, req.Archive)
}

// ExportPayments exports every payment matching the list filter
func (s *ExportService) ExportPayments(ctx context.Context, filter paymentapp.PaymentListFilter, req ExportRequest) (*ExportResult, error) {
	format, encoder, err := s.encoder(req.Format)
	if err != nil {
		return nil, err
	}

	domainFilter := paymentapp.ToDomainFilter(filter)
	payments, err := collect(ctx, domainFilter, s.paymentRepo.FindAll)
	if err != nil {
		return nil, err
	}

	table := Table{
		Sheet:  "Payments",
		Header: []string{"Payment ID", "Order ID", "Method", "Amount", "Status", "Transaction ID", "Notes", "Created At"},
		Rows:   make([][]string, 0, len(payments)),
	}
	for _, p := range payments {
		table.Rows = append(table.Rows, []string{
			p.ID.String(),
			p.OrderID.String(),
			p.Method.Label(),
			p.Amount.String(),
			StatusLabel(string(p.Status)),
			p.TransactionID,
			p.Notes,
			p.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return s.render(ctx, "payments", format, encoder, table, req.Archive)
}

// StatusLabel turns a status literal into its display label
func StatusLabel(status string) string {
	return cases.Title(language.English).String(status)
}

func (s *ExportService) encoder(value string) (Format, TableEncoder, error) {
	format, err := ParseFormat(value)
	if err != nil {
		return "", nil, err
	}
	encoder, ok := s.encoders[format]
	if !ok {
		return "", nil, shared.NewFieldValidationError("format", fmt.Sprintf("Export format %q is not available", format))
	}
	return format, encoder, nil
}

func (s *ExportService) render(ctx context.Context, kind string, format Format, encoder TableEncoder, table Table, archive bool) (*ExportResult, error) {
	var buf bytes.Buffer
	if err := encoder.Encode(&buf, table); err != nil {
		return nil, fmt.Errorf("encode %s export: %w", kind, err)
	}

	now := s.now()
	result := &ExportResult{
		FileName:    fmt.Sprintf("%s-%s.%s", kind, now.Format("20060102-150405"), encoder.Extension()),
		ContentType: encoder.ContentType(),
		Rows:        len(table.Rows),
		Data:        buf.Bytes(),
	}

	if archive {
		if s.archive == nil {
			return nil, shared.NewInvalidStateError("ARCHIVE_DISABLED", "Export archiving is not configured")
		}
		key := path.Join(s.prefix, kind, now.Format("2006/01/02"), result.FileName)
		if err := s.archive.Upload(ctx, key, result.Data, result.ContentType); err != nil {
			return nil, fmt.Errorf("archive %s export: %w", kind, err)
		}
		result.ArchiveKey = key

		if linker, ok := s.archive.(ArchiveLinker); ok {
			url, err := linker.DownloadURL(ctx, key)
			if err != nil {
				s.logger.Warn("Failed to sign archive link", zap.String("key", key), zap.Error(err))
			} else {
				result.ArchiveURL = url
			}
		}
	}

	s.logger.Info("Export generated",
		zap.String("kind", kind),
		zap.String("format", string(format)),
		zap.Int("rows", result.Rows),
		zap.String("archive_key", result.ArchiveKey))
	return result, nil
}

// collect pages through find until a short page is returned
func collect[T any](ctx context.Context, filter shared.Filter, find func(context.Context, shared.Filter) ([]T, error)) ([]T, error) {
	filter.PageSize = exportPageSize
	var all []T
	for page := 1; ; page++ {
		filter.Page = page
		rows, err := find(ctx, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
		if len(rows) < exportPageSize {
			return all, nil
		}
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
