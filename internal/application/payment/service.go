package payment

import (
	"context"

	"github.com/google/uuid"
	appevent "github.com/shopdesk/backend/internal/application/event"
	"github.com/shopdesk/backend/internal/domain/order"
	"github.com/shopdesk/backend/internal/domain/payment"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopdesk/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Metrics receives a measurement for every recorded payment
type Metrics interface {
	RecordPayment(ctx context.Context, method string, amount valueobject.Money)
}

// Service records and queries payments
type Service struct {
	txManager      shared.TransactionManager
	paymentRepo    payment.Repository
	orderRepo      order.Repository
	eventPublisher shared.EventPublisher
	metrics        Metrics
	logger         *zap.Logger
}

// NewService creates a new payment Service
func NewService(
	txManager shared.TransactionManager,
	paymentRepo payment.Repository,
	orderRepo order.Repository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		txManager:   txManager,
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the business metrics recorder
func (s *Service) SetMetrics(metrics Metrics) {
	s.metrics = metrics
}

// Record appends a payment to an order's ledger
func (s *Service) Record(ctx context.Context, req RecordPaymentRequest) (resp *PaymentResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "record",
		telemetry.SpanAttrOrderID, req.OrderID,
		telemetry.SpanAttrPaymentMethod, req.PaymentMethod,
	)
	defer telemetry.EndSpan(span, &err)

	method, err := payment.ParseMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	var status payment.Status
	if req.Status != "" {
		if status, err = payment.ParseStatus(req.Status); err != nil {
			return nil, err
		}
	}

	var (
		recorded *payment.Payment
		matches  bool
	)
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orderRepo.FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}

		input := payment.RecordInput{
			OrderID:       o.ID,
			Method:        method,
			Status:        status,
			TransactionID: req.TransactionID,
			Notes:         req.Notes,
		}
		if req.Amount != nil {
			amount := valueobject.NewMoney(*req.Amount)
			input.Amount = &amount
		}

		p, err := payment.Record(input, o.TotalAmount)
		if err != nil {
			return err
		}
		if p.HasTransactionID() {
			exists, err := s.paymentRepo.ExistsByTransactionID(ctx, p.TransactionID)
			if err != nil {
				return err
			}
			if exists {
				return shared.NewConflictError("transaction_id", "Transaction ID already exists")
			}
		}
		if err := s.paymentRepo.Save(ctx, p); err != nil {
			return err
		}
		recorded = p
		matches = p.MatchesOrderTotal(o.TotalAmount)
		return nil
	})
	if err != nil {
		return nil, err
	}

	appevent.Publish(ctx, s.eventPublisher, s.logger, recorded)
	if s.metrics != nil {
		s.metrics.RecordPayment(ctx, string(recorded.Method), recorded.Amount)
	}

	fields := []zap.Field{
		zap.String("payment_id", recorded.ID.String()),
		zap.String("order_id", recorded.OrderID.String()),
		zap.String("method", string(recorded.Method)),
		zap.String("amount", recorded.Amount.String()),
	}
	if matches {
		s.logger.Info("Payment recorded", fields...)
	} else {
		s.logger.Warn("Payment recorded with amount differing from order total", fields...)
	}

	response := ToPaymentResponse(recorded)
	response.MatchesOrder = &matches
	return &response, nil
}

// UpdateStatus sets a payment's status. Any of the four literals may
// follow any other.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdatePaymentStatusRequest) (*PaymentResponse, error) {
	status, err := payment.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var (
		updated  *payment.Payment
		previous payment.Status
	)
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.paymentRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		previous = p.Status
		if err := p.UpdateStatus(status); err != nil {
			return err
		}
		if err := s.paymentRepo.Save(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	appevent.Publish(ctx, s.eventPublisher, s.logger, updated)

	response := ToPaymentResponse(updated)
	response.PreviousStatus = string(previous)
	return &response, nil
}

// GetByID retrieves a payment
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(p)
	return &response, nil
}

// List lists payments with the sum of every matching amount
func (s *Service) List(ctx context.Context, filter PaymentListFilter) (*PaymentListResponse, error) {
	domainFilter := ToDomainFilter(filter)

	payments, err := s.paymentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.paymentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	sum, err := s.paymentRepo.SumAmount(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	return &PaymentListResponse{
		Payments:    ToPaymentResponses(payments),
		Total:       total,
		TotalAmount: sum,
	}, nil
}

// ListByOrder lists the payments of one order, oldest first
func (s *Service) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]PaymentResponse, error) {
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponses(payments), nil
}

// ToDomainFilter maps list query parameters to a repository filter
func ToDomainFilter(filter PaymentListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Method != "" {
		domainFilter.Filters["method"] = filter.Method
	}
	if filter.OrderID != nil {
		domainFilter.Filters["order_id"] = *filter.OrderID
	}
	return domainFilter
}
