package order

import (
	"context"

	"github.com/google/uuid"
	appevent "github.com/shopdesk/backend/internal/application/event"
	"github.com/shopdesk/backend/internal/domain/catalog"
	"github.com/shopdesk/backend/internal/domain/customer"
	"github.com/shopdesk/backend/internal/domain/order"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// OrderService handles order queries and staff order operations
type OrderService struct {
	txManager      shared.TransactionManager
	orderRepo      order.Repository
	customerRepo   customer.Repository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
	metrics        Metrics
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	txManager shared.TransactionManager,
	orderRepo order.Repository,
	customerRepo customer.Repository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		txManager:    txManager,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the business metrics recorder
func (s *OrderService) SetMetrics(metrics Metrics) {
	s.metrics = metrics
}

// GetByID retrieves any order (staff)
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// GetForCustomer retrieves an order owned by the customer. Orders of other
// customers are reported as not found.
func (s *OrderService) GetForCustomer(ctx context.Context, customerID, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.CustomerID != customerID {
		return nil, shared.NewNotFoundError("order", id)
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// List lists orders with status, customer, product, search and date filters
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := ToDomainFilter(filter)

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses, total, nil
}

// ListForCustomer lists the customer's own orders
func (s *OrderService) ListForCustomer(ctx context.Context, customerID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	filter.CustomerID = &customerID
	return s.List(ctx, filter)
}

// StatusSummary counts orders per status. Every status is present.
func (s *OrderService) StatusSummary(ctx context.Context) (*StatusSummaryResponse, error) {
	counts, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	response := &StatusSummaryResponse{Counts: make(map[string]int64, 5)}
	for _, status := range order.AllStatuses() {
		response.Counts[status.String()] = counts[status]
		response.Total += counts[status]
	}
	return response, nil
}

// Create enters an order on behalf of a customer. Prices are captured from
// the catalog and stock is checked per line as for a cart. A pending order
// becomes the customer's cart, so it is rejected while one already exists.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	status := order.StatusPending
	if req.Status != "" {
		parsed, err := order.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	var created *order.Order
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.customerRepo.FindByIDForUpdate(ctx, req.CustomerID); err != nil {
			return err
		}
		if status == order.StatusPending {
			if err := s.requireNoOtherPending(ctx, req.CustomerID, uuid.Nil); err != nil {
				return err
			}
		}

		ids := make([]uuid.UUID, 0, len(req.Items))
		for _, item := range req.Items {
			ids = append(ids, item.ProductID)
		}
		products, err := s.productRepo.FindByIDs(ctx, ids)
		if err != nil {
			return err
		}

		o, err := order.NewCart(req.CustomerID)
		if err != nil {
			return err
		}
		for _, item := range req.Items {
			product, ok := products[item.ProductID]
			if !ok {
				return shared.NewNotFoundError("product", item.ProductID)
			}
			if _, err := o.AddItem(snapshotOf(product), item.Quantity); err != nil {
				return err
			}
		}
		if err := o.ChangeStatus(status); err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	appevent.Publish(ctx, s.eventPublisher, s.logger, created)

	s.logger.Info("Order created by staff",
		zap.String("order_id", created.ID.String()),
		zap.String("customer_id", created.CustomerID.String()),
		zap.String("status", created.Status.String()),
		zap.String("total_amount", created.TotalAmount.String()))

	response := ToOrderResponse(created)
	return &response, nil
}

// UpdateStatus sets an order status on behalf of staff. Any of the five
// status literals is accepted; anything else is rejected without change.
// Moving an order back to pending fails while the customer has another cart.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (resp *StatusUpdateResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "update_status",
		telemetry.SpanAttrOrderID, id,
		telemetry.SpanAttrOrderStatus, req.Status,
	)
	defer telemetry.EndSpan(span, &err)

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var (
		updated  *order.Order
		previous order.Status
	)
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orderRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		previous = o.Status
		if status == order.StatusPending && previous != order.StatusPending {
			if _, err := s.customerRepo.FindByIDForUpdate(ctx, o.CustomerID); err != nil {
				return err
			}
			if err := s.requireNoOtherPending(ctx, o.CustomerID, o.ID); err != nil {
				return err
			}
		}
		if err := o.ChangeStatus(status); err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	appevent.Publish(ctx, s.eventPublisher, s.logger, updated)
	if s.metrics != nil && previous != status {
		s.metrics.RecordOrderStatusChange(ctx, previous.String(), status.String())
	}

	follows := previous.CanTransitionTo(status)
	if !follows && previous != status {
		s.logger.Warn("Order status set outside the forward lifecycle",
			zap.String("order_id", id.String()),
			zap.String("from", previous.String()),
			zap.String("to", status.String()))
	}

	return &StatusUpdateResponse{
		Order:            ToOrderResponse(updated),
		PreviousStatus:   previous.String(),
		FollowsLifecycle: follows,
	}, nil
}

// requireNoOtherPending rejects a write that would leave the customer with
// a pending order other than orderID. The pending order is the customer's
// cart, so there is at most one. Callers hold the customer row lock.
func (s *OrderService) requireNoOtherPending(ctx context.Context, customerID, orderID uuid.UUID) error {
	cart, err := s.orderRepo.FindPendingByCustomer(ctx, customerID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil
		}
		return err
	}
	if cart.ID == orderID {
		return nil
	}
	return shared.NewInvalidStateError("PENDING_ORDER_EXISTS",
		"Customer already has a pending order ("+cart.ID.String()+")")
}

// ToDomainFilter maps list query parameters to a repository filter
func ToDomainFilter(filter OrderListFilter) shared.Filter {
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
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}
	if filter.From != nil {
		domainFilter.Filters["created_from"] = *filter.From
	}
	if filter.To != nil {
		domainFilter.Filters["created_to"] = *filter.To
	}
	return domainFilter
}
