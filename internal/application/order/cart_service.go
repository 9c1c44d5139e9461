package order

import (
	"context"

	"github.com/google/uuid"
	appevent "github.com/shopdesk/backend/internal/application/event"
	"github.com/shopdesk/backend/internal/domain/catalog"
	"github.com/shopdesk/backend/internal/domain/customer"
	"github.com/shopdesk/backend/internal/domain/order"
	"github.com/shopdesk/backend/internal/domain/payment"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopdesk/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Metrics receives business measurements from order operations
type Metrics interface {
	RecordCheckout(ctx context.Context, total valueobject.Money, itemCount int)
	RecordOrderStatusChange(ctx context.Context, from, to string)
}

// CartService runs the customer-facing cart operations. The cart is the
// customer's most recent pending order, created on first add. Every
// operation runs in one transaction that first locks the customer row, so
// concurrent requests of one customer are serialized.
type CartService struct {
	txManager      shared.TransactionManager
	customerRepo   customer.Repository
	productRepo    catalog.ProductRepository
	orderRepo      order.Repository
	paymentRepo    payment.Repository
	eventPublisher shared.EventPublisher
	metrics        Metrics
	logger         *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(
	txManager shared.TransactionManager,
	customerRepo customer.Repository,
	productRepo catalog.ProductRepository,
	orderRepo order.Repository,
	paymentRepo payment.Repository,
	logger *zap.Logger,
) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		txManager:    txManager,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher
func (s *CartService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the business metrics recorder
func (s *CartService) SetMetrics(metrics Metrics) {
	s.metrics = metrics
}

// GetCart returns the customer's cart. No row is created on read.
func (s *CartService) GetCart(ctx context.Context, customerID uuid.UUID) (*CartResponse, error) {
	cart, err := s.orderRepo.FindPendingByCustomer(ctx, customerID)
	if err != nil {
		if shared.IsNotFound(err) {
			response := ToCartResponse(nil)
			return &response, nil
		}
		return nil, err
	}
	response := ToCartResponse(cart)
	return &response, nil
}

// AddItem adds units of a product, creating the cart if needed. The
// resulting line quantity is checked against the product's stock; on
// failure nothing is written.
func (s *CartService) AddItem(ctx context.Context, customerID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	var cart *order.Order
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.lockCustomer(ctx, customerID); err != nil {
			return err
		}

		product, err := s.productRepo.FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}

		cart, err = s.loadOrCreateCart(ctx, customerID)
		if err != nil {
			return err
		}

		if _, err := cart.AddItem(snapshotOf(product), req.Quantity); err != nil {
			return err
		}
		return s.orderRepo.Save(ctx, cart)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Cart item added",
		zap.String("customer_id", customerID.String()),
		zap.String("order_id", cart.ID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.Int("quantity", req.Quantity))

	response := ToCartResponse(cart)
	return &response, nil
}

// UpdateItem sets the quantity of a cart line
func (s *CartService) UpdateItem(ctx context.Context, customerID, itemID uuid.UUID, req UpdateItemRequest) (*CartResponse, error) {
	var cart *order.Order
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.lockCustomer(ctx, customerID); err != nil {
			return err
		}

		var err error
		cart, err = s.findCart(ctx, customerID)
		if err != nil {
			return err
		}
		item := cart.GetItem(itemID)
		if item == nil {
			return shared.NewNotFoundError("cart item", itemID)
		}

		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if err := cart.UpdateItemQuantity(itemID, req.Quantity, product.StockQuantity); err != nil {
			return err
		}
		return s.orderRepo.Save(ctx, cart)
	})
	if err != nil {
		return nil, err
	}

	response := ToCartResponse(cart)
	return &response, nil
}

// RemoveItem deletes a cart line. Removing the last line leaves an empty
// cart with a zero total.
func (s *CartService) RemoveItem(ctx context.Context, customerID, itemID uuid.UUID) (*CartResponse, error) {
	var cart *order.Order
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.lockCustomer(ctx, customerID); err != nil {
			return err
		}

		var err error
		cart, err = s.findCart(ctx, customerID)
		if err != nil {
			return err
		}
		if err := cart.RemoveItem(itemID); err != nil {
			return err
		}
		return s.orderRepo.Save(ctx, cart)
	})
	if err != nil {
		return nil, err
	}

	response := ToCartResponse(cart)
	return &response, nil
}

// Checkout places the cart: pending → processing. Stock is not re-checked.
// With a payment method, a pending payment for the order total is recorded
// in the same transaction.
func (s *CartService) Checkout(ctx context.Context, customerID uuid.UUID, req CheckoutRequest) (resp *CheckoutResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "checkout", telemetry.SpanAttrCustomerID, customerID)
	defer telemetry.EndSpan(span, &err)

	var (
		placed  *order.Order
		pending *payment.Payment
	)
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels(telemetry.OperationCheckout, nil), func(ctx context.Context) {
		err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := s.lockCustomer(ctx, customerID); err != nil {
				return err
			}

			cart, err := s.checkoutTarget(ctx, customerID, req.OrderID)
			if err != nil {
				return err
			}
			if err := cart.Checkout(); err != nil {
				return err
			}
			if err := s.orderRepo.Save(ctx, cart); err != nil {
				return err
			}
			placed = cart

			if req.PaymentMethod == "" {
				return nil
			}
			method, err := payment.ParseMethod(req.PaymentMethod)
			if err != nil {
				return err
			}
			pending, err = payment.Record(payment.RecordInput{
				OrderID:       cart.ID,
				Method:        method,
				TransactionID: req.TransactionID,
			}, cart.TotalAmount)
			if err != nil {
				return err
			}
			return s.paymentRepo.Save(ctx, pending)
		})
	})
	if err != nil {
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, placed.ID)
	if pending != nil {
		appevent.Publish(ctx, s.eventPublisher, s.logger, placed, pending)
	} else {
		appevent.Publish(ctx, s.eventPublisher, s.logger, placed)
	}
	if s.metrics != nil {
		s.metrics.RecordCheckout(ctx, placed.TotalAmount, placed.ItemCount())
	}

	s.logger.Info("Order checked out",
		zap.String("customer_id", customerID.String()),
		zap.String("order_id", placed.ID.String()),
		zap.String("total_amount", placed.TotalAmount.String()),
		zap.Bool("payment_recorded", pending != nil))

	return &CheckoutResponse{
		Order:   ToOrderResponse(placed),
		Payment: toPaymentSummary(pending),
	}, nil
}

// lockCustomer loads the customer row FOR UPDATE and checks the account
func (s *CartService) lockCustomer(ctx context.Context, customerID uuid.UUID) error {
	c, err := s.customerRepo.FindByIDForUpdate(ctx, customerID)
	if err != nil {
		return err
	}
	if !c.IsActive {
		return shared.NewInvalidStateError("CUSTOMER_INACTIVE", "Customer account is deactivated")
	}
	return nil
}

func (s *CartService) findCart(ctx context.Context, customerID uuid.UUID) (*order.Order, error) {
	cart, err := s.orderRepo.FindPendingByCustomer(ctx, customerID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewNotFoundError("cart for customer", customerID)
		}
		return nil, err
	}
	return cart, nil
}

func (s *CartService) loadOrCreateCart(ctx context.Context, customerID uuid.UUID) (*order.Order, error) {
	cart, err := s.orderRepo.FindPendingByCustomer(ctx, customerID)
	if err == nil {
		return cart, nil
	}
	if !shared.IsNotFound(err) {
		return nil, err
	}
	return order.NewCart(customerID)
}

func snapshotOf(p *catalog.Product) order.ProductSnapshot {
	return order.ProductSnapshot{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		IsActive:      p.IsActive,
	}
}

// checkoutTarget returns the order named by orderID when the client passes
// one, otherwise the customer's cart. Naming an order that was already
// placed lets Order.Checkout reject the repeat as an invalid state.
func (s *CartService) checkoutTarget(ctx context.Context, customerID uuid.UUID, orderID *uuid.UUID) (*order.Order, error) {
	if orderID == nil {
		cart, err := s.orderRepo.FindPendingByCustomer(ctx, customerID)
		if shared.IsNotFound(err) {
			return nil, shared.NewValidationError("EMPTY_CART", "Cannot check out an empty cart")
		}
		return cart, err
	}

	o, err := s.orderRepo.FindByID(ctx, *orderID)
	if err != nil {
		return nil, err
	}
	if o.CustomerID != customerID {
		return nil, shared.NewNotFoundError("order", *orderID)
	}
	return o, nil
}
