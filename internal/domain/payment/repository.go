package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// Repository defines the interface for payment persistence
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByOrder lists the payments recorded against an order, oldest first
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Payment, error)

	// FindAll lists payments. Search matches the payment ID, the order ID
	// and the customer's username.
	// Supported filter keys: status, method, order_id.
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, error)

	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// SumAmount totals the amount over every payment matching the filter
	SumAmount(ctx context.Context, filter shared.Filter) (valueobject.Money, error)

	ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error)

	// Save creates or updates a payment. A duplicate transaction id fails
	// with a conflict error naming transaction_id.
	Save(ctx context.Context, payment *Payment) error
}
