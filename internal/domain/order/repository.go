package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
)

// Repository defines the interface for order persistence
type Repository interface {
	// FindByID finds an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindPendingByCustomer returns the customer's most recently created
	// pending order, or a not-found error when there is none
	FindPendingByCustomer(ctx context.Context, customerID uuid.UUID) (*Order, error)

	// FindAll lists orders with their items. Search matches the order ID
	// prefix and the customer's username.
	// Supported filter keys: status, customer_id, product_id, created_from,
	// created_to (a date; the whole day is included).
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus returns the number of orders per status
	CountByStatus(ctx context.Context) (map[Status]int64, error)

	// Save creates or updates an order and replaces its items. Updates are
	// guarded by the aggregate version and fail with a concurrency
	// conflict when the stored version has moved on.
	Save(ctx context.Context, order *Order) error

	// Delete deletes an order and its items
	Delete(ctx context.Context, id uuid.UUID) error
}
