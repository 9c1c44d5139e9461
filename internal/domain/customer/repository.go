package customer

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
)

// Repository defines the interface for customer persistence
type Repository interface {
	// FindByID finds a customer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByIDForUpdate finds a customer and locks the row until the
	// surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByUsername finds a customer by username
	FindByUsername(ctx context.Context, username string) (*Customer, error)

	// FindAll lists customers; Search matches username, email and names.
	// Supported filter keys: is_active.
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// Count counts customers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByUsername checks username uniqueness
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail checks email uniqueness
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete deletes a customer
	Delete(ctx context.Context, id uuid.UUID) error

	// HasOrders reports whether any order references the customer
	HasOrders(ctx context.Context, id uuid.UUID) (bool, error)
}
