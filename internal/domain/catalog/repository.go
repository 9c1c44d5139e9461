package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByName finds a category by its unique name
	FindByName(ctx context.Context, name string) (*Category, error)

	// FindAll finds all categories matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)

	// Count counts categories matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete deletes a category
	Delete(ctx context.Context, id uuid.UUID) error

	// HasProducts reports whether any product references the category
	HasProducts(ctx context.Context, id uuid.UUID) (bool, error)
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds products by IDs, keyed by ID
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Product, error)

	// FindAll finds all products matching the filter.
	// Supported filter keys: category_id, is_active, in_stock, low_stock, min_price, max_price.
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// IsReferenced reports whether any order line references the product
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)
}
