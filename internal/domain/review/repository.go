package review

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
)

// Summary aggregates the ratings of one product
type Summary struct {
	ProductID     uuid.UUID
	ReviewCount   int64
	AverageRating float64
}

// Repository defines the interface for review persistence
type Repository interface {
	// FindByProduct lists a product's reviews, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]Review, error)

	// Summarize returns the review count and mean rating of a product
	Summarize(ctx context.Context, productID uuid.UUID) (Summary, error)

	// ExistsForCustomer reports whether the customer already reviewed the product
	ExistsForCustomer(ctx context.Context, customerID, productID uuid.UUID) (bool, error)

	// Save creates a review. A second review by the same customer for the
	// same product fails with a conflict error.
	Save(ctx context.Context, review *Review) error
}
