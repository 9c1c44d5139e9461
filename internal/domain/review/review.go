package review

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
)

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer's rating of a product. A customer reviews a product
// at most once.
type Review struct {
	shared.BaseEntity
	CustomerID uuid.UUID
	ProductID  uuid.UUID
	Rating     int
	Comment    string
}

// NewReview creates a review
func NewReview(customerID, productID uuid.UUID, rating int, comment string) (*Review, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewFieldValidationError("customer_id", "Customer is required")
	}
	if productID == uuid.Nil {
		return nil, shared.NewFieldValidationError("product_id", "Product is required")
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	return &Review{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		ProductID:  productID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
	}, nil
}

// Edit changes the rating and comment
func (r *Review) Edit(rating int, comment string) error {
	if err := validateRating(rating); err != nil {
		return err
	}
	r.Rating = rating
	r.Comment = strings.TrimSpace(comment)
	r.MarkUpdated()
	return nil
}

func validateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return shared.NewValidationError("INVALID_RATING", "Rating must be between 1 and 5").WithField("rating")
	}
	return nil
}
