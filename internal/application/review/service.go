package review

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/catalog"
	"github.com/shopdesk/backend/internal/domain/review"
	"github.com/shopdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SubmitReviewRequest rates a product
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// ReviewListFilter paginates a product's reviews
type ReviewListFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// ProductReviewsResponse is a page of reviews with the product's rating summary
type ProductReviewsResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	ReviewCount   int64            `json:"review_count"`
	AverageRating float64          `json:"average_rating"`
}

// ToReviewResponse converts a domain Review to ReviewResponse
func ToReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		ProductID:  r.ProductID,
		CustomerID: r.CustomerID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

// Service handles product reviews
type Service struct {
	reviewRepo  review.Repository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewService creates a new review Service
func NewService(reviewRepo review.Repository, productRepo catalog.ProductRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{reviewRepo: reviewRepo, productRepo: productRepo, logger: logger}
}

// Submit records the customer's review of an active product. A customer
// reviews each product once.
func (s *Service) Submit(ctx context.Context, customerID, productID uuid.UUID, req SubmitReviewRequest) (*ReviewResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.NewNotFoundError("product", productID)
	}

	exists, err := s.reviewRepo.ExistsForCustomer(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("product_id", "You have already reviewed this product")
	}

	r, err := review.NewReview(customerID, productID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("Review submitted",
		zap.String("review_id", r.ID.String()),
		zap.String("product_id", productID.String()),
		zap.Int("rating", r.Rating))

	response := ToReviewResponse(r)
	return &response, nil
}

// ListByProduct lists an active product's reviews, newest first
func (s *Service) ListByProduct(ctx context.Context, productID uuid.UUID, filter ReviewListFilter) (*ProductReviewsResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.NewNotFoundError("product", productID)
	}

	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	reviews, err := s.reviewRepo.FindByProduct(ctx, productID, domainFilter)
	if err != nil {
		return nil, err
	}
	summary, err := s.reviewRepo.Summarize(ctx, productID)
	if err != nil {
		return nil, err
	}

	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = ToReviewResponse(&reviews[i])
	}
	return &ProductReviewsResponse{
		Reviews:       responses,
		ReviewCount:   summary.ReviewCount,
		AverageRating: math.Round(summary.AverageRating*100) / 100,
	}, nil
}
