package persistence

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/review"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReviewRepository implements review.Repository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByProduct lists a product's reviews
func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]review.Review, error) {
	var rows []models.ReviewModel
	query := conn(ctx, r.db).Where("product_id = ?", productID)
	query = applyPage(query, filter, ReviewSortFields, "created_at", "")

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	reviews := make([]review.Review, len(rows))
	for i := range rows {
		reviews[i] = *rows[i].ToDomain()
	}
	return reviews, nil
}

// Summarize returns the review count and mean rating of a product
func (r *GormReviewRepository) Summarize(ctx context.Context, productID uuid.UUID) (review.Summary, error) {
	var (
		count   int64
		average sql.NullFloat64
	)
	row := conn(ctx, r.db).
		Model(&models.ReviewModel{}).
		Select("COUNT(*), AVG(rating)").
		Where("product_id = ?", productID).
		Row()
	if err := row.Scan(&count, &average); err != nil {
		return review.Summary{}, err
	}
	return review.Summary{
		ProductID:     productID,
		ReviewCount:   count,
		AverageRating: average.Float64,
	}, nil
}

// ExistsForCustomer reports whether the customer already reviewed the product
func (r *GormReviewRepository) ExistsForCustomer(ctx context.Context, customerID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).
		Model(&models.ReviewModel{}).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, rv *review.Review) error {
	err := conn(ctx, r.db).Omit("Customer", "Product").Save(models.ReviewModelFromDomain(rv)).Error
	return translateWriteError(err, "product_id", "You have already reviewed this product")
}

var _ review.Repository = (*GormReviewRepository)(nil)
