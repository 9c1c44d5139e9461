package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/catalog"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "product", id)
	}
	return model.ToDomain(), nil
}

// FindByIDs finds products by IDs, keyed by ID. Missing IDs are absent
// from the result.
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error) {
	result := make(map[uuid.UUID]*catalog.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []models.ProductModel
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		result[rows[i].ID] = rows[i].ToDomain()
	}
	return result, nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var rows []models.ProductModel
	query := r.applyFilter(conn(ctx, r.db).Model(&models.ProductModel{}), filter)
	query = applyPage(query, filter, ProductSortFields, "created_at", "")

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products, nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(conn(ctx, r.db).Model(&models.ProductModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return conn(ctx, r.db).Omit("Category").Save(models.ProductModelFromDomain(product)).Error
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("product", id)
	}
	return nil
}

// IsReferenced reports whether any order line references the product
func (r *GormProductRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).
		Model(&models.OrderItemModel{}).
		Where("product_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	if v, ok := filter.Filters["category_id"].(uuid.UUID); ok {
		query = query.Where("category_id = ?", v)
	}
	if v, ok := filter.Filters["is_active"].(bool); ok {
		query = query.Where("is_active = ?", v)
	}
	if v, ok := filter.Filters["in_stock"].(bool); ok {
		if v {
			query = query.Where("stock_quantity > 0")
		} else {
			query = query.Where("stock_quantity = 0")
		}
	}
	if v, ok := filter.Filters["low_stock"].(int); ok {
		query = query.Where("stock_quantity < ?", v)
	}
	if v, ok := filter.Filters["min_price"].(float64); ok {
		query = query.Where("price >= ?", v)
	}
	if v, ok := filter.Filters["max_price"].(float64); ok {
		query = query.Where("price <= ?", v)
	}
	return query
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
