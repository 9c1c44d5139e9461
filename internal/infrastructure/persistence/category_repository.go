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

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "category", id)
	}
	return model.ToDomain(), nil
}

// FindByName finds a category by its unique name
func (r *GormCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := conn(ctx, r.db).Where("name = ?", strings.TrimSpace(name)).First(&model).Error; err != nil {
		return nil, notFound(err, "category", name)
	}
	return model.ToDomain(), nil
}

// FindAll finds all categories matching the filter
func (r *GormCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	var rows []models.CategoryModel
	query := r.applyFilter(conn(ctx, r.db).Model(&models.CategoryModel{}), filter)
	query = applyPage(query, filter, CategorySortFields, "name", "")

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	categories := make([]catalog.Category, len(rows))
	for i := range rows {
		categories[i] = *rows[i].ToDomain()
	}
	return categories, nil
}

// Count counts categories matching the filter
func (r *GormCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(conn(ctx, r.db).Model(&models.CategoryModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	err := conn(ctx, r.db).Save(models.CategoryModelFromDomain(category)).Error
	return translateWriteError(err, "name", "A category with this name already exists")
}

// Delete deletes a category
func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&models.CategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("category", id)
	}
	return nil
}

// HasProducts reports whether any product references the category
func (r *GormCategoryRepository) HasProducts(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).
		Model(&models.ProductModel{}).
		Where("category_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormCategoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	return query
}

var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
