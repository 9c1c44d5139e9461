package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/customer"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements customer.Repository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	var model models.CustomerModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "customer", id)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a customer and locks the row for the rest of
// the surrounding transaction. Cart operations of one customer serialise
// on this lock.
func (r *GormCustomerRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	var model models.CustomerModel
	if err := forUpdate(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "customer", id)
	}
	return model.ToDomain(), nil
}

// FindByUsername finds a customer by username
func (r *GormCustomerRepository) FindByUsername(ctx context.Context, username string) (*customer.Customer, error) {
	var model models.CustomerModel
	if err := conn(ctx, r.db).Where("username = ?", username).First(&model).Error; err != nil {
		return nil, notFound(err, "customer", username)
	}
	return model.ToDomain(), nil
}

// FindAll lists customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]customer.Customer, error) {
	var rows []models.CustomerModel
	query := r.applyFilter(conn(ctx, r.db).Model(&models.CustomerModel{}), filter)
	query = applyPage(query, filter, CustomerSortFields, "date_joined", "")

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	customers := make([]customer.Customer, len(rows))
	for i := range rows {
		customers[i] = *rows[i].ToDomain()
	}
	return customers, nil
}

// Count counts customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(conn(ctx, r.db).Model(&models.CustomerModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByUsername checks username uniqueness
func (r *GormCustomerRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

// ExistsByEmail checks email uniqueness
func (r *GormCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", strings.ToLower(email))
}

// Save creates or updates a customer. A unique violation is reported as a
// conflict on the email when another customer holds it, otherwise on the
// username.
func (r *GormCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	err := conn(ctx, r.db).Save(models.CustomerModelFromDomain(c)).Error
	if err == nil || !(errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err)) {
		return err
	}
	if taken, _ := r.exists(ctx, "email = ? AND id <> ?", c.Email, c.ID); taken {
		return shared.NewConflictError("email", "A customer with this email already exists")
	}
	return shared.NewConflictError("username", "A customer with this username already exists")
}

// Delete deletes a customer
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&models.CustomerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("customer", id)
	}
	return nil
}

// HasOrders reports whether any order references the customer
func (r *GormCustomerRepository) HasOrders(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).
		Model(&models.OrderModel{}).
		Where("customer_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormCustomerRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.CustomerModel{}).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormCustomerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			like, like, like, like,
		)
	}
	if v, ok := filter.Filters["is_active"].(bool); ok {
		query = query.Where("is_active = ?", v)
	}
	return query
}

var _ customer.Repository = (*GormCustomerRepository)(nil)
