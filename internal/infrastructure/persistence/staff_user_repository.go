package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/identity"
	"github.com/shopdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStaffUserRepository implements identity.StaffUserRepository using GORM
type GormStaffUserRepository struct {
	db *gorm.DB
}

// NewGormStaffUserRepository creates a new GormStaffUserRepository
func NewGormStaffUserRepository(db *gorm.DB) *GormStaffUserRepository {
	return &GormStaffUserRepository{db: db}
}

// FindByID finds a staff user by ID
func (r *GormStaffUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.StaffUser, error) {
	var model models.StaffUserModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "staff user", id)
	}
	return model.ToDomain(), nil
}

// FindByUsername finds a staff user by username
func (r *GormStaffUserRepository) FindByUsername(ctx context.Context, username string) (*identity.StaffUser, error) {
	var model models.StaffUserModel
	if err := conn(ctx, r.db).Where("username = ?", username).First(&model).Error; err != nil {
		return nil, notFound(err, "staff user", username)
	}
	return model.ToDomain(), nil
}

// ExistsByUsername checks if a username already exists
func (r *GormStaffUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.StaffUserModel{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a staff user
func (r *GormStaffUserRepository) Save(ctx context.Context, user *identity.StaffUser) error {
	err := conn(ctx, r.db).Save(models.StaffUserModelFromDomain(user)).Error
	return translateWriteError(err, "username", "A staff user with this username already exists")
}

// Count returns the number of staff users
func (r *GormStaffUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.StaffUserModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ identity.StaffUserRepository = (*GormStaffUserRepository)(nil)
