package persistence

import (
	"fmt"

	"github.com/shopdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the tables of every persistence model
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// ResetData deletes every row except superuser accounts. Children go before
// their parents so foreign keys hold on every dialect.
func ResetData(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.ReviewModel{},
			&models.PaymentModel{},
			&models.OrderItemModel{},
			&models.OrderModel{},
			&models.ProductModel{},
			&models.CategoryModel{},
			&models.CustomerModel{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
				return fmt.Errorf("reset %T: %w", model, err)
			}
		}
		if err := tx.Unscoped().Where("is_superuser = ?", false).Delete(&models.StaffUserModel{}).Error; err != nil {
			return fmt.Errorf("reset staff users: %w", err)
		}
		return nil
	})
}
