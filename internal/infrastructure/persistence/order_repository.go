package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/order"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.created_at ASC")
	})
}

// FindByID finds an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := preloadItems(conn(ctx, r.db)).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "order", id)
	}
	return model.ToDomain(), nil
}

// FindPendingByCustomer returns the customer's most recent pending order
func (r *GormOrderRepository) FindPendingByCustomer(ctx context.Context, customerID uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	err := preloadItems(conn(ctx, r.db)).
		Where("customer_id = ? AND status = ?", customerID, order.StatusPending).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		return nil, notFound(err, "pending order for customer", customerID)
	}
	return model.ToDomain(), nil
}

// FindAll lists orders with their items
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var rows []models.OrderModel
	query := r.applyFilter(conn(ctx, r.db).Model(&models.OrderModel{}), filter)
	query = applyPage(query, filter, OrderSortFields, "created_at", "orders.")

	if err := preloadItems(query).Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]order.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(conn(ctx, r.db).Model(&models.OrderModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus returns the number of orders per status
func (r *GormOrderRepository) CountByStatus(ctx context.Context) (map[order.Status]int64, error) {
	var rows []struct {
		Status order.Status
		Count  int64
	}
	if err := conn(ctx, r.db).
		Model(&models.OrderModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[order.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// Save creates or updates an order and replaces its items. An update only
// applies when the stored version still equals order.Version; the version
// is then incremented.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)

	return r.inTx(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&models.OrderModel{}).
			Where("id = ? AND version = ?", o.ID, o.Version).
			Updates(map[string]any{
				"total_amount": o.TotalAmount,
				"status":       o.Status,
				"placed_at":    o.PlacedAt,
				"version":      o.Version + 1,
				"updated_at":   o.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			var existing int64
			if err := tx.Model(&models.OrderModel{}).Where("id = ?", o.ID).Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				return shared.NewDomainError(shared.KindConcurrency, "The order was modified by another request")
			}
			if err := tx.Omit("Items", "Customer").Create(model).Error; err != nil {
				return err
			}
		} else {
			o.Version++
		}

		return r.replaceItems(tx, o.ID, model.Items)
	})
}

func (r *GormOrderRepository) replaceItems(tx *gorm.DB, orderID uuid.UUID, items []models.OrderItemModel) error {
	stale := tx.Where("order_id = ?", orderID)
	if len(items) > 0 {
		ids := make([]uuid.UUID, len(items))
		for i := range items {
			ids[i] = items[i].ID
		}
		stale = stale.Where("id NOT IN ?", ids)
	}
	if err := stale.Delete(&models.OrderItemModel{}).Error; err != nil {
		return err
	}

	for i := range items {
		if err := tx.Omit("Product").Save(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes an order and its items
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.OrderModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFoundError("order", id)
		}
		return nil
	})
}

func (r *GormOrderRepository) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(tx.WithContext(ctx))
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.
			Joins("LEFT JOIN customers ON customers.id = orders.customer_id").
			Where("LOWER(customers.username) LIKE ? OR "+castText(query, "orders.id")+" LIKE ?", like, like)
	}

	if v, ok := filterString(filter, "status"); ok {
		query = query.Where("orders.status = ?", v)
	}
	if v, ok := filter.Filters["customer_id"].(uuid.UUID); ok {
		query = query.Where("orders.customer_id = ?", v)
	}
	if v, ok := filter.Filters["product_id"].(uuid.UUID); ok {
		query = query.Where("EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = orders.id AND oi.product_id = ?)", v)
	}
	if v, ok := filter.Filters["created_from"].(time.Time); ok {
		query = query.Where("orders.created_at >= ?", startOfDay(v))
	}
	if v, ok := filter.Filters["created_to"].(time.Time); ok {
		query = query.Where("orders.created_at < ?", startOfDay(v).AddDate(0, 0, 1))
	}
	return query
}

// castText renders a uuid column as text in the connection's dialect
func castText(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "mysql" {
		return "CAST(" + column + " AS CHAR)"
	}
	return "CAST(" + column + " AS TEXT)"
}

func filterString(filter shared.Filter, key string) (string, bool) {
	switch v := filter.Filters[key].(type) {
	case string:
		return v, v != ""
	case order.Status:
		return string(v), v != ""
	default:
		return "", false
	}
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var _ order.Repository = (*GormOrderRepository)(nil)
