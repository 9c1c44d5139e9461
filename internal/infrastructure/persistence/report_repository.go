package persistence

import (
	"context"
	"time"

	"github.com/shopdesk/backend/internal/domain/order"
	"github.com/shopdesk/backend/internal/domain/report"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDashboardRepository implements report.DashboardRepository using GORM
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewGormDashboardRepository creates a new GormDashboardRepository
func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

const orderDigestColumns = "orders.id AS order_id, customers.username AS customer_username, " +
	"orders.total_amount AS total_amount, orders.status AS status, orders.created_at AS created_at"

// CountProducts counts all products
func (r *GormDashboardRepository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).Count(&count).Error
	return count, err
}

// CountCategories counts all categories
func (r *GormDashboardRepository) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CategoryModel{}).Count(&count).Error
	return count, err
}

// CountOrders counts orders created at or after since
func (r *GormDashboardRepository) CountOrders(ctx context.Context, since *time.Time) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	err := query.Count(&count).Error
	return count, err
}

// DeliveredStats returns the count and revenue of delivered orders created
// in [from, to)
func (r *GormDashboardRepository) DeliveredStats(ctx context.Context, from, to *time.Time) (report.DeliveredStats, error) {
	stats := report.DeliveredStats{Revenue: valueobject.Zero()}
	query := r.delivered(ctx, from, to).
		Select("COUNT(*), COALESCE(SUM(orders.total_amount), 0)")
	if err := query.Row().Scan(&stats.OrderCount, &stats.Revenue); err != nil {
		return report.DeliveredStats{}, err
	}
	return stats, nil
}

// DeliveredOrders lists delivered orders created in [from, to), oldest first
func (r *GormDashboardRepository) DeliveredOrders(ctx context.Context, from, to time.Time) ([]report.OrderDigest, error) {
	var rows []report.OrderDigest
	err := r.delivered(ctx, &from, &to).
		Select(orderDigestColumns).
		Joins("LEFT JOIN customers ON customers.id = orders.customer_id").
		Order("orders.created_at ASC").
		Scan(&rows).Error
	return rows, err
}

// StatusBreakdown returns the order count per status
func (r *GormDashboardRepository) StatusBreakdown(ctx context.Context) ([]report.StatusCount, error) {
	var rows []report.StatusCount
	err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status ASC").
		Scan(&rows).Error
	return rows, err
}

// TopProducts ranks products by the number of order lines referencing them
func (r *GormDashboardRepository) TopProducts(ctx context.Context, limit int) ([]report.ProductOrderCount, error) {
	var rows []report.ProductOrderCount
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.product_id AS product_id, products.name AS name, " +
			"COUNT(order_items.id) AS line_count, COALESCE(SUM(order_items.quantity), 0) AS units_sold").
		Joins("JOIN products ON products.id = order_items.product_id").
		Group("order_items.product_id, products.name").
		Order("line_count DESC, units_sold DESC, products.name ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// LowStockProducts lists active products with stock below threshold
func (r *GormDashboardRepository) LowStockProducts(ctx context.Context, threshold, limit int) ([]report.StockLevel, error) {
	var rows []report.StockLevel
	err := r.stockLevels(ctx).
		Where("products.is_active = ? AND products.stock_quantity < ?", true, threshold).
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// CountLowStock counts active products with stock below threshold
func (r *GormDashboardRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("is_active = ? AND stock_quantity < ?", true, threshold).
		Count(&count).Error
	return count, err
}

// StockLevels lists every product by stock ascending
func (r *GormDashboardRepository) StockLevels(ctx context.Context) ([]report.StockLevel, error) {
	var rows []report.StockLevel
	err := r.stockLevels(ctx).Scan(&rows).Error
	return rows, err
}

// LatestOrders lists the most recently created orders
func (r *GormDashboardRepository) LatestOrders(ctx context.Context, limit int) ([]report.OrderDigest, error) {
	var rows []report.OrderDigest
	err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select(orderDigestColumns).
		Joins("LEFT JOIN customers ON customers.id = orders.customer_id").
		Order("orders.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// CategoryPerformance summarises products and order lines per category
func (r *GormDashboardRepository) CategoryPerformance(ctx context.Context) ([]report.CategoryPerformance, error) {
	var rows []report.CategoryPerformance
	err := r.db.WithContext(ctx).
		Table("categories").
		Select("categories.id AS category_id, categories.name AS name, " +
			"COUNT(DISTINCT products.id) AS product_count, COUNT(order_items.id) AS lines_sold, " +
			"COALESCE(SUM(order_items.quantity), 0) AS units_sold").
		Joins("LEFT JOIN products ON products.category_id = categories.id").
		Joins("LEFT JOIN order_items ON order_items.product_id = products.id").
		Group("categories.id, categories.name").
		Order("lines_sold DESC, categories.name ASC").
		Scan(&rows).Error
	return rows, err
}

// CategoryStock summarises stock and price per category
func (r *GormDashboardRepository) CategoryStock(ctx context.Context) ([]report.CategoryStock, error) {
	var rows []report.CategoryStock
	err := r.db.WithContext(ctx).
		Table("categories").
		Select("categories.id AS category_id, categories.name AS name, " +
			"COUNT(products.id) AS product_count, COALESCE(SUM(products.stock_quantity), 0) AS total_stock, " +
			"COALESCE(AVG(products.price), 0) AS average_price").
		Joins("LEFT JOIN products ON products.category_id = categories.id").
		Group("categories.id, categories.name").
		Order("categories.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *GormDashboardRepository) delivered(ctx context.Context, from, to *time.Time) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("orders.status = ?", order.StatusDelivered)
	if from != nil {
		query = query.Where("orders.created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("orders.created_at < ?", *to)
	}
	return query
}

func (r *GormDashboardRepository) stockLevels(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Select("products.id AS product_id, products.name AS name, categories.name AS category_name, " +
			"products.stock_quantity AS stock_quantity, products.price AS price").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Order("products.stock_quantity ASC, products.name ASC")
}

var _ report.DashboardRepository = (*GormDashboardRepository)(nil)
