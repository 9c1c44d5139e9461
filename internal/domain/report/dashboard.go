package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// StatusCount is the number of orders in one status
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// ProductOrderCount ranks a product by how many order lines reference it
type ProductOrderCount struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	LineCount int64     `json:"line_count"`
	UnitsSold int64     `json:"units_sold"`
}

// StockLevel is a product's recorded stock
type StockLevel struct {
	ProductID     uuid.UUID         `json:"product_id"`
	Name          string            `json:"name"`
	CategoryName  string            `json:"category_name"`
	StockQuantity int               `json:"stock_quantity"`
	Price         valueobject.Money `json:"price"`
}

// OrderDigest is the row shown in recent-order lists
type OrderDigest struct {
	OrderID          uuid.UUID         `json:"order_id"`
	CustomerUsername string            `json:"customer_username"`
	TotalAmount      valueobject.Money `json:"total_amount"`
	Status           string            `json:"status"`
	CreatedAt        time.Time         `json:"created_at"`
}

// DailyRevenue is the delivered-order count and revenue of one day
type DailyRevenue struct {
	Date       time.Time         `json:"date"`
	OrderCount int64             `json:"order_count"`
	Revenue    valueobject.Money `json:"revenue"`
}

// CategoryPerformance summarises sales per category
type CategoryPerformance struct {
	CategoryID   uuid.UUID `json:"category_id"`
	Name         string    `json:"name"`
	ProductCount int64     `json:"product_count"`
	LinesSold    int64     `json:"lines_sold"`
	UnitsSold    int64     `json:"units_sold"`
}

// CategoryStock summarises stock per category
type CategoryStock struct {
	CategoryID   uuid.UUID         `json:"category_id"`
	Name         string            `json:"name"`
	ProductCount int64             `json:"product_count"`
	TotalStock   int64             `json:"total_stock"`
	AveragePrice valueobject.Money `json:"average_price"`
}

// DeliveredStats is the count and revenue of delivered orders in a window
type DeliveredStats struct {
	OrderCount int64             `json:"order_count"`
	Revenue    valueobject.Money `json:"revenue"`
}

// DashboardRepository runs the read-only aggregate queries behind the
// staff dashboard. Revenue figures only count delivered orders. A nil
// bound leaves that side of a window open.
type DashboardRepository interface {
	CountProducts(ctx context.Context) (int64, error)
	CountCategories(ctx context.Context) (int64, error)

	// CountOrders counts orders created at or after since
	CountOrders(ctx context.Context, since *time.Time) (int64, error)

	DeliveredStats(ctx context.Context, from, to *time.Time) (DeliveredStats, error)

	// DeliveredOrders lists delivered orders created in [from, to)
	DeliveredOrders(ctx context.Context, from, to time.Time) ([]OrderDigest, error)

	StatusBreakdown(ctx context.Context) ([]StatusCount, error)
	TopProducts(ctx context.Context, limit int) ([]ProductOrderCount, error)

	// LowStockProducts lists active products with stock below threshold,
	// lowest first
	LowStockProducts(ctx context.Context, threshold, limit int) ([]StockLevel, error)

	// StockLevels lists every product ordered by stock ascending
	StockLevels(ctx context.Context) ([]StockLevel, error)

	LatestOrders(ctx context.Context, limit int) ([]OrderDigest, error)
	CategoryPerformance(ctx context.Context) ([]CategoryPerformance, error)
	CategoryStock(ctx context.Context) ([]CategoryStock, error)
}
