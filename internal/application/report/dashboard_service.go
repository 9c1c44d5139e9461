package report

import (
	"context"
	"time"

	"github.com/shopdesk/backend/internal/domain/report"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// Cache keys of the dashboard views
const (
	CacheKeyOverview  = "overview"
	CacheKeyAnalytics = "analytics"
	CacheKeyInventory = "inventory"
)

const (
	recentWindow    = 30 * 24 * time.Hour
	trendDays       = 7
	dashboardListN  = 5
	defaultCacheTTL = time.Minute
	defaultLowStock = 10
)

// DashboardCache stores computed dashboard views. Get reports a miss with
// false and a nil error.
type DashboardCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// DashboardConfig tunes the dashboard views
type DashboardConfig struct {
	CacheTTL          time.Duration
	LowStockThreshold int
}

// DefaultDashboardConfig returns the defaults used by the staff dashboard
func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		CacheTTL:          defaultCacheTTL,
		LowStockThreshold: defaultLowStock,
	}
}

// OverviewResponse is the landing view of the staff dashboard
type OverviewResponse struct {
	TotalProducts   int64                      `json:"total_products"`
	TotalCategories int64                      `json:"total_categories"`
	TotalOrders     int64                      `json:"total_orders"`
	RecentOrders    int64                      `json:"recent_orders"`
	TotalRevenue    valueobject.Money          `json:"total_revenue"`
	MonthlyRevenue  valueobject.Money          `json:"monthly_revenue"`
	StatusBreakdown []report.StatusCount       `json:"status_breakdown"`
	TopProducts     []report.ProductOrderCount `json:"top_products"`
	LowStock        []report.StockLevel        `json:"low_stock"`
	LatestOrders    []report.OrderDigest       `json:"latest_orders"`
	GeneratedAt     time.Time                  `json:"generated_at"`
}

// MonthComparison holds delivered order figures for two calendar months
type MonthComparison struct {
	CurrentMonth  time.Time             `json:"current_month"`
	Current       report.DeliveredStats `json:"current"`
	PreviousMonth time.Time             `json:"previous_month"`
	Previous      report.DeliveredStats `json:"previous"`
}

// AnalyticsResponse is the sales analytics view
type AnalyticsResponse struct {
	Days        []report.DailyRevenue        `json:"days"`
	Categories  []report.CategoryPerformance `json:"categories"`
	Months      MonthComparison              `json:"months"`
	GeneratedAt time.Time                    `json:"generated_at"`
}

// InventoryResponse is the stock view
type InventoryResponse struct {
	Products          []report.StockLevel    `json:"products"`
	OutOfStock        []report.StockLevel    `json:"out_of_stock"`
	LowStock          []report.StockLevel    `json:"low_stock"`
	Categories        []report.CategoryStock `json:"categories"`
	LowStockThreshold int                    `json:"low_stock_threshold"`
	GeneratedAt       time.Time              `json:"generated_at"`
}

// DashboardService computes the read-only staff dashboard views
type DashboardService struct {
	repo   report.DashboardRepository
	cache  DashboardCache
	config DashboardConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(repo report.DashboardRepository, config DashboardConfig, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.LowStockThreshold <= 0 {
		config.LowStockThreshold = defaultLowStock
	}
	return &DashboardService{
		repo:   repo,
		config: config,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SetCache enables caching of computed views
func (s *DashboardService) SetCache(cache DashboardCache) {
	s.cache = cache
}

// Overview returns counts, delivered revenue, the status breakdown and the
// short lists of the landing page
func (s *DashboardService) Overview(ctx context.Context) (*OverviewResponse, error) {
	var cached OverviewResponse
	if s.fromCache(ctx, CacheKeyOverview, &cached) {
		return &cached, nil
	}

	now := s.now()
	since := now.Add(-recentWindow)
	resp := &OverviewResponse{GeneratedAt: now}

	var err error
	if resp.TotalProducts, err = s.repo.CountProducts(ctx); err != nil {
		return nil, err
	}
	if resp.TotalCategories, err = s.repo.CountCategories(ctx); err != nil {
		return nil, err
	}
	if resp.TotalOrders, err = s.repo.CountOrders(ctx, nil); err != nil {
		return nil, err
	}
	if resp.RecentOrders, err = s.repo.CountOrders(ctx, &since); err != nil {
		return nil, err
	}

	total, err := s.repo.DeliveredStats(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	resp.TotalRevenue = total.Revenue

	monthly, err := s.repo.DeliveredStats(ctx, &since, nil)
	if err != nil {
		return nil, err
	}
	resp.MonthlyRevenue = monthly.Revenue

	if resp.StatusBreakdown, err = s.repo.StatusBreakdown(ctx); err != nil {
		return nil, err
	}
	if resp.TopProducts, err = s.repo.TopProducts(ctx, dashboardListN); err != nil {
		return nil, err
	}
	if resp.LowStock, err = s.repo.LowStockProducts(ctx, s.config.LowStockThreshold, dashboardListN); err != nil {
		return nil, err
	}
	if resp.LatestOrders, err = s.repo.LatestOrders(ctx, dashboardListN); err != nil {
		return nil, err
	}

	s.toCache(ctx, CacheKeyOverview, resp)
	return resp, nil
}

// Analytics returns the last seven days of delivered sales oldest first,
// category performance and the current against the previous calendar month
func (s *DashboardService) Analytics(ctx context.Context) (*AnalyticsResponse, error) {
	var cached AnalyticsResponse
	if s.fromCache(ctx, CacheKeyAnalytics, &cached) {
		return &cached, nil
	}

	now := s.now()
	today := startOfDay(now)
	from := today.AddDate(0, 0, -(trendDays - 1))
	to := today.AddDate(0, 0, 1)

	delivered, err := s.repo.DeliveredOrders(ctx, from, to)
	if err != nil {
		return nil, err
	}

	categories, err := s.repo.CategoryPerformance(ctx)
	if err != nil {
		return nil, err
	}

	currentMonth := startOfMonth(now)
	previousMonth := currentMonth.AddDate(0, -1, 0)

	current, err := s.repo.DeliveredStats(ctx, &currentMonth, nil)
	if err != nil {
		return nil, err
	}
	previous, err := s.repo.DeliveredStats(ctx, &previousMonth, &currentMonth)
	if err != nil {
		return nil, err
	}

	resp := &AnalyticsResponse{
		Days:       BucketDaily(delivered, from, trendDays),
		Categories: categories,
		Months: MonthComparison{
			CurrentMonth:  currentMonth,
			Current:       current,
			PreviousMonth: previousMonth,
			Previous:      previous,
		},
		GeneratedAt: now,
	}

	s.toCache(ctx, CacheKeyAnalytics, resp)
	return resp, nil
}

// Inventory returns every product by stock ascending with the out-of-stock
// and low-stock subsets and per-category stock figures
func (s *DashboardService) Inventory(ctx context.Context) (*InventoryResponse, error) {
	var cached InventoryResponse
	if s.fromCache(ctx, CacheKeyInventory, &cached) {
		return &cached, nil
	}

	products, err := s.repo.StockLevels(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.CategoryStock(ctx)
	if err != nil {
		return nil, err
	}

	resp := &InventoryResponse{
		Products:          products,
		OutOfStock:        []report.StockLevel{},
		LowStock:          []report.StockLevel{},
		Categories:        categories,
		LowStockThreshold: s.config.LowStockThreshold,
		GeneratedAt:       s.now(),
	}
	for _, p := range products {
		switch {
		case p.StockQuantity == 0:
			resp.OutOfStock = append(resp.OutOfStock, p)
		case p.StockQuantity < s.config.LowStockThreshold:
			resp.LowStock = append(resp.LowStock, p)
		}
	}

	s.toCache(ctx, CacheKeyInventory, resp)
	return resp, nil
}

// Invalidate drops every cached view
func (s *DashboardService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx)
}

// BucketDaily groups delivered orders into one row per day starting at
// from. Days without orders are present with zero figures.
func BucketDaily(orders []report.OrderDigest, from time.Time, days int) []report.DailyRevenue {
	buckets := make([]report.DailyRevenue, days)
	for i := range buckets {
		buckets[i] = report.DailyRevenue{
			Date:    from.AddDate(0, 0, i),
			Revenue: valueobject.Zero(),
		}
	}
	for _, o := range orders {
		idx := int(startOfDay(o.CreatedAt).Sub(from).Hours() / 24)
		if idx < 0 || idx >= days {
			continue
		}
		buckets[idx].OrderCount++
		buckets[idx].Revenue = buckets[idx].Revenue.Add(o.TotalAmount)
	}
	return buckets
}

func (s *DashboardService) fromCache(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("Dashboard cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *DashboardService) toCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	ttl := s.config.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		s.logger.Warn("Dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func startOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
