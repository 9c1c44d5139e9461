package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/report"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDashboardRepo returns canned figures and records the windows it is asked for
type fakeDashboardRepo struct {
	calls int

	products, categories int64
	ordersTotal          int64
	ordersSince          int64
	delivered            []report.OrderDigest
	stats                func(from, to *time.Time) report.DeliveredStats
	stockLevels          []report.StockLevel
	lowStock             []report.StockLevel

	countSince    []*time.Time
	statsWindows  [][2]*time.Time
	lowStockArgs  [2]int
	deliveredFrom time.Time
	deliveredTo   time.Time
	err           error
}

func (f *fakeDashboardRepo) CountProducts(ctx context.Context) (int64, error) {
	f.calls++
	return f.products, f.err
}

func (f *fakeDashboardRepo) CountCategories(ctx context.Context) (int64, error) {
	return f.categories, nil
}

func (f *fakeDashboardRepo) CountOrders(ctx context.Context, since *time.Time) (int64, error) {
	f.countSince = append(f.countSince, since)
	if since == nil {
		return f.ordersTotal, nil
	}
	return f.ordersSince, nil
}

func (f *fakeDashboardRepo) DeliveredStats(ctx context.Context, from, to *time.Time) (report.DeliveredStats, error) {
	f.statsWindows = append(f.statsWindows, [2]*time.Time{from, to})
	if f.stats == nil {
		return report.DeliveredStats{Revenue: valueobject.Zero()}, nil
	}
	return f.stats(from, to), nil
}

func (f *fakeDashboardRepo) DeliveredOrders(ctx context.Context, from, to time.Time) ([]report.OrderDigest, error) {
	f.calls++
	f.deliveredFrom, f.deliveredTo = from, to
	return f.delivered, nil
}

func (f *fakeDashboardRepo) StatusBreakdown(ctx context.Context) ([]report.StatusCount, error) {
	return []report.StatusCount{{Status: "pending", Count: 2}, {Status: "delivered", Count: 3}}, nil
}

func (f *fakeDashboardRepo) TopProducts(ctx context.Context, limit int) ([]report.ProductOrderCount, error) {
	return []report.ProductOrderCount{{ProductID: uuid.New(), Name: "Mouse", LineCount: 4}}, nil
}

func (f *fakeDashboardRepo) LowStockProducts(ctx context.Context, threshold, limit int) ([]report.StockLevel, error) {
	f.lowStockArgs = [2]int{threshold, limit}
	return f.lowStock, nil
}

func (f *fakeDashboardRepo) StockLevels(ctx context.Context) ([]report.StockLevel, error) {
	f.calls++
	return f.stockLevels, nil
}

func (f *fakeDashboardRepo) LatestOrders(ctx context.Context, limit int) ([]report.OrderDigest, error) {
	return []report.OrderDigest{}, nil
}

func (f *fakeDashboardRepo) CategoryPerformance(ctx context.Context) ([]report.CategoryPerformance, error) {
	return []report.CategoryPerformance{{Name: "Books", ProductCount: 3, LinesSold: 7}}, nil
}

func (f *fakeDashboardRepo) CategoryStock(ctx context.Context) ([]report.CategoryStock, error) {
	return []report.CategoryStock{{Name: "Books", ProductCount: 3, TotalStock: 42}}, nil
}

// jsonCache mimics a remote cache by round-tripping values through JSON
type jsonCache struct {
	entries     map[string][]byte
	invalidated int
}

func newJSONCache() *jsonCache {
	return &jsonCache{entries: map[string][]byte{}}
}

func (c *jsonCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *jsonCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *jsonCache) Invalidate(ctx context.Context) error {
	c.invalidated++
	c.entries = map[string][]byte{}
	return nil
}

var fixedNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func newDashboardUnderTest(repo *fakeDashboardRepo) *DashboardService {
	svc := NewDashboardService(repo, DefaultDashboardConfig(), nil)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func money(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestDashboardService_Overview(t *testing.T) {
	repo := &fakeDashboardRepo{
		products:    12,
		categories:  3,
		ordersTotal: 40,
		ordersSince: 9,
		lowStock:    []report.StockLevel{{Name: "Cable", StockQuantity: 2}},
		stats: func(from, to *time.Time) report.DeliveredStats {
			if from == nil {
				return report.DeliveredStats{OrderCount: 20, Revenue: valueobject.NewMoneyFromCents(150000)}
			}
			return report.DeliveredStats{OrderCount: 4, Revenue: valueobject.NewMoneyFromCents(32050)}
		},
	}
	svc := newDashboardUnderTest(repo)

	resp, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), resp.TotalProducts)
	assert.Equal(t, int64(3), resp.TotalCategories)
	assert.Equal(t, int64(40), resp.TotalOrders)
	assert.Equal(t, int64(9), resp.RecentOrders)
	assert.Equal(t, "1500.00", resp.TotalRevenue.String())
	assert.Equal(t, "320.50", resp.MonthlyRevenue.String())
	assert.Len(t, resp.StatusBreakdown, 2)
	assert.Len(t, resp.TopProducts, 1)
	assert.Equal(t, [2]int{10, 5}, repo.lowStockArgs)

	require.Len(t, repo.countSince, 2)
	require.NotNil(t, repo.countSince[1])
	assert.Equal(t, fixedNow.Add(-30*24*time.Hour), *repo.countSince[1])

	require.Len(t, repo.statsWindows, 2)
	assert.Nil(t, repo.statsWindows[0][0], "total revenue is unbounded")
	assert.Equal(t, fixedNow.Add(-30*24*time.Hour), *repo.statsWindows[1][0])
}

func TestDashboardService_Analytics(t *testing.T) {
	repo := &fakeDashboardRepo{
		delivered: []report.OrderDigest{
			{TotalAmount: valueobject.NewMoneyFromCents(1000), CreatedAt: time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)},
			{TotalAmount: valueobject.NewMoneyFromCents(500), CreatedAt: time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC)},
			{TotalAmount: valueobject.NewMoneyFromCents(550), CreatedAt: time.Date(2026, 3, 13, 23, 59, 0, 0, time.UTC)},
			{TotalAmount: valueobject.NewMoneyFromCents(2500), CreatedAt: time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)},
		},
	}
	svc := newDashboardUnderTest(repo)

	resp, err := svc.Analytics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), repo.deliveredFrom)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), repo.deliveredTo)

	require.Len(t, resp.Days, 7)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), resp.Days[0].Date, "oldest day first")
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), resp.Days[6].Date)
	assert.Equal(t, int64(1), resp.Days[0].OrderCount)
	assert.Equal(t, int64(2), resp.Days[4].OrderCount)
	assert.Equal(t, "10.50", resp.Days[4].Revenue.String())
	assert.Equal(t, int64(0), resp.Days[5].OrderCount)
	assert.Equal(t, "0.00", resp.Days[5].Revenue.String())
	assert.Equal(t, "25.00", resp.Days[6].Revenue.String())

	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), resp.Months.CurrentMonth)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), resp.Months.PreviousMonth)
	require.Len(t, repo.statsWindows, 2)
	assert.Nil(t, repo.statsWindows[0][1])
	assert.Equal(t, resp.Months.PreviousMonth, *repo.statsWindows[1][0])
	assert.Equal(t, resp.Months.CurrentMonth, *repo.statsWindows[1][1])

	assert.Len(t, resp.Categories, 1)
}

func TestDashboardService_Analytics_JanuaryComparesWithDecember(t *testing.T) {
	repo := &fakeDashboardRepo{}
	svc := newDashboardUnderTest(repo)
	svc.now = func() time.Time { return time.Date(2026, 1, 3, 12, 0, 0, 0, time.UTC) }

	resp, err := svc.Analytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), resp.Months.PreviousMonth)
}

func TestDashboardService_Inventory(t *testing.T) {
	repo := &fakeDashboardRepo{
		stockLevels: []report.StockLevel{
			{Name: "Gone", StockQuantity: 0},
			{Name: "Few", StockQuantity: 3},
			{Name: "Nine", StockQuantity: 9},
			{Name: "Ten", StockQuantity: 10},
			{Name: "Plenty", StockQuantity: 50},
		},
	}
	svc := newDashboardUnderTest(repo)

	resp, err := svc.Inventory(context.Background())
	require.NoError(t, err)

	assert.Len(t, resp.Products, 5)
	require.Len(t, resp.OutOfStock, 1)
	assert.Equal(t, "Gone", resp.OutOfStock[0].Name)
	require.Len(t, resp.LowStock, 2)
	assert.Equal(t, "Few", resp.LowStock[0].Name)
	assert.Equal(t, "Nine", resp.LowStock[1].Name)
	assert.Equal(t, 10, resp.LowStockThreshold)
	assert.Len(t, resp.Categories, 1)
}

func TestDashboardService_Cache(t *testing.T) {
	t.Run("second read is served from cache", func(t *testing.T) {
		repo := &fakeDashboardRepo{products: 7}
		svc := newDashboardUnderTest(repo)
		cache := newJSONCache()
		svc.SetCache(cache)

		first, err := svc.Overview(context.Background())
		require.NoError(t, err)
		second, err := svc.Overview(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, repo.calls)
		assert.Equal(t, first.TotalProducts, second.TotalProducts)
		assert.True(t, first.TotalRevenue.Equals(second.TotalRevenue))
	})

	t.Run("invalidate forces recomputation", func(t *testing.T) {
		repo := &fakeDashboardRepo{stockLevels: []report.StockLevel{{Name: "A", StockQuantity: 1}}}
		svc := newDashboardUnderTest(repo)
		cache := newJSONCache()
		svc.SetCache(cache)

		_, err := svc.Inventory(context.Background())
		require.NoError(t, err)
		require.NoError(t, svc.Invalidate(context.Background()))
		_, err = svc.Inventory(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 2, repo.calls)
		assert.Equal(t, 1, cache.invalidated)
	})

	t.Run("repository errors are not cached", func(t *testing.T) {
		repo := &fakeDashboardRepo{err: errors.New("db down")}
		svc := newDashboardUnderTest(repo)
		cache := newJSONCache()
		svc.SetCache(cache)

		_, err := svc.Overview(context.Background())
		require.Error(t, err)
		assert.Empty(t, cache.entries)
	})

	t.Run("no cache configured", func(t *testing.T) {
		svc := newDashboardUnderTest(&fakeDashboardRepo{})
		assert.NoError(t, svc.Invalidate(context.Background()))
	})
}

func TestBucketDaily_IgnoresOrdersOutsideWindow(t *testing.T) {
	from := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	orders := []report.OrderDigest{
		{TotalAmount: valueobject.NewMoneyFromCents(100), CreatedAt: from.Add(-time.Minute)},
		{TotalAmount: valueobject.NewMoneyFromCents(100), CreatedAt: from.AddDate(0, 0, 7)},
		{TotalAmount: valueobject.NewMoneyFromCents(199), CreatedAt: from.Add(time.Hour)},
	}

	days := BucketDaily(orders, from, 7)

	require.Len(t, days, 7)
	var total int64
	for _, d := range days {
		total += d.OrderCount
	}
	assert.Equal(t, int64(1), total)
	assert.True(t, money(t, "1.99").Equals(days[0].Revenue))
}
