package telemetry

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when business metrics are created without a meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// StockProvider reports catalog stock health for periodic collection
type StockProvider interface {
	CountLowStock(ctx context.Context) (int64, error)
}

// StockProviderFunc adapts a function to StockProvider
type StockProviderFunc func(ctx context.Context) (int64, error)

// CountLowStock calls f
func (f StockProviderFunc) CountLowStock(ctx context.Context) (int64, error) {
	return f(ctx)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter         metric.Meter
	Logger        *zap.Logger
	StockProvider StockProvider
}

// BusinessMetrics records ShopDesk sales activity: checkouts, order
// amounts, status transitions and payments. It satisfies the metrics
// interfaces of the order and payment services.
type BusinessMetrics struct {
	logger *zap.Logger

	checkoutTotal      *Counter
	orderAmountCents   *Counter
	orderAmount        *Histogram
	orderItems         *Histogram
	statusChangeTotal  *Counter
	paymentTotal       *Counter
	paymentAmountCents *Counter
	lowStockProducts   *Gauge

	stockProvider StockProvider
	stopChan      chan struct{}
	stopOnce      sync.Once
	collectOnce   sync.Once
}

// NewBusinessMetrics creates the business instruments on the given meter
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		logger:        logger,
		stockProvider: cfg.StockProvider,
		stopChan:      make(chan struct{}),
	}

	var err error
	if bm.checkoutTotal, err = NewCounter(cfg.Meter,
		"shopdesk_checkout_total", "Number of completed checkouts", "{orders}"); err != nil {
		return nil, err
	}
	if bm.orderAmountCents, err = NewCounter(cfg.Meter,
		"shopdesk_order_amount_total", "Checked out order amount in cents", "{cents}"); err != nil {
		return nil, err
	}
	if bm.orderAmount, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "shopdesk_order_amount",
		Description: "Distribution of checked out order totals",
		Unit:        "{currency}",
		Boundaries:  AmountBuckets,
	}); err != nil {
		return nil, err
	}
	if bm.orderItems, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "shopdesk_order_items",
		Description: "Number of lines per checked out order",
		Unit:        "{items}",
		Boundaries:  ItemCountBuckets,
	}); err != nil {
		return nil, err
	}
	if bm.statusChangeTotal, err = NewCounter(cfg.Meter,
		"shopdesk_order_status_change_total", "Number of order status transitions", "{transitions}"); err != nil {
		return nil, err
	}
	if bm.paymentTotal, err = NewCounter(cfg.Meter,
		"shopdesk_payment_total", "Number of recorded payments", "{payments}"); err != nil {
		return nil, err
	}
	if bm.paymentAmountCents, err = NewCounter(cfg.Meter,
		"shopdesk_payment_amount_total", "Recorded payment amount in cents", "{cents}"); err != nil {
		return nil, err
	}
	if bm.lowStockProducts, err = NewGauge(cfg.Meter,
		"shopdesk_low_stock_products", "Active products below the low stock threshold", "{products}"); err != nil {
		return nil, err
	}
	return bm, nil
}

// RecordCheckout records a completed checkout
func (bm *BusinessMetrics) RecordCheckout(ctx context.Context, total valueobject.Money, itemCount int) {
	bm.checkoutTotal.Inc(ctx)
	bm.orderAmountCents.Add(ctx, toCents(total))
	bm.orderAmount.Record(ctx, total.Float64())
	bm.orderItems.Record(ctx, float64(itemCount))
}

// RecordOrderStatusChange records an order moving between statuses
func (bm *BusinessMetrics) RecordOrderStatusChange(ctx context.Context, from, to string) {
	bm.statusChangeTotal.Inc(ctx,
		AttrOrderStatusFrom.String(from),
		AttrOrderStatusTo.String(to),
	)
}

// RecordPayment records a payment entry
func (bm *BusinessMetrics) RecordPayment(ctx context.Context, method string, amount valueobject.Money) {
	bm.paymentTotal.Inc(ctx, AttrPaymentMethod.String(method))
	bm.paymentAmountCents.Add(ctx, toCents(amount), AttrPaymentMethod.String(method))
}

// RecordLowStockCount records the number of low stock products
func (bm *BusinessMetrics) RecordLowStockCount(ctx context.Context, count int64) {
	bm.lowStockProducts.Record(ctx, count)
}

func toCents(m valueobject.Money) int64 {
	return m.Amount().Shift(2).Round(0).IntPart()
}

// StartPeriodicCollection samples the stock gauge every interval until ctx
// is done or Stop is called. It returns immediately.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		go bm.runPeriodicCollection(ctx, interval)
	})
}

func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	bm.collectStockMetrics(ctx)
	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			bm.collectStockMetrics(ctx)
		}
	}
}

func (bm *BusinessMetrics) collectStockMetrics(ctx context.Context) {
	if bm.stockProvider == nil {
		return
	}
	count, err := bm.stockProvider.CountLowStock(ctx)
	if err != nil {
		bm.logger.Warn("Failed to collect low stock count", zap.Error(err))
		return
	}
	bm.RecordLowStockCount(ctx, count)
}

// Stop stops periodic collection
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}
