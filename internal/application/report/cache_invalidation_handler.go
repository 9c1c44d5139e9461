package report

import (
	"context"

	"github.com/shopdesk/backend/internal/domain/catalog"
	"github.com/shopdesk/backend/internal/domain/order"
	"github.com/shopdesk/backend/internal/domain/payment"
	"github.com/shopdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Invalidator drops cached dashboard views
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// CacheInvalidationHandler clears the dashboard cache whenever an order,
// payment or product event changes the figures it shows
type CacheInvalidationHandler struct {
	target Invalidator
	logger *zap.Logger
}

// NewCacheInvalidationHandler creates a new CacheInvalidationHandler
func NewCacheInvalidationHandler(target Invalidator, logger *zap.Logger) *CacheInvalidationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheInvalidationHandler{target: target, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *CacheInvalidationHandler) EventTypes() []string {
	return []string{
		order.EventTypeOrderCheckedOut,
		order.EventTypeOrderStatusChanged,
		payment.EventTypePaymentRecorded,
		payment.EventTypePaymentStatusChanged,
		catalog.EventTypeProductCreated,
		catalog.EventTypeProductPriceChanged,
		catalog.EventTypeProductStockChanged,
	}
}

// Handle invalidates the cache. Failures are logged and swallowed; the
// cached entries expire on their own.
func (h *CacheInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.target.Invalidate(ctx); err != nil {
		h.logger.Warn("Failed to invalidate dashboard cache",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID().String()),
			zap.Error(err))
		return nil
	}
	h.logger.Debug("Dashboard cache invalidated", zap.String("event_type", event.EventType()))
	return nil
}
