package event

import (
	"context"

	"github.com/shopdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Publish hands the pending events of each aggregate to publisher and
// clears them. It runs after the owning transaction has committed, so a
// publish failure is logged and never undoes the state change.
func Publish(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, aggregates ...shared.AggregateRoot) {
	for _, agg := range aggregates {
		if agg == nil {
			continue
		}
		events := agg.GetDomainEvents()
		agg.ClearDomainEvents()
		if publisher == nil || len(events) == 0 {
			continue
		}
		if err := publisher.Publish(ctx, events...); err != nil && logger != nil {
			logger.Warn("Failed to publish domain events",
				zap.String("aggregate_id", agg.GetID().String()),
				zap.Int("event_count", len(events)),
				zap.Error(err))
		}
	}
}
