package telemetry

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// pipeline is the lifecycle shared by the trace, metric and log providers.
// A pipeline without hooks belongs to a disabled signal; flushing and
// stopping it are no-ops.
type pipeline struct {
	signal string
	logger *zap.Logger
	flush  func(context.Context) error
	stop   func(context.Context) error
}

func (p *pipeline) attach(flush, stop func(context.Context) error) {
	p.flush = flush
	p.stop = stop
}

func (p *pipeline) running() bool {
	return p.stop != nil
}

// ForceFlush exports everything buffered so far
func (p *pipeline) ForceFlush(ctx context.Context) error {
	if p.flush == nil {
		return nil
	}
	return p.flush(ctx)
}

// Shutdown flushes and stops the pipeline, waiting at most shutdownTimeout
func (p *pipeline) Shutdown(ctx context.Context) error {
	if p.stop == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := p.stop(ctx); err != nil {
		p.logger.Error("Telemetry shutdown failed", zap.String("signal", p.signal), zap.Error(err))
		return fmt.Errorf("shutdown %s pipeline: %w", p.signal, err)
	}
	p.logger.Info("Telemetry pipeline stopped", zap.String("signal", p.signal))
	return nil
}
