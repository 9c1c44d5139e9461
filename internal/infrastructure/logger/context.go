package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
	userIDKey    contextKey = "user_id"
	roleKey      contextKey = "role"
)

// WithContext returns a new context carrying logger
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger carried by ctx, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID stores the request ID in ctx and returns a logger tagged
// with it, which is also stored in the returned context
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	return withValue(ctx, logger, requestIDKey, requestID)
}

// WithUserID stores the authenticated principal's ID
func WithUserID(ctx context.Context, logger *zap.Logger, userID string) (context.Context, *zap.Logger) {
	return withValue(ctx, logger, userIDKey, userID)
}

// WithRole stores the authenticated principal's role (staff or customer)
func WithRole(ctx context.Context, logger *zap.Logger, role string) (context.Context, *zap.Logger) {
	return withValue(ctx, logger, roleKey, role)
}

func withValue(ctx context.Context, logger *zap.Logger, key contextKey, value string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, key, value)
	enriched := logger.With(zap.String(string(key), value))
	return WithContext(ctx, enriched), enriched
}

// GetRequestID returns the request ID stored in ctx
func GetRequestID(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

// GetUserID returns the principal ID stored in ctx
func GetUserID(ctx context.Context) string {
	return stringValue(ctx, userIDKey)
}

// GetRole returns the principal role stored in ctx
func GetRole(ctx context.Context) string {
	return stringValue(ctx, roleKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

// WithTraceContext adds trace_id and span_id of the active span to logger.
// Without a valid span the logger is returned unchanged.
func WithTraceContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	spanCtx := trace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return logger
	}
	return logger.With(
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	)
}

// L returns the context logger with the active trace attached.
//
//	logger.L(ctx).Info("Order placed", zap.String("order_id", id))
func L(ctx context.Context) *zap.Logger {
	return WithTraceContext(ctx, FromContext(ctx))
}
