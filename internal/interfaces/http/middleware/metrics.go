// Package middleware provides the gin middleware of the ShopDesk API.
package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopdesk/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// httpMetrics holds the HTTP server instruments
type httpMetrics struct {
	requestTotal    *telemetry.Counter
	requestDuration *telemetry.Histogram
	responseSize    *telemetry.Histogram
	activeRequests  metric.Int64UpDownCounter
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	requestTotal, err := telemetry.NewCounter(meter,
		"http_server_request_total", "Total number of HTTP requests", "{request}")
	if err != nil {
		return nil, err
	}

	requestDuration, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_request_duration_seconds",
		Description: "HTTP request latency distribution in seconds",
		Unit:        "s",
		Boundaries:  telemetry.HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	responseSize, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_response_size_bytes",
		Description: "HTTP response body size distribution in bytes",
		Unit:        "By",
		Boundaries:  []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000, 1000000, 5000000},
	})
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter(
		"http_server_active_requests",
		metric.WithDescription("Number of currently active HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return &httpMetrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		responseSize:    responseSize,
		activeRequests:  activeRequests,
	}, nil
}

// HTTPMetrics returns a middleware that records request count (by method,
// route, status and role), latency, response size and in-flight requests
// on the given meter provider. A nil or disabled provider yields a no-op.
func HTTPMetrics(mp *telemetry.MeterProvider, log *zap.Logger) gin.HandlerFunc {
	if mp == nil || !mp.IsEnabled() {
		return passThrough
	}
	return HTTPMetricsWithMeter(mp.Meter("http.server"), log)
}

// HTTPMetricsWithMeter returns HTTP metrics middleware on an existing meter
func HTTPMetricsWithMeter(meter metric.Meter, log *zap.Logger) gin.HandlerFunc {
	metrics, err := newHTTPMetrics(meter)
	if err != nil {
		if log != nil {
			log.Warn("HTTP metrics disabled", zap.Error(err))
		}
		return passThrough
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()

		metrics.activeRequests.Add(ctx, 1)
		c.Next()
		metrics.activeRequests.Add(ctx, -1)

		metrics.record(ctx, c.Request.Method, routePattern(c), c.Writer.Status(),
			string(GetJWTRole(c)), time.Since(start), c.Writer.Size())
	}
}

func (m *httpMetrics) record(ctx context.Context, method, route string, status int, role string, d time.Duration, size int) {
	base := []attribute.KeyValue{
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPRoute.String(route),
	}

	counted := append(base[:len(base):len(base)], telemetry.AttrHTTPStatusCode.Int(status))
	if role != "" {
		counted = append(counted, telemetry.AttrAuthRole.String(role))
	}
	m.requestTotal.Inc(ctx, counted...)

	m.requestDuration.RecordDuration(ctx, d, base...)
	if size > 0 {
		m.responseSize.Record(ctx, float64(size), base...)
	}
}

// routePattern returns the matched route (e.g. /api/v1/orders/:id) to keep
// cardinality bounded
func routePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unknown"
}

// StatusGroup buckets a status code into 2xx, 3xx, 4xx, 5xx or other
func StatusGroup(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500:
		return "5xx"
	default:
		return "other"
	}
}

func passThrough(c *gin.Context) {
	c.Next()
}
