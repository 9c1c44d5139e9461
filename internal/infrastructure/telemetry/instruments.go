package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Attribute keys recorded on ShopDesk metrics
var (
	AttrHTTPMethod     = attribute.Key("http.method")
	AttrHTTPStatusCode = attribute.Key("http.status_code")
	AttrHTTPRoute      = attribute.Key("http.route")
	AttrAuthRole       = attribute.Key("auth.role")

	AttrDBOperation = attribute.Key("db.operation")
	AttrDBTable     = attribute.Key("db.table")
	AttrDBState     = attribute.Key("db.pool.state")

	AttrOrderStatusFrom = attribute.Key("order.status.from")
	AttrOrderStatusTo   = attribute.Key("order.status.to")
	AttrPaymentMethod   = attribute.Key("payment_method")
)

// Explicit histogram boundaries. Durations are in seconds, amounts in the
// store currency.
var (
	HTTPDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	DBDurationBuckets   = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}
	ItemCountBuckets    = []float64{1, 2, 3, 5, 10, 20, 50}
	AmountBuckets       = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 5000}
)

func instrumentErr(kind, name string, err error) error {
	return fmt.Errorf("create %s %s: %w", kind, name, err)
}

type Counter struct {
	inst metric.Int64Counter
}

func NewCounter(meter metric.Meter, name, description, unit string) (*Counter, error) {
	inst, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, instrumentErr("counter", name, err)
	}
	return &Counter{inst: inst}, nil
}

func (c *Counter) Add(ctx context.Context, n int64, attrs ...attribute.KeyValue) {
	c.inst.Add(ctx, n, metric.WithAttributes(attrs...))
}

func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.Add(ctx, 1, attrs...)
}

// HistogramOpts names a histogram. Without Boundaries the SDK defaults apply.
type HistogramOpts struct {
	Name        string
	Description string
	Unit        string
	Boundaries  []float64
}

type Histogram struct {
	inst metric.Float64Histogram
}

func NewHistogram(meter metric.Meter, opts HistogramOpts) (*Histogram, error) {
	options := []metric.Float64HistogramOption{metric.WithDescription(opts.Description), metric.WithUnit(opts.Unit)}
	if len(opts.Boundaries) > 0 {
		options = append(options, metric.WithExplicitBucketBoundaries(opts.Boundaries...))
	}
	inst, err := meter.Float64Histogram(opts.Name, options...)
	if err != nil {
		return nil, instrumentErr("histogram", opts.Name, err)
	}
	return &Histogram{inst: inst}, nil
}

func (h *Histogram) Record(ctx context.Context, v float64, attrs ...attribute.KeyValue) {
	h.inst.Record(ctx, v, metric.WithAttributes(attrs...))
}

// RecordDuration records d in seconds
func (h *Histogram) RecordDuration(ctx context.Context, d time.Duration, attrs ...attribute.KeyValue) {
	h.Record(ctx, d.Seconds(), attrs...)
}

// Gauge reports the last recorded value per attribute set
type Gauge struct {
	inst metric.Int64Gauge
}

func NewGauge(meter metric.Meter, name, description, unit string) (*Gauge, error) {
	inst, err := meter.Int64Gauge(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, instrumentErr("gauge", name, err)
	}
	return &Gauge{inst: inst}, nil
}

func (g *Gauge) Record(ctx context.Context, v int64, attrs ...attribute.KeyValue) {
	g.inst.Record(ctx, v, metric.WithAttributes(attrs...))
}
