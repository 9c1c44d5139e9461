package telemetry

import (
	"context"
	"sort"
	"strings"

	"github.com/grafana/pyroscope-go"
)

// Profiling label keys.
const (
	ProfilingLabelController = "controller"
	ProfilingLabelRoute      = "route"
	ProfilingLabelMethod     = "method"
	ProfilingLabelRole       = "role"
	ProfilingLabelOperation  = "operation"
)

// Operation names used as profiling labels by the application services.
const (
	OperationCheckout      = "checkout"
	OperationStatusChange  = "order_status_change"
	OperationRecordPayment = "record_payment"
	OperationDashboard     = "dashboard"
	OperationExport        = "export"
)

// MaxLabelValueLength caps label values
const MaxLabelValueLength = 128

// HighCardinalityLabels are dropped from profiling labels.
var HighCardinalityLabels = map[string]bool{
	"user_id":     true,
	"customer_id": true,
	"request_id":  true,
	"order_id":    true,
	"payment_id":  true,
	"trace_id":    true,
	"span_id":     true,
}

// WithProfilingLabels runs fn with the labels attached to its goroutine's
// profile samples. Empty and high-cardinality labels are dropped.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := sanitizeLabels(labels)
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

func sanitizeLabels(labels map[string]string) []string {
	if len(labels) == 0 {
		return nil
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(labels)*2)
	for _, key := range keys {
		value := labels[key]
		if value == "" || HighCardinalityLabels[key] {
			continue
		}
		if len(value) > MaxLabelValueLength {
			value = value[:MaxLabelValueLength]
		}
		sanitized := sanitizeLabelKey(key)
		if sanitized == "" {
			continue
		}
		pairs = append(pairs, sanitized, value)
	}
	return pairs
}

// sanitizeLabelKey lowercases key and keeps [a-z0-9_]
func sanitizeLabelKey(key string) string {
	key = strings.ToLower(key)
	var b strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_':
			b.WriteByte(c)
		case c == ' ' || c == '-':
			b.WriteByte('_')
		}
	}
	return b.String()
}

// HTTPRequestLabels builds the labels of one HTTP request
func HTTPRequestLabels(controller, route, method, role string) map[string]string {
	return map[string]string{
		ProfilingLabelController: controller,
		ProfilingLabelRoute:      route,
		ProfilingLabelMethod:     method,
		ProfilingLabelRole:       role,
	}
}

// OperationLabels builds the labels of a named application operation
func OperationLabels(operation string, extra map[string]string) map[string]string {
	labels := make(map[string]string, len(extra)+1)
	for k, v := range extra {
		labels[k] = v
	}
	labels[ProfilingLabelOperation] = operation
	return labels
}
