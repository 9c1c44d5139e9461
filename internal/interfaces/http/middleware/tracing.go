package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracing returns the otelgin server span middleware. Spans are named
// "METHOD /route/:pattern". Disabled tracing yields a no-op.
func Tracing(serviceName string, enabled bool) gin.HandlerFunc {
	if !enabled {
		return passThrough
	}
	return otelgin.Middleware(serviceName)
}

// SpanEnricher tags the request span with request_id, user_id and role
// and marks it failed on 4xx/5xx responses. Mount it after Tracing and,
// on authenticated groups, after JWT authentication.
func SpanEnricher() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		if id := GetRequestID(c); id != "" {
			span.SetAttributes(attribute.String("request_id", id))
		}
		if id := GetJWTUserID(c); id != "" {
			span.SetAttributes(attribute.String("user_id", id))
		}
		if role := GetJWTRole(c); role != "" {
			span.SetAttributes(attribute.String("auth.role", string(role)))
		}

		if status := c.Writer.Status(); status >= http.StatusBadRequest {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
