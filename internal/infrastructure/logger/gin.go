package logger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ginRequestIDKey is the gin context key written by the RequestID middleware
const ginRequestIDKey = "request_id"

// GinMiddleware attaches a request-scoped logger to the request context and
// writes one access line per request once the handler chain returns.
// Handlers and later middleware retrieve it with FromContext or L.
func GinMiddleware(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetString(ginRequestIDKey)

		ctx, reqLog := WithRequestID(c.Request.Context(), base.With(
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		// Later middleware may have replaced the request context with one
		// that carries the principal and the server span.
		ctx = c.Request.Context()
		access := WithTraceContext(ctx, reqLog)
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("bytes", c.Writer.Size()),
		}
		if route := c.FullPath(); route != "" {
			fields = append(fields, zap.String("route", route))
		}
		if q := c.Request.URL.RawQuery; q != "" {
			fields = append(fields, zap.String("query", q))
		}
		if uid := GetUserID(ctx); uid != "" {
			fields = append(fields, zap.String("user_id", uid))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			access.Error("request failed", fields...)
		case status >= http.StatusBadRequest:
			access.Warn("request rejected", fields...)
		default:
			access.Info("request served", fields...)
		}
	}
}

// Recovery turns a handler panic into a 500 error envelope and logs the
// panic value with its stack.
func Recovery(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			requestID := c.GetString(ginRequestIDKey)
			base.Error("panic recovered",
				zap.String("request_id", requestID),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Any("panic", rec),
				zap.Stack("stacktrace"),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":       "INTERNAL_ERROR",
					"message":    "An internal error occurred",
					"request_id": requestID,
				},
			})
		}()
		c.Next()
	}
}
