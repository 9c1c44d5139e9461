package middleware

import (
	"context"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopdesk/backend/internal/infrastructure/telemetry"
)

// ProfilingConfig holds configuration for the profiling middleware
type ProfilingConfig struct {
	Enabled          bool
	SkipPaths        []string
	SkipPathPrefixes []string
}

// DefaultProfilingConfig returns default profiling middleware configuration
func DefaultProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Enabled:          true,
		SkipPaths:        []string{"/health", "/api/v1/health"},
		SkipPathPrefixes: []string{"/swagger"},
	}
}

// Profiling attaches Pyroscope labels (controller, route, method, role) to
// the goroutine serving the request. Mount it after JWT authentication so
// the role is known.
func Profiling(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return passThrough
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if slices.Contains(cfg.SkipPaths, path) || slices.ContainsFunc(cfg.SkipPathPrefixes, func(p string) bool {
			return strings.HasPrefix(path, p)
		}) {
			c.Next()
			return
		}

		route := c.FullPath()
		labels := telemetry.HTTPRequestLabels(controllerFromRoute(route), route, c.Request.Method, string(GetJWTRole(c)))
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// controllerFromRoute derives the resource name of a route:
// /api/v1/admin/orders/:id -> orders, /api/v1/cart/items -> cart
func controllerFromRoute(route string) string {
	for _, part := range strings.Split(route, "/") {
		switch {
		case part == "", part == "api", part == "admin", isVersionSegment(part):
			continue
		case strings.HasPrefix(part, ":"), strings.HasPrefix(part, "*"):
			continue
		default:
			return part
		}
	}
	return ""
}

func isVersionSegment(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}
	for _, r := range segment[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
