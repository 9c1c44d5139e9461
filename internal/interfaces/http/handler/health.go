package handler

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopdesk/backend/internal/interfaces/http/dto"
)

// HealthCheck probes one dependency
type HealthCheck func(ctx context.Context) error

// HealthHandler reports liveness and the state of the backing services
type HealthHandler struct {
	BaseHandler
	version   string
	checks    map[string]HealthCheck
	timeout   time.Duration
	startTime time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{
		version:   version,
		checks:    make(map[string]HealthCheck),
		timeout:   2 * time.Second,
		startTime: time.Now(),
	}
}

// AddCheck registers a named dependency probe
func (h *HealthHandler) AddCheck(name string, check HealthCheck) {
	h.checks[name] = check
}

// HealthResponse is the health report
// @name HandlerHealthResponse
type HealthResponse struct {
	Status    string            `json:"status" example:"ok"`
	Version   string            `json:"version" example:"1.0.0"`
	GoVersion string            `json:"go_version" example:"go1.25.5"`
	Uptime    string            `json:"uptime" example:"1h30m45s"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Health godoc
// @ID           health
// @Summary      Health check
// @Description  Returns 503 when any dependency probe fails
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[HealthResponse]
// @Failure      503 {object} APIResponse[HealthResponse]
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := HealthResponse{
		Status:    "ok",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}
	status := http.StatusOK
	if len(names) > 0 {
		resp.Checks = make(map[string]string, len(names))
	}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	c.JSON(status, dto.Response{Success: status == http.StatusOK, Data: resp})
}
