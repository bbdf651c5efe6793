package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	db          Pinger
}

// NewHealthHandler creates the health-check handler. db may be nil in
// tests; readiness then only reports process liveness.
func NewHealthHandler(serviceName string, db Pinger) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, db: db}
}

// RegisterRoutes attaches health-check routes to the given echo instance.
func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.liveness)
	e.GET("/readyz", h.readiness)
}

func (h *HealthHandler) liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"service": h.serviceName,
	})
}

func (h *HealthHandler) readiness(c echo.Context) error {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status":  "unavailable",
				"service": h.serviceName,
				"error":   "database unreachable",
			})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"service": h.serviceName,
	})
}
