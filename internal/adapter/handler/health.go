package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles liveness probes from the healthcheck subcommand
// and container runtimes.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Handle processes the /v1/health endpoint. The hub is healthy as soon
// as it can serve the facade; campus backend reachability is surfaced
// per request, not here.
func (h *HealthHandler) Handle(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "sicknote-hub",
	})
}
