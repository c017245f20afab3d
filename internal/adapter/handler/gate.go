package handler

import (
	"log/slog"
	"net/http"

	"sicknote-hub/internal/domain"
	"sicknote-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// GateHandler handles GET /v1/gate/:resource. Decisions are data for
// the UI, so every evaluated outcome (allow, redirect or deny) is a
// 200 response; only an unknown tag is a client error.
type GateHandler struct {
	uc *usecase.EvaluateAccess
}

// NewGateHandler creates a new gate handler.
func NewGateHandler(uc *usecase.EvaluateAccess) *GateHandler {
	return &GateHandler{uc: uc}
}

// Handle evaluates the feature gate for the tagged resource.
func (h *GateHandler) Handle(c echo.Context) error {
	ctx := c.Request().Context()

	resource, err := domain.ParseResource(c.Param("resource"))
	if err != nil {
		return mapDomainError(err)
	}

	decision := h.uc.Evaluate(ctx, resource)
	slog.DebugContext(ctx, "gate evaluated",
		"resource", resource,
		"allow", decision.Allow,
		"reason", decision.Reason)

	return c.JSON(http.StatusOK, decision)
}
