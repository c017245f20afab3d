package handler

import (
	"net/http"

	"sicknote-hub/internal/domain"
	"sicknote-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionHandler handles GET /v1/session for the UI shell.
type SessionHandler struct {
	uc *usecase.GetSession
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(uc *usecase.GetSession) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// sessionResponse represents the JSON response structure.
type sessionResponse struct {
	OK     bool         `json:"ok"`
	UserID int64        `json:"user_id"`
	Role   domain.Role  `json:"role"`
	Home   domain.Route `json:"home"`
}

// Handle processes the /v1/session endpoint.
func (h *SessionHandler) Handle(c echo.Context) error {
	identity, err := h.uc.Execute(c.Request().Context())
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, sessionResponse{
		OK:     true,
		UserID: identity.UserID,
		Role:   identity.Role,
		Home:   identity.Role.Home(),
	})
}
