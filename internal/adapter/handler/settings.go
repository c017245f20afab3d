package handler

import (
	"net/http"

	"sicknote-hub/internal/domain"
	"sicknote-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SettingsHandler handles the notification privacy endpoints.
type SettingsHandler struct {
	get    *usecase.GetPrivacy
	update *usecase.UpdatePrivacy
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(get *usecase.GetPrivacy, update *usecase.UpdatePrivacy) *SettingsHandler {
	return &SettingsHandler{get: get, update: update}
}

type privacyBody struct {
	NotificationPrivacy string `json:"notification_privacy"`
}

// HandleGet processes GET /v1/settings/privacy through the
// session-scoped cache.
func (h *SettingsHandler) HandleGet(c echo.Context) error {
	value, err := h.get.Execute(c.Request().Context())
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, privacyBody{NotificationPrivacy: string(value)})
}

// HandleUpdate processes POST /v1/settings/privacy and returns the
// refreshed server-accepted value.
func (h *SettingsHandler) HandleUpdate(c echo.Context) error {
	var req privacyBody
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	preference, err := domain.ParsePrivacyPreference(req.NotificationPrivacy)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "notification_privacy must be everyone, friends or professors")
	}

	value, err := h.update.Execute(c.Request().Context(), preference)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, privacyBody{NotificationPrivacy: string(value)})
}
