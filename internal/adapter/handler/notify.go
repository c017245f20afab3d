package handler

import (
	"net/http"

	"sicknote-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// NotifyHandler handles POST /v1/notify. A gate refusal comes back as a
// 403 carrying the decision so the screen can render the reason.
type NotifyHandler struct {
	uc *usecase.NotifyFriends
}

// NewNotifyHandler creates a new notify handler.
func NewNotifyHandler(uc *usecase.NotifyFriends) *NotifyHandler {
	return &NotifyHandler{uc: uc}
}

type notifyRequest struct {
	FriendIDs []int64 `json:"friend_ids"`
}

// Handle notifies the selected friends.
func (h *NotifyHandler) Handle(c echo.Context) error {
	var req notifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.FriendIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "friend_ids must not be empty")
	}

	if err := h.uc.Execute(c.Request().Context(), req.FriendIDs); err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"notified": true})
}
