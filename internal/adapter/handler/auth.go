package handler

import (
	"net/http"

	"sicknote-hub/internal/domain"
	"sicknote-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles login, signup and logout for the UI shell.
type AuthHandler struct {
	login    *usecase.Login
	register *usecase.Register
	logout   *usecase.Logout
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(login *usecase.Login, register *usecase.Register, logout *usecase.Logout) *AuthHandler {
	return &AuthHandler{login: login, register: register, logout: logout}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// identityResponse is the identity summary returned to the UI. The
// token never leaves the hub.
type identityResponse struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// HandleLogin processes POST /v1/auth/login.
func (h *AuthHandler) HandleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	identity, err := h.login.Execute(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, identityResponse{
		UserID: identity.UserID,
		Role:   identity.Role,
	})
}

// HandleSignup processes POST /v1/auth/signup: register then login,
// committing only after the login leg succeeds.
func (h *AuthHandler) HandleSignup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "role must be student or professor")
	}

	identity, err := h.register.Execute(c.Request().Context(), domain.Registration{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     role,
	})
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusCreated, identityResponse{
		UserID: identity.UserID,
		Role:   identity.Role,
	})
}

// HandleLogout processes POST /v1/auth/logout.
func (h *AuthHandler) HandleLogout(c echo.Context) error {
	if err := h.logout.Execute(c.Request().Context()); err != nil {
		return mapDomainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
