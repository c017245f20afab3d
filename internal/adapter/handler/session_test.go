package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sicknote-hub/internal/domain"
	"sicknote-hub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionRequest(h *SessionHandler) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
	rec := httptest.NewRecorder()
	return rec, h.Handle(e.NewContext(req, rec))
}

func TestSessionHandler_StudentSession(t *testing.T) {
	h := NewSessionHandler(usecase.NewGetSession(studentStore()))

	rec, err := sessionRequest(h)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"user_id":1,"role":"student","home":"/"}`, rec.Body.String())
}

func TestSessionHandler_ProfessorHome(t *testing.T) {
	sessions := &stubSessionStore{
		identity: &domain.Identity{Token: "tok", Role: domain.RoleProfessor, UserID: 5},
		epoch:    1,
	}
	h := NewSessionHandler(usecase.NewGetSession(sessions))

	rec, err := sessionRequest(h)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true,"user_id":5,"role":"professor","home":"/summary"}`, rec.Body.String())
}

func TestSessionHandler_NoSession(t *testing.T) {
	h := NewSessionHandler(usecase.NewGetSession(&stubSessionStore{}))

	_, err := sessionRequest(h)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
