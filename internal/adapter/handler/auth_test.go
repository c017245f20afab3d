package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sicknote-hub/internal/domain"
	"sicknote-hub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthHandler(exchanger *stubExchanger, sessions *stubSessionStore) *AuthHandler {
	login := usecase.NewLogin(exchanger, sessions, discardLogger())
	register := usecase.NewRegister(exchanger, login, discardLogger())
	logout := usecase.NewLogout(sessions, discardLogger())
	return NewAuthHandler(login, register, logout)
}

func postJSON(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login(t *testing.T) {
	exchanger := &stubExchanger{
		identity: &domain.Identity{Token: "tok-abc", Role: domain.RoleStudent, UserID: 42},
	}
	sessions := &stubSessionStore{}
	h := newAuthHandler(exchanger, sessions)

	c, rec := postJSON("/v1/auth/login", `{"email":"taro@example.com","password":"hunter2"}`)
	require.NoError(t, h.HandleLogin(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":42,"role":"student"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "tok-abc", "the session token must never reach the shell")

	_, ok := sessions.Current()
	assert.True(t, ok)
}

func TestAuthHandler_LoginRejected(t *testing.T) {
	exchanger := &stubExchanger{loginErr: domain.ErrInvalidCredentials}
	h := newAuthHandler(exchanger, &stubSessionStore{})

	c, _ := postJSON("/v1/auth/login", `{"email":"taro@example.com","password":"wrong"}`)
	err := h.HandleLogin(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestAuthHandler_LoginInvalidBody(t *testing.T) {
	h := newAuthHandler(&stubExchanger{}, &stubSessionStore{})

	c, _ := postJSON("/v1/auth/login", `{not json`)
	err := h.HandleLogin(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestAuthHandler_Signup(t *testing.T) {
	exchanger := &stubExchanger{
		identity: &domain.Identity{Token: "tok-new", Role: domain.RoleProfessor, UserID: 7},
	}
	sessions := &stubSessionStore{}
	h := newAuthHandler(exchanger, sessions)

	c, rec := postJSON("/v1/auth/signup",
		`{"email":"sensei@example.com","password":"hunter2","full_name":"Ken Sato","role":"professor"}`)
	require.NoError(t, h.HandleSignup(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"user_id":7,"role":"professor"}`, rec.Body.String())
}

func TestAuthHandler_SignupUnknownRole(t *testing.T) {
	h := newAuthHandler(&stubExchanger{}, &stubSessionStore{})

	c, _ := postJSON("/v1/auth/signup", `{"email":"x@example.com","password":"p","role":"dean"}`)
	err := h.HandleSignup(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	sessions := studentStore()
	h := newAuthHandler(&stubExchanger{}, sessions)

	c, rec := postJSON("/v1/auth/logout", "")
	require.NoError(t, h.HandleLogout(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, ok := sessions.Current()
	assert.False(t, ok)
}
