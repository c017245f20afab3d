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

func newSettingsHandler(cache *stubPrivacyCache, updater *stubUpdater) *SettingsHandler {
	return NewSettingsHandler(
		usecase.NewGetPrivacy(cache),
		usecase.NewUpdatePrivacy(updater, cache, discardLogger()),
	)
}

func TestSettingsHandler_Get(t *testing.T) {
	cache := &stubPrivacyCache{fetchValue: domain.PrivacyFriends}
	h := newSettingsHandler(cache, &stubUpdater{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/settings/privacy", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.HandleGet(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"notification_privacy":"friends"}`, rec.Body.String())
}

func TestSettingsHandler_GetNoSession(t *testing.T) {
	cache := &stubPrivacyCache{fetchErr: domain.ErrNoSession}
	h := newSettingsHandler(cache, &stubUpdater{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/settings/privacy", nil)
	rec := httptest.NewRecorder()
	err := h.HandleGet(e.NewContext(req, rec))

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestSettingsHandler_Update(t *testing.T) {
	cache := &stubPrivacyCache{fetchValue: domain.PrivacyProfessors}
	h := newSettingsHandler(cache, &stubUpdater{})

	c, rec := postJSON("/v1/settings/privacy", `{"notification_privacy":"professors"}`)
	require.NoError(t, h.HandleUpdate(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"notification_privacy":"professors"}`, rec.Body.String())
}

func TestSettingsHandler_UpdateUnknownValue(t *testing.T) {
	h := newSettingsHandler(&stubPrivacyCache{}, &stubUpdater{})

	c, _ := postJSON("/v1/settings/privacy", `{"notification_privacy":"public"}`)
	err := h.HandleUpdate(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestSettingsHandler_UpdateGateDenied(t *testing.T) {
	denied := &domain.AccessDeniedError{
		Resource: domain.ResourceManageFriends,
		Decision: domain.AccessDecision{Reason: domain.ReasonWrongRole, Fallback: domain.RouteProfessorHome},
	}
	h := newSettingsHandler(&stubPrivacyCache{}, &stubUpdater{err: denied})

	c, _ := postJSON("/v1/settings/privacy", `{"notification_privacy":"friends"}`)
	err := h.HandleUpdate(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}
