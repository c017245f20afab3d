package handler

import (
	"errors"
	"net/http"

	"sicknote-hub/internal/domain"

	"github.com/labstack/echo/v4"
)

// mapDomainError converts a domain error into an appropriate
// echo.HTTPError. Gate denials are not mapped here: they are decision
// values rendered by their own handlers, not failures.
func mapDomainError(err error) *echo.HTTPError {
	if denied, ok := domain.AsAccessDenied(err); ok {
		return echo.NewHTTPError(http.StatusForbidden, deniedBody(denied))
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, userMessage(err, "login failed"))

	case errors.Is(err, domain.ErrNoSession),
		errors.Is(err, domain.ErrPartialRecord):
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")

	case errors.Is(err, domain.ErrMalformedResponse):
		return echo.NewHTTPError(http.StatusBadGateway, "campus backend returned an unexpected response")

	case errors.Is(err, domain.ErrBackendUnavailable),
		errors.Is(err, domain.ErrPrivacyUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, "campus backend unavailable")

	case errors.Is(err, domain.ErrSessionStorage):
		return echo.NewHTTPError(http.StatusInternalServerError, "session storage error")

	case errors.Is(err, domain.ErrUnknownResource):
		return echo.NewHTTPError(http.StatusBadRequest, "unknown resource tag")

	case errors.Is(err, domain.ErrCSRFSecretMissing):
		return echo.NewHTTPError(http.StatusInternalServerError, "token generation error")

	case errors.Is(err, domain.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

// deniedBody renders a gate refusal for the UI.
type deniedResponse struct {
	Resource domain.Resource       `json:"resource"`
	Decision domain.AccessDecision `json:"decision"`
}

func deniedBody(denied *domain.AccessDeniedError) deniedResponse {
	return deniedResponse{Resource: denied.Resource, Decision: denied.Decision}
}

// userMessage surfaces the server-provided message verbatim when the
// error carries one, else the generic fallback.
func userMessage(err error, fallback string) string {
	msg := err.Error()
	// Wrapped form is "<sentinel>: <server message>"; the sentinel text
	// alone means no server message was recovered.
	if msg == domain.ErrInvalidCredentials.Error() {
		return fallback
	}
	return msg
}
