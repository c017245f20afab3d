package middleware

import (
	"net/http"

	"sicknote-hub/internal/domain"
	"sicknote-hub/internal/infrastructure/token"

	"github.com/labstack/echo/v4"
)

const csrfHeader = "X-CSRF-Token"

// CSRFCheck creates middleware that verifies the CSRF token on mutating
// endpoints against the current session. Requests without a live
// session fall through; the handler's own session check rejects them.
func CSRFCheck(sessions domain.SessionReader, generator *token.HMACCSRFGenerator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := sessions.Current()
			if !ok {
				return next(c)
			}

			presented := c.Request().Header.Get(csrfHeader)
			if presented == "" {
				return echo.NewHTTPError(http.StatusForbidden, "missing CSRF token")
			}
			if !generator.Verify(identity.Token, presented) {
				return echo.NewHTTPError(http.StatusForbidden, "invalid CSRF token")
			}
			return next(c)
		}
	}
}
