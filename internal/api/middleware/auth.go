package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventio/ticket-registry/internal/api/httpsession"
)

// SessionAuth gates a route on an authenticated session. Unauthenticated
// requests are redirected to /login after the originally requested path is
// captured in the session, so the user lands back on it after signing in.
// Non-GET requests capture "/" instead, since their body cannot be replayed.
func SessionAuth(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := httpsession.CurrentPrincipal(c); ok {
				return next(c)
			}

			returnTo := "/"
			if c.Request().Method == http.MethodGet {
				returnTo = c.Request().RequestURI
			}
			if err := httpsession.SetReturnTo(c, returnTo); err != nil {
				log.Warn().Err(err).Str("path", returnTo).Msg("failed to store return destination")
			}

			return c.Redirect(http.StatusFound, "/login")
		}
	}
}
