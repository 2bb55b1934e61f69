package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// BearerConfig configures the bearer token middleware for the JSON API.
type BearerConfig struct {
	// Keyfunc resolves the verification key for a token, typically backed by
	// the provider's JWKS endpoint.
	Keyfunc jwt.Keyfunc
	// Issuer and Audience are enforced on every token.
	Issuer   string
	Audience string
	// Methods lists the accepted signing algorithms. Defaults to RS256.
	Methods []string
}

// Bearer validates the Authorization bearer JWT and injects its claims into
// the echo context under "token_claims" and the subject under "subject".
func Bearer(cfg BearerConfig) echo.MiddlewareFunc {
	methods := cfg.Methods
	if len(methods) == 0 {
		methods = []string{jwt.SigningMethodRS256.Alg()}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, cfg.Keyfunc,
				jwt.WithValidMethods(methods),
				jwt.WithIssuer(cfg.Issuer),
				jwt.WithAudience(cfg.Audience),
				jwt.WithExpirationRequired(),
			)
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("token_claims", claims)
			if sub, err := claims.GetSubject(); err == nil {
				c.Set("subject", sub)
			}

			return next(c)
		}
	}
}
