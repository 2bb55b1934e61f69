package handler

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventio/ticket-registry/internal/api/httpsession"
	"github.com/eventio/ticket-registry/internal/api/metrics"
	"github.com/eventio/ticket-registry/internal/core/ports"
)

// AuthHandler drives the login, callback, and logout legs of the
// identity-provider flow.
type AuthHandler struct {
	identity ports.IdentityService
	logger   zerolog.Logger
}

func NewAuthHandler(identity ports.IdentityService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{identity: identity, logger: logger}
}

// Login starts the authorization-code flow: a random anti-forgery state is
// stored in the session, then the user is sent to the provider.
func (h *AuthHandler) Login(c echo.Context) error {
	state, err := randomState()
	if err != nil {
		return err
	}
	if err := httpsession.SetState(c, state); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, h.identity.AuthCodeURL(state))
}

// Callback completes the flow: the code is exchanged for a verified profile,
// the principal is stored in the session, and the user is sent back to the
// path they originally requested (or the root). Any provider failure is
// logged and answered with a redirect to the root, never an error page.
func (h *AuthHandler) Callback(c echo.Context) error {
	if errParam := c.QueryParam("error"); errParam != "" {
		h.logger.Warn().
			Str("error", errParam).
			Str("description", c.QueryParam("error_description")).
			Msg("identity provider returned an error")
		return c.Redirect(http.StatusFound, "/")
	}

	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" || state != httpsession.PopState(c) {
		h.logger.Warn().Msg("callback with missing code or mismatched state")
		return c.Redirect(http.StatusFound, "/")
	}

	principal, err := h.identity.Exchange(c.Request().Context(), code)
	if err != nil {
		h.logger.Error().Err(err).Msg("authorization code exchange failed")
		return c.Redirect(http.StatusFound, "/")
	}

	if err := httpsession.SetPrincipal(c, principal); err != nil {
		return err
	}

	h.logger.Info().Str("subject", principal.Subject).Msg("user logged in")
	metrics.LoginsTotal.Inc()

	return c.Redirect(http.StatusFound, httpsession.PopReturnTo(c))
}

// Logout clears the local session and redirects to the provider's
// end-session endpoint. A failure to clear the session is logged but never
// blocks the redirect.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := httpsession.Clear(c); err != nil {
		h.logger.Error().Err(err).Msg("failed to clear session on logout")
	}
	return c.Redirect(http.StatusFound, h.identity.LogoutURL())
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
