// Package httpsession wraps the cookie-backed session for the values the
// application keeps between requests: the authenticated principal, the
// OAuth2 anti-forgery state, and the path to return to after login.
package httpsession

import (
	"encoding/gob"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/eventio/ticket-registry/internal/core/domain"
)

// Name is the session cookie name.
const Name = "session"

const (
	keyPrincipal = "principal"
	keyReturnTo  = "return_to"
	keyState     = "oauth_state"
)

func init() {
	gob.Register(domain.Principal{})
}

// CurrentPrincipal returns the authenticated principal stored in the session,
// if any. A missing or unreadable session counts as anonymous.
func CurrentPrincipal(c echo.Context) (domain.Principal, bool) {
	sess, err := session.Get(Name, c)
	if err != nil {
		return domain.Principal{}, false
	}
	p, ok := sess.Values[keyPrincipal].(domain.Principal)
	if !ok || !p.IsAuthenticated() {
		return domain.Principal{}, false
	}
	return p, true
}

// SetPrincipal stores the principal in the session.
func SetPrincipal(c echo.Context, p domain.Principal) error {
	sess, err := session.Get(Name, c)
	if err != nil {
		return err
	}
	sess.Values[keyPrincipal] = p
	return sess.Save(c.Request(), c.Response())
}

// Clear invalidates the session.
func Clear(c echo.Context) error {
	sess, err := session.Get(Name, c)
	if err != nil {
		return err
	}
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

// SetReturnTo remembers the path the user originally requested.
func SetReturnTo(c echo.Context, path string) error {
	return set(c, keyReturnTo, path)
}

// PopReturnTo returns the remembered path and removes it from the session.
// Returns "/" when nothing was remembered.
func PopReturnTo(c echo.Context) string {
	v := pop(c, keyReturnTo)
	if v == "" {
		return "/"
	}
	return v
}

// SetState stores the OAuth2 anti-forgery state.
func SetState(c echo.Context, state string) error {
	return set(c, keyState, state)
}

// PopState returns the stored OAuth2 state and removes it from the session.
func PopState(c echo.Context) string {
	return pop(c, keyState)
}

func set(c echo.Context, key, value string) error {
	sess, err := session.Get(Name, c)
	if err != nil {
		return err
	}
	sess.Values[key] = value
	return sess.Save(c.Request(), c.Response())
}

func pop(c echo.Context, key string) string {
	sess, err := session.Get(Name, c)
	if err != nil {
		return ""
	}
	v, _ := sess.Values[key].(string)
	if v != "" {
		delete(sess.Values, key)
		_ = sess.Save(c.Request(), c.Response())
	}
	return v
}
