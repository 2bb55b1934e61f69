package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventio/ticket-registry/internal/api/render"
	"github.com/eventio/ticket-registry/internal/core/domain"
)

func newErrorTestContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("build renderer: %v", err)
	}
	e.Renderer = renderer

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestErrorHandler_TicketNotFound(t *testing.T) {
	c, rec := newErrorTestContext(t, "/ticket/nope")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrTicketNotFound, c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ticket not found") {
		t.Fatalf("expected not-found message, got %s", rec.Body.String())
	}
}

func TestErrorHandler_QuotaExceeded(t *testing.T) {
	c, rec := newErrorTestContext(t, "/create")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrQuotaExceeded, c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "maximum number of tickets") {
		t.Fatalf("expected quota message, got %s", rec.Body.String())
	}
}

func TestErrorHandler_HTTPErrorPassthrough(t *testing.T) {
	c, rec := newErrorTestContext(t, "/create")

	NewHTTPErrorHandler(zerolog.Nop())(echo.NewHTTPError(http.StatusBadRequest, "all fields are required"), c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "all fields are required") {
		t.Fatalf("expected validation message, got %s", rec.Body.String())
	}
}

func TestErrorHandler_UnexpectedErrorIsGeneric(t *testing.T) {
	c, rec := newErrorTestContext(t, "/")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("pq: password authentication failed"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "internal server error") {
		t.Fatalf("expected generic message, got %s", body)
	}
	if strings.Contains(body, "password") {
		t.Fatalf("internal error detail leaked to client: %s", body)
	}
}

func TestErrorHandler_APIRouteGetsJSON(t *testing.T) {
	c, rec := newErrorTestContext(t, "/api/tickets/nope")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrTicketNotFound, c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":"ticket not found"`) {
		t.Fatalf("expected JSON error envelope, got %s", rec.Body.String())
	}
}
