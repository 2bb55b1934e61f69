package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventio/ticket-registry/internal/api/httpsession"
	"github.com/eventio/ticket-registry/internal/core/domain"
	"github.com/eventio/ticket-registry/internal/core/ports"
)

// HomeHandler renders the landing page with the total ticket count and the
// current principal, if any.
type HomeHandler struct {
	tickets ports.TicketService
}

func NewHomeHandler(tickets ports.TicketService) *HomeHandler {
	return &HomeHandler{tickets: tickets}
}

type homePage struct {
	Count     int64
	Principal domain.Principal
}

func (h *HomeHandler) Home(c echo.Context) error {
	count, err := h.tickets.Count(c.Request().Context())
	if err != nil {
		return err
	}

	principal, _ := httpsession.CurrentPrincipal(c)
	return c.Render(http.StatusOK, "index.html", homePage{
		Count:     count,
		Principal: principal,
	})
}
