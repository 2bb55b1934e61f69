package handler

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventio/ticket-registry/internal/api/httpsession"
	"github.com/eventio/ticket-registry/internal/api/metrics"
	"github.com/eventio/ticket-registry/internal/core/domain"
	"github.com/eventio/ticket-registry/internal/core/ports"
	"github.com/eventio/ticket-registry/internal/qr"
)

// TicketHandler serves ticket creation, the ticket detail page, and the JSON
// API lookup.
type TicketHandler struct {
	tickets ports.TicketService
}

func NewTicketHandler(tickets ports.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

type createTicketRequest struct {
	Vatin     string `form:"vatin"     validate:"required,max=11"`
	FirstName string `form:"firstName" validate:"required,max=100"`
	LastName  string `form:"lastName"  validate:"required,max=100"`
}

type confirmationPage struct {
	// template.URL keeps html/template from rewriting the data: URL to
	// #ZgotmplZ when it is used as an <img> src.
	QRCodeDataURL template.URL
	TicketURL     string
	Ticket        *domain.Ticket
}

type ticketPage struct {
	Ticket    *domain.Ticket
	Principal domain.Principal
}

// Create registers a new ticket from the submitted form and renders the
// confirmation page with a QR code encoding the ticket's canonical URL.
func (h *TicketHandler) Create(c echo.Context) error {
	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		metrics.TicketsRejectedTotal.WithLabelValues("validation").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}

	// All three fields must be present before any length rule is checked.
	if req.Vatin == "" || req.FirstName == "" || req.LastName == "" {
		metrics.TicketsRejectedTotal.WithLabelValues("validation").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "all fields are required")
	}

	if err := c.Validate(&req); err != nil {
		metrics.TicketsRejectedTotal.WithLabelValues("validation").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ticket, err := h.tickets.Create(c.Request().Context(), ports.CreateTicketInput{
		Vatin:     req.Vatin,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, domain.ErrQuotaExceeded) {
			metrics.TicketsRejectedTotal.WithLabelValues("quota").Inc()
		}
		return err
	}

	ticketURL := h.tickets.TicketURL(ticket.ID)
	dataURL, err := qr.DataURL(ticketURL)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "qr.html", confirmationPage{
		QRCodeDataURL: template.URL(dataURL),
		TicketURL:     ticketURL,
		Ticket:        ticket,
	})
}

// Show renders the detail page for the ticket identified in the path.
func (h *TicketHandler) Show(c echo.Context) error {
	ticket, err := h.tickets.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			metrics.TicketLookupsTotal.WithLabelValues("miss").Inc()
		}
		return err
	}
	metrics.TicketLookupsTotal.WithLabelValues("hit").Inc()

	principal, _ := httpsession.CurrentPrincipal(c)
	return c.Render(http.StatusOK, "ticket.html", ticketPage{
		Ticket:    ticket,
		Principal: principal,
	})
}

// APIGet returns a ticket as JSON for bearer-authenticated API clients.
func (h *TicketHandler) APIGet(c echo.Context) error {
	ticket, err := h.tickets.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ticket)
}
