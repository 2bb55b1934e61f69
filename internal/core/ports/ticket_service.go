package ports

import (
	"context"

	"github.com/eventio/ticket-registry/internal/core/domain"
)

// CreateTicketInput carries the validated form fields for a new ticket.
type CreateTicketInput struct {
	Vatin     string
	FirstName string
	LastName  string
}

// TicketService exposes the ticket operations consumed by the HTTP handlers.
type TicketService interface {
	// Create registers a new ticket. Returns domain.ErrQuotaExceeded when the
	// vatin already holds the maximum number of tickets.
	Create(ctx context.Context, input CreateTicketInput) (*domain.Ticket, error)
	// Get retrieves a ticket by identifier; domain.ErrTicketNotFound when absent.
	Get(ctx context.Context, id string) (*domain.Ticket, error)
	// Count returns the total number of registered tickets.
	Count(ctx context.Context) (int64, error)
	// TicketURL builds the canonical public URL for a ticket identifier.
	TicketURL(id string) string
}
