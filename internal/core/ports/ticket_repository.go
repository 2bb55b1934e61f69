package ports

import (
	"context"

	"github.com/eventio/ticket-registry/internal/core/domain"
)

// TicketRepository defines persistence operations for tickets.
type TicketRepository interface {
	// Create persists a new ticket. The per-vatin quota is enforced
	// atomically inside the store; domain.ErrQuotaExceeded is returned when
	// the vatin already holds the maximum number of tickets.
	Create(ctx context.Context, t *domain.Ticket) error
	// FindByID retrieves a ticket by its public identifier.
	// Returns domain.ErrTicketNotFound when no such ticket exists.
	FindByID(ctx context.Context, id string) (*domain.Ticket, error)
	CountAll(ctx context.Context) (int64, error)
	CountByVatin(ctx context.Context, vatin string) (int64, error)
}

// CountCache caches the total ticket count shown on the landing page.
// Implementations must treat cache failures as misses, never as hard errors.
type CountCache interface {
	// Get returns the cached count and whether a cached value was present.
	Get(ctx context.Context) (int64, bool, error)
	Set(ctx context.Context, count int64) error
	Invalidate(ctx context.Context) error
}
