package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eventio/ticket-registry/internal/api/metrics"
	"github.com/eventio/ticket-registry/internal/core/domain"
	"github.com/eventio/ticket-registry/internal/core/ports"
)

// TicketService implements ticket registration and lookup on top of the
// repository, with the landing-page count served through the cache.
type TicketService struct {
	repo    ports.TicketRepository
	cache   ports.CountCache
	baseURL string
	logger  zerolog.Logger
}

func NewTicketService(repo ports.TicketRepository, cache ports.CountCache, baseURL string, logger zerolog.Logger) *TicketService {
	return &TicketService{
		repo:    repo,
		cache:   cache,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// Create registers a new ticket. Quota enforcement happens atomically in the
// repository; domain.ErrQuotaExceeded passes through to the caller.
func (s *TicketService) Create(ctx context.Context, input ports.CreateTicketInput) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		ID:        uuid.NewString(),
		Vatin:     input.Vatin,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.logger.Info().Str("ticket_id", ticket.ID).Str("vatin", ticket.Vatin).Msg("ticket created")
	metrics.TicketsCreatedTotal.Inc()

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("failed to invalidate count cache")
		}
	}

	return ticket, nil
}

// Get retrieves a ticket by identifier.
func (s *TicketService) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	return s.repo.FindByID(ctx, id)
}

// Count returns the total number of registered tickets, served from the
// cache when a fresh value is available. Cache failures degrade to a direct
// store count and are logged, never surfaced to the caller.
func (s *TicketService) Count(ctx context.Context) (int64, error) {
	if s.cache != nil {
		n, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Msg("count cache read failed")
			metrics.CountCacheTotal.WithLabelValues("error").Inc()
		case ok:
			metrics.CountCacheTotal.WithLabelValues("hit").Inc()
			return n, nil
		default:
			metrics.CountCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	count, err := s.repo.CountAll(ctx)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, count); err != nil {
			s.logger.Warn().Err(err).Msg("count cache write failed")
		}
	}
	return count, nil
}

// TicketURL builds the canonical public URL for a ticket identifier.
func (s *TicketService) TicketURL(id string) string {
	return fmt.Sprintf("%s/ticket/%s", s.baseURL, id)
}
