package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventio/ticket-registry/internal/core/domain"
)

type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

// Create inserts a new ticket, enforcing the per-vatin quota atomically.
// The count and insert run in one transaction holding a per-vatin advisory
// lock, so two concurrent requests for the same vatin cannot both pass the
// quota check.
func (r *TicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	return withTx(ctx, r.pool, func(ctx context.Context) error {
		if _, err := r.exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, t.Vatin); err != nil {
			return fmt.Errorf("lock vatin: %w", err)
		}

		count, err := r.CountByVatin(ctx, t.Vatin)
		if err != nil {
			return err
		}
		if count >= domain.MaxTicketsPerVatin {
			return domain.ErrQuotaExceeded
		}

		const stmt = `
INSERT INTO tickets (id, vatin, first_name, last_name, created_at)
VALUES ($1, $2, $3, $4, $5)`

		if _, err := r.exec(ctx, stmt, t.ID, t.Vatin, t.FirstName, t.LastName, t.CreatedAt); err != nil {
			return fmt.Errorf("insert ticket: %w", err)
		}
		return nil
	})
}

// FindByID retrieves a ticket by its public identifier. A syntactically
// invalid identifier is reported as not found rather than a server error.
func (r *TicketRepository) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `
SELECT id, vatin, first_name, last_name, created_at
FROM tickets
WHERE id = $1`

	var t domain.Ticket
	err := r.queryRow(ctx, query, id).
		Scan(&t.ID, &t.Vatin, &t.FirstName, &t.LastName, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	return &t, nil
}

func (r *TicketRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.queryRow(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count tickets: %w", err)
	}
	return count, nil
}

func (r *TicketRepository) CountByVatin(ctx context.Context, vatin string) (int64, error) {
	var count int64
	if err := r.queryRow(ctx, `SELECT COUNT(*) FROM tickets WHERE vatin = $1`, vatin).Scan(&count); err != nil {
		return 0, fmt.Errorf("count tickets by vatin: %w", err)
	}
	return count, nil
}

func (r *TicketRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *TicketRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
