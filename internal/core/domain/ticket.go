package domain

import (
	"errors"
	"time"
)

// MaxTicketsPerVatin is the quota of tickets a single tax identifier may hold.
const MaxTicketsPerVatin = 3

// Field length limits enforced on ticket creation.
const (
	MaxVatinLen     = 11
	MaxFirstNameLen = 100
	MaxLastNameLen  = 100
)

var ErrTicketNotFound = errors.New("ticket not found")
var ErrQuotaExceeded = errors.New("ticket quota exceeded for vatin")

// Ticket is a registration record. It is created once and never mutated.
type Ticket struct {
	ID        string    `json:"id"`
	Vatin     string    `json:"vatin"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}
