package domain

import (
	"time"

	"github.com/google/uuid"
)

// SeatReservationPrecondition gates seat reservation for a party: from
// AtEarliest on, users holding at least MinimumTicketQuantity tickets may
// reserve.
type SeatReservationPrecondition struct {
	ID                    uuid.UUID `json:"id"`
	PartyID               string    `json:"party_id"`
	AtEarliest            time.Time `json:"at_earliest"`
	MinimumTicketQuantity int       `json:"minimum_ticket_quantity"`
}

func (p SeatReservationPrecondition) IsMet(now time.Time, ticketQuantity int) bool {
	return !now.Before(p.AtEarliest) && ticketQuantity >= p.MinimumTicketQuantity
}

// ArePreconditionsMet reports whether any of the preconditions is met.
// An empty set yields false; treating "nothing configured" as open is the
// caller's decision.
func ArePreconditionsMet(
	preconditions []SeatReservationPrecondition,
	now time.Time,
	ticketQuantity int,
) bool {
	for _, p := range preconditions {
		if p.IsMet(now, ticketQuantity) {
			return true
		}
	}
	return false
}
