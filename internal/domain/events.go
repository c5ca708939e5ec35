package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is a fact produced by a successful domain operation. Operations
// return events; dispatching them is up to the caller.
type Event interface {
	EventName() string
}

type SeatGroupOccupiedEvent struct {
	OccurredAt     time.Time `json:"occurred_at"`
	InitiatorID    uuid.UUID `json:"initiator_id"`
	PartyID        string    `json:"party_id"`
	SeatGroupID    uuid.UUID `json:"seat_group_id"`
	SeatGroupTitle string    `json:"seat_group_title"`
	TicketBundleID uuid.UUID `json:"ticket_bundle_id"`
}

func (SeatGroupOccupiedEvent) EventName() string { return "seat-group-occupied" }

type SeatGroupReleasedEvent struct {
	OccurredAt     time.Time `json:"occurred_at"`
	InitiatorID    uuid.UUID `json:"initiator_id"`
	PartyID        string    `json:"party_id"`
	SeatGroupID    uuid.UUID `json:"seat_group_id"`
	SeatGroupTitle string    `json:"seat_group_title"`
	TicketBundleID uuid.UUID `json:"ticket_bundle_id"`
}

func (SeatGroupReleasedEvent) EventName() string { return "seat-group-released" }

type TicketCheckedInEvent struct {
	OccurredAt     time.Time  `json:"occurred_at"`
	InitiatorID    uuid.UUID  `json:"initiator_id"`
	PartyID        string     `json:"party_id"`
	TicketID       uuid.UUID  `json:"ticket_id"`
	TicketCode     string     `json:"ticket_code"`
	OccupiedSeatID *uuid.UUID `json:"occupied_seat_id,omitempty"`
	UserID         uuid.UUID  `json:"user_id"`
	UserScreenName string     `json:"user_screen_name"`
}

func (TicketCheckedInEvent) EventName() string { return "ticket-checked-in" }
