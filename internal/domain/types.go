package domain

import (
	"time"

	"github.com/google/uuid"
)

type Party struct {
	ID       string
	Title    string
	Archived bool
}

type User struct {
	ID         uuid.UUID
	ScreenName string
	Suspended  bool
	Deleted    bool
}

type TicketCategory struct {
	ID      uuid.UUID
	PartyID string
	Title   string
}

// Ticket is a snapshot of a ticket row. The seat link lives on the ticket;
// Seat.OccupiedByTicketID is derived from it.
type Ticket struct {
	ID              uuid.UUID
	CreatedAt       time.Time
	Code            string
	BundleID        *uuid.UUID
	PartyID         string
	CategoryID      uuid.UUID
	OwnedByID       uuid.UUID
	OrderNumber     *string
	OccupiedSeatID  *uuid.UUID
	UsedByID        *uuid.UUID
	SeatManagedByID *uuid.UUID
	UserManagedByID *uuid.UUID
	Revoked         bool
	UserCheckedIn   bool
}

func (t Ticket) BelongsToBundle() bool {
	return t.BundleID != nil
}

// SeatManagerID returns the delegated seat manager, or the owner.
func (t Ticket) SeatManagerID() uuid.UUID {
	if t.SeatManagedByID != nil {
		return *t.SeatManagedByID
	}
	return t.OwnedByID
}

// UserManagerID returns the delegated user manager, or the owner.
func (t Ticket) UserManagerID() uuid.UUID {
	if t.UserManagedByID != nil {
		return *t.UserManagedByID
	}
	return t.OwnedByID
}

func (t Ticket) IsSeatManagedBy(userID uuid.UUID) bool {
	return t.SeatManagerID() == userID
}

func (t Ticket) IsUserManagedBy(userID uuid.UUID) bool {
	return t.UserManagerID() == userID
}

type TicketBundle struct {
	ID             uuid.UUID
	CreatedAt      time.Time
	PartyID        string
	CategoryID     uuid.UUID
	TicketQuantity int
	OwnedByID      uuid.UUID
	Label          *string
	Revoked        bool
	TicketIDs      []uuid.UUID
}

type SeatingArea struct {
	ID      uuid.UUID
	PartyID string
	Slug    string
	Title   string
}

type Seat struct {
	ID                 uuid.UUID
	AreaID             uuid.UUID
	CoordX             int
	CoordY             int
	CategoryID         uuid.UUID
	Label              *string
	OccupiedByTicketID *uuid.UUID
}

func (s Seat) IsOccupied() bool {
	return s.OccupiedByTicketID != nil
}

type SeatGroup struct {
	ID           uuid.UUID
	PartyID      string
	CategoryID   uuid.UUID
	SeatQuantity int
	Title        string
	Seats        []Seat
}

// SeatGroupOccupancy links exactly one seat group to exactly one ticket
// bundle. Its existence is what makes a group occupied.
type SeatGroupOccupancy struct {
	ID             uuid.UUID
	SeatGroupID    uuid.UUID
	TicketBundleID uuid.UUID
}

type TicketCheckIn struct {
	ID          uuid.UUID
	OccurredAt  time.Time
	TicketID    uuid.UUID
	InitiatorID uuid.UUID
}
