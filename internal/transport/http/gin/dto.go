package httpgin

import (
	"time"

	"github.com/google/uuid"

	"github.com/kirinyoku/seatkeeper/internal/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// --- requests ---

type CreateCategoryRequest struct {
	Title string `json:"title" binding:"required"`
}

type CreateTicketsRequest struct {
	CategoryID  uuid.UUID  `json:"category_id" binding:"required"`
	OwnerID     uuid.UUID  `json:"owner_id" binding:"required"`
	Quantity    int        `json:"quantity" binding:"required,gt=0"`
	OrderNumber *string    `json:"order_number"`
	UsedByID    *uuid.UUID `json:"used_by_id"`
}

type CreateBundleRequest struct {
	CategoryID  uuid.UUID  `json:"category_id" binding:"required"`
	OwnerID     uuid.UUID  `json:"owner_id" binding:"required"`
	Quantity    int        `json:"quantity" binding:"required,gt=0"`
	Label       *string    `json:"label"`
	OrderNumber *string    `json:"order_number"`
	UsedByID    *uuid.UUID `json:"used_by_id"`
}

type RevokeRequest struct {
	Reason string `json:"reason"`
}

type AppointRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

type CreateAreaRequest struct {
	Slug  string `json:"slug" binding:"required"`
	Title string `json:"title" binding:"required"`
}

type CreateSeatRequest struct {
	X          int       `json:"x"`
	Y          int       `json:"y"`
	CategoryID uuid.UUID `json:"category_id" binding:"required"`
	Label      *string   `json:"label"`
}

type OccupySeatRequest struct {
	SeatID uuid.UUID `json:"seat_id" binding:"required"`
}

type CreateGroupRequest struct {
	CategoryID uuid.UUID   `json:"category_id" binding:"required"`
	Title      string      `json:"title" binding:"required"`
	SeatIDs    []uuid.UUID `json:"seat_ids" binding:"required,min=1"`
}

type OccupyGroupRequest struct {
	BundleID uuid.UUID `json:"bundle_id" binding:"required"`
}

type SwitchGroupRequest struct {
	TargetGroupID uuid.UUID `json:"target_group_id" binding:"required"`
	BundleID      uuid.UUID `json:"bundle_id" binding:"required"`
}

type CreatePreconditionRequest struct {
	AtEarliest            time.Time `json:"at_earliest" binding:"required"`
	MinimumTicketQuantity int       `json:"minimum_ticket_quantity" binding:"required,gte=1"`
}

// CheckInRequest identifies the ticket either by ID or by its code.
type CheckInRequest struct {
	TicketID *uuid.UUID `json:"ticket_id"`
	Code     string     `json:"code"`
}

// --- responses ---

type CategoryResponse struct {
	ID      uuid.UUID `json:"id"`
	PartyID string    `json:"party_id"`
	Title   string    `json:"title"`
}

type TicketResponse struct {
	ID              uuid.UUID  `json:"id"`
	CreatedAt       time.Time  `json:"created_at"`
	Code            string     `json:"code"`
	BundleID        *uuid.UUID `json:"bundle_id,omitempty"`
	PartyID         string     `json:"party_id"`
	CategoryID      uuid.UUID  `json:"category_id"`
	OwnedByID       uuid.UUID  `json:"owned_by_id"`
	OrderNumber     *string    `json:"order_number,omitempty"`
	OccupiedSeatID  *uuid.UUID `json:"occupied_seat_id,omitempty"`
	UsedByID        *uuid.UUID `json:"used_by_id,omitempty"`
	SeatManagedByID *uuid.UUID `json:"seat_managed_by_id,omitempty"`
	UserManagedByID *uuid.UUID `json:"user_managed_by_id,omitempty"`
	Revoked         bool       `json:"revoked"`
	UserCheckedIn   bool       `json:"user_checked_in"`
}

type BundleResponse struct {
	ID             uuid.UUID   `json:"id"`
	CreatedAt      time.Time   `json:"created_at"`
	PartyID        string      `json:"party_id"`
	CategoryID     uuid.UUID   `json:"category_id"`
	TicketQuantity int         `json:"ticket_quantity"`
	OwnedByID      uuid.UUID   `json:"owned_by_id"`
	Label          *string     `json:"label,omitempty"`
	Revoked        bool        `json:"revoked"`
	TicketIDs      []uuid.UUID `json:"ticket_ids"`
}

type AreaResponse struct {
	ID      uuid.UUID `json:"id"`
	PartyID string    `json:"party_id"`
	Slug    string    `json:"slug"`
	Title   string    `json:"title"`
}

type SeatResponse struct {
	ID                 uuid.UUID  `json:"id"`
	AreaID             uuid.UUID  `json:"area_id"`
	X                  int        `json:"x"`
	Y                  int        `json:"y"`
	CategoryID         uuid.UUID  `json:"category_id"`
	Label              *string    `json:"label,omitempty"`
	OccupiedByTicketID *uuid.UUID `json:"occupied_by_ticket_id,omitempty"`
}

type GroupResponse struct {
	ID           uuid.UUID      `json:"id"`
	PartyID      string         `json:"party_id"`
	CategoryID   uuid.UUID      `json:"category_id"`
	SeatQuantity int            `json:"seat_quantity"`
	Title        string         `json:"title"`
	Seats        []SeatResponse `json:"seats"`
}

type LogEntryResponse struct {
	ID         uuid.UUID         `json:"id"`
	OccurredAt time.Time         `json:"occurred_at"`
	EventType  string            `json:"event_type"`
	Data       map[string]string `json:"data"`
}

type CheckInResponse struct {
	ID          uuid.UUID `json:"id"`
	OccurredAt  time.Time `json:"occurred_at"`
	TicketID    uuid.UUID `json:"ticket_id"`
	InitiatorID uuid.UUID `json:"initiator_id"`
}

// ReservationStatusResponse answers for the calling user. Open is only set
// when a ticket quantity was asked about.
type ReservationStatusResponse struct {
	MayReserve bool  `json:"may_reserve"`
	Open       *bool `json:"open,omitempty"`
}

// --- mapping ---

func toCategory(c domain.TicketCategory) CategoryResponse {
	return CategoryResponse{ID: c.ID, PartyID: c.PartyID, Title: c.Title}
}

func toTicket(t domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:              t.ID,
		CreatedAt:       t.CreatedAt,
		Code:            t.Code,
		BundleID:        t.BundleID,
		PartyID:         t.PartyID,
		CategoryID:      t.CategoryID,
		OwnedByID:       t.OwnedByID,
		OrderNumber:     t.OrderNumber,
		OccupiedSeatID:  t.OccupiedSeatID,
		UsedByID:        t.UsedByID,
		SeatManagedByID: t.SeatManagedByID,
		UserManagedByID: t.UserManagedByID,
		Revoked:         t.Revoked,
		UserCheckedIn:   t.UserCheckedIn,
	}
}

func toBundle(b domain.TicketBundle) BundleResponse {
	ids := b.TicketIDs
	if ids == nil {
		ids = []uuid.UUID{}
	}

	return BundleResponse{
		ID:             b.ID,
		CreatedAt:      b.CreatedAt,
		PartyID:        b.PartyID,
		CategoryID:     b.CategoryID,
		TicketQuantity: b.TicketQuantity,
		OwnedByID:      b.OwnedByID,
		Label:          b.Label,
		Revoked:        b.Revoked,
		TicketIDs:      ids,
	}
}

func toArea(a domain.SeatingArea) AreaResponse {
	return AreaResponse{ID: a.ID, PartyID: a.PartyID, Slug: a.Slug, Title: a.Title}
}

func toSeat(s domain.Seat) SeatResponse {
	return SeatResponse{
		ID:                 s.ID,
		AreaID:             s.AreaID,
		X:                  s.CoordX,
		Y:                  s.CoordY,
		CategoryID:         s.CategoryID,
		Label:              s.Label,
		OccupiedByTicketID: s.OccupiedByTicketID,
	}
}

func toGroup(g domain.SeatGroup) GroupResponse {
	return GroupResponse{
		ID:           g.ID,
		PartyID:      g.PartyID,
		CategoryID:   g.CategoryID,
		SeatQuantity: g.SeatQuantity,
		Title:        g.Title,
		Seats:        mapAll(g.Seats, toSeat),
	}
}

func toLogEntry(e domain.TicketLogEntry) LogEntryResponse {
	return LogEntryResponse{
		ID:         e.ID,
		OccurredAt: e.OccurredAt,
		EventType:  string(e.EventType),
		Data:       e.Data,
	}
}

func toCheckIn(c domain.TicketCheckIn) CheckInResponse {
	return CheckInResponse{
		ID:          c.ID,
		OccurredAt:  c.OccurredAt,
		TicketID:    c.TicketID,
		InitiatorID: c.InitiatorID,
	}
}

// mapAll never returns nil, so empty lists encode as [].
func mapAll[T, R any](in []T, f func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
