package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kirinyoku/seatkeeper/internal/domain"
)

// Lookups for entities owned by neighbouring services.

type PartyRepository interface {
	Get(ctx context.Context, id string) (*domain.Party, error)
}

type UserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// Directory mirrors parties and users from the services that own them.
// Existing rows are overwritten.
type Directory interface {
	UpsertParties(ctx context.Context, parties ...domain.Party) error
	UpsertUsers(ctx context.Context, users ...domain.User) error
}

type CategoryRepository interface {
	Insert(ctx context.Context, c domain.TicketCategory) error
	Get(ctx context.Context, id uuid.UUID) (*domain.TicketCategory, error)
	ListByParty(ctx context.Context, partyID string) ([]domain.TicketCategory, error)
}

type TicketRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Ticket, error)
	GetByCode(ctx context.Context, partyID, code string) (*domain.Ticket, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Ticket, error)
	// Insert returns ErrConflict if a ticket code is already taken.
	Insert(ctx context.Context, tickets []domain.Ticket) error
	// Update returns ErrConflict if the occupied seat is taken by another ticket.
	Update(ctx context.Context, t domain.Ticket) error
	CountSeatManagedBy(ctx context.Context, partyID string, userID uuid.UUID) (int, error)
}

type BundleRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.TicketBundle, error)
	Insert(ctx context.Context, b domain.TicketBundle) error
	SetRevoked(ctx context.Context, id uuid.UUID) error
}

type SeatRepository interface {
	InsertArea(ctx context.Context, a domain.SeatingArea) error
	GetArea(ctx context.Context, id uuid.UUID) (*domain.SeatingArea, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Seat, error)
	ListByArea(ctx context.Context, areaID uuid.UUID) ([]domain.Seat, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Seat, error)
	Insert(ctx context.Context, s domain.Seat) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SeatGroupRepository interface {
	// Insert returns ErrConflict if a seat already belongs to a group.
	Insert(ctx context.Context, g domain.SeatGroup) error
	Get(ctx context.Context, id uuid.UUID) (*domain.SeatGroup, error)
	ListByParty(ctx context.Context, partyID string) ([]domain.SeatGroup, error)
	IsSeatGrouped(ctx context.Context, seatID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// InsertOccupancy returns ErrConflict if the group or the bundle is
	// already part of an occupancy.
	InsertOccupancy(ctx context.Context, o domain.SeatGroupOccupancy) error
	OccupancyByGroup(ctx context.Context, groupID uuid.UUID) (*domain.SeatGroupOccupancy, error)
	OccupancyByBundle(ctx context.Context, bundleID uuid.UUID) (*domain.SeatGroupOccupancy, error)
	UpdateOccupancy(ctx context.Context, o domain.SeatGroupOccupancy) error
	DeleteOccupancy(ctx context.Context, id uuid.UUID) error
}

type PreconditionRepository interface {
	Insert(ctx context.Context, p domain.SeatReservationPrecondition) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByParty(ctx context.Context, partyID string) ([]domain.SeatReservationPrecondition, error)
}

type TicketLogRepository interface {
	Append(ctx context.Context, entries ...domain.TicketLogEntry) error
	ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]domain.TicketLogEntry, error)
}

type CheckInRepository interface {
	Insert(ctx context.Context, c domain.TicketCheckIn) error
	ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]domain.TicketCheckIn, error)
}

// Repos gives access to every repository, bound either to the store or to a
// running transaction.
type Repos interface {
	Parties() PartyRepository
	Users() UserRepository
	Categories() CategoryRepository
	Tickets() TicketRepository
	Bundles() BundleRepository
	Seats() SeatRepository
	SeatGroups() SeatGroupRepository
	Preconditions() PreconditionRepository
	TicketLog() TicketLogRepository
	CheckIns() CheckInRepository
}

// Store is a transactional repository set. fn sees repositories bound to one
// transaction, committed if fn returns nil and rolled back otherwise.
type Store interface {
	Repos
	RunTx(ctx context.Context, fn func(ctx context.Context, tx Repos) error) error
}
