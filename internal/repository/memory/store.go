// Package memory is an in-process implementation of the repository
// interfaces. Transactions run serially against a copy of the state that
// replaces the live state on commit, so a failed transaction leaves no trace.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/repository"
)

type state struct {
	parties       map[string]domain.Party
	users         map[uuid.UUID]domain.User
	categories    map[uuid.UUID]domain.TicketCategory
	tickets       map[uuid.UUID]domain.Ticket
	bundles       map[uuid.UUID]domain.TicketBundle
	areas         map[uuid.UUID]domain.SeatingArea
	seats         map[uuid.UUID]domain.Seat
	groups        map[uuid.UUID]domain.SeatGroup
	groupOfSeat   map[uuid.UUID]uuid.UUID
	occupancies   map[uuid.UUID]domain.SeatGroupOccupancy
	preconditions map[uuid.UUID]domain.SeatReservationPrecondition
	log           []domain.TicketLogEntry
	checkIns      []domain.TicketCheckIn
}

func newState() *state {
	return &state{
		parties:       map[string]domain.Party{},
		users:         map[uuid.UUID]domain.User{},
		categories:    map[uuid.UUID]domain.TicketCategory{},
		tickets:       map[uuid.UUID]domain.Ticket{},
		bundles:       map[uuid.UUID]domain.TicketBundle{},
		areas:         map[uuid.UUID]domain.SeatingArea{},
		seats:         map[uuid.UUID]domain.Seat{},
		groups:        map[uuid.UUID]domain.SeatGroup{},
		groupOfSeat:   map[uuid.UUID]uuid.UUID{},
		occupancies:   map[uuid.UUID]domain.SeatGroupOccupancy{},
		preconditions: map[uuid.UUID]domain.SeatReservationPrecondition{},
	}
}

// clone copies the maps. Values are structs whose slices are never mutated
// in place, so sharing them between copies is safe.
func (s *state) clone() *state {
	return &state{
		parties:       maps.Clone(s.parties),
		users:         maps.Clone(s.users),
		categories:    maps.Clone(s.categories),
		tickets:       maps.Clone(s.tickets),
		bundles:       maps.Clone(s.bundles),
		areas:         maps.Clone(s.areas),
		seats:         maps.Clone(s.seats),
		groups:        maps.Clone(s.groups),
		groupOfSeat:   maps.Clone(s.groupOfSeat),
		occupancies:   maps.Clone(s.occupancies),
		preconditions: maps.Clone(s.preconditions),
		log:           slices.Clone(s.log),
		checkIns:      slices.Clone(s.checkIns),
	}
}

type Store struct {
	mu sync.Mutex
	st *state
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{st: newState()}
}

// RunTx holds the store lock for the whole transaction.
func (s *Store) RunTx(ctx context.Context, fn func(ctx context.Context, tx repository.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(ctx, &txRepos{st: work}); err != nil {
		return err
	}

	s.st = work
	return nil
}

// PutParty and PutUser seed entities owned by other services.
func (s *Store) PutParty(p domain.Party) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.parties[p.ID] = p
}

func (s *Store) PutUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.users[u.ID] = u
}

func (s *Store) Directory() repository.Directory { return directory{s} }

type directory struct{ s *Store }

func (d directory) UpsertParties(_ context.Context, parties ...domain.Party) error {
	for _, p := range parties {
		d.s.PutParty(p)
	}
	return nil
}

func (d directory) UpsertUsers(_ context.Context, users ...domain.User) error {
	for _, u := range users {
		d.s.PutUser(u)
	}
	return nil
}

// access runs fn against the live state under the store lock.
func (s *Store) access(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

func (s *Store) Parties() repository.PartyRepository              { return partyRepo{s.access} }
func (s *Store) Users() repository.UserRepository                 { return userRepo{s.access} }
func (s *Store) Categories() repository.CategoryRepository        { return categoryRepo{s.access} }
func (s *Store) Tickets() repository.TicketRepository             { return ticketRepo{s.access} }
func (s *Store) Bundles() repository.BundleRepository             { return bundleRepo{s.access} }
func (s *Store) Seats() repository.SeatRepository                 { return seatRepo{s.access} }
func (s *Store) SeatGroups() repository.SeatGroupRepository       { return seatGroupRepo{s.access} }
func (s *Store) Preconditions() repository.PreconditionRepository { return preconditionRepo{s.access} }
func (s *Store) TicketLog() repository.TicketLogRepository        { return ticketLogRepo{s.access} }
func (s *Store) CheckIns() repository.CheckInRepository           { return checkInRepo{s.access} }

type accessor func(fn func(st *state) error) error

// txRepos binds repositories to a transaction's working copy. The store
// lock is already held.
type txRepos struct {
	st *state
}

func (t *txRepos) access(fn func(st *state) error) error {
	return fn(t.st)
}

func (t *txRepos) Parties() repository.PartyRepository              { return partyRepo{t.access} }
func (t *txRepos) Users() repository.UserRepository                 { return userRepo{t.access} }
func (t *txRepos) Categories() repository.CategoryRepository        { return categoryRepo{t.access} }
func (t *txRepos) Tickets() repository.TicketRepository             { return ticketRepo{t.access} }
func (t *txRepos) Bundles() repository.BundleRepository             { return bundleRepo{t.access} }
func (t *txRepos) Seats() repository.SeatRepository                 { return seatRepo{t.access} }
func (t *txRepos) SeatGroups() repository.SeatGroupRepository       { return seatGroupRepo{t.access} }
func (t *txRepos) Preconditions() repository.PreconditionRepository { return preconditionRepo{t.access} }
func (t *txRepos) TicketLog() repository.TicketLogRepository        { return ticketLogRepo{t.access} }
func (t *txRepos) CheckIns() repository.CheckInRepository           { return checkInRepo{t.access} }
