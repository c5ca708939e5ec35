package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/google/uuid"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/repository"
)

func notFound(op string) error {
	return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
}

func conflict(op, what string) error {
	return fmt.Errorf("%s:%w: %s", op, repository.ErrConflict, what)
}

type partyRepo struct{ access accessor }

func (r partyRepo) Get(_ context.Context, id string) (*domain.Party, error) {
	var out *domain.Party
	err := r.access(func(st *state) error {
		p, ok := st.parties[id]
		if !ok {
			return notFound("memory.PartyRepo.Get")
		}
		out = &p
		return nil
	})
	return out, err
}

type userRepo struct{ access accessor }

func (r userRepo) Get(_ context.Context, id uuid.UUID) (*domain.User, error) {
	var out *domain.User
	err := r.access(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return notFound("memory.UserRepo.Get")
		}
		out = &u
		return nil
	})
	return out, err
}

type categoryRepo struct{ access accessor }

func (r categoryRepo) Insert(_ context.Context, c domain.TicketCategory) error {
	const op = "memory.CategoryRepo.Insert"

	return r.access(func(st *state) error {
		if _, ok := st.parties[c.PartyID]; !ok {
			return fmt.Errorf("%s: unknown party %q", op, c.PartyID)
		}
		for _, other := range st.categories {
			if other.ID == c.ID || (other.PartyID == c.PartyID && other.Title == c.Title) {
				return conflict(op, "category exists")
			}
		}
		st.categories[c.ID] = c
		return nil
	})
}

func (r categoryRepo) Get(_ context.Context, id uuid.UUID) (*domain.TicketCategory, error) {
	var out *domain.TicketCategory
	err := r.access(func(st *state) error {
		c, ok := st.categories[id]
		if !ok {
			return notFound("memory.CategoryRepo.Get")
		}
		out = &c
		return nil
	})
	return out, err
}

func (r categoryRepo) ListByParty(_ context.Context, partyID string) ([]domain.TicketCategory, error) {
	var out []domain.TicketCategory
	err := r.access(func(st *state) error {
		for _, c := range st.categories {
			if c.PartyID == partyID {
				out = append(out, c)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
		return nil
	})
	return out, err
}

type ticketRepo struct{ access accessor }

func (r ticketRepo) Get(_ context.Context, id uuid.UUID) (*domain.Ticket, error) {
	var out *domain.Ticket
	err := r.access(func(st *state) error {
		t, ok := st.tickets[id]
		if !ok {
			return notFound("memory.TicketRepo.Get")
		}
		out = &t
		return nil
	})
	return out, err
}

func (r ticketRepo) GetByCode(_ context.Context, partyID, code string) (*domain.Ticket, error) {
	var out *domain.Ticket
	err := r.access(func(st *state) error {
		for _, t := range st.tickets {
			if t.PartyID == partyID && t.Code == code {
				out = &t
				return nil
			}
		}
		return notFound("memory.TicketRepo.GetByCode")
	})
	return out, err
}

func (r ticketRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Ticket, error) {
	var out []domain.Ticket
	err := r.access(func(st *state) error {
		for _, id := range ids {
			if t, ok := st.tickets[id]; ok {
				out = append(out, t)
			}
		}
		sortTickets(out)
		return nil
	})
	return out, err
}

func (r ticketRepo) Insert(_ context.Context, tickets []domain.Ticket) error {
	const op = "memory.TicketRepo.Insert"

	return r.access(func(st *state) error {
		for i, t := range tickets {
			if _, ok := st.tickets[t.ID]; ok {
				return conflict(op, "ticket id exists")
			}
			for _, other := range st.tickets {
				if other.PartyID == t.PartyID && other.Code == t.Code {
					return conflict(op, "ticket code exists")
				}
			}
			for _, other := range tickets[:i] {
				if other.PartyID == t.PartyID && other.Code == t.Code {
					return conflict(op, "ticket code exists")
				}
			}
		}
		for _, t := range tickets {
			st.tickets[t.ID] = t
		}
		return nil
	})
}

func (r ticketRepo) Update(_ context.Context, t domain.Ticket) error {
	const op = "memory.TicketRepo.Update"

	return r.access(func(st *state) error {
		if _, ok := st.tickets[t.ID]; !ok {
			return notFound(op)
		}
		if t.OccupiedSeatID != nil {
			if _, ok := st.seats[*t.OccupiedSeatID]; !ok {
				return fmt.Errorf("%s: unknown seat %s", op, *t.OccupiedSeatID)
			}
			if holder := occupantOf(st, *t.OccupiedSeatID); holder != nil && *holder != t.ID {
				return conflict(op, "seat occupied")
			}
		}
		st.tickets[t.ID] = t
		return nil
	})
}

func (r ticketRepo) CountSeatManagedBy(_ context.Context, partyID string, userID uuid.UUID) (int, error) {
	var n int
	err := r.access(func(st *state) error {
		for _, t := range st.tickets {
			if t.PartyID == partyID && !t.Revoked && t.IsSeatManagedBy(userID) {
				n++
			}
		}
		return nil
	})
	return n, err
}

func sortTickets(ts []domain.Ticket) {
	sort.Slice(ts, func(i, j int) bool {
		if !ts[i].CreatedAt.Equal(ts[j].CreatedAt) {
			return ts[i].CreatedAt.Before(ts[j].CreatedAt)
		}
		return ts[i].ID.String() < ts[j].ID.String()
	})
}

func occupantOf(st *state, seatID uuid.UUID) *uuid.UUID {
	for _, t := range st.tickets {
		if t.OccupiedSeatID != nil && *t.OccupiedSeatID == seatID {
			id := t.ID
			return &id
		}
	}
	return nil
}

type bundleRepo struct{ access accessor }

func (r bundleRepo) Get(_ context.Context, id uuid.UUID) (*domain.TicketBundle, error) {
	var out *domain.TicketBundle
	err := r.access(func(st *state) error {
		b, ok := st.bundles[id]
		if !ok {
			return notFound("memory.BundleRepo.Get")
		}

		var members []domain.Ticket
		for _, t := range st.tickets {
			if t.BundleID != nil && *t.BundleID == id {
				members = append(members, t)
			}
		}
		sortTickets(members)

		b.TicketIDs = make([]uuid.UUID, 0, len(members))
		for _, t := range members {
			b.TicketIDs = append(b.TicketIDs, t.ID)
		}

		out = &b
		return nil
	})
	return out, err
}

func (r bundleRepo) Insert(_ context.Context, b domain.TicketBundle) error {
	const op = "memory.BundleRepo.Insert"

	return r.access(func(st *state) error {
		if _, ok := st.bundles[b.ID]; ok {
			return conflict(op, "bundle exists")
		}
		b.TicketIDs = nil
		st.bundles[b.ID] = b
		return nil
	})
}

func (r bundleRepo) SetRevoked(_ context.Context, id uuid.UUID) error {
	return r.access(func(st *state) error {
		b, ok := st.bundles[id]
		if !ok {
			return notFound("memory.BundleRepo.SetRevoked")
		}
		b.Revoked = true
		st.bundles[id] = b
		return nil
	})
}

type seatRepo struct{ access accessor }

// resolveSeat returns the stored seat with its occupant filled in.
func resolveSeat(st *state, id uuid.UUID) (domain.Seat, bool) {
	s, ok := st.seats[id]
	if !ok {
		return domain.Seat{}, false
	}
	s.OccupiedByTicketID = occupantOf(st, id)
	return s, true
}

func sortSeats(ss []domain.Seat) {
	sort.Slice(ss, func(i, j int) bool {
		if ss[i].CoordX != ss[j].CoordX {
			return ss[i].CoordX < ss[j].CoordX
		}
		return ss[i].CoordY < ss[j].CoordY
	})
}

func (r seatRepo) InsertArea(_ context.Context, a domain.SeatingArea) error {
	const op = "memory.SeatRepo.InsertArea"

	return r.access(func(st *state) error {
		for _, other := range st.areas {
			if other.ID == a.ID || (other.PartyID == a.PartyID && other.Slug == a.Slug) {
				return conflict(op, "area exists")
			}
		}
		st.areas[a.ID] = a
		return nil
	})
}

func (r seatRepo) GetArea(_ context.Context, id uuid.UUID) (*domain.SeatingArea, error) {
	var out *domain.SeatingArea
	err := r.access(func(st *state) error {
		a, ok := st.areas[id]
		if !ok {
			return notFound("memory.SeatRepo.GetArea")
		}
		out = &a
		return nil
	})
	return out, err
}

func (r seatRepo) Get(_ context.Context, id uuid.UUID) (*domain.Seat, error) {
	var out *domain.Seat
	err := r.access(func(st *state) error {
		s, ok := resolveSeat(st, id)
		if !ok {
			return notFound("memory.SeatRepo.Get")
		}
		out = &s
		return nil
	})
	return out, err
}

func (r seatRepo) ListByArea(_ context.Context, areaID uuid.UUID) ([]domain.Seat, error) {
	var out []domain.Seat
	err := r.access(func(st *state) error {
		for id, s := range st.seats {
			if s.AreaID == areaID {
				rs, _ := resolveSeat(st, id)
				out = append(out, rs)
			}
		}
		sortSeats(out)
		return nil
	})
	return out, err
}

func (r seatRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Seat, error) {
	var out []domain.Seat
	err := r.access(func(st *state) error {
		for _, id := range ids {
			if s, ok := resolveSeat(st, id); ok {
				out = append(out, s)
			}
		}
		sortSeats(out)
		return nil
	})
	return out, err
}

func (r seatRepo) Insert(_ context.Context, s domain.Seat) error {
	const op = "memory.SeatRepo.Insert"

	return r.access(func(st *state) error {
		if _, ok := st.seats[s.ID]; ok {
			return conflict(op, "seat exists")
		}
		if _, ok := st.areas[s.AreaID]; !ok {
			return fmt.Errorf("%s: unknown area %s", op, s.AreaID)
		}
		s.OccupiedByTicketID = nil
		st.seats[s.ID] = s
		return nil
	})
}

func (r seatRepo) Delete(_ context.Context, id uuid.UUID) error {
	const op = "memory.SeatRepo.Delete"

	return r.access(func(st *state) error {
		if _, ok := st.seats[id]; !ok {
			return notFound(op)
		}
		if occupantOf(st, id) != nil {
			return fmt.Errorf("%s: seat %s is referenced by a ticket", op, id)
		}
		if _, grouped := st.groupOfSeat[id]; grouped {
			return fmt.Errorf("%s: seat %s is referenced by a seat group", op, id)
		}
		delete(st.seats, id)
		return nil
	})
}

type seatGroupRepo struct{ access accessor }

func resolveGroup(st *state, g domain.SeatGroup) domain.SeatGroup {
	seats := make([]domain.Seat, 0, len(g.Seats))
	for _, s := range g.Seats {
		if rs, ok := resolveSeat(st, s.ID); ok {
			seats = append(seats, rs)
		}
	}
	sortSeats(seats)
	g.Seats = seats
	return g
}

func (r seatGroupRepo) Insert(_ context.Context, g domain.SeatGroup) error {
	const op = "memory.SeatGroupRepo.Insert"

	return r.access(func(st *state) error {
		for _, other := range st.groups {
			if other.ID == g.ID || (other.PartyID == g.PartyID && other.Title == g.Title) {
				return conflict(op, "seat group exists")
			}
		}
		for _, s := range g.Seats {
			if _, grouped := st.groupOfSeat[s.ID]; grouped {
				return conflict(op, "seat already grouped")
			}
		}
		g.Seats = slices.Clone(g.Seats)
		for _, s := range g.Seats {
			st.groupOfSeat[s.ID] = g.ID
		}
		st.groups[g.ID] = g
		return nil
	})
}

func (r seatGroupRepo) Get(_ context.Context, id uuid.UUID) (*domain.SeatGroup, error) {
	var out *domain.SeatGroup
	err := r.access(func(st *state) error {
		g, ok := st.groups[id]
		if !ok {
			return notFound("memory.SeatGroupRepo.Get")
		}
		g = resolveGroup(st, g)
		out = &g
		return nil
	})
	return out, err
}

func (r seatGroupRepo) ListByParty(_ context.Context, partyID string) ([]domain.SeatGroup, error) {
	var out []domain.SeatGroup
	err := r.access(func(st *state) error {
		for _, g := range st.groups {
			if g.PartyID == partyID {
				out = append(out, resolveGroup(st, g))
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
		return nil
	})
	return out, err
}

func (r seatGroupRepo) IsSeatGrouped(_ context.Context, seatID uuid.UUID) (bool, error) {
	var grouped bool
	err := r.access(func(st *state) error {
		_, grouped = st.groupOfSeat[seatID]
		return nil
	})
	return grouped, err
}

func (r seatGroupRepo) Delete(_ context.Context, id uuid.UUID) error {
	const op = "memory.SeatGroupRepo.Delete"

	return r.access(func(st *state) error {
		g, ok := st.groups[id]
		if !ok {
			return notFound(op)
		}
		for _, o := range st.occupancies {
			if o.SeatGroupID == id {
				return fmt.Errorf("%s: seat group %s is referenced by an occupancy", op, id)
			}
		}
		for _, s := range g.Seats {
			delete(st.groupOfSeat, s.ID)
		}
		delete(st.groups, id)
		return nil
	})
}

func (r seatGroupRepo) InsertOccupancy(_ context.Context, o domain.SeatGroupOccupancy) error {
	const op = "memory.SeatGroupRepo.InsertOccupancy"

	return r.access(func(st *state) error {
		for _, other := range st.occupancies {
			if other.ID == o.ID || other.SeatGroupID == o.SeatGroupID || other.TicketBundleID == o.TicketBundleID {
				return conflict(op, "occupancy exists")
			}
		}
		st.occupancies[o.ID] = o
		return nil
	})
}

func (r seatGroupRepo) OccupancyByGroup(_ context.Context, groupID uuid.UUID) (*domain.SeatGroupOccupancy, error) {
	return r.find("memory.SeatGroupRepo.OccupancyByGroup", func(o domain.SeatGroupOccupancy) bool {
		return o.SeatGroupID == groupID
	})
}

func (r seatGroupRepo) OccupancyByBundle(_ context.Context, bundleID uuid.UUID) (*domain.SeatGroupOccupancy, error) {
	return r.find("memory.SeatGroupRepo.OccupancyByBundle", func(o domain.SeatGroupOccupancy) bool {
		return o.TicketBundleID == bundleID
	})
}

func (r seatGroupRepo) find(op string, match func(domain.SeatGroupOccupancy) bool) (*domain.SeatGroupOccupancy, error) {
	var out *domain.SeatGroupOccupancy
	err := r.access(func(st *state) error {
		for _, o := range st.occupancies {
			if match(o) {
				out = &o
				return nil
			}
		}
		return notFound(op)
	})
	return out, err
}

func (r seatGroupRepo) UpdateOccupancy(_ context.Context, o domain.SeatGroupOccupancy) error {
	const op = "memory.SeatGroupRepo.UpdateOccupancy"

	return r.access(func(st *state) error {
		if _, ok := st.occupancies[o.ID]; !ok {
			return notFound(op)
		}
		for _, other := range st.occupancies {
			if other.ID != o.ID && (other.SeatGroupID == o.SeatGroupID || other.TicketBundleID == o.TicketBundleID) {
				return conflict(op, "occupancy exists")
			}
		}
		st.occupancies[o.ID] = o
		return nil
	})
}

func (r seatGroupRepo) DeleteOccupancy(_ context.Context, id uuid.UUID) error {
	return r.access(func(st *state) error {
		if _, ok := st.occupancies[id]; !ok {
			return notFound("memory.SeatGroupRepo.DeleteOccupancy")
		}
		delete(st.occupancies, id)
		return nil
	})
}

type preconditionRepo struct{ access accessor }

func (r preconditionRepo) Insert(_ context.Context, p domain.SeatReservationPrecondition) error {
	const op = "memory.PreconditionRepo.Insert"

	if p.MinimumTicketQuantity < 1 {
		return fmt.Errorf("%s: minimum ticket quantity must be at least 1", op)
	}

	return r.access(func(st *state) error {
		for _, other := range st.preconditions {
			if other.ID == p.ID || (other.PartyID == p.PartyID &&
				other.AtEarliest.Equal(p.AtEarliest) &&
				other.MinimumTicketQuantity == p.MinimumTicketQuantity) {
				return conflict(op, "precondition exists")
			}
		}
		st.preconditions[p.ID] = p
		return nil
	})
}

func (r preconditionRepo) Delete(_ context.Context, id uuid.UUID) error {
	return r.access(func(st *state) error {
		if _, ok := st.preconditions[id]; !ok {
			return notFound("memory.PreconditionRepo.Delete")
		}
		delete(st.preconditions, id)
		return nil
	})
}

func (r preconditionRepo) ListByParty(_ context.Context, partyID string) ([]domain.SeatReservationPrecondition, error) {
	var out []domain.SeatReservationPrecondition
	err := r.access(func(st *state) error {
		for _, p := range st.preconditions {
			if p.PartyID == partyID {
				out = append(out, p)
			}
		}
		sort.Slice(out, func(i, j int) bool {
			if !out[i].AtEarliest.Equal(out[j].AtEarliest) {
				return out[i].AtEarliest.Before(out[j].AtEarliest)
			}
			return out[i].MinimumTicketQuantity < out[j].MinimumTicketQuantity
		})
		return nil
	})
	return out, err
}

type ticketLogRepo struct{ access accessor }

func (r ticketLogRepo) Append(_ context.Context, entries ...domain.TicketLogEntry) error {
	const op = "memory.TicketLogRepo.Append"

	return r.access(func(st *state) error {
		for _, e := range entries {
			if _, ok := st.tickets[e.TicketID]; !ok {
				return fmt.Errorf("%s: unknown ticket %s", op, e.TicketID)
			}
		}
		st.log = append(st.log, entries...)
		return nil
	})
}

func (r ticketLogRepo) ListByTicket(_ context.Context, ticketID uuid.UUID) ([]domain.TicketLogEntry, error) {
	var out []domain.TicketLogEntry
	err := r.access(func(st *state) error {
		for _, e := range st.log {
			if e.TicketID == ticketID {
				out = append(out, e)
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
		return nil
	})
	return out, err
}

type checkInRepo struct{ access accessor }

func (r checkInRepo) Insert(_ context.Context, c domain.TicketCheckIn) error {
	const op = "memory.CheckInRepo.Insert"

	return r.access(func(st *state) error {
		if _, ok := st.tickets[c.TicketID]; !ok {
			return fmt.Errorf("%s: unknown ticket %s", op, c.TicketID)
		}
		st.checkIns = append(st.checkIns, c)
		return nil
	})
}

func (r checkInRepo) ListByTicket(_ context.Context, ticketID uuid.UUID) ([]domain.TicketCheckIn, error) {
	var out []domain.TicketCheckIn
	err := r.access(func(st *state) error {
		for _, c := range st.checkIns {
			if c.TicketID == ticketID {
				out = append(out, c)
			}
		}
		return nil
	})
	return out, err
}
