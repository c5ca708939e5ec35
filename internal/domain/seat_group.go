package domain

import (
	"sort"

	"github.com/google/uuid"
)

// SeatAssignment pairs one seat with the ticket that will occupy it.
type SeatAssignment struct {
	SeatID   uuid.UUID
	TicketID uuid.UUID
}

// ValidateSeatGroupCreation checks that a group can be formed from seats.
func ValidateSeatGroupCreation(categoryID uuid.UUID, seats []Seat) error {
	if len(seats) == 0 {
		return seatingError("A seat group must contain at least one seat.")
	}

	for _, s := range seats {
		if s.CategoryID != categoryID {
			return seatingError("Seats' category IDs do not match the group's category ID.")
		}
	}

	return nil
}

// ValidateSeatGroupOccupancy checks the category, quantity and availability
// rules a bundle must satisfy to occupy a group.
func ValidateSeatGroupOccupancy(group SeatGroup, bundle TicketBundle) error {
	if group.CategoryID != bundle.CategoryID {
		return seatingError("Seat and ticket categories do not match.")
	}

	// All four counts must agree; the stored quantities alone are not trusted.
	if group.SeatQuantity != len(group.Seats) ||
		group.SeatQuantity != bundle.TicketQuantity ||
		bundle.TicketQuantity != len(bundle.TicketIDs) {
		return seatingError("Seat and ticket quantities do not match.")
	}

	for _, s := range group.Seats {
		if s.IsOccupied() {
			return seatingError("At least one of the seats in the group is already occupied.")
		}
	}

	return nil
}

// PairSeatsWithTickets assigns tickets to seats deterministically: seats
// ordered by (x, y), tickets by creation time (ID breaks ties), zipped.
// The inputs are not modified. Surplus seats or tickets are left unpaired.
func PairSeatsWithTickets(seats []Seat, tickets []Ticket) []SeatAssignment {
	ss := make([]Seat, len(seats))
	copy(ss, seats)
	sort.SliceStable(ss, func(i, j int) bool {
		if ss[i].CoordX != ss[j].CoordX {
			return ss[i].CoordX < ss[j].CoordX
		}
		return ss[i].CoordY < ss[j].CoordY
	})

	ts := make([]Ticket, len(tickets))
	copy(ts, tickets)
	sort.SliceStable(ts, func(i, j int) bool {
		if !ts[i].CreatedAt.Equal(ts[j].CreatedAt) {
			return ts[i].CreatedAt.Before(ts[j].CreatedAt)
		}
		return ts[i].ID.String() < ts[j].ID.String()
	})

	n := min(len(ss), len(ts))
	out := make([]SeatAssignment, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, SeatAssignment{SeatID: ss[i].ID, TicketID: ts[i].ID})
	}

	return out
}
