package seating

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/repository"
)

// The helpers below run inside a caller's transaction and are shared with
// the ticketing service, which releases seats and groups on revocation.
// They apply no business rules of their own.

// ReleaseTicketSeat clears the seat t occupies, persists t and logs the
// release. It returns the area of the released seat.
func ReleaseTicketSeat(
	ctx context.Context,
	tx repository.Repos,
	t *domain.Ticket,
	initiatorID uuid.UUID,
	now time.Time,
) (uuid.UUID, error) {
	const op = "seating.ReleaseTicketSeat"

	if t.OccupiedSeatID == nil {
		return uuid.Nil, fmt.Errorf("%s:%w", op, ErrTicketOccupiesNoSeat)
	}

	seatID := *t.OccupiedSeatID
	seat, err := tx.Seats().Get(ctx, seatID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s:%w", op, mapNotFound(err, ErrSeatNotFound))
	}

	t.OccupiedSeatID = nil
	if err := tx.Tickets().Update(ctx, *t); err != nil {
		return uuid.Nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := tx.TicketLog().Append(ctx, domain.SeatReleasedEntry(t.ID, seatID, initiatorID, now)); err != nil {
		return uuid.Nil, fmt.Errorf("%s:%w", op, err)
	}

	return seat.AreaID, nil
}

// ReleaseGroupOccupancy frees the seats held by the bundle's tickets and
// removes occupancy. It returns the release event and the areas whose seat
// maps changed.
func ReleaseGroupOccupancy(
	ctx context.Context,
	tx repository.Repos,
	occupancy domain.SeatGroupOccupancy,
	initiatorID uuid.UUID,
	now time.Time,
) (domain.SeatGroupReleasedEvent, []uuid.UUID, error) {
	const op = "seating.ReleaseGroupOccupancy"

	group, err := tx.SeatGroups().Get(ctx, occupancy.SeatGroupID)
	if err != nil {
		return domain.SeatGroupReleasedEvent{}, nil, fmt.Errorf("%s:%w", op, mapNotFound(err, ErrGroupNotFound))
	}

	bundle, err := tx.Bundles().Get(ctx, occupancy.TicketBundleID)
	if err != nil {
		return domain.SeatGroupReleasedEvent{}, nil, fmt.Errorf("%s:%w", op, mapNotFound(err, ErrBundleNotFound))
	}

	if _, err := clearTicketSeats(ctx, tx, bundle.TicketIDs, initiatorID, now, true); err != nil {
		return domain.SeatGroupReleasedEvent{}, nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := tx.SeatGroups().DeleteOccupancy(ctx, occupancy.ID); err != nil {
		return domain.SeatGroupReleasedEvent{}, nil, fmt.Errorf("%s:%w", op, err)
	}

	event := domain.SeatGroupReleasedEvent{
		OccurredAt:     now,
		InitiatorID:    initiatorID,
		PartyID:        group.PartyID,
		SeatGroupID:    group.ID,
		SeatGroupTitle: group.Title,
		TicketBundleID: bundle.ID,
	}

	return event, areasOf(group.Seats), nil
}

// ReleaseBundleGroup releases the group the bundle occupies, if any.
func ReleaseBundleGroup(
	ctx context.Context,
	tx repository.Repos,
	bundleID uuid.UUID,
	initiatorID uuid.UUID,
	now time.Time,
) (*domain.SeatGroupReleasedEvent, []uuid.UUID, error) {
	occupancy, err := tx.SeatGroups().OccupancyByBundle(ctx, bundleID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("seating.ReleaseBundleGroup:%w", err)
	}

	event, areas, err := ReleaseGroupOccupancy(ctx, tx, *occupancy, initiatorID, now)
	if err != nil {
		return nil, nil, err
	}

	return &event, areas, nil
}

// clearTicketSeats unsets the seats of the given tickets and returns the
// seat each ticket held before. Releases are logged when logRelease is set.
func clearTicketSeats(
	ctx context.Context,
	tx repository.Repos,
	ticketIDs []uuid.UUID,
	initiatorID uuid.UUID,
	now time.Time,
	logRelease bool,
) (map[uuid.UUID]*uuid.UUID, error) {
	tickets, err := tx.Tickets().ListByIDs(ctx, ticketIDs)
	if err != nil {
		return nil, err
	}

	previous := make(map[uuid.UUID]*uuid.UUID, len(tickets))
	var entries []domain.TicketLogEntry

	for _, t := range tickets {
		if t.OccupiedSeatID == nil {
			continue
		}

		seatID := *t.OccupiedSeatID
		previous[t.ID] = &seatID

		t.OccupiedSeatID = nil
		if err := tx.Tickets().Update(ctx, t); err != nil {
			return nil, err
		}

		if logRelease {
			entries = append(entries, domain.SeatReleasedEntry(t.ID, seatID, initiatorID, now))
		}
	}

	if len(entries) > 0 {
		if err := tx.TicketLog().Append(ctx, entries...); err != nil {
			return nil, err
		}
	}

	return previous, nil
}

func areasOf(seats []domain.Seat) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, 1)
	var out []uuid.UUID
	for _, s := range seats {
		if _, ok := seen[s.AreaID]; ok {
			continue
		}
		seen[s.AreaID] = struct{}{}
		out = append(out, s.AreaID)
	}
	return out
}
