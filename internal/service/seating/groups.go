package seating

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/repository"
	"github.com/kirinyoku/seatkeeper/internal/uow"
)

// CreateGroup forms a seat group from seats of one category.
//
// Parameters:
//   - partyID: party the group belongs to.
//   - categoryID: ticket category every seat must have.
//   - title: unique per party.
//   - seatIDs: member seats; none of them may belong to another group.
//
// Returns:
//   - error: seating.ErrPartyNotFound, seating.ErrCategoryNotFound, seating.ErrSeatNotFound.
//   - error: *domain.SeatingError on rule violations.
//   - error: seating.ErrGroupExists if the title is taken.
func (s *Service) CreateGroup(
	ctx context.Context,
	partyID string,
	categoryID uuid.UUID,
	title string,
	seatIDs []uuid.UUID,
) (*domain.SeatGroup, error) {
	const op = "service.seating.CreateGroup"

	var group domain.SeatGroup

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, _ func(uow.AfterCommit)) error {
		if _, err := tx.Parties().Get(ctx, partyID); err != nil {
			return mapNotFound(err, ErrPartyNotFound)
		}

		category, err := tx.Categories().Get(ctx, categoryID)
		if err != nil {
			return mapNotFound(err, ErrCategoryNotFound)
		}

		if category.PartyID != partyID {
			return &domain.SeatingError{Message: "Ticket category belongs to a different party."}
		}

		ids := distinct(seatIDs)
		seats, err := tx.Seats().ListByIDs(ctx, ids)
		if err != nil {
			return err
		}

		if len(seats) != len(ids) {
			return ErrSeatNotFound
		}

		if err := domain.ValidateSeatGroupCreation(categoryID, seats); err != nil {
			return err
		}

		for _, areaID := range areasOf(seats) {
			area, err := tx.Seats().GetArea(ctx, areaID)
			if err != nil {
				return err
			}
			if area.PartyID != partyID {
				return &domain.SeatingError{Message: "Seats belong to a different party."}
			}
		}

		for _, seat := range seats {
			grouped, err := tx.SeatGroups().IsSeatGrouped(ctx, seat.ID)
			if err != nil {
				return err
			}
			if grouped {
				return &domain.SeatingError{Message: "At least one of the seats already belongs to a seat group."}
			}
		}

		group = domain.SeatGroup{
			ID:           uuid.New(),
			PartyID:      partyID,
			CategoryID:   categoryID,
			SeatQuantity: len(seats),
			Title:        title,
			Seats:        seats,
		}

		if err := tx.SeatGroups().Insert(ctx, group); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrGroupExists
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &group, nil
}

func (s *Service) GetGroup(ctx context.Context, groupID uuid.UUID) (*domain.SeatGroup, error) {
	const op = "service.seating.GetGroup"

	group, err := s.store.SeatGroups().Get(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, mapNotFound(err, ErrGroupNotFound))
	}

	return group, nil
}

func (s *Service) PartyGroups(ctx context.Context, partyID string) ([]domain.SeatGroup, error) {
	const op = "service.seating.PartyGroups"

	groups, err := s.store.SeatGroups().ListByParty(ctx, partyID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return groups, nil
}

// DeleteGroup dissolves a group that is not occupied. Its seats become
// individually occupiable again.
func (s *Service) DeleteGroup(ctx context.Context, groupID uuid.UUID) error {
	const op = "service.seating.DeleteGroup"

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, _ func(uow.AfterCommit)) error {
		if _, err := tx.SeatGroups().Get(ctx, groupID); err != nil {
			return mapNotFound(err, ErrGroupNotFound)
		}

		_, err := tx.SeatGroups().OccupancyByGroup(ctx, groupID)
		switch {
		case err == nil:
			return ErrGroupOccupied
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}

		return tx.SeatGroups().Delete(ctx, groupID)
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// OccupyGroup lets a ticket bundle occupy a seat group and seats each of its
// tickets.
//
// Checks, in order: the party is not archived; the bundle occupies no group
// yet; the group is not occupied; categories match; the group's declared and
// actual seat counts equal the bundle's declared and actual ticket counts;
// no seat of the group is occupied. Tickets are then paired with seats by
// domain.PairSeatsWithTickets.
//
// Returns:
//   - domain.SeatGroupOccupiedEvent: to be dispatched by the caller.
//   - error: *domain.SeatingError on rule violations.
//   - error: seating.ErrPartyNotFound, seating.ErrGroupNotFound, seating.ErrBundleNotFound.
func (s *Service) OccupyGroup(
	ctx context.Context,
	partyID string,
	groupID, bundleID, initiatorID uuid.UUID,
) (domain.SeatGroupOccupiedEvent, error) {
	const op = "service.seating.OccupyGroup"

	var event domain.SeatGroupOccupiedEvent

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, after func(uow.AfterCommit)) error {
		now := s.now()

		if err := ensurePartyActive(ctx, tx, partyID); err != nil {
			return err
		}

		group, err := partyGroup(ctx, tx, partyID, groupID)
		if err != nil {
			return err
		}

		bundle, err := partyBundle(ctx, tx, partyID, bundleID)
		if err != nil {
			return err
		}

		if _, err := tx.SeatGroups().OccupancyByBundle(ctx, bundle.ID); err == nil {
			return &domain.SeatingError{Message: "Ticket bundle already occupies a seat group."}
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		if err := ensureGroupVacant(ctx, tx, group.ID); err != nil {
			return err
		}

		if err := domain.ValidateSeatGroupOccupancy(*group, *bundle); err != nil {
			return err
		}

		occupancy := domain.SeatGroupOccupancy{
			ID:             uuid.New(),
			SeatGroupID:    group.ID,
			TicketBundleID: bundle.ID,
		}

		if err := tx.SeatGroups().InsertOccupancy(ctx, occupancy); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return &domain.SeatingError{Message: "Seat group is already occupied."}
			}
			return err
		}

		tickets, err := tx.Tickets().ListByIDs(ctx, bundle.TicketIDs)
		if err != nil {
			return err
		}

		if err := assignSeats(ctx, tx, group.Seats, tickets, nil, initiatorID, now); err != nil {
			return err
		}

		event = domain.SeatGroupOccupiedEvent{
			OccurredAt:     now,
			InitiatorID:    initiatorID,
			PartyID:        partyID,
			SeatGroupID:    group.ID,
			SeatGroupTitle: group.Title,
			TicketBundleID: bundle.ID,
		}

		after(s.invalidateAreas(areasOf(group.Seats)...))
		return nil
	})
	if err != nil {
		return domain.SeatGroupOccupiedEvent{}, fmt.Errorf("%s:%w", op, err)
	}

	return event, nil
}

// SwitchGroup moves a bundle from the group it occupies to another one. The
// new group is validated like in OccupyGroup and the tickets are paired with
// its seats afresh.
//
// Returns:
//   - domain.SeatGroupReleasedEvent: for the old group.
//   - domain.SeatGroupOccupiedEvent: for the new group.
//   - error: *domain.SeatingError on rule violations.
func (s *Service) SwitchGroup(
	ctx context.Context,
	partyID string,
	oldGroupID, newGroupID, bundleID, initiatorID uuid.UUID,
) (domain.SeatGroupReleasedEvent, domain.SeatGroupOccupiedEvent, error) {
	const op = "service.seating.SwitchGroup"

	var (
		released domain.SeatGroupReleasedEvent
		occupied domain.SeatGroupOccupiedEvent
	)

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, after func(uow.AfterCommit)) error {
		now := s.now()

		if err := ensurePartyActive(ctx, tx, partyID); err != nil {
			return err
		}

		oldGroup, err := partyGroup(ctx, tx, partyID, oldGroupID)
		if err != nil {
			return err
		}

		occupancy, err := tx.SeatGroups().OccupancyByGroup(ctx, oldGroup.ID)
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.SeatingError{Message: "Seat group is not occupied."}
		}
		if err != nil {
			return err
		}

		if occupancy.TicketBundleID != bundleID {
			return &domain.SeatingError{Message: "Seat group is not occupied by the ticket bundle."}
		}

		newGroup, err := partyGroup(ctx, tx, partyID, newGroupID)
		if err != nil {
			return err
		}

		bundle, err := partyBundle(ctx, tx, partyID, bundleID)
		if err != nil {
			return err
		}

		if err := ensureGroupVacant(ctx, tx, newGroup.ID); err != nil {
			return err
		}

		if err := domain.ValidateSeatGroupOccupancy(*newGroup, *bundle); err != nil {
			return err
		}

		previous, err := clearTicketSeats(ctx, tx, bundle.TicketIDs, initiatorID, now, false)
		if err != nil {
			return err
		}

		occupancy.SeatGroupID = newGroup.ID
		if err := tx.SeatGroups().UpdateOccupancy(ctx, *occupancy); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return &domain.SeatingError{Message: "Seat group is already occupied."}
			}
			return err
		}

		tickets, err := tx.Tickets().ListByIDs(ctx, bundle.TicketIDs)
		if err != nil {
			return err
		}

		if err := assignSeats(ctx, tx, newGroup.Seats, tickets, previous, initiatorID, now); err != nil {
			return err
		}

		released = domain.SeatGroupReleasedEvent{
			OccurredAt:     now,
			InitiatorID:    initiatorID,
			PartyID:        partyID,
			SeatGroupID:    oldGroup.ID,
			SeatGroupTitle: oldGroup.Title,
			TicketBundleID: bundle.ID,
		}
		occupied = domain.SeatGroupOccupiedEvent{
			OccurredAt:     now,
			InitiatorID:    initiatorID,
			PartyID:        partyID,
			SeatGroupID:    newGroup.ID,
			SeatGroupTitle: newGroup.Title,
			TicketBundleID: bundle.ID,
		}

		after(s.invalidateAreas(areasOf(slices.Concat(oldGroup.Seats, newGroup.Seats))...))
		return nil
	})
	if err != nil {
		return domain.SeatGroupReleasedEvent{}, domain.SeatGroupOccupiedEvent{}, fmt.Errorf("%s:%w", op, err)
	}

	return released, occupied, nil
}

// ReleaseGroup ends a group's occupancy and frees its seats.
//
// Returns:
//   - domain.SeatGroupReleasedEvent: to be dispatched by the caller.
//   - error: *domain.SeatingError if the party is archived or the group is not occupied.
func (s *Service) ReleaseGroup(
	ctx context.Context,
	partyID string,
	groupID, initiatorID uuid.UUID,
) (domain.SeatGroupReleasedEvent, error) {
	const op = "service.seating.ReleaseGroup"

	var event domain.SeatGroupReleasedEvent

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, after func(uow.AfterCommit)) error {
		if err := ensurePartyActive(ctx, tx, partyID); err != nil {
			return err
		}

		group, err := partyGroup(ctx, tx, partyID, groupID)
		if err != nil {
			return err
		}

		occupancy, err := tx.SeatGroups().OccupancyByGroup(ctx, group.ID)
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.SeatingError{Message: "Seat group is not occupied."}
		}
		if err != nil {
			return err
		}

		ev, areas, err := ReleaseGroupOccupancy(ctx, tx, *occupancy, initiatorID, s.now())
		if err != nil {
			return err
		}

		event = ev
		after(s.invalidateAreas(areas...))
		return nil
	})
	if err != nil {
		return domain.SeatGroupReleasedEvent{}, fmt.Errorf("%s:%w", op, err)
	}

	return event, nil
}

// assignSeats pairs tickets with seats and persists the assignment. A
// revoked ticket is never seated. previous holds the seat a ticket had before, if any, for the log.
func assignSeats(
	ctx context.Context,
	tx repository.Repos,
	seats []domain.Seat,
	tickets []domain.Ticket,
	previous map[uuid.UUID]*uuid.UUID,
	initiatorID uuid.UUID,
	now time.Time,
) error {
	byID := make(map[uuid.UUID]domain.Ticket, len(tickets))
	for _, t := range tickets {
		if t.Revoked {
			return &domain.SeatingError{Message: "At least one ticket of the bundle has been revoked."}
		}
		byID[t.ID] = t
	}

	entries := make([]domain.TicketLogEntry, 0, len(tickets))
	for _, a := range domain.PairSeatsWithTickets(seats, tickets) {
		t := byID[a.TicketID]
		seatID := a.SeatID
		t.OccupiedSeatID = &seatID

		if err := tx.Tickets().Update(ctx, t); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return &domain.SeatingError{Message: "At least one of the seats in the group is already occupied."}
			}
			return err
		}

		entries = append(entries, domain.SeatOccupiedEntry(t.ID, seatID, previous[t.ID], initiatorID, now))
	}

	return tx.TicketLog().Append(ctx, entries...)
}

func ensurePartyActive(ctx context.Context, tx repository.Repos, partyID string) error {
	party, err := tx.Parties().Get(ctx, partyID)
	if err != nil {
		return mapNotFound(err, ErrPartyNotFound)
	}

	if party.Archived {
		return &domain.SeatingError{Message: "Party is archived."}
	}

	return nil
}

func ensureGroupVacant(ctx context.Context, tx repository.Repos, groupID uuid.UUID) error {
	_, err := tx.SeatGroups().OccupancyByGroup(ctx, groupID)
	if err == nil {
		return &domain.SeatingError{Message: "Seat group is already occupied."}
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

func partyGroup(ctx context.Context, tx repository.Repos, partyID string, groupID uuid.UUID) (*domain.SeatGroup, error) {
	group, err := tx.SeatGroups().Get(ctx, groupID)
	if err != nil {
		return nil, mapNotFound(err, ErrGroupNotFound)
	}

	if group.PartyID != partyID {
		return nil, &domain.SeatingError{Message: "Seat group belongs to a different party."}
	}

	return group, nil
}

func partyBundle(ctx context.Context, tx repository.Repos, partyID string, bundleID uuid.UUID) (*domain.TicketBundle, error) {
	bundle, err := tx.Bundles().Get(ctx, bundleID)
	if err != nil {
		return nil, mapNotFound(err, ErrBundleNotFound)
	}

	if bundle.PartyID != partyID {
		return nil, &domain.SeatingError{Message: "Ticket bundle belongs to a different party."}
	}

	if bundle.Revoked {
		return nil, &domain.SeatingError{Message: "Ticket bundle has been revoked."}
	}

	return bundle, nil
}

func distinct(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
