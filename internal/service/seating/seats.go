package seating

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	redisx "github.com/kirinyoku/seatkeeper/internal/redis"
	"github.com/kirinyoku/seatkeeper/internal/repository"
	redisrepo "github.com/kirinyoku/seatkeeper/internal/repository/redis"
	"github.com/kirinyoku/seatkeeper/internal/uow"
)

// CreateArea creates a seating area for a party.
//
// Returns:
//   - error: seating.ErrPartyNotFound if the party does not exist.
//   - error: seating.ErrAreaExists if the party already has an area with the slug.
func (s *Service) CreateArea(ctx context.Context, partyID, slug, title string) (*domain.SeatingArea, error) {
	const op = "service.seating.CreateArea"

	area := domain.SeatingArea{
		ID:      uuid.New(),
		PartyID: partyID,
		Slug:    slug,
		Title:   title,
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, _ func(uow.AfterCommit)) error {
		if _, err := tx.Parties().Get(ctx, partyID); err != nil {
			return mapNotFound(err, ErrPartyNotFound)
		}

		if err := tx.Seats().InsertArea(ctx, area); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrAreaExists
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &area, nil
}

// CreateSeat places a seat in an area.
//
// Parameters:
//   - areaID: area the seat belongs to.
//   - x, y: coordinates; they also define the seat's rank when a seat
//     group is occupied.
//   - categoryID: ticket category the seat accepts.
//   - label: optional display label.
//
// Returns:
//   - error: seating.ErrAreaNotFound, seating.ErrCategoryNotFound.
//   - error: *domain.SeatingError if the category belongs to another party.
func (s *Service) CreateSeat(
	ctx context.Context,
	areaID uuid.UUID,
	x, y int,
	categoryID uuid.UUID,
	label *string,
) (*domain.Seat, error) {
	const op = "service.seating.CreateSeat"

	seat := domain.Seat{
		ID:         uuid.New(),
		AreaID:     areaID,
		CoordX:     x,
		CoordY:     y,
		CategoryID: categoryID,
		Label:      label,
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, after func(uow.AfterCommit)) error {
		area, err := tx.Seats().GetArea(ctx, areaID)
		if err != nil {
			return mapNotFound(err, ErrAreaNotFound)
		}

		category, err := tx.Categories().Get(ctx, categoryID)
		if err != nil {
			return mapNotFound(err, ErrCategoryNotFound)
		}

		if category.PartyID != area.PartyID {
			return &domain.SeatingError{Message: "Seat category belongs to a different party."}
		}

		if err := tx.Seats().Insert(ctx, seat); err != nil {
			return err
		}

		after(s.invalidateAreas(areaID))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &seat, nil
}

func (s *Service) GetSeat(ctx context.Context, seatID uuid.UUID) (*domain.Seat, error) {
	const op = "service.seating.GetSeat"

	seat, err := s.store.Seats().Get(ctx, seatID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, mapNotFound(err, ErrSeatNotFound))
	}

	return seat, nil
}

// AreaSeats returns the seats of an area with their occupants, ordered by
// coordinates. The result is cached until a seat in the area changes.
func (s *Service) AreaSeats(ctx context.Context, areaID uuid.UUID) ([]domain.Seat, error) {
	const op = "service.seating.AreaSeats"

	seats, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisx.KeyAreaSeats(areaID),
		s.cfg.AreaSeatsTTL,
		func(ctx context.Context) ([]domain.Seat, error) {
			if _, err := s.store.Seats().GetArea(ctx, areaID); err != nil {
				return nil, mapNotFound(err, ErrAreaNotFound)
			}

			return s.store.Seats().ListByArea(ctx, areaID)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return seats, nil
}

// DeleteSeat removes a seat that is neither occupied nor part of a group.
//
// Returns:
//   - error: seating.ErrSeatNotFound, seating.ErrSeatInUse.
func (s *Service) DeleteSeat(ctx context.Context, seatID uuid.UUID) error {
	const op = "service.seating.DeleteSeat"

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, after func(uow.AfterCommit)) error {
		seat, err := tx.Seats().Get(ctx, seatID)
		if err != nil {
			return mapNotFound(err, ErrSeatNotFound)
		}

		grouped, err := tx.SeatGroups().IsSeatGrouped(ctx, seatID)
		if err != nil {
			return err
		}

		if seat.IsOccupied() || grouped {
			return ErrSeatInUse
		}

		if err := tx.Seats().Delete(ctx, seatID); err != nil {
			return err
		}

		after(s.invalidateAreas(seat.AreaID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// OccupySeat lets a ticket occupy a seat, replacing the seat it held before.
//
// Parameters:
//   - ticketID: ticket to seat; it must not belong to a bundle.
//   - seatID: seat to occupy; it must not belong to a seat group.
//   - initiatorID: user performing the change, recorded in the ticket log.
//
// Returns:
//   - error: seating.ErrTicketNotFound, seating.ErrSeatNotFound.
//   - error: domain.TicketIsRevokedError, domain.SeatChangeDeniedForBundledTicketError,
//     domain.TicketCategoryMismatchError, domain.SeatChangeDeniedForGroupSeatError,
//     domain.SeatAlreadyOccupiedError, checked in that order.
func (s *Service) OccupySeat(ctx context.Context, ticketID, seatID, initiatorID uuid.UUID) error {
	const op = "service.seating.OccupySeat"

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, after func(uow.AfterCommit)) error {
		ticket, err := tx.Tickets().Get(ctx, ticketID)
		if err != nil {
			return mapNotFound(err, ErrTicketNotFound)
		}

		seat, err := tx.Seats().Get(ctx, seatID)
		if err != nil {
			return mapNotFound(err, ErrSeatNotFound)
		}

		if ticket.Revoked {
			return domain.TicketIsRevokedError{TicketID: ticket.ID}
		}

		if ticket.BelongsToBundle() {
			return domain.SeatChangeDeniedForBundledTicketError{TicketID: ticket.ID}
		}

		if ticket.CategoryID != seat.CategoryID {
			return domain.TicketCategoryMismatchError{
				TicketCategoryID: ticket.CategoryID,
				SeatCategoryID:   seat.CategoryID,
			}
		}

		if err := denyGroupSeat(ctx, tx, seat.ID); err != nil {
			return err
		}

		if seat.IsOccupied() {
			if *seat.OccupiedByTicketID == ticket.ID {
				return nil
			}
			return domain.SeatAlreadyOccupiedError{SeatID: seat.ID}
		}

		areas := []uuid.UUID{seat.AreaID}
		previousSeatID := ticket.OccupiedSeatID
		if previousSeatID != nil {
			prev, err := tx.Seats().Get(ctx, *previousSeatID)
			if err != nil {
				return err
			}
			if prev.AreaID != seat.AreaID {
				areas = append(areas, prev.AreaID)
			}
		}

		ticket.OccupiedSeatID = &seat.ID
		if err := tx.Tickets().Update(ctx, *ticket); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return domain.SeatAlreadyOccupiedError{SeatID: seat.ID}
			}
			return err
		}

		entry := domain.SeatOccupiedEntry(ticket.ID, seat.ID, previousSeatID, initiatorID, s.now())
		if err := tx.TicketLog().Append(ctx, entry); err != nil {
			return err
		}

		after(s.invalidateAreas(areas...))
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// ReleaseSeat frees the seat a ticket occupies.
//
// Returns:
//   - error: seating.ErrTicketNotFound.
//   - error: domain.SeatChangeDeniedForBundledTicketError for bundled tickets.
//   - error: seating.ErrTicketOccupiesNoSeat if the ticket has no seat.
//   - error: domain.SeatChangeDeniedForGroupSeatError for seats in a group.
func (s *Service) ReleaseSeat(ctx context.Context, ticketID, initiatorID uuid.UUID) error {
	const op = "service.seating.ReleaseSeat"

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, after func(uow.AfterCommit)) error {
		ticket, err := tx.Tickets().Get(ctx, ticketID)
		if err != nil {
			return mapNotFound(err, ErrTicketNotFound)
		}

		if ticket.BelongsToBundle() {
			return domain.SeatChangeDeniedForBundledTicketError{TicketID: ticket.ID}
		}

		if ticket.OccupiedSeatID == nil {
			return ErrTicketOccupiesNoSeat
		}

		if err := denyGroupSeat(ctx, tx, *ticket.OccupiedSeatID); err != nil {
			return err
		}

		areaID, err := ReleaseTicketSeat(ctx, tx, ticket, initiatorID, s.now())
		if err != nil {
			return err
		}

		after(s.invalidateAreas(areaID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func denyGroupSeat(ctx context.Context, tx repository.Repos, seatID uuid.UUID) error {
	grouped, err := tx.SeatGroups().IsSeatGrouped(ctx, seatID)
	if err != nil {
		return err
	}

	if grouped {
		return domain.SeatChangeDeniedForGroupSeatError{SeatID: seatID}
	}

	return nil
}
