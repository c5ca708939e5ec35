package ticketing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/repository"
	"github.com/kirinyoku/seatkeeper/internal/service/seating"
	"github.com/kirinyoku/seatkeeper/internal/uow"
)

// RevokeTicket revokes a single ticket. See RevokeTickets.
func (s *Service) RevokeTicket(ctx context.Context, ticketID, initiatorID uuid.UUID, reason string) error {
	return s.RevokeTickets(ctx, []uuid.UUID{ticketID}, initiatorID, reason)
}

// RevokeTickets revokes tickets in one transaction. A ticket's seat is
// released first. Tickets that are already revoked are left untouched and
// get no second log entry.
//
// Returns:
//   - error: ticketing.ErrTicketNotFound if any of the tickets does not exist.
func (s *Service) RevokeTickets(ctx context.Context, ticketIDs []uuid.UUID, initiatorID uuid.UUID, reason string) error {
	const op = "service.ticketing.RevokeTickets"

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, after func(uow.AfterCommit)) error {
		areas, err := s.revoke(ctx, tx, ticketIDs, initiatorID, reason, s.now())
		if err != nil {
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

// RevokeBundle revokes a bundle and all of its tickets. If the bundle
// occupies a seat group, the group is released first and the release event
// is returned for dispatch.
//
// Returns:
//   - *domain.SeatGroupReleasedEvent: nil unless a group was released.
//   - error: ticketing.ErrBundleNotFound.
func (s *Service) RevokeBundle(
	ctx context.Context,
	bundleID, initiatorID uuid.UUID,
	reason string,
) (*domain.SeatGroupReleasedEvent, error) {
	const op = "service.ticketing.RevokeBundle"

	var event *domain.SeatGroupReleasedEvent

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, after func(uow.AfterCommit)) error {
		now := s.now()

		bundle, err := tx.Bundles().Get(ctx, bundleID)
		if err != nil {
			return mapNotFound(err, ErrBundleNotFound)
		}

		ev, areas, err := seating.ReleaseBundleGroup(ctx, tx, bundle.ID, initiatorID, now)
		if err != nil {
			return err
		}

		ticketAreas, err := s.revoke(ctx, tx, bundle.TicketIDs, initiatorID, reason, now)
		if err != nil {
			return err
		}

		if !bundle.Revoked {
			if err := tx.Bundles().SetRevoked(ctx, bundle.ID); err != nil {
				return err
			}
		}

		event = ev
		after(s.invalidateAreas(append(areas, ticketAreas...)...))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return event, nil
}

// revoke marks the tickets revoked and returns the areas of released seats.
func (s *Service) revoke(
	ctx context.Context,
	tx repository.Repos,
	ticketIDs []uuid.UUID,
	initiatorID uuid.UUID,
	reason string,
	now time.Time,
) ([]uuid.UUID, error) {
	tickets, err := tx.Tickets().ListByIDs(ctx, ticketIDs)
	if err != nil {
		return nil, err
	}

	if len(tickets) != countDistinct(ticketIDs) {
		return nil, ErrTicketNotFound
	}

	var (
		areas   []uuid.UUID
		entries []domain.TicketLogEntry
	)

	for i := range tickets {
		t := &tickets[i]
		if t.Revoked {
			continue
		}

		if t.OccupiedSeatID != nil {
			areaID, err := seating.ReleaseTicketSeat(ctx, tx, t, initiatorID, now)
			if err != nil {
				return nil, err
			}
			areas = append(areas, areaID)
		}

		t.Revoked = true
		if err := tx.Tickets().Update(ctx, *t); err != nil {
			return nil, err
		}

		entries = append(entries, domain.TicketRevokedEntry(t.ID, initiatorID, reason, now))
	}

	if len(entries) > 0 {
		if err := tx.TicketLog().Append(ctx, entries...); err != nil {
			return nil, err
		}
	}

	return areas, nil
}

func countDistinct(ids []uuid.UUID) int {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}
