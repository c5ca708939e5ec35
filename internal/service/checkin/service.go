// Package checkin admits ticket users at the party entrance.
package checkin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/repository"
	"github.com/kirinyoku/seatkeeper/internal/ticketcode"
	"github.com/kirinyoku/seatkeeper/internal/uow"
)

type Service struct {
	store repository.Store
	uow   *uow.UoW
	now   func() time.Time
}

func New(store repository.Store) *Service {
	return &Service{
		store: store,
		uow:   uow.NewUoW(store),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// CheckInUser checks in the user assigned to a ticket. The check-in, the
// ticket flag and the log entry are stored in one transaction.
//
// Parameters:
//   - partyID: party the desk is admitting to.
//   - ticketID: ticket presented at the desk.
//   - initiatorID: staff member performing the check-in.
//
// Returns:
//   - domain.TicketCheckedInEvent: to be dispatched by the caller.
//   - error: checkin.ErrTicketNotFound, checkin.ErrUserNotFound.
//   - error: the first violated rule of domain.CheckInUser.
func (s *Service) CheckInUser(
	ctx context.Context,
	partyID string,
	ticketID, initiatorID uuid.UUID,
) (domain.TicketCheckedInEvent, error) {
	const op = "service.checkin.CheckInUser"

	event, err := s.checkIn(ctx, partyID, initiatorID, func(ctx context.Context, tx repository.Repos) (*domain.Ticket, error) {
		return tx.Tickets().Get(ctx, ticketID)
	})
	if err != nil {
		return domain.TicketCheckedInEvent{}, fmt.Errorf("%s:%w", op, err)
	}

	return event, nil
}

// CheckInByCode is CheckInUser for a ticket code typed in or scanned at the
// desk.
func (s *Service) CheckInByCode(
	ctx context.Context,
	partyID, code string,
	initiatorID uuid.UUID,
) (domain.TicketCheckedInEvent, error) {
	const op = "service.checkin.CheckInByCode"

	code = strings.ToUpper(strings.TrimSpace(code))
	if !ticketcode.IsWellFormed(code) {
		return domain.TicketCheckedInEvent{}, fmt.Errorf("%s:%w", op, ErrInvalidCode)
	}

	event, err := s.checkIn(ctx, partyID, initiatorID, func(ctx context.Context, tx repository.Repos) (*domain.Ticket, error) {
		return tx.Tickets().GetByCode(ctx, partyID, code)
	})
	if err != nil {
		return domain.TicketCheckedInEvent{}, fmt.Errorf("%s:%w", op, err)
	}

	return event, nil
}

func (s *Service) checkIn(
	ctx context.Context,
	partyID string,
	initiatorID uuid.UUID,
	load func(ctx context.Context, tx repository.Repos) (*domain.Ticket, error),
) (domain.TicketCheckedInEvent, error) {
	var event domain.TicketCheckedInEvent

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, _ func(uow.AfterCommit)) error {
		ticket, err := load(ctx, tx)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrTicketNotFound
			}
			return err
		}

		var user *domain.User
		if ticket.UsedByID != nil {
			user, err = tx.Users().Get(ctx, *ticket.UsedByID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return ErrUserNotFound
				}
				return err
			}
		}

		result, err := domain.CheckInUser(partyID, *ticket, user, initiatorID, s.now())
		if err != nil {
			return err
		}

		ticket.UserCheckedIn = true
		if err := tx.Tickets().Update(ctx, *ticket); err != nil {
			return err
		}

		if err := tx.CheckIns().Insert(ctx, result.CheckIn); err != nil {
			return err
		}

		if err := tx.TicketLog().Append(ctx, result.LogEntry); err != nil {
			return err
		}

		event = result.Event
		return nil
	})
	if err != nil {
		return domain.TicketCheckedInEvent{}, err
	}

	return event, nil
}

// RevertUserCheckIn undoes a check-in made by mistake.
//
// Returns:
//   - error: checkin.ErrTicketNotFound, checkin.ErrTicketNotCheckedIn.
func (s *Service) RevertUserCheckIn(ctx context.Context, ticketID, initiatorID uuid.UUID) error {
	const op = "service.checkin.RevertUserCheckIn"

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, _ func(uow.AfterCommit)) error {
		ticket, err := tx.Tickets().Get(ctx, ticketID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrTicketNotFound
			}
			return err
		}

		if !ticket.UserCheckedIn {
			return ErrTicketNotCheckedIn
		}

		ticket.UserCheckedIn = false
		if err := tx.Tickets().Update(ctx, *ticket); err != nil {
			return err
		}

		return tx.TicketLog().Append(ctx, domain.UserCheckInRevertedEntry(ticket.ID, initiatorID, s.now()))
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// CheckIns lists the check-ins recorded for a ticket.
func (s *Service) CheckIns(ctx context.Context, ticketID uuid.UUID) ([]domain.TicketCheckIn, error) {
	const op = "service.checkin.CheckIns"

	out, err := s.store.CheckIns().ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}
