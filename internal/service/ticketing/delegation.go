package ticketing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/repository"
	"github.com/kirinyoku/seatkeeper/internal/uow"
)

// mutation changes a loaded ticket and returns the log entry describing the
// change.
type mutation func(ctx context.Context, tx repository.Repos, t *domain.Ticket, now time.Time) (domain.TicketLogEntry, error)

func (s *Service) mutate(ctx context.Context, op string, ticketID uuid.UUID, fn mutation) error {
	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, _ func(uow.AfterCommit)) error {
		t, err := tx.Tickets().Get(ctx, ticketID)
		if err != nil {
			return mapNotFound(err, ErrTicketNotFound)
		}

		if t.Revoked {
			return domain.TicketIsRevokedError{TicketID: t.ID}
		}

		entry, err := fn(ctx, tx, t, s.now())
		if err != nil {
			return err
		}

		if err := tx.Tickets().Update(ctx, *t); err != nil {
			return err
		}

		return tx.TicketLog().Append(ctx, entry)
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func requireUser(ctx context.Context, tx repository.Repos, userID uuid.UUID) (*domain.User, error) {
	u, err := tx.Users().Get(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}
	return u, nil
}

// AppointSeatManager lets managerID choose the ticket's seat in place of
// the owner.
//
// Returns:
//   - error: domain.TicketIsRevokedError, ticketing.ErrTicketNotFound, ticketing.ErrUserNotFound.
func (s *Service) AppointSeatManager(ctx context.Context, ticketID, managerID, initiatorID uuid.UUID) error {
	return s.mutate(ctx, "service.ticketing.AppointSeatManager", ticketID,
		func(ctx context.Context, tx repository.Repos, t *domain.Ticket, now time.Time) (domain.TicketLogEntry, error) {
			if _, err := requireUser(ctx, tx, managerID); err != nil {
				return domain.TicketLogEntry{}, err
			}

			previous := t.SeatManagedByID
			t.SeatManagedByID = &managerID

			return domain.DelegateChangedEntry(domain.LogSeatManagerAppointed, t.ID, "seat_manager",
				previous, &managerID, initiatorID, now), nil
		})
}

func (s *Service) WithdrawSeatManager(ctx context.Context, ticketID, initiatorID uuid.UUID) error {
	return s.mutate(ctx, "service.ticketing.WithdrawSeatManager", ticketID,
		func(_ context.Context, _ repository.Repos, t *domain.Ticket, now time.Time) (domain.TicketLogEntry, error) {
			previous := t.SeatManagedByID
			t.SeatManagedByID = nil

			return domain.DelegateChangedEntry(domain.LogSeatManagerWithdrawn, t.ID, "seat_manager",
				previous, nil, initiatorID, now), nil
		})
}

// AppointUserManager lets managerID choose who uses the ticket.
func (s *Service) AppointUserManager(ctx context.Context, ticketID, managerID, initiatorID uuid.UUID) error {
	return s.mutate(ctx, "service.ticketing.AppointUserManager", ticketID,
		func(ctx context.Context, tx repository.Repos, t *domain.Ticket, now time.Time) (domain.TicketLogEntry, error) {
			if _, err := requireUser(ctx, tx, managerID); err != nil {
				return domain.TicketLogEntry{}, err
			}

			previous := t.UserManagedByID
			t.UserManagedByID = &managerID

			return domain.DelegateChangedEntry(domain.LogUserManagerAppointed, t.ID, "user_manager",
				previous, &managerID, initiatorID, now), nil
		})
}

func (s *Service) WithdrawUserManager(ctx context.Context, ticketID, initiatorID uuid.UUID) error {
	return s.mutate(ctx, "service.ticketing.WithdrawUserManager", ticketID,
		func(_ context.Context, _ repository.Repos, t *domain.Ticket, now time.Time) (domain.TicketLogEntry, error) {
			previous := t.UserManagedByID
			t.UserManagedByID = nil

			return domain.DelegateChangedEntry(domain.LogUserManagerWithdrawn, t.ID, "user_manager",
				previous, nil, initiatorID, now), nil
		})
}

// AppointUser makes userID the person who will use the ticket at the party.
//
// Returns:
//   - error: domain.TicketIsRevokedError, domain.UserAlreadyCheckedInError,
//     domain.UserAccountSuspendedError, checked in that order.
func (s *Service) AppointUser(ctx context.Context, ticketID, userID, initiatorID uuid.UUID) error {
	return s.mutate(ctx, "service.ticketing.AppointUser", ticketID,
		func(ctx context.Context, tx repository.Repos, t *domain.Ticket, now time.Time) (domain.TicketLogEntry, error) {
			if t.UserCheckedIn {
				return domain.TicketLogEntry{}, domain.UserAlreadyCheckedInError{TicketID: t.ID}
			}

			user, err := requireUser(ctx, tx, userID)
			if err != nil {
				return domain.TicketLogEntry{}, err
			}

			if user.Suspended {
				return domain.TicketLogEntry{}, domain.UserAccountSuspendedError{UserID: user.ID}
			}

			previous := t.UsedByID
			t.UsedByID = &userID

			return domain.DelegateChangedEntry(domain.LogUserAppointed, t.ID, "user",
				previous, &userID, initiatorID, now), nil
		})
}

func (s *Service) WithdrawUser(ctx context.Context, ticketID, initiatorID uuid.UUID) error {
	return s.mutate(ctx, "service.ticketing.WithdrawUser", ticketID,
		func(_ context.Context, _ repository.Repos, t *domain.Ticket, now time.Time) (domain.TicketLogEntry, error) {
			if t.UserCheckedIn {
				return domain.TicketLogEntry{}, domain.UserAlreadyCheckedInError{TicketID: t.ID}
			}

			previous := t.UsedByID
			t.UsedByID = nil

			return domain.DelegateChangedEntry(domain.LogUserWithdrawn, t.ID, "user",
				previous, nil, initiatorID, now), nil
		})
}
