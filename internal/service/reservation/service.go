// Package reservation decides when users may start reserving seats.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	redisx "github.com/kirinyoku/seatkeeper/internal/redis"
	"github.com/kirinyoku/seatkeeper/internal/repository"
	redisrepo "github.com/kirinyoku/seatkeeper/internal/repository/redis"
	"github.com/kirinyoku/seatkeeper/internal/uow"
)

type Config struct {
	PreconditionsTTL time.Duration
	// Logger reports failed cache invalidations. Defaults to slog.Default().
	Logger *slog.Logger
}

type Service struct {
	store repository.Store
	cache *redisrepo.Cache
	uow   *uow.UoW
	cfg   Config
	now   func() time.Time
}

// New builds the service. cache may be nil.
func New(store repository.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.PreconditionsTTL <= 0 {
		cfg.PreconditionsTTL = 5 * time.Minute
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Service{
		store: store,
		cache: cache,
		uow:   uow.NewUoW(store),
		cfg:   cfg,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// CreatePrecondition opens seat reservation at atEarliest for users holding
// at least minimumTicketQuantity tickets.
//
// Returns:
//   - error: reservation.ErrPartyNotFound, reservation.ErrInvalidTicketQuantity.
//   - error: reservation.ErrPreconditionExists for an identical precondition.
func (s *Service) CreatePrecondition(
	ctx context.Context,
	partyID string,
	atEarliest time.Time,
	minimumTicketQuantity int,
) (*domain.SeatReservationPrecondition, error) {
	const op = "service.reservation.CreatePrecondition"

	if minimumTicketQuantity < 1 {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidTicketQuantity)
	}

	p := domain.SeatReservationPrecondition{
		ID:                    uuid.New(),
		PartyID:               partyID,
		AtEarliest:            atEarliest.UTC(),
		MinimumTicketQuantity: minimumTicketQuantity,
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, after func(uow.AfterCommit)) error {
		if _, err := tx.Parties().Get(ctx, partyID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrPartyNotFound
			}
			return err
		}

		if err := tx.Preconditions().Insert(ctx, p); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrPreconditionExists
			}
			return err
		}

		after(s.invalidate(partyID))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &p, nil
}

// DeletePrecondition removes one of the party's preconditions.
func (s *Service) DeletePrecondition(ctx context.Context, partyID string, preconditionID uuid.UUID) error {
	const op = "service.reservation.DeletePrecondition"

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, after func(uow.AfterCommit)) error {
		pcs, err := tx.Preconditions().ListByParty(ctx, partyID)
		if err != nil {
			return err
		}

		found := false
		for _, p := range pcs {
			if p.ID == preconditionID {
				found = true
				break
			}
		}
		if !found {
			return ErrPreconditionNotFound
		}

		if err := tx.Preconditions().Delete(ctx, preconditionID); err != nil {
			return err
		}

		after(s.invalidate(partyID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// Preconditions returns the party's preconditions ordered by date.
func (s *Service) Preconditions(ctx context.Context, partyID string) ([]domain.SeatReservationPrecondition, error) {
	const op = "service.reservation.Preconditions"

	pcs, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisx.KeyPartyPreconditions(partyID),
		s.cfg.PreconditionsTTL,
		func(ctx context.Context) ([]domain.SeatReservationPrecondition, error) {
			return s.store.Preconditions().ListByParty(ctx, partyID)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return pcs, nil
}

// IsReservationOpen reports whether a user holding ticketQuantity tickets
// may reserve seats now. A party without any precondition is open to
// everyone; otherwise at least one precondition must be met.
func (s *Service) IsReservationOpen(ctx context.Context, partyID string, ticketQuantity int) (bool, error) {
	const op = "service.reservation.IsReservationOpen"

	pcs, err := s.Preconditions(ctx, partyID)
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, err)
	}

	if len(pcs) == 0 {
		return true, nil
	}

	return domain.ArePreconditionsMet(pcs, s.now(), ticketQuantity), nil
}

// MayUserReserve reports whether the user may reserve seats now, judged by
// the number of non-revoked tickets whose seats the user manages. A user
// managing no seats may never reserve.
func (s *Service) MayUserReserve(ctx context.Context, partyID string, userID uuid.UUID) (bool, error) {
	const op = "service.reservation.MayUserReserve"

	qty, err := s.store.Tickets().CountSeatManagedBy(ctx, partyID, userID)
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, err)
	}

	if qty == 0 {
		return false, nil
	}

	open, err := s.IsReservationOpen(ctx, partyID, qty)
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, err)
	}

	return open, nil
}

func (s *Service) invalidate(partyID string) uow.AfterCommit {
	return func(ctx context.Context) {
		if err := s.cache.InvalidatePreconditions(ctx, partyID); err != nil {
			s.cfg.Logger.Warn("precondition cache invalidation failed",
				slog.String("party_id", partyID),
				slog.Any("error", err),
			)
		}
	}
}
