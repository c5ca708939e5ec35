package ticketing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/repository"
	"github.com/kirinyoku/seatkeeper/internal/ticketcode"
	"github.com/kirinyoku/seatkeeper/internal/uow"
)

// CreateOptions holds the optional attributes of new tickets.
type CreateOptions struct {
	OrderNumber *string
	// UsedByID assigns the initial user of every created ticket.
	UsedByID *uuid.UUID
	// Label applies to bundles only.
	Label *string
}

func (s *Service) CreateCategory(ctx context.Context, partyID, title string) (*domain.TicketCategory, error) {
	const op = "service.ticketing.CreateCategory"

	category := domain.TicketCategory{
		ID:      uuid.New(),
		PartyID: partyID,
		Title:   title,
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, _ func(uow.AfterCommit)) error {
		if _, err := tx.Parties().Get(ctx, partyID); err != nil {
			return mapNotFound(err, ErrPartyNotFound)
		}

		if err := tx.Categories().Insert(ctx, category); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrCategoryExists
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &category, nil
}

func (s *Service) PartyCategories(ctx context.Context, partyID string) ([]domain.TicketCategory, error) {
	const op = "service.ticketing.PartyCategories"

	categories, err := s.store.Categories().ListByParty(ctx, partyID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return categories, nil
}

// CreateTicket creates a single ticket. See CreateTickets.
func (s *Service) CreateTicket(
	ctx context.Context,
	categoryID, ownerID uuid.UUID,
	opts CreateOptions,
) (*domain.Ticket, error) {
	tickets, err := s.CreateTickets(ctx, categoryID, ownerID, 1, opts)
	if err != nil {
		return nil, err
	}

	return &tickets[0], nil
}

// CreateTickets creates quantity tickets of a category for an owner. The
// party is taken from the category.
//
// Codes are drawn at random and may collide with codes already stored for
// the party. A collision aborts the transaction, which is then retried with
// fresh codes up to Config.CodeAttempts times.
//
// Returns:
//   - []domain.Ticket: the created tickets, sharing one creation time.
//   - error: ticketing.ErrInvalidQuantity, ticketing.ErrCategoryNotFound,
//     ticketing.ErrUserNotFound.
//   - error: ticketing.ErrTicketCreationFailed once the retry budget is spent.
func (s *Service) CreateTickets(
	ctx context.Context,
	categoryID, ownerID uuid.UUID,
	quantity int,
	opts CreateOptions,
) ([]domain.Ticket, error) {
	const op = "service.ticketing.CreateTickets"

	if quantity < 1 {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidQuantity)
	}

	var tickets []domain.Ticket

	err := s.uow.DoWithRetry(ctx, s.cfg.CodeAttempts, isCodeCollision,
		func(ctx context.Context, tx repository.Repos, _ func(uow.AfterCommit)) error {
			category, err := s.checkCreation(ctx, tx, categoryID, ownerID, opts)
			if err != nil {
				return err
			}

			tickets, err = s.buildTickets(category, ownerID, nil, quantity, opts)
			if err != nil {
				return err
			}

			return tx.Tickets().Insert(ctx, tickets)
		})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, creationErr(err))
	}

	return tickets, nil
}

// CreateBundle creates a bundle of quantity tickets sharing category and
// owner. Codes are retried like in CreateTickets.
func (s *Service) CreateBundle(
	ctx context.Context,
	categoryID uuid.UUID,
	quantity int,
	ownerID uuid.UUID,
	opts CreateOptions,
) (*domain.TicketBundle, error) {
	const op = "service.ticketing.CreateBundle"

	if quantity < 1 {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidQuantity)
	}

	var bundle domain.TicketBundle

	err := s.uow.DoWithRetry(ctx, s.cfg.CodeAttempts, isCodeCollision,
		func(ctx context.Context, tx repository.Repos, _ func(uow.AfterCommit)) error {
			category, err := s.checkCreation(ctx, tx, categoryID, ownerID, opts)
			if err != nil {
				return err
			}

			bundle = domain.TicketBundle{
				ID:             uuid.New(),
				CreatedAt:      s.now(),
				PartyID:        category.PartyID,
				CategoryID:     category.ID,
				TicketQuantity: quantity,
				OwnedByID:      ownerID,
				Label:          opts.Label,
			}

			tickets, err := s.buildTickets(category, ownerID, &bundle.ID, quantity, opts)
			if err != nil {
				return err
			}

			if err := tx.Bundles().Insert(ctx, bundle); err != nil {
				return err
			}

			if err := tx.Tickets().Insert(ctx, tickets); err != nil {
				return err
			}

			bundle.TicketIDs = make([]uuid.UUID, 0, len(tickets))
			for _, t := range tickets {
				bundle.TicketIDs = append(bundle.TicketIDs, t.ID)
			}

			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, creationErr(err))
	}

	return &bundle, nil
}

func (s *Service) checkCreation(
	ctx context.Context,
	tx repository.Repos,
	categoryID, ownerID uuid.UUID,
	opts CreateOptions,
) (*domain.TicketCategory, error) {
	category, err := tx.Categories().Get(ctx, categoryID)
	if err != nil {
		return nil, mapNotFound(err, ErrCategoryNotFound)
	}

	if _, err := tx.Users().Get(ctx, ownerID); err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}

	if opts.UsedByID != nil {
		if _, err := tx.Users().Get(ctx, *opts.UsedByID); err != nil {
			return nil, mapNotFound(err, ErrUserNotFound)
		}
	}

	return category, nil
}

func (s *Service) buildTickets(
	category *domain.TicketCategory,
	ownerID uuid.UUID,
	bundleID *uuid.UUID,
	quantity int,
	opts CreateOptions,
) ([]domain.Ticket, error) {
	codes, err := s.codes.GenerateCodes(quantity)
	if err != nil {
		return nil, err
	}

	now := s.now()
	tickets := make([]domain.Ticket, 0, quantity)
	for _, code := range codes {
		tickets = append(tickets, domain.Ticket{
			ID:          uuid.New(),
			CreatedAt:   now,
			Code:        code,
			BundleID:    bundleID,
			PartyID:     category.PartyID,
			CategoryID:  category.ID,
			OwnedByID:   ownerID,
			OrderNumber: opts.OrderNumber,
			UsedByID:    opts.UsedByID,
		})
	}

	return tickets, nil
}

// isCodeCollision reports whether a creation attempt failed on a taken code
// (or on a serialization conflict) and may be repeated with fresh codes.
func isCodeCollision(err error) bool {
	return errors.Is(err, repository.ErrConflict) || uow.IsRetryable(err)
}

func creationErr(err error) error {
	if isCodeCollision(err) {
		return fmt.Errorf("%w: %w", ErrTicketCreationFailed, err)
	}
	return err
}

func (s *Service) GetTicket(ctx context.Context, ticketID uuid.UUID) (*domain.Ticket, error) {
	const op = "service.ticketing.GetTicket"

	t, err := s.store.Tickets().Get(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, mapNotFound(err, ErrTicketNotFound))
	}

	return t, nil
}

// GetTicketByCode looks a ticket up by the code printed on it. Surrounding
// blanks and lower case are tolerated.
func (s *Service) GetTicketByCode(ctx context.Context, partyID, code string) (*domain.Ticket, error) {
	const op = "service.ticketing.GetTicketByCode"

	code = strings.ToUpper(strings.TrimSpace(code))
	if !ticketcode.IsWellFormed(code) {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidCode)
	}

	t, err := s.store.Tickets().GetByCode(ctx, partyID, code)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, mapNotFound(err, ErrTicketNotFound))
	}

	return t, nil
}

func (s *Service) GetBundle(ctx context.Context, bundleID uuid.UUID) (*domain.TicketBundle, error) {
	const op = "service.ticketing.GetBundle"

	b, err := s.store.Bundles().Get(ctx, bundleID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, mapNotFound(err, ErrBundleNotFound))
	}

	return b, nil
}

// TicketLog returns the ticket's log entries, oldest first.
func (s *Service) TicketLog(ctx context.Context, ticketID uuid.UUID) ([]domain.TicketLogEntry, error) {
	const op = "service.ticketing.TicketLog"

	if _, err := s.store.Tickets().Get(ctx, ticketID); err != nil {
		return nil, fmt.Errorf("%s:%w", op, mapNotFound(err, ErrTicketNotFound))
	}

	entries, err := s.store.TicketLog().ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return entries, nil
}
