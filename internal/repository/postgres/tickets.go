package postgresrepo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/repository"
)

const ticketColumns = `id, created_at, code, bundle_id, party_id, category_id,
	owned_by_id, order_number, occupied_seat_id, used_by_id,
	seat_managed_by_id, user_managed_by_id, revoked, user_checked_in`

type TicketRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func scanTicket(row pgx.Row) (domain.Ticket, error) {
	var t domain.Ticket
	err := row.Scan(
		&t.ID, &t.CreatedAt, &t.Code, &t.BundleID, &t.PartyID, &t.CategoryID,
		&t.OwnedByID, &t.OrderNumber, &t.OccupiedSeatID, &t.UsedByID,
		&t.SeatManagedByID, &t.UserManagedByID, &t.Revoked, &t.UserCheckedIn,
	)
	return t, err
}

// Get retrieves a ticket by its ID.
//
// Returns:
//   - *domain.Ticket: the ticket when found.
//   - error: repository.ErrNotFound if the ticket does not exist.
func (r *TicketRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	const op = "postgresrepo.TicketRepo.Get"

	t, err := scanTicket(handle(r.pool, r.db).QueryRow(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &t, nil
}

func (r *TicketRepo) GetByCode(ctx context.Context, partyID, code string) (*domain.Ticket, error) {
	const op = "postgresrepo.TicketRepo.GetByCode"

	t, err := scanTicket(handle(r.pool, r.db).QueryRow(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE party_id = $1 AND code = $2`,
		partyID, code,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &t, nil
}

// ListByIDs returns the tickets with the given IDs ordered by creation time.
// Unknown IDs are skipped.
func (r *TicketRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Ticket, error) {
	const op = "postgresrepo.TicketRepo.ListByIDs"

	rows, err := handle(r.pool, r.db).Query(ctx,
		`SELECT `+ticketColumns+`
		 FROM tickets
		 WHERE id = ANY($1)
		 ORDER BY created_at, id`,
		ids,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// Insert stores new tickets in one batch.
//
// Returns:
//   - error: repository.ErrConflict if a code is already used within the party.
func (r *TicketRepo) Insert(ctx context.Context, tickets []domain.Ticket) error {
	const op = "postgresrepo.TicketRepo.Insert"

	batch := &pgx.Batch{}
	for _, t := range tickets {
		batch.Queue(
			`INSERT INTO tickets(`+ticketColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			t.ID, t.CreatedAt, t.Code, t.BundleID, t.PartyID, t.CategoryID,
			t.OwnedByID, t.OrderNumber, t.OccupiedSeatID, t.UsedByID,
			t.SeatManagedByID, t.UserManagedByID, t.Revoked, t.UserCheckedIn,
		)
	}
	if err := handle(r.pool, r.db).SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// Update writes the mutable columns of a ticket.
//
// Returns:
//   - error: repository.ErrNotFound if the ticket does not exist.
//   - error: repository.ErrConflict if the seat is occupied by another ticket.
func (r *TicketRepo) Update(ctx context.Context, t domain.Ticket) error {
	const op = "postgresrepo.TicketRepo.Update"

	tag, err := handle(r.pool, r.db).Exec(ctx,
		`UPDATE tickets
		 SET occupied_seat_id = $2,
		     used_by_id = $3,
		     seat_managed_by_id = $4,
		     user_managed_by_id = $5,
		     revoked = $6,
		     user_checked_in = $7
		 WHERE id = $1`,
		t.ID, t.OccupiedSeatID, t.UsedByID, t.SeatManagedByID,
		t.UserManagedByID, t.Revoked, t.UserCheckedIn,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *TicketRepo) CountSeatManagedBy(ctx context.Context, partyID string, userID uuid.UUID) (int, error) {
	const op = "postgresrepo.TicketRepo.CountSeatManagedBy"

	var n int
	err := handle(r.pool, r.db).QueryRow(ctx,
		`SELECT count(*)
		 FROM tickets
		 WHERE party_id = $1
		   AND NOT revoked
		   AND COALESCE(seat_managed_by_id, owned_by_id) = $2`,
		partyID, userID,
	).Scan(&n)
	if err != nil {
		return 0, wrapDBErr(op, err)
	}

	return n, nil
}
