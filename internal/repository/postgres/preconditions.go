package postgresrepo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/repository"
)

type PreconditionRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *PreconditionRepo) Insert(ctx context.Context, p domain.SeatReservationPrecondition) error {
	const op = "postgresrepo.PreconditionRepo.Insert"

	_, err := handle(r.pool, r.db).Exec(ctx,
		`INSERT INTO seat_reservation_preconditions(id, party_id, at_earliest, minimum_ticket_quantity)
		 VALUES ($1, $2, $3, $4)`,
		p.ID, p.PartyID, p.AtEarliest, p.MinimumTicketQuantity,
	)

	return wrapDBErr(op, err)
}

func (r *PreconditionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "postgresrepo.PreconditionRepo.Delete"

	tag, err := handle(r.pool, r.db).Exec(ctx,
		`DELETE FROM seat_reservation_preconditions WHERE id = $1`,
		id,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *PreconditionRepo) ListByParty(ctx context.Context, partyID string) ([]domain.SeatReservationPrecondition, error) {
	const op = "postgresrepo.PreconditionRepo.ListByParty"

	rows, err := handle(r.pool, r.db).Query(ctx,
		`SELECT id, party_id, at_earliest, minimum_ticket_quantity
		 FROM seat_reservation_preconditions
		 WHERE party_id = $1
		 ORDER BY at_earliest, minimum_ticket_quantity`,
		partyID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.SeatReservationPrecondition
	for rows.Next() {
		var p domain.SeatReservationPrecondition
		if err := rows.Scan(&p.ID, &p.PartyID, &p.AtEarliest, &p.MinimumTicketQuantity); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
