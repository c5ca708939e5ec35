package postgresrepo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kirinyoku/seatkeeper/internal/domain"
)

type CheckInRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *CheckInRepo) Insert(ctx context.Context, c domain.TicketCheckIn) error {
	const op = "postgresrepo.CheckInRepo.Insert"

	_, err := handle(r.pool, r.db).Exec(ctx,
		`INSERT INTO ticket_check_ins(id, occurred_at, ticket_id, initiator_id)
		 VALUES ($1, $2, $3, $4)`,
		c.ID, c.OccurredAt, c.TicketID, c.InitiatorID,
	)

	return wrapDBErr(op, err)
}

func (r *CheckInRepo) ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]domain.TicketCheckIn, error) {
	const op = "postgresrepo.CheckInRepo.ListByTicket"

	rows, err := handle(r.pool, r.db).Query(ctx,
		`SELECT id, occurred_at, ticket_id, initiator_id
		 FROM ticket_check_ins
		 WHERE ticket_id = $1
		 ORDER BY occurred_at`,
		ticketID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.TicketCheckIn
	for rows.Next() {
		var c domain.TicketCheckIn
		if err := rows.Scan(&c.ID, &c.OccurredAt, &c.TicketID, &c.InitiatorID); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
