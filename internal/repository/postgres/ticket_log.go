package postgresrepo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kirinyoku/seatkeeper/internal/domain"
)

type TicketLogRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *TicketLogRepo) Append(ctx context.Context, entries ...domain.TicketLogEntry) error {
	const op = "postgresrepo.TicketLogRepo.Append"

	if len(entries) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(
			`INSERT INTO ticket_log_entries(id, occurred_at, event_type, ticket_id, data)
			 VALUES ($1, $2, $3, $4, $5)`,
			e.ID, e.OccurredAt, string(e.EventType), e.TicketID, e.Data,
		)
	}
	if err := handle(r.pool, r.db).SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *TicketLogRepo) ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]domain.TicketLogEntry, error) {
	const op = "postgresrepo.TicketLogRepo.ListByTicket"

	rows, err := handle(r.pool, r.db).Query(ctx,
		`SELECT id, occurred_at, event_type, ticket_id, data
		 FROM ticket_log_entries
		 WHERE ticket_id = $1
		 ORDER BY occurred_at`,
		ticketID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.TicketLogEntry
	for rows.Next() {
		var e domain.TicketLogEntry
		var eventType string
		if err := rows.Scan(&e.ID, &e.OccurredAt, &eventType, &e.TicketID, &e.Data); err != nil {
			return nil, wrapDBErr(op, err)
		}
		e.EventType = domain.TicketLogEventType(eventType)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
