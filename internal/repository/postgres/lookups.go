package postgresrepo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kirinyoku/seatkeeper/internal/domain"
)

type PartyRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *PartyRepo) Get(ctx context.Context, id string) (*domain.Party, error) {
	const op = "postgresrepo.PartyRepo.Get"

	var p domain.Party
	err := handle(r.pool, r.db).QueryRow(ctx,
		`SELECT id, title, archived
		 FROM parties WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Title, &p.Archived)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &p, nil
}

type UserRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *UserRepo) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const op = "postgresrepo.UserRepo.Get"

	var u domain.User
	err := handle(r.pool, r.db).QueryRow(ctx,
		`SELECT id, screen_name, suspended, deleted
		 FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.ScreenName, &u.Suspended, &u.Deleted)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &u, nil
}

type CategoryRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *CategoryRepo) Insert(ctx context.Context, c domain.TicketCategory) error {
	const op = "postgresrepo.CategoryRepo.Insert"

	_, err := handle(r.pool, r.db).Exec(ctx,
		`INSERT INTO ticket_categories(id, party_id, title)
		 VALUES ($1, $2, $3)`,
		c.ID, c.PartyID, c.Title,
	)

	return wrapDBErr(op, err)
}

func (r *CategoryRepo) Get(ctx context.Context, id uuid.UUID) (*domain.TicketCategory, error) {
	const op = "postgresrepo.CategoryRepo.Get"

	var c domain.TicketCategory
	err := handle(r.pool, r.db).QueryRow(ctx,
		`SELECT id, party_id, title
		 FROM ticket_categories WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.PartyID, &c.Title)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &c, nil
}

func (r *CategoryRepo) ListByParty(ctx context.Context, partyID string) ([]domain.TicketCategory, error) {
	const op = "postgresrepo.CategoryRepo.ListByParty"

	rows, err := handle(r.pool, r.db).Query(ctx,
		`SELECT id, party_id, title
		 FROM ticket_categories
		 WHERE party_id = $1
		 ORDER BY title`,
		partyID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.TicketCategory
	for rows.Next() {
		var c domain.TicketCategory
		if err := rows.Scan(&c.ID, &c.PartyID, &c.Title); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
