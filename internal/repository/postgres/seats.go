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

// The occupant is derived from tickets.occupied_seat_id, which is unique.
const seatSelect = `SELECT s.id, s.area_id, s.coord_x, s.coord_y, s.category_id, s.label, t.id
	FROM seats s
	LEFT JOIN tickets t ON t.occupied_seat_id = s.id`

type SeatRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func scanSeat(row pgx.Row) (domain.Seat, error) {
	var s domain.Seat
	err := row.Scan(&s.ID, &s.AreaID, &s.CoordX, &s.CoordY, &s.CategoryID, &s.Label, &s.OccupiedByTicketID)
	return s, err
}

func collectSeats(op string, rows pgx.Rows, err error) ([]domain.Seat, error) {
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Seat
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *SeatRepo) InsertArea(ctx context.Context, a domain.SeatingArea) error {
	const op = "postgresrepo.SeatRepo.InsertArea"

	_, err := handle(r.pool, r.db).Exec(ctx,
		`INSERT INTO seating_areas(id, party_id, slug, title)
		 VALUES ($1, $2, $3, $4)`,
		a.ID, a.PartyID, a.Slug, a.Title,
	)

	return wrapDBErr(op, err)
}

func (r *SeatRepo) GetArea(ctx context.Context, id uuid.UUID) (*domain.SeatingArea, error) {
	const op = "postgresrepo.SeatRepo.GetArea"

	var a domain.SeatingArea
	err := handle(r.pool, r.db).QueryRow(ctx,
		`SELECT id, party_id, slug, title
		 FROM seating_areas WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.PartyID, &a.Slug, &a.Title)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &a, nil
}

func (r *SeatRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Seat, error) {
	const op = "postgresrepo.SeatRepo.Get"

	s, err := scanSeat(handle(r.pool, r.db).QueryRow(ctx, seatSelect+` WHERE s.id = $1`, id))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &s, nil
}

func (r *SeatRepo) ListByArea(ctx context.Context, areaID uuid.UUID) ([]domain.Seat, error) {
	const op = "postgresrepo.SeatRepo.ListByArea"

	rows, err := handle(r.pool, r.db).Query(ctx,
		seatSelect+` WHERE s.area_id = $1 ORDER BY s.coord_x, s.coord_y`,
		areaID,
	)

	return collectSeats(op, rows, err)
}

func (r *SeatRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Seat, error) {
	const op = "postgresrepo.SeatRepo.ListByIDs"

	rows, err := handle(r.pool, r.db).Query(ctx,
		seatSelect+` WHERE s.id = ANY($1) ORDER BY s.coord_x, s.coord_y`,
		ids,
	)

	return collectSeats(op, rows, err)
}

func (r *SeatRepo) Insert(ctx context.Context, s domain.Seat) error {
	const op = "postgresrepo.SeatRepo.Insert"

	_, err := handle(r.pool, r.db).Exec(ctx,
		`INSERT INTO seats(id, area_id, coord_x, coord_y, category_id, label)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.AreaID, s.CoordX, s.CoordY, s.CategoryID, s.Label,
	)

	return wrapDBErr(op, err)
}

func (r *SeatRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "postgresrepo.SeatRepo.Delete"

	tag, err := handle(r.pool, r.db).Exec(ctx, `DELETE FROM seats WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}
