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

type SeatGroupRepo struct {
	pool *pgxpool.Pool
	db   DB
}

// Insert stores a group and its seat assignments.
//
// Returns:
//   - error: repository.ErrConflict if a seat already belongs to a group or
//     the title is taken within the party.
func (r *SeatGroupRepo) Insert(ctx context.Context, g domain.SeatGroup) error {
	const op = "postgresrepo.SeatGroupRepo.Insert"

	batch := &pgx.Batch{}
	batch.Queue(
		`INSERT INTO seat_groups(id, party_id, category_id, seat_quantity, title)
		 VALUES ($1, $2, $3, $4, $5)`,
		g.ID, g.PartyID, g.CategoryID, g.SeatQuantity, g.Title,
	)
	for _, s := range g.Seats {
		batch.Queue(
			`INSERT INTO seat_group_assignments(group_id, seat_id)
			 VALUES ($1, $2)`,
			g.ID, s.ID,
		)
	}
	if err := handle(r.pool, r.db).SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// Get retrieves a group with its seats, including each seat's occupant.
func (r *SeatGroupRepo) Get(ctx context.Context, id uuid.UUID) (*domain.SeatGroup, error) {
	const op = "postgresrepo.SeatGroupRepo.Get"

	db := handle(r.pool, r.db)

	var g domain.SeatGroup
	err := db.QueryRow(ctx,
		`SELECT id, party_id, category_id, seat_quantity, title
		 FROM seat_groups WHERE id = $1`,
		id,
	).Scan(&g.ID, &g.PartyID, &g.CategoryID, &g.SeatQuantity, &g.Title)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	rows, err := db.Query(ctx,
		seatSelect+`
		 JOIN seat_group_assignments a ON a.seat_id = s.id
		 WHERE a.group_id = $1
		 ORDER BY s.coord_x, s.coord_y`,
		id,
	)
	g.Seats, err = collectSeats(op, rows, err)
	if err != nil {
		return nil, err
	}

	return &g, nil
}

func (r *SeatGroupRepo) ListByParty(ctx context.Context, partyID string) ([]domain.SeatGroup, error) {
	const op = "postgresrepo.SeatGroupRepo.ListByParty"

	db := handle(r.pool, r.db)

	rows, err := db.Query(ctx,
		`SELECT id, party_id, category_id, seat_quantity, title
		 FROM seat_groups
		 WHERE party_id = $1
		 ORDER BY title`,
		partyID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	var groups []domain.SeatGroup
	index := map[uuid.UUID]int{}
	for rows.Next() {
		var g domain.SeatGroup
		if err := rows.Scan(&g.ID, &g.PartyID, &g.CategoryID, &g.SeatQuantity, &g.Title); err != nil {
			rows.Close()
			return nil, wrapDBErr(op, err)
		}
		index[g.ID] = len(groups)
		groups = append(groups, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	seatRows, err := db.Query(ctx,
		`SELECT a.group_id, s.id, s.area_id, s.coord_x, s.coord_y, s.category_id, s.label, t.id
		 FROM seat_group_assignments a
		 JOIN seat_groups g ON g.id = a.group_id
		 JOIN seats s ON s.id = a.seat_id
		 LEFT JOIN tickets t ON t.occupied_seat_id = s.id
		 WHERE g.party_id = $1
		 ORDER BY s.coord_x, s.coord_y`,
		partyID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer seatRows.Close()

	for seatRows.Next() {
		var groupID uuid.UUID
		var s domain.Seat
		if err := seatRows.Scan(
			&groupID, &s.ID, &s.AreaID, &s.CoordX, &s.CoordY, &s.CategoryID, &s.Label, &s.OccupiedByTicketID,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}
		if i, ok := index[groupID]; ok {
			groups[i].Seats = append(groups[i].Seats, s)
		}
	}
	if err := seatRows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return groups, nil
}

func (r *SeatGroupRepo) IsSeatGrouped(ctx context.Context, seatID uuid.UUID) (bool, error) {
	const op = "postgresrepo.SeatGroupRepo.IsSeatGrouped"

	var grouped bool
	err := handle(r.pool, r.db).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM seat_group_assignments WHERE seat_id = $1)`,
		seatID,
	).Scan(&grouped)
	if err != nil {
		return false, wrapDBErr(op, err)
	}

	return grouped, nil
}

func (r *SeatGroupRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "postgresrepo.SeatGroupRepo.Delete"

	tag, err := handle(r.pool, r.db).Exec(ctx, `DELETE FROM seat_groups WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// InsertOccupancy links a group to a bundle.
//
// Returns:
//   - error: repository.ErrConflict if the group or the bundle is already
//     part of an occupancy.
func (r *SeatGroupRepo) InsertOccupancy(ctx context.Context, o domain.SeatGroupOccupancy) error {
	const op = "postgresrepo.SeatGroupRepo.InsertOccupancy"

	_, err := handle(r.pool, r.db).Exec(ctx,
		`INSERT INTO seat_group_occupancies(id, seat_group_id, ticket_bundle_id)
		 VALUES ($1, $2, $3)`,
		o.ID, o.SeatGroupID, o.TicketBundleID,
	)

	return wrapDBErr(op, err)
}

func (r *SeatGroupRepo) OccupancyByGroup(ctx context.Context, groupID uuid.UUID) (*domain.SeatGroupOccupancy, error) {
	const op = "postgresrepo.SeatGroupRepo.OccupancyByGroup"

	return r.occupancy(ctx, op, `seat_group_id`, groupID)
}

func (r *SeatGroupRepo) OccupancyByBundle(ctx context.Context, bundleID uuid.UUID) (*domain.SeatGroupOccupancy, error) {
	const op = "postgresrepo.SeatGroupRepo.OccupancyByBundle"

	return r.occupancy(ctx, op, `ticket_bundle_id`, bundleID)
}

func (r *SeatGroupRepo) occupancy(ctx context.Context, op, column string, id uuid.UUID) (*domain.SeatGroupOccupancy, error) {
	var o domain.SeatGroupOccupancy
	err := handle(r.pool, r.db).QueryRow(ctx,
		`SELECT id, seat_group_id, ticket_bundle_id
		 FROM seat_group_occupancies WHERE `+column+` = $1`,
		id,
	).Scan(&o.ID, &o.SeatGroupID, &o.TicketBundleID)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &o, nil
}

func (r *SeatGroupRepo) UpdateOccupancy(ctx context.Context, o domain.SeatGroupOccupancy) error {
	const op = "postgresrepo.SeatGroupRepo.UpdateOccupancy"

	tag, err := handle(r.pool, r.db).Exec(ctx,
		`UPDATE seat_group_occupancies
		 SET seat_group_id = $2, ticket_bundle_id = $3
		 WHERE id = $1`,
		o.ID, o.SeatGroupID, o.TicketBundleID,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *SeatGroupRepo) DeleteOccupancy(ctx context.Context, id uuid.UUID) error {
	const op = "postgresrepo.SeatGroupRepo.DeleteOccupancy"

	tag, err := handle(r.pool, r.db).Exec(ctx, `DELETE FROM seat_group_occupancies WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}
