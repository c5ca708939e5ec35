package postgresrepo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/repository"
)

type BundleRepo struct {
	pool *pgxpool.Pool
	db   DB
}

// Get retrieves a bundle together with the IDs of its member tickets.
func (r *BundleRepo) Get(ctx context.Context, id uuid.UUID) (*domain.TicketBundle, error) {
	const op = "postgresrepo.BundleRepo.Get"

	var b domain.TicketBundle
	err := handle(r.pool, r.db).QueryRow(ctx,
		`SELECT b.id, b.created_at, b.party_id, b.category_id, b.ticket_quantity,
		        b.owned_by_id, b.label, b.revoked,
		        ARRAY(SELECT t.id FROM tickets t WHERE t.bundle_id = b.id ORDER BY t.created_at, t.id)
		 FROM ticket_bundles b
		 WHERE b.id = $1`,
		id,
	).Scan(
		&b.ID, &b.CreatedAt, &b.PartyID, &b.CategoryID, &b.TicketQuantity,
		&b.OwnedByID, &b.Label, &b.Revoked, &b.TicketIDs,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &b, nil
}

// Insert stores the bundle row. Member tickets are inserted separately and
// reference the bundle.
func (r *BundleRepo) Insert(ctx context.Context, b domain.TicketBundle) error {
	const op = "postgresrepo.BundleRepo.Insert"

	_, err := handle(r.pool, r.db).Exec(ctx,
		`INSERT INTO ticket_bundles(id, created_at, party_id, category_id,
		                            ticket_quantity, owned_by_id, label, revoked)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID, b.CreatedAt, b.PartyID, b.CategoryID,
		b.TicketQuantity, b.OwnedByID, b.Label, b.Revoked,
	)

	return wrapDBErr(op, err)
}

func (r *BundleRepo) SetRevoked(ctx context.Context, id uuid.UUID) error {
	const op = "postgresrepo.BundleRepo.SetRevoked"

	tag, err := handle(r.pool, r.db).Exec(ctx,
		`UPDATE ticket_bundles SET revoked = TRUE WHERE id = $1`,
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
