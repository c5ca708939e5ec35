package postgresrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/repository"
)

// DirectoryRepo writes the local copies of parties and users. Both are
// owned by other services and only read by this one.
type DirectoryRepo struct {
	pool *pgxpool.Pool
	db   DB
}

var _ repository.Directory = (*DirectoryRepo)(nil)

func (s *Store) Directory() *DirectoryRepo {
	return &DirectoryRepo{pool: s.pool, db: s.db}
}

func (r *DirectoryRepo) UpsertParties(ctx context.Context, parties ...domain.Party) error {
	const op = "postgresrepo.DirectoryRepo.UpsertParties"

	if len(parties) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, p := range parties {
		batch.Queue(
			`INSERT INTO parties(id, title, archived)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (id) DO UPDATE
			 SET title = EXCLUDED.title, archived = EXCLUDED.archived`,
			p.ID, p.Title, p.Archived,
		)
	}
	if err := handle(r.pool, r.db).SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *DirectoryRepo) UpsertUsers(ctx context.Context, users ...domain.User) error {
	const op = "postgresrepo.DirectoryRepo.UpsertUsers"

	if len(users) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, u := range users {
		batch.Queue(
			`INSERT INTO users(id, screen_name, suspended, deleted)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (id) DO UPDATE
			 SET screen_name = EXCLUDED.screen_name,
			     suspended = EXCLUDED.suspended,
			     deleted = EXCLUDED.deleted`,
			u.ID, u.ScreenName, u.Suspended, u.Deleted,
		)
	}
	if err := handle(r.pool, r.db).SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}
