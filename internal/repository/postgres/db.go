package postgresrepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kirinyoku/seatkeeper/internal/repository"
)

type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type Store struct {
	pool *pgxpool.Pool
	db   DB
}

var _ repository.Store = (*Store)(nil)

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool: pool,
	}
}

// RunTx runs fn in a serializable read-write transaction.
func (s *Store) RunTx(ctx context.Context, fn func(ctx context.Context, tx repository.Repos) error) error {
	return s.RunTxWithOpts(ctx, nil, fn)
}

func (s *Store) RunTxWithOpts(
	ctx context.Context,
	opts *pgx.TxOptions,
	fn func(ctx context.Context, tx repository.Repos) error,
) error {
	const op = "postgresrepo.Store.RunTx"

	txOpts := pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	}

	if opts != nil {
		txOpts.IsoLevel = opts.IsoLevel
		txOpts.AccessMode = opts.AccessMode
		txOpts.DeferrableMode = opts.DeferrableMode
	}

	tx, err := s.pool.BeginTx(ctx, txOpts)
	if err != nil {
		return wrapDBErr(op, err)
	}

	defer tx.Rollback(ctx)

	if err := fn(ctx, &Store{pool: s.pool, db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: commit:%w", op, translateDBErr(err))
	}

	return nil
}

func (s *Store) Parties() repository.PartyRepository {
	return &PartyRepo{pool: s.pool, db: s.db}
}

func (s *Store) Users() repository.UserRepository {
	return &UserRepo{pool: s.pool, db: s.db}
}

func (s *Store) Categories() repository.CategoryRepository {
	return &CategoryRepo{pool: s.pool, db: s.db}
}

func (s *Store) Tickets() repository.TicketRepository {
	return &TicketRepo{pool: s.pool, db: s.db}
}

func (s *Store) Bundles() repository.BundleRepository {
	return &BundleRepo{pool: s.pool, db: s.db}
}

func (s *Store) Seats() repository.SeatRepository {
	return &SeatRepo{pool: s.pool, db: s.db}
}

func (s *Store) SeatGroups() repository.SeatGroupRepository {
	return &SeatGroupRepo{pool: s.pool, db: s.db}
}

func (s *Store) Preconditions() repository.PreconditionRepository {
	return &PreconditionRepo{pool: s.pool, db: s.db}
}

func (s *Store) TicketLog() repository.TicketLogRepository {
	return &TicketLogRepo{pool: s.pool, db: s.db}
}

func (s *Store) CheckIns() repository.CheckInRepository {
	return &CheckInRepo{pool: s.pool, db: s.db}
}

// handle returns the transaction if one is bound, otherwise the pool.
func handle(pool *pgxpool.Pool, db DB) DB {
	if db != nil {
		return db
	}
	return pool
}
