package uow

import (
	"context"
	"errors"
	"fmt"

	"github.com/kirinyoku/seatkeeper/internal/repository"
)

// DefaultAttempts is how often Do runs a transaction that keeps failing with
// a serialization error before giving up.
const DefaultAttempts = 3

// AfterCommit is a function that runs after a successful transaction commit.
type AfterCommit func(ctx context.Context)

// UoW represents a unit of work.
type UoW struct {
	store repository.Store
}

func NewUoW(store repository.Store) *UoW {
	return &UoW{store: store}
}

// IsRetryable reports whether err is a serialization failure the database
// asks us to retry.
func IsRetryable(err error) bool {
	return errors.Is(err, repository.ErrRetryable)
}

// Do runs fn inside the transaction, retrying serialization failures. After
// a successful commit, it executes all after-commit hooks.
func (u *UoW) Do(
	ctx context.Context,
	fn func(ctx context.Context, tx repository.Repos, after func(AfterCommit)) error,
) error {
	return u.DoWithRetry(ctx, DefaultAttempts, IsRetryable, fn)
}

// DoWithRetry runs fn inside a transaction up to attempts times, starting a
// fresh transaction whenever the previous one failed with an error retryIf
// accepts. Hooks registered by a failed attempt are discarded.
//
// Parameters:
//   - ctx: request-scoped context; cancellation stops further attempts.
//   - attempts: upper bound on transaction runs, at least one.
//   - retryIf: decides whether an error is worth another attempt.
//   - fn: the transaction body.
//
// Returns:
//   - error: the last attempt's error, or nil after a successful commit.
func (u *UoW) DoWithRetry(
	ctx context.Context,
	attempts int,
	retryIf func(error) bool,
	fn func(ctx context.Context, tx repository.Repos, after func(AfterCommit)) error,
) error {
	const op = "uow.UoW.DoWithRetry"

	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		var hooks []AfterCommit

		err = u.store.RunTx(ctx, func(ctx context.Context, tx repository.Repos) error {
			return fn(ctx, tx, func(h AfterCommit) {
				hooks = append(hooks, h)
			})
		})
		if err == nil {
			for _, h := range hooks {
				h(ctx)
			}
			return nil
		}

		if !retryIf(err) {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s:%w", op, ctxErr)
		}
	}

	return err
}
