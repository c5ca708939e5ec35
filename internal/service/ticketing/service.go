// Package ticketing creates, revokes and delegates tickets.
package ticketing

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kirinyoku/seatkeeper/internal/repository"
	redisrepo "github.com/kirinyoku/seatkeeper/internal/repository/redis"
	"github.com/kirinyoku/seatkeeper/internal/ticketcode"
	"github.com/kirinyoku/seatkeeper/internal/uow"
)

type Config struct {
	// CodeAttempts bounds how often ticket creation is retried when a
	// generated code is already taken.
	CodeAttempts int
	// Logger reports failed cache invalidations. Defaults to slog.Default().
	Logger *slog.Logger
}

type Service struct {
	store repository.Store
	cache *redisrepo.Cache
	codes *ticketcode.Generator
	uow   *uow.UoW
	cfg   Config
	now   func() time.Time
}

// New builds the service. cache may be nil; codes defaults to a generator
// backed by crypto/rand.
func New(store repository.Store, cache *redisrepo.Cache, codes *ticketcode.Generator, cfg Config) *Service {
	if cfg.CodeAttempts <= 0 {
		cfg.CodeAttempts = 5
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if codes == nil {
		codes = ticketcode.New()
	}

	return &Service{
		store: store,
		cache: cache,
		codes: codes,
		uow:   uow.NewUoW(store),
		cfg:   cfg,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func mapNotFound(err, sentinel error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return sentinel
	}
	return err
}

func (s *Service) invalidateAreas(areaIDs ...uuid.UUID) uow.AfterCommit {
	return func(ctx context.Context) {
		if err := s.cache.InvalidateAreas(ctx, areaIDs...); err != nil {
			s.cfg.Logger.Warn("seat map cache invalidation failed",
				slog.Any("area_ids", areaIDs),
				slog.Any("error", err),
			)
		}
	}
}
