// Package seating manages seats, seat groups and who occupies them.
package seating

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kirinyoku/seatkeeper/internal/repository"
	redisrepo "github.com/kirinyoku/seatkeeper/internal/repository/redis"
	"github.com/kirinyoku/seatkeeper/internal/uow"
)

type Config struct {
	AreaSeatsTTL time.Duration
	// Logger reports failed cache invalidations. Defaults to slog.Default().
	Logger *slog.Logger
}

type Service struct {
	store repository.Store
	cache *redisrepo.Cache
	uow   *uow.UoW
	cfg   Config
	now   func() time.Time
}

// New builds the service. cache may be nil.
func New(store repository.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.AreaSeatsTTL <= 0 {
		cfg.AreaSeatsTTL = 30 * time.Second
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Service{
		store: store,
		cache: cache,
		uow:   uow.NewUoW(store),
		cfg:   cfg,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// invalidateAreas returns an after-commit hook dropping cached seat maps.
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
