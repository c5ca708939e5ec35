package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/kirinyoku/seatkeeper/internal/broker/amqp"
	"github.com/kirinyoku/seatkeeper/internal/config"
	"github.com/kirinyoku/seatkeeper/internal/events"
	"github.com/kirinyoku/seatkeeper/internal/postgres"
	redisx "github.com/kirinyoku/seatkeeper/internal/redis"
	"github.com/kirinyoku/seatkeeper/internal/repository"
	"github.com/kirinyoku/seatkeeper/internal/repository/memory"
	postgresrepo "github.com/kirinyoku/seatkeeper/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/seatkeeper/internal/repository/redis"
	"github.com/kirinyoku/seatkeeper/internal/service"
	httpgin "github.com/kirinyoku/seatkeeper/internal/transport/http/gin"
)

const (
	idempotencyTTL  = 24 * time.Hour
	shutdownTimeout = 5 * time.Second
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	pubsub     *redisx.EventsPubSub
	closers    []func()
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	store, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	var (
		rdb     *goredis.Client
		cache   *redisrepo.Cache
		opts    = httpgin.Options{JWTSecret: cfg.Auth.JWTSecret}
		publish []events.Publisher
	)

	if cfg.Redis.Enabled {
		rdb, err = redisx.New(ctx, redisx.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })

		cache = redisrepo.New(rdb)
		a.pubsub = redisx.NewEventsPubSub(rdb)
		publish = append(publish, a.pubsub)

		opts.Idempotency = redisrepo.NewIdempotencyStore(rdb, idempotencyTTL)
		opts.Limiter = redisrepo.NewSlidingWindowLimiter(rdb, "occupy", cfg.RateLimit.PerMinute, cfg.RateLimit.Window)
	}

	if cfg.AMQP.URL != "" {
		broker, err := amqp.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize amqp: %w", err)
		}
		a.closers = append(a.closers, func() { _ = broker.Close() })
		publish = append(publish, broker)
	}

	opts.Events = events.NewDispatcher(logger, publish...)

	services := service.NewServices(store, cache, service.Config{Logger: logger})
	router := httpgin.NewRouter(services, opts, logger)

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return a, nil
}

func (a *App) openStore(ctx context.Context) (repository.Store, error) {
	if a.cfg.Store.Driver == config.StoreDriverMemory {
		a.logger.Warn("using in-memory store, nothing survives a restart")
		return memory.NewStore(), nil
	}

	pool, err := OpenPostgres(ctx, a.cfg.Postgres)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, pool.Close)

	return postgresrepo.NewStore(pool), nil
}

// OpenPostgres connects and brings the schema up to date.
func OpenPostgres(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	pool, err := postgres.New(ctx, postgres.Config{DSN: cfg.DSN()})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate postgres: %w", err)
	}

	return pool, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Events published by any instance, this one included.
	if a.pubsub != nil {
		g.Go(func() error {
			err := a.pubsub.Subscribe(gCtx, func(_ context.Context, env redisx.Envelope) {
				a.logger.Info("domain event",
					slog.String("type", env.Type),
					slog.Int64("ts_unix", env.TsUnix),
				)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("event subscription: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	err := g.Wait()
	a.Close()
	return err
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
