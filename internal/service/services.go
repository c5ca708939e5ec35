package service

import (
	"log/slog"

	"github.com/kirinyoku/seatkeeper/internal/repository"
	redisrepo "github.com/kirinyoku/seatkeeper/internal/repository/redis"
	"github.com/kirinyoku/seatkeeper/internal/service/checkin"
	"github.com/kirinyoku/seatkeeper/internal/service/reservation"
	"github.com/kirinyoku/seatkeeper/internal/service/seating"
	"github.com/kirinyoku/seatkeeper/internal/service/ticketing"
	"github.com/kirinyoku/seatkeeper/internal/ticketcode"
)

type Services struct {
	Ticketing   *ticketing.Service
	Seating     *seating.Service
	Reservation *reservation.Service
	CheckIn     *checkin.Service
}

type Config struct {
	Ticketing   ticketing.Config
	Seating     seating.Config
	Reservation reservation.Config
	// Logger is handed to every service whose own config has none.
	Logger *slog.Logger
}

// NewServices wires every service to the same store. cache may be nil.
func NewServices(
	store repository.Store,
	cache *redisrepo.Cache,
	cfg Config,
) *Services {
	if cfg.Ticketing.Logger == nil {
		cfg.Ticketing.Logger = cfg.Logger
	}
	if cfg.Seating.Logger == nil {
		cfg.Seating.Logger = cfg.Logger
	}
	if cfg.Reservation.Logger == nil {
		cfg.Reservation.Logger = cfg.Logger
	}

	return &Services{
		Ticketing:   ticketing.New(store, cache, ticketcode.New(), cfg.Ticketing),
		Seating:     seating.New(store, cache, cfg.Seating),
		Reservation: reservation.New(store, cache, cfg.Reservation),
		CheckIn:     checkin.New(store),
	}
}
