package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	AMQP      AMQPConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type StoreConfig struct {
	// Driver is StoreDriverPostgres or StoreDriverMemory. The memory store
	// keeps nothing across restarts.
	Driver string
}

type PostgresConfig struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     int
	SSLMode  string
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// RedisConfig backs caching, rate limiting, idempotency keys and the
// event channel. All of them are off when Enabled is false.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// AMQPConfig is optional; an empty URL disables the broker publisher.
type AMQPConfig struct {
	URL      string
	Exchange string
}

type AuthConfig struct {
	JWTSecret []byte
}

type RateLimitConfig struct {
	PerMinute int
	Window    time.Duration
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	var (
		cfg Config
		err error
	)

	cfg.Server.Host = getenv("SERVER_HOST", "localhost")
	if cfg.Server.Port, err = atoiEnv("SERVER_PORT", 8080); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	cfg.Store.Driver = getenv("STORE_DRIVER", StoreDriverPostgres)
	switch cfg.Store.Driver {
	case StoreDriverPostgres:
		if cfg.Postgres, err = postgresFromEnv(); err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
	case StoreDriverMemory:
	default:
		return nil, fmt.Errorf("%s: invalid STORE_DRIVER %q", op, cfg.Store.Driver)
	}

	if cfg.Redis.Enabled, err = strconv.ParseBool(getenv("REDIS_ENABLED", "true")); err != nil {
		return nil, fmt.Errorf("%s: invalid REDIS_ENABLED: %w", op, err)
	}
	cfg.Redis.Addr = getenv("REDIS_ADDR", "localhost:6380")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.DB, err = atoiEnv("REDIS_DB", 0); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	cfg.AMQP.URL = os.Getenv("AMQP_URL")
	cfg.AMQP.Exchange = getenv("AMQP_EXCHANGE", "seatkeeper.events")

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("%s: missing JWT_SECRET", op)
	}
	cfg.Auth.JWTSecret = []byte(secret)

	if cfg.RateLimit.PerMinute, err = atoiEnv("RATE_LIMIT_PER_MINUTE", 30); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}
	if cfg.RateLimit.PerMinute < 1 {
		return nil, fmt.Errorf("%s: RATE_LIMIT_PER_MINUTE must be positive", op)
	}
	cfg.RateLimit.Window = time.Minute

	return &cfg, nil
}

func postgresFromEnv() (PostgresConfig, error) {
	port, err := atoiEnv("POSTGRES_PORT", 5432)
	if err != nil {
		return PostgresConfig{}, err
	}

	pg := PostgresConfig{
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Name:     os.Getenv("POSTGRES_DB"),
		Host:     getenv("POSTGRES_HOST", "localhost"),
		Port:     port,
		SSLMode:  getenv("POSTGRES_SSLMODE", "disable"),
	}

	switch {
	case pg.User == "":
		return PostgresConfig{}, fmt.Errorf("missing POSTGRES_USER")
	case pg.Password == "":
		return PostgresConfig{}, fmt.Errorf("missing POSTGRES_PASSWORD")
	case pg.Name == "":
		return PostgresConfig{}, fmt.Errorf("missing POSTGRES_DB")
	}

	return pg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiEnv(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

// LoadPostgres reads only the POSTGRES_* variables, for tools that need
// nothing else.
func LoadPostgres() (PostgresConfig, error) {
	const op = "config.LoadPostgres"

	_ = godotenv.Load()

	pg, err := postgresFromEnv()
	if err != nil {
		return PostgresConfig{}, fmt.Errorf("%s:%w", op, err)
	}
	return pg, nil
}
