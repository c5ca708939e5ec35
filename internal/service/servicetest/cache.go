package servicetest

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	redisrepo "github.com/kirinyoku/seatkeeper/internal/repository/redis"
)

// UnreachableCache returns a cache whose every call fails, as if Redis were
// down.
func UnreachableCache(t testing.TB) *redisrepo.Cache {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	return redisrepo.New(client)
}

// BufferLogger returns a logger writing text records into the returned buffer.
func BufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}
