package httpgin

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	redisx "github.com/kirinyoku/seatkeeper/internal/redis"
)

const idempotencyLockTTL = time.Minute

type IdempotencyStore interface {
	AcquireLock(ctx context.Context, key string, lockTTL time.Duration) (bool, error)
	SaveResult(ctx context.Context, key string, jsonPayload string) error
	GetResult(ctx context.Context, key string) (string, bool, error)
	Release(ctx context.Context, key string) error
}

// createIdempotent answers 201 with create's result. When the request carries
// an Idempotency-Key, a repeated request by the same user within the store's
// retention gets the stored response instead of creating again.
func createIdempotent(
	c *gin.Context,
	store IdempotencyStore,
	scope string,
	create func(ctx context.Context) (any, error),
) {
	ctx := c.Request.Context()

	idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	if store == nil || idemKey == "" {
		v, err := create(ctx)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, v)
		return
	}

	storageKey := redisx.KeyIdempotency(scope+":"+initiator(c).String(), idemKey)

	replay := func() bool {
		payload, ok, _ := store.GetResult(ctx, storageKey)
		if !ok {
			return false
		}
		c.Header("Idempotency-Key", idemKey)
		c.Data(http.StatusCreated, jsonContentType, []byte(payload))
		return true
	}

	if replay() {
		return
	}

	locked, err := store.AcquireLock(ctx, storageKey, idempotencyLockTTL)
	if err != nil {
		respondErr(c, err)
		return
	}
	if !locked {
		if replay() {
			return
		}
		c.Header("Retry-After", "1")
		c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
		return
	}

	v, err := create(ctx)
	if err == nil {
		var b []byte
		if b, err = json.Marshal(v); err == nil {
			_ = store.SaveResult(ctx, storageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
			c.Data(http.StatusCreated, jsonContentType, b)
			return
		}
	}

	_ = store.Release(ctx, storageKey)
	respondErr(c, err)
}
