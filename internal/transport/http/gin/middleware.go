package httpgin

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kirinyoku/seatkeeper/internal/auth"
	redisrepo "github.com/kirinyoku/seatkeeper/internal/repository/redis"
)

const (
	ctxRequestID = "request_id"
	ctxPrincipal = "principal"
)

func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}

		c.Writer.Header().Set("X-Request-ID", reqID)
		c.Set(ctxRequestID, reqID)

		c.Next()
	}
}

func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			"GET", "POST", "PUT", "DELETE", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Request-ID",
			"Idempotency-Key",
			"If-None-Match",
		},
		ExposeHeaders: []string{
			"X-Request-ID",
			"ETag",
			"Cache-Control",
			"Retry-After",
			"Idempotency-Key",
		},
		MaxAge: 12 * time.Hour,
	})
}

func LoggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		attrs := []any{
			slog.Int("status", c.Writer.Status()),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("ip", c.ClientIP()),
			slog.String("request_id", c.GetString(ctxRequestID)),
			slog.Duration("latency", time.Since(start)),
			slog.Int("bytes_out", c.Writer.Size()),
		}
		if p, ok := principalFrom(c); ok {
			attrs = append(attrs, slog.String("user_id", p.UserID.String()))
		}

		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("err", c.Errors.String()))
			logger.Error("http", slog.Group("http", attrs...))
			return
		}
		logger.Info("http", slog.Group("http", attrs...))
	}
}

// AuthMiddleware requires a bearer token signed with secret. The token's
// subject becomes the initiator of every operation in the request.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
			return
		}

		p, err := auth.Parse(secret, strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
			return
		}

		c.Set(ctxPrincipal, p)
		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p, ok := principalFrom(c); !ok || !p.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "admin role required"})
			return
		}
		c.Next()
	}
}

type RateLimiter interface {
	Allow(ctx context.Context, id string) (redisrepo.Decision, error)
}

// RateLimitMiddleware counts requests per authenticated user, or per client
// IP for anonymous requests. Limiter failures let the request through.
func RateLimitMiddleware(limiter RateLimiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		id := "ip:" + c.ClientIP()
		if p, ok := principalFrom(c); ok {
			id = "user:" + p.UserID.String()
		}

		d, err := limiter.Allow(c.Request.Context(), id)
		if err != nil {
			logger.Warn("rate limiter unavailable", slog.Any("err", err))
			c.Next()
			return
		}

		if !d.Allowed {
			secs := int(math.Ceil(d.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(max(secs, 1)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limited"})
			return
		}

		c.Next()
	}
}

func principalFrom(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(ctxPrincipal)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

// initiator is the authenticated user. Only valid behind AuthMiddleware.
func initiator(c *gin.Context) uuid.UUID {
	p, _ := principalFrom(c)
	return p.UserID
}
