// Package ratelimit throttles brute-forceable auth endpoints with a
// Redis-backed fixed-window counter.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Limiter counts requests per key within a fixed window.
// A nil *Limiter (or a Limiter without a Redis client) allows everything,
// mirroring the "run without Redis" degraded mode of the server.
type Limiter struct {
	rdb       *redis.Client
	limit     int
	window    time.Duration
	namespace string
}

// NewLimiter creates a Limiter. If limit is 0 it defaults to 10, if window
// is 0 it defaults to one minute.
func NewLimiter(rdb *redis.Client, limit int, window time.Duration, namespace string) *Limiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	if namespace == "" {
		namespace = "ratelimit"
	}
	return &Limiter{rdb: rdb, limit: limit, window: window, namespace: namespace}
}

// Allow reports whether the caller identified by key may proceed.
// Redis failures fail open: throttling is protection, not correctness.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil || l.rdb == nil {
		return true, nil
	}

	rkey := fmt.Sprintf("%s:%s", l.namespace, key)

	count, err := l.rdb.Incr(ctx, rkey).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		// First hit in this window starts the clock.
		if err := l.rdb.Expire(ctx, rkey, l.window).Err(); err != nil {
			return true, err
		}
	}
	return count <= int64(l.limit), nil
}

// Middleware はレートリミットを適用するginミドルウェアを返します。
// クライアントIPとパスの組み合わせをキーとし、上限超過時は429を返します。
func Middleware(l *Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.FullPath()

		ok, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			// ベストエフォート: Redis障害時は制限なしで通す
			slog.Warn("rate limiter unavailable; allowing request", "error", err)
		}
		if !ok {
			slog.Warn("rate limit exceeded", "remote_addr", c.ClientIP(), "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
