package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/innovatefest/hackathon-api/internal/errors"
	"github.com/innovatefest/hackathon-api/internal/logger"
)

// RateLimiter decides whether a client may make another request in the
// current window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// MemoryRateLimiter is a fixed-window limiter for a single instance
type MemoryRateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	clients map[string]*window
}

type window struct {
	start time.Time
	count int
}

// NewMemoryRateLimiter allows limit requests per window per key
func NewMemoryRateLimiter(limit int, per time.Duration) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		limit:   limit,
		window:  per,
		now:     time.Now,
		clients: make(map[string]*window),
	}
}

// Allow implements RateLimiter
func (l *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.clients[key]
	if !ok || now.Sub(w.start) >= l.window {
		l.sweep(now)
		l.clients[key] = &window{start: now, count: 1}
		return true, 0, nil
	}

	if w.count >= l.limit {
		return false, w.start.Add(l.window).Sub(now), nil
	}
	w.count++
	return true, 0, nil
}

// sweep drops expired windows. Callers hold mu.
func (l *MemoryRateLimiter) sweep(now time.Time) {
	for key, w := range l.clients {
		if now.Sub(w.start) >= l.window {
			delete(l.clients, key)
		}
	}
}

// RedisRateLimiter is a fixed-window limiter shared by all instances
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewRedisRateLimiter allows limit requests per window per key
func NewRedisRateLimiter(client *redis.Client, limit int, per time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, limit: limit, window: per, prefix: "ratelimit:"}
}

// Allow implements RateLimiter
func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	slot := time.Now().UnixNano() / int64(l.window)
	redisKey := fmt.Sprintf("%s%s:%d", l.prefix, key, slot)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to update rate limit: %w", err)
	}

	if incr.Val() > int64(l.limit) {
		windowEnd := time.Unix(0, (slot+1)*int64(l.window))
		return false, time.Until(windowEnd), nil
	}
	return true, 0, nil
}

// RateLimitingMiddleware rejects clients that exceed the limiter. If the
// limiter itself fails the request is let through.
func RateLimitingMiddleware(limiter RateLimiter, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Error("rate limiter unavailable", err, "client_ip", c.ClientIP())
			c.Next()
			return
		}

		if !allowed {
			seconds := int(retryAfter.Round(time.Second) / time.Second)
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"code":        errors.ErrCodeRateLimited,
				"retry_after": strconv.Itoa(seconds),
			})
			return
		}

		c.Next()
	}
}
