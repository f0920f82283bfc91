// Package ratelimiter throttles the public /validate surface per client IP.
// Buckets live in process memory; redis shadows the burst state so a restarted
// instance resumes from the last known allowance instead of a cold bucket.
package ratelimiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/danakita/borrower-onboarding/pkg/common"
)

const redisKeyPrefix = "ratelimit:"

type RateLimiter struct {
	client   *redis.Client
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
	ttl      time.Duration
}

func NewRateLimiter(client *redis.Client, rps float64, burst int, ttl time.Duration) *RateLimiter {
	if client == nil {
		zap.L().Error("Redis client passed to NewRateLimiter is nil")
		panic("Redis client passed to NewRateLimiter is nil")
	}

	if ttl <= 0 {
		ttl = 5 * time.Minute
		zap.L().Warn("Invalid TTL provided to NewRateLimiter, defaulting", zap.Duration("default_ttl", ttl))
	}
	return &RateLimiter{
		client:   client,
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    burst,
		ttl:      ttl,
	}
}

// GetLimiter returns the bucket for one client, creating it from the redis
// shadow when this instance has not seen the client yet. Idle buckets expire
// from memory after the TTL.
func (rl *RateLimiter) GetLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	limiter, exists := rl.limiters[key]
	if !exists {
		initialBurst := rl.burst
		ctx := context.Background()

		val, err := rl.client.Get(ctx, redisKeyPrefix+key).Int()
		if err == nil && val > 0 && val <= rl.burst {
			initialBurst = val
		} else if err != nil && err != redis.Nil {
			zap.L().Error("Error reading rate limit state from redis", zap.String("key", key), zap.Error(err))
		}

		limiter = rate.NewLimiter(rl.limit, initialBurst)
		rl.limiters[key] = limiter

		time.AfterFunc(rl.ttl, func() {
			rl.mu.Lock()
			defer rl.mu.Unlock()
			delete(rl.limiters, key)
		})
	}
	rl.mu.Unlock()

	go func(lim *rate.Limiter) {
		ctx := context.Background()
		if err := rl.client.Set(ctx, redisKeyPrefix+key, lim.Burst(), rl.ttl).Err(); err != nil {
			zap.L().Error("Error writing rate limit state to redis", zap.String("key", key), zap.Error(err))
		}
	}(limiter)

	return limiter
}

// RateLimitMiddleware rejects over-limit borrower submissions with the same
// meta envelope the rest of the surface answers with.
func (rl *RateLimiter) RateLimitMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.IP()
		if key == "" {
			// An unidentifiable client shares no bucket with anyone, so
			// letting it through would bypass the limit entirely.
			zap.L().Warn("Rate limiter cannot determine client IP address")
			return common.ErrorResponse(c, fiber.StatusForbidden, "Cannot identify client")
		}

		if !rl.GetLimiter(key).Allow() {
			zap.L().Warn("Rate limit exceeded", zap.String("ip", key))
			return common.ErrorResponse(c, fiber.StatusTooManyRequests, "Too many requests, please try again later")
		}

		return c.Next()
	}
}
