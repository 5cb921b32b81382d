package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy decides what happens to a request when the rate limit store
// cannot be consulted.
type FailPolicy int

const (
	// FailOpen lets the request through when the store is unavailable.
	FailOpen FailPolicy = iota
	// FailClosed refuses the request with 503 when the store is unavailable.
	FailClosed
)

// ErrRateLimitUnavailable signals that no rate limit store is configured.
var ErrRateLimitUnavailable = errors.New("rate limit store unavailable")

// Limiting is off entirely outside production-like environments so dev and
// test workflows are never throttled.
func rateLimitEnabled() bool {
	if cfg == nil {
		return false
	}
	switch cfg.Env {
	case "", "test", "development":
		return false
	}
	return true
}

// CheckRateLimit reports whether one more request for resource/id fits inside
// the fixed window. The counter is a Redis INCR with an EXPIRE set on the
// first hit of each window.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (bool, error) {
	if !rateLimitEnabled() {
		return true, nil
	}
	if rdb == nil {
		return false, ErrRateLimitUnavailable
	}

	key := "rl:" + resource + ":" + id
	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		rdb.Expire(ctx, key, window)
	}
	return count <= int64(limit), nil
}

// RateLimit enforces `limit` requests per `window`, keyed by the
// authenticated user when one is set and by client IP otherwise. The optional
// name groups several routes under one counter; without it each path counts
// separately. Store outages fail open.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, name ...string) fiber.Handler {
	return RateLimitWithPolicy(rdb, limit, window, FailOpen, name...)
}

// RateLimitWithPolicy is RateLimit with an explicit store-outage policy.
func RateLimitWithPolicy(rdb *redis.Client, limit int, window time.Duration, policy FailPolicy, name ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := "ip:" + c.IP()
		if uid, ok := c.Locals("userID").(string); ok && uid != "" {
			id = "user:" + uid
		}

		resource := c.Path()
		if len(name) > 0 {
			resource = name[0]
		}

		allowed, err := CheckRateLimit(c.UserContext(), rdb, resource, id, limit, window)
		switch {
		case err != nil && policy == FailClosed:
			Logger.WarnContext(c.UserContext(), "rate limit store unreachable, refusing request",
				slog.String("resource", resource),
				slog.String("error", err.Error()),
			)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Service momentanément indisponible",
			})
		case err != nil:
			Logger.WarnContext(c.UserContext(), "rate limit store unreachable, letting request through",
				slog.String("resource", resource),
				slog.String("error", err.Error()),
			)
			return c.Next()
		case !allowed:
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Trop de requêtes, réessayez plus tard",
			})
		}
		return c.Next()
	}
}
