package middleware

import (
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/mhartwig22/recipe-book/internal/config"
)

// RateLimit returns a fixed-window limiter backed by Redis, keyed by client
// IP and route. It guards the credential endpoints against brute forcing.
// When rate limiting is disabled or no Redis client is available the
// middleware is a pass-through; a Redis failure at request time also lets
// the request proceed so that an unavailable Redis never takes the API down.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            ip := c.RealIP()
            if ip == "" {
                ip = "unknown"
            }
            key := cfg.Prefix + ":" + ip + ":" + c.Request().Method + ":" + c.Path()
            ctx := c.Request().Context()

            n, err := rdb.Incr(ctx, key).Result()
            if err != nil {
                c.Logger().Warnf("ratelimit: redis error for key=%s: %v", key, err)
                return next(c)
            }
            if n == 1 {
                // First hit of the window owns the expiry.
                _ = rdb.Expire(ctx, key, cfg.Window).Err()
            }

            remaining := int64(cfg.Limit) - n
            if remaining < 0 {
                remaining = 0
            }
            c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
            c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

            if n > int64(cfg.Limit) {
                ttl, err := rdb.TTL(ctx, key).Result()
                if err == nil && ttl > 0 {
                    c.Response().Header().Set("Retry-After", strconv.Itoa(int(ttl.Seconds())))
                }
                return c.JSON(http.StatusTooManyRequests, echo.Map{"message": "too many requests"})
            }
            return next(c)
        }
    }
}
