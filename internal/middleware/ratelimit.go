package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/tingitingi/rental-booking/internal/config"
)

// incrWithWindow bumps the window counter and attaches the TTL in one redis
// call, so a crash can never leave a counter behind without an expiry.
var incrWithWindow = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return count`)

// RateLimit returns an Echo middleware enforcing a fixed-window request
// limit per client IP, backed by redis so multiple instances share one
// budget.  It guards the public submission endpoints, which are
// unauthenticated and trigger outbound notifications.  On redis errors the
// request is allowed through: losing throttling beats dropping bookings.
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
			key := fmt.Sprintf("%s:%s:%s", cfg.Prefix, c.Path(), ip)
			ctx := c.Request().Context()

			count, err := incrWithWindow.Run(ctx, rdb, []string{key}, int(cfg.Window.Seconds())).Int64()
			if err != nil {
				return next(c)
			}

			remaining := int64(cfg.Limit) - count
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(cfg.Limit) {
				ttl, err := rdb.TTL(ctx, key).Result()
				if err == nil && ttl > 0 {
					c.Response().Header().Set("Retry-After", strconv.Itoa(int(ttl.Seconds())))
				}
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error": "too many requests, please try again later",
				})
			}
			return next(c)
		}
	}
}
