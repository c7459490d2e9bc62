package middleware

import (
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/tingitingi/rental-booking/internal/config"
)

// cachedResponse is the redis payload: enough to replay a JSON response
// byte-for-byte.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// bodyCapture duplicates the response body into a buffer while forwarding
// it to the client, so a successful response can be stored after the fact.
type bodyCapture struct {
	http.ResponseWriter
	status  int
	buf     bytes.Buffer
	limit   int
	written int
}

func (w *bodyCapture) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.written += len(b)
	if w.written <= w.limit {
		w.buf.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// complete reports whether the buffer holds the entire body.  Once any chunk
// pushes the total past the limit, buffering stops and the capture must not
// be stored: replaying a truncated body would corrupt every later hit.
func (w *bodyCapture) complete() bool {
	return w.written == w.buf.Len()
}

// ResponseCache returns an Echo middleware caching successful GET responses
// in redis.  It is applied to the public catalog and blog routes, whose
// content changes only on admin edits.  With caching disabled or no redis
// client available it is a pass-through.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			key := cacheKey(cfg.Prefix, c)
			ctx := c.Request().Context()

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var cached cachedResponse
				if json.Unmarshal(raw, &cached) == nil {
					c.Response().Header().Set(echo.HeaderContentType, cached.ContentType)
					c.Response().Header().Set("X-Cache", "HIT")
					return c.Blob(cached.Status, cached.ContentType, cached.Body)
				}
			}

			capture := &bodyCapture{
				ResponseWriter: c.Response().Writer,
				status:         http.StatusOK,
				limit:          cfg.MaxBodyBytes,
			}
			c.Response().Writer = capture
			if err := next(c); err != nil {
				return err
			}

			// Only complete, successful bodies are worth replaying.
			if capture.status == http.StatusOK && capture.complete() {
				payload, err := json.Marshal(cachedResponse{
					Status:      capture.status,
					ContentType: c.Response().Header().Get(echo.HeaderContentType),
					Body:        capture.buf.Bytes(),
				})
				if err == nil {
					rdb.Set(ctx, key, payload, ttl)
				}
			}
			return nil
		}
	}
}

func cacheKey(prefix string, c echo.Context) string {
	sum := sha1.Sum([]byte(c.Path() + "|" + c.Request().URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum)
}
