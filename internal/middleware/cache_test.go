package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tingitingi/rental-booking/internal/config"
)

// chunkedHandler writes the body in separate chunks, the way json encoders
// and templating do, and counts invocations so tests can tell a cache hit
// from a re-render.
func chunkedHandler(calls *int, chunks ...string) echo.HandlerFunc {
	return func(c echo.Context) error {
		*calls++
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		c.Response().WriteHeader(http.StatusOK)
		for _, chunk := range chunks {
			if _, err := c.Response().Write([]byte(chunk)); err != nil {
				return err
			}
		}
		return nil
	}
}

func cacheGet(e *echo.Echo) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/units", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestResponseCache(t *testing.T) {
	cfg := func(limit int) config.CacheConfig {
		return config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "cache", MaxBodyBytes: limit}
	}

	t.Run("replays the body without re-rendering", func(t *testing.T) {
		_, rdb := newTestRedis(t)
		calls := 0
		e := echo.New()
		e.GET("/units", chunkedHandler(&calls, `{"units":[]}`), ResponseCache(cfg(1024), rdb))

		first := cacheGet(e)
		second := cacheGet(e)
		if calls != 1 {
			t.Fatalf("handler called %d times, want 1", calls)
		}
		if second.Header().Get("X-Cache") != "HIT" {
			t.Error("second response missing X-Cache: HIT")
		}
		if first.Body.String() != second.Body.String() {
			t.Errorf("cached body %q differs from original %q", second.Body.String(), first.Body.String())
		}
	})

	t.Run("chunked body exactly at the size limit is stored whole", func(t *testing.T) {
		_, rdb := newTestRedis(t)
		calls := 0
		const part1, part2 = `{"units":[1,2`, `,3]}`
		e := echo.New()
		e.GET("/units", chunkedHandler(&calls, part1, part2),
			ResponseCache(cfg(len(part1)+len(part2)), rdb))

		first := cacheGet(e)
		second := cacheGet(e)
		if calls != 1 {
			t.Fatalf("handler called %d times, want 1", calls)
		}
		if second.Body.String() != first.Body.String() {
			t.Errorf("replayed body %q, want %q", second.Body.String(), first.Body.String())
		}
	})

	t.Run("buffer filling to the limit mid-body is not stored", func(t *testing.T) {
		// the first two chunks land exactly on the limit; a third follows.
		// Storing the buffer at this point would replay a truncated body.
		_, rdb := newTestRedis(t)
		calls := 0
		const part1, part2, part3 = `{"units":[1,2`, `,3]`, `,"total":3}`
		e := echo.New()
		e.GET("/units", chunkedHandler(&calls, part1, part2, part3),
			ResponseCache(cfg(len(part1)+len(part2)), rdb))

		first := cacheGet(e)
		second := cacheGet(e)
		if second.Header().Get("X-Cache") == "HIT" {
			t.Fatal("partially buffered body served from cache")
		}
		if calls != 2 {
			t.Fatalf("handler called %d times, want 2", calls)
		}
		if second.Body.String() != first.Body.String() {
			t.Errorf("second body %q, want full %q", second.Body.String(), first.Body.String())
		}
	})

	t.Run("body past the size limit is never cached", func(t *testing.T) {
		_, rdb := newTestRedis(t)
		calls := 0
		const part1, part2 = `{"units":[1,2`, `,3,4,5,6,7]}`
		e := echo.New()
		e.GET("/units", chunkedHandler(&calls, part1, part2),
			ResponseCache(cfg(len(part1)), rdb))

		first := cacheGet(e)
		second := cacheGet(e)
		if calls != 2 {
			t.Fatalf("handler called %d times, want 2 (oversized body must not be cached)", calls)
		}
		if second.Header().Get("X-Cache") == "HIT" {
			t.Error("oversized body served from cache")
		}
		if second.Body.String() != first.Body.String() {
			t.Errorf("second body %q, want full %q", second.Body.String(), first.Body.String())
		}
	})

	t.Run("disabled config is a pass-through", func(t *testing.T) {
		calls := 0
		e := echo.New()
		e.GET("/units", chunkedHandler(&calls, `{}`), ResponseCache(config.CacheConfig{}, nil))

		cacheGet(e)
		cacheGet(e)
		if calls != 2 {
			t.Errorf("handler called %d times, want 2", calls)
		}
	})
}
