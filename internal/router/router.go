// Package router wires handlers and middleware onto the echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/tingitingi/rental-booking/internal/config"
	"github.com/tingitingi/rental-booking/internal/handler"
	"github.com/tingitingi/rental-booking/internal/middleware"
	"github.com/tingitingi/rental-booking/internal/model"
)

// PublicHandlers groups everything mounted under the unauthenticated API.
type PublicHandlers struct {
	Catalog  *handler.CatalogHandler
	Booking  *handler.BookingHandler
	Articles *handler.ArticleHandler
	Contact  *handler.ContactHandler
}

// AdminHandlers groups the back-office surface.
type AdminHandlers struct {
	Auth     *handler.AuthHandler
	Bookings *handler.AdminBookingHandler
	Units    *handler.AdminUnitHandler
	Articles *handler.AdminArticleHandler
}

// RegisterRoutes mounts the operational endpoints.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic mounts the public API.  Catalog and blog reads sit behind
// the redis response cache; the two unauthenticated write endpoints sit
// behind the rate limiter.  The booked-dates feed is deliberately uncached
// so calendars never show stale availability.
func RegisterPublic(e *echo.Echo, h PublicHandlers, cacheCfg config.CacheConfig, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	cache := middleware.ResponseCache(cacheCfg, rdb)
	limit := middleware.RateLimit(rlCfg, rdb)

	api := e.Group("/api")

	api.GET("/houses", h.Catalog.List(model.KindHouse), cache)
	api.GET("/houses/:id", h.Catalog.Get(model.KindHouse), cache)
	api.GET("/houses/:id/booked-dates", h.Booking.BookedDates)
	api.GET("/others", h.Catalog.List(model.KindOther), cache)
	api.GET("/others/:id", h.Catalog.Get(model.KindOther), cache)
	api.GET("/others/:id/booked-dates", h.Booking.BookedDates)

	api.POST("/bookings", h.Booking.CreateBooking, limit)

	api.GET("/articles", h.Articles.List, cache)
	api.GET("/articles/:slug", h.Articles.Get, cache)

	api.POST("/contact", h.Contact.Submit, limit)
}

// RegisterAdmin mounts the back office.  Login stays outside the JWT guard;
// everything else requires a bearer token.
func RegisterAdmin(e *echo.Echo, h AdminHandlers, jwtSecret string) {
	e.POST("/api/admin/auth/login", h.Auth.Login)

	admin := e.Group("/api/admin", middleware.AdminAuth(jwtSecret))

	admin.GET("/bookings", h.Bookings.List)
	admin.GET("/bookings/:id", h.Bookings.Get)
	admin.PUT("/bookings/:id/status", h.Bookings.UpdateStatus)
	admin.PUT("/bookings/:id", h.Bookings.Update)
	admin.DELETE("/bookings/:id", h.Bookings.Delete)

	admin.GET("/houses", h.Units.List(model.KindHouse))
	admin.POST("/houses", h.Units.Create(model.KindHouse))
	admin.PUT("/houses/:id", h.Units.Update(model.KindHouse))
	admin.DELETE("/houses/:id", h.Units.Delete(model.KindHouse))
	admin.GET("/others", h.Units.List(model.KindOther))
	admin.POST("/others", h.Units.Create(model.KindOther))
	admin.PUT("/others/:id", h.Units.Update(model.KindOther))
	admin.DELETE("/others/:id", h.Units.Delete(model.KindOther))

	admin.GET("/articles", h.Articles.List)
	admin.GET("/articles/:slug", h.Articles.Get)
	admin.POST("/articles", h.Articles.Create)
	admin.PUT("/articles/:slug", h.Articles.Update)
	admin.DELETE("/articles/:slug", h.Articles.Delete)
}
