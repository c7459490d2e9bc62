package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/tingitingi/rental-booking/internal/config"
	"github.com/tingitingi/rental-booking/internal/database"
	"github.com/tingitingi/rental-booking/internal/handler"
	"github.com/tingitingi/rental-booking/internal/queue"
	"github.com/tingitingi/rental-booking/internal/repository"
	"github.com/tingitingi/rental-booking/internal/router"
	"github.com/tingitingi/rental-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	logger := newLogger(cfg.Env)
	defer logger.Sync()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()
	if err := database.Migrate(db, cfg.DBName); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}
	logger.Info("database ready", zap.String("host", cfg.DBHost), zap.String("name", cfg.DBName))

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable, response cache and rate limiting disabled")
	}

	notifier := service.NewAMQPNotifier(cfg.AMQPURL, logger)

	bookings := repository.NewBookingRepo(db)
	units := repository.NewUnitRepo(db)
	articles := repository.NewArticleRepo(db)
	admins := repository.NewAdminUserRepo(db)

	bookingSvc := service.NewBookingService(bookings, notifier, logger)

	// The consumer reconnects on its own; a permanent failure only costs
	// notifications, never bookings.
	go func() {
		if err := queue.StartNotificationConsumer(cfg.AMQPURL, logger); err != nil {
			logger.Error("notification consumer stopped", zap.Error(err))
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	router.RegisterRoutes(e)
	router.RegisterPublic(e, router.PublicHandlers{
		Catalog:  handler.NewCatalogHandler(units),
		Booking:  handler.NewBookingHandler(bookingSvc),
		Articles: handler.NewArticleHandler(articles),
		Contact:  handler.NewContactHandler(notifier, logger),
	}, config.LoadCacheConfig(), config.LoadRateLimitConfig(), rdb)
	router.RegisterAdmin(e, router.AdminHandlers{
		Auth:     handler.NewAuthHandler(admins, cfg.JWTSecret, cfg.AccessTTLMin),
		Bookings: handler.NewAdminBookingHandler(bookingSvc),
		Units:    handler.NewAdminUnitHandler(units),
		Articles: handler.NewAdminArticleHandler(articles),
	}, cfg.JWTSecret)

	logger.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	if env == "dev" {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return l
	}
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return l
}
