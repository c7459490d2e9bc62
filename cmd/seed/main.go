// Command seed provisions the back-office admin account from ADMIN_EMAIL
// and ADMIN_PASSWORD.  Accounts are only ever created here; the API has no
// registration endpoint.  Running against an existing account is a no-op.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tingitingi/rental-booking/internal/config"
	"github.com/tingitingi/rental-booking/internal/database"
	"github.com/tingitingi/rental-booking/internal/repository"
	"github.com/tingitingi/rental-booking/internal/utils"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()
	if err := database.Migrate(db, cfg.DBName); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admins := repository.NewAdminUserRepo(db)
	if _, err := admins.GetByEmail(ctx, email); err == nil {
		logger.Info("admin account already exists", zap.String("email", email))
		return
	} else if !errors.Is(err, repository.ErrAdminUserNotFound) {
		logger.Fatal("admin lookup failed", zap.Error(err))
	}

	hash, err := utils.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		logger.Fatal("password hashing failed", zap.Error(err))
	}
	if err := admins.Create(ctx, email, hash); err != nil {
		logger.Fatal("admin account creation failed", zap.Error(err))
	}
	logger.Info("admin account created", zap.String("email", email))
}
