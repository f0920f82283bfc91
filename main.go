package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/danakita/borrower-onboarding/config"
	mysqldb "github.com/danakita/borrower-onboarding/infra/mysql"
	redisdb "github.com/danakita/borrower-onboarding/infra/redis"
	"github.com/danakita/borrower-onboarding/internal/model"
	"github.com/danakita/borrower-onboarding/pkg/cloudinary"
	"github.com/danakita/borrower-onboarding/pkg/common"
	"github.com/danakita/borrower-onboarding/pkg/password"
	ratelimiter "github.com/danakita/borrower-onboarding/pkg/rate-limiter"
	"github.com/danakita/borrower-onboarding/pkg/telemetry"
	"github.com/danakita/borrower-onboarding/presenter"
	"github.com/danakita/borrower-onboarding/router"
)

func main() {
	slog.Info("Starting application setup...")

	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		slog.Error("No .env file found, using system environment variables", "error", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	tel, err := telemetry.New(ctx, cfg)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize monitoring: %v", err))
	}

	newCore, err := mysqldb.InitializeNewCore()
	if err != nil {
		slog.Error("Failed to initialize new-core database", "error", err)
		os.Exit(1)
	}

	legacyDB, err := mysqldb.InitializeLegacy()
	if err != nil {
		slog.Error("Failed to initialize legacy database", "error", err)
		os.Exit(1)
	}

	defer func() {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.SHUTDOWN_TIMEOUT)
		defer cancelShutdown()

		zap.L().Info("Closing MySQL connections...")
		if err := mysqldb.Close(newCore, shutdownCtx); err != nil {
			zap.L().Error("Error disconnecting from new-core MySQL", zap.Error(err))
		}
		if err := mysqldb.Close(legacyDB, shutdownCtx); err != nil {
			zap.L().Error("Error disconnecting from legacy MySQL", zap.Error(err))
		}

		zap.L().Info("Shutting down monitoring...")
		if err := tel.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("Error during monitoring shutdown", zap.Error(err))
		} else {
			zap.L().Info("Monitoring shutdown complete.")
		}
	}()

	if err := model.AutoMigrate(newCore); err != nil {
		slog.Error("Failed to migrate new-core database", "error", err)
		os.Exit(1)
	}
	if err := model.LegacyAutoMigrate(legacyDB); err != nil {
		slog.Error("Failed to migrate legacy database", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migration completed!")

	SeedGeography(newCore)
	SeedBackofficeUser(newCore)

	if err := mysqldb.Ping(newCore, ctx); err != nil {
		slog.Error("New-core database ping failed", "error", err)
		os.Exit(1)
	}
	if err := mysqldb.Ping(legacyDB, ctx); err != nil {
		slog.Error("Legacy database ping failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connections successful!")

	rdb, err := redisdb.NewRedis(cfg)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}

	cld, err := cloudinary.InitCloudinary(cfg)
	if err != nil {
		slog.Error("Failed to initialize Cloudinary service:", "error", err)
		os.Exit(1)
	}

	limiter := ratelimiter.NewRateLimiter(rdb, 20, 40, time.Minute)

	presenter := presenter.NewPresenter(newCore, legacyDB, rdb, cld, cfg, tel)
	router := router.NewRouter(presenter, newCore, legacyDB, tel, cfg, limiter)

	addr := ":" + cfg.SERVER_PORT

	listenErr := make(chan error, 1)

	go func() {
		zap.L().Info("Server starting", zap.String("address", addr))
		if err := router.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		} else {
			listenErr <- nil
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		zap.L().Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-listenErr:
		if err != nil {
			zap.L().Error("Server listen error", zap.Error(err))
			os.Exit(1)
		}
	}

	zap.L().Info("Starting graceful shutdown...")
	if err := router.ShutdownWithTimeout(cfg.SHUTDOWN_TIMEOUT); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			zap.L().Warn("Server shutdown timed out", zap.Duration("timeout", cfg.SHUTDOWN_TIMEOUT))
		} else {
			zap.L().Error("Server shutdown error", zap.Error(err))
		}
	} else {
		zap.L().Info("Server gracefully stopped.")
	}

	zap.L().Info("Application shutdown complete.")
}

const BackofficeUserID uint64 = 1

// SeedBackofficeUser creates the initial backoffice account on an empty
// database.
func SeedBackofficeUser(db *gorm.DB) {
	slog.Info("Checking for backoffice user...")

	var user model.Customer
	err := db.First(&user, BackofficeUserID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Info("Backoffice user not found, creating one...")

		hash, err := password.HashPassword(common.GetEnv("BACKOFFICE_PASSWORD", "backoffice-change-me"))
		if err != nil {
			slog.Error("Failed to hash backoffice password", "error", err)
			os.Exit(1)
		}

		admin := model.Customer{
			ID:                 BackofficeUserID,
			Username:           "backoffice",
			Email:              common.GetEnv("BACKOFFICE_EMAIL", "backoffice@danakita.id"),
			EmailVerified:      true,
			Password:           hash,
			Role:               "backoffice",
			UserType:           model.UserIndividual,
			RegistrationStatus: model.StatusActive,
		}

		if err := db.Create(&admin).Error; err != nil {
			slog.Error("Failed to seed backoffice user", "error", err)
			os.Exit(1)
		}
		slog.Info("Backoffice user created successfully.")
	} else if err != nil {
		slog.Error("Error checking for backoffice user", "error", err)
		os.Exit(1)
	} else {
		slog.Info("Backoffice user already exists.")
	}
}

// SeedGeography loads the province and city reference rows the address
// validation checks against.
func SeedGeography(db *gorm.DB) {
	slog.Info("Seeding geography reference data...")

	provinces := []model.Province{
		{ID: 31, Name: "DKI Jakarta"},
		{ID: 32, Name: "Jawa Barat"},
		{ID: 33, Name: "Jawa Tengah"},
		{ID: 34, Name: "DI Yogyakarta"},
		{ID: 35, Name: "Jawa Timur"},
		{ID: 36, Name: "Banten"},
	}

	cities := []model.City{
		{ID: 3171, ProvinceID: 31, Name: "Jakarta Selatan"},
		{ID: 3172, ProvinceID: 31, Name: "Jakarta Timur"},
		{ID: 3173, ProvinceID: 31, Name: "Jakarta Pusat"},
		{ID: 3273, ProvinceID: 32, Name: "Bandung"},
		{ID: 3275, ProvinceID: 32, Name: "Bekasi"},
		{ID: 3374, ProvinceID: 33, Name: "Semarang"},
		{ID: 3471, ProvinceID: 34, Name: "Yogyakarta"},
		{ID: 3578, ProvinceID: 35, Name: "Surabaya"},
		{ID: 3671, ProvinceID: 36, Name: "Tangerang"},
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&provinces).Error; err != nil {
		slog.Error("Failed to seed provinces", "error", err)
		os.Exit(1)
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&cities).Error; err != nil {
		slog.Error("Failed to seed cities", "error", err)
		os.Exit(1)
	}

	slog.Info("Geography reference data seeded successfully.")
}
