package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/sellora/retail_backoffice_app/internal/cache"
	"github.com/sellora/retail_backoffice_app/internal/core/services"
	"github.com/sellora/retail_backoffice_app/internal/handlers"
	"github.com/sellora/retail_backoffice_app/internal/middleware"
	"github.com/sellora/retail_backoffice_app/internal/repositories/database/pgsql"
	"github.com/sellora/retail_backoffice_app/pkg/config"
	"github.com/sellora/retail_backoffice_app/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Aggregate-ledger snapshot cache; headless without redis.
	var snapshots cache.AggregateSnapshotCache = cache.NoopAggregateCache{}
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisAggregateCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(context.Background()); err != nil {
			logger.Warn("Redis unreachable, snapshot caching disabled", slog.String("error", err.Error()))
		} else {
			snapshots = redisCache
			defer redisCache.Close()
			logger.Info("Redis snapshot cache connected", slog.String("addr", cfg.RedisAddr))
		}
	}

	repos := pgsql.NewRepositoryProvider(dbPool, cfg.LockTimeout)
	serviceContainer := services.NewServiceContainer(repos, snapshots)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	rate := limiter.Rate{Period: time.Minute, Limit: int64(cfg.RateLimitPerMinute)}
	limiterInstance := limiter.New(memorystore.NewStore(), rate)

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.Default(),
		middleware.RateLimit(limiterInstance),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations from the migrations
// directory over a temporary database/sql connection.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		migrationDB.Close()
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
