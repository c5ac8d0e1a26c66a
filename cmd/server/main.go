// Package main is the entry point for the fee engine API.
// It wires storage, cache, the fee engine and the HTTP server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tutorly/internal/config"
	"tutorly/internal/handlers"
	"tutorly/internal/logs"
	"tutorly/internal/metrics"
	"tutorly/internal/middleware"
	"tutorly/internal/repositories"
	"tutorly/internal/repositories/cache"
	"tutorly/internal/services/audit"
	"tutorly/internal/services/pricing"
	"tutorly/internal/services/transaction"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const version = "1.0.0"

func main() {
	config.LoadEnv()

	log := logs.New(logs.LoadConfig())
	slog.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("fee engine stopped", "err", err)
		os.Exit(1)
	}
}

// run owns every resource of the server so its deferred cleanup completes
// before main decides the exit code.
func run(log *slog.Logger) error {
	feeCfg, err := config.LoadFeeConfig()
	if err != nil {
		return fmt.Errorf("invalid fee configuration: %w", err)
	}

	db, err := repositories.NewDB(repositories.LoadDBConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Warn("failed to close database connection", "err", err)
		}
	}()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	if err := repositories.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("connected to database with connection pooling")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := cache.NewRedisClient(cache.LoadRedisConfig())
	cacheService := cache.NewCacheService(redisClient, feeCfg.RuleCacheTTL)
	defer func() {
		if err := cacheService.Close(); err != nil {
			log.Warn("failed to close redis connection", "err", err)
		}
	}()

	// Periodic check of connection pool stats
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stats := sqlDB.Stats()
				log.Debug("db stats",
					"open", stats.OpenConnections,
					"idle", stats.Idle,
					"in_use", stats.InUse,
					"wait_count", stats.WaitCount,
					"wait_duration", stats.WaitDuration)
				if pool := cacheService.GetStats(); pool != nil {
					log.Debug("redis stats", "hits", pool.Hits, "misses", pool.Misses, "total_conns", pool.TotalConns)
				}
			}
		}
	}()

	ruleRepo := repositories.NewFeeRuleRepository(db)
	if err := cacheService.HealthCheck(ctx); err != nil {
		log.Warn("redis unavailable, fee rules will be read from the database", "err", err)
	} else {
		ruleRepo = repositories.NewCachedFeeRuleRepository(ruleRepo, cacheService, feeCfg.RuleCacheTTL, log)
	}
	auditRepo := repositories.NewAuditLogRepository(db)
	auditRecorder := audit.NewMultiRecorder(auditRepo, audit.NewLogRecorder(log))

	collector := metrics.NewCollector(prometheus.DefaultRegisterer)
	fees := pricing.NewService(ruleRepo, auditRecorder, pricing.Config{
		FallbackPercent: decimal.NewNullDecimal(feeCfg.FallbackPercent),
		MinorUnitPlaces: feeCfg.MinorUnitPlaces,
	}, collector, log)
	sales := transaction.NewService(repositories.NewTransactionRepository(db), fees, log)

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,OPTIONS",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use("/api", limiter.New(limiter.Config{
		Max:        config.GetIntEnv("RATE_LIMIT_PER_MINUTE", 120),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	handlers.SetupRoutes(app, handlers.Handlers{
		Health: handlers.NewHealthHandler(version, map[string]handlers.HealthCheckFunc{
			"database": sqlDB.PingContext,
			"redis":    cacheService.HealthCheck,
		}),
		Fees:         handlers.NewFeeHandler(fees, log),
		Transactions: handlers.NewTransactionHandler(sales, log),
		Audit:        handlers.NewAuditHandler(auditRepo, log),
		Auth:         middleware.NewAuthMiddleware(config.GetEnv("JWT_SECRET", ""), log),
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}
	}()

	addr := ":" + config.GetEnv("PORT", "3000")
	log.Info("fee engine listening", "addr", addr, "version", version)
	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
