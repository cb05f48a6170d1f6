package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"

	"github.com/ignite/rentops/internal/api"
	"github.com/ignite/rentops/internal/config"
	"github.com/ignite/rentops/internal/pkg/logger"
	"github.com/ignite/rentops/internal/repository/postgres"
	"github.com/ignite/rentops/internal/service/journey"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("DATABASE_URL") != "" {
		logger.Info("DATABASE_URL env override active")
	}
	switch cfg.Logging.Level {
	case "debug":
		logger.SetLevel(logger.DEBUG)
	case "warn":
		logger.SetLevel(logger.WARN)
	case "error":
		logger.SetLevel(logger.ERROR)
	}
	if cfg.Logging.RedactPII != nil {
		logger.SetRedactPII(*cfg.Logging.RedactPII)
	}

	// Database
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		logger.Warn("database ping failed, continuing and retrying per request", "error", err)
	}
	pingCancel()

	// Journey engine over the record stores
	svc := journey.New(
		postgres.NewTenantRepo(db),
		postgres.NewSourceRepo(db),
		cfg.Insights,
	)

	// Optional Redis response cache. Failures here only cost latency.
	var cache *api.JourneyCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis connection failed, journey cache disabled", "addr", cfg.Redis.Addr, "error", err)
			redisClient.Close()
		} else {
			cache = api.NewJourneyCache(redisClient, cfg.Redis.TTL())
			logger.Info("journey cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL())
		}
		pingCancel()
	}

	handlers := api.NewHandlers(svc, cache, cfg.Journey.DefaultEventsLimit, cfg.Journey.MaxEventsLimit)
	server := api.NewServer(cfg.Server, handlers)

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	db.Close()
}
