package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"sheet-shop/internal/config"
	"sheet-shop/internal/logger"
	"sheet-shop/internal/repository"
	"sheet-shop/internal/server"
	"sheet-shop/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// In-flight requests get 30 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	done <- true
}

func newRedisClient(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) *redis.Client {
	if !cfg.RateLimitEnabled() {
		log.Info("REDIS_ADDR not set, rate limiting disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis not reachable, requests will pass unlimited until it is", zap.Error(err))
	}
	return client
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	log.Info("Starting sheet shop",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("sheets_backend", cfg.Sheets.Backend),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	gateway, err := repository.NewGateway(ctx, cfg.Sheets)
	if err != nil {
		log.Fatal("Failed to open spreadsheet", zap.Error(err))
	}

	repo := repository.NewSpreadsheetRepository(gateway, log)

	if cfg.Server.SeedOnStart {
		seeded, err := repo.SeedDefaultProducts(ctx)
		if err != nil {
			log.Fatal("Failed to seed products", zap.Error(err))
		}
		log.Info("Product seeding checked", zap.Bool("seeded", seeded))
	}

	srv, err := server.NewServer(cfg, log, server.Dependencies{
		Gateway: gateway,
		Store:   service.NewStoreService(repo),
		Redis:   newRedisClient(ctx, cfg.Redis, log),
	})
	if err != nil {
		log.Fatal("Failed to create server", zap.Error(err))
	}

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	<-done
	log.Info("Graceful shutdown complete")
}
