package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	redisstorage "github.com/gofiber/storage/redis/v3"

	"linkhub/internal/config"
	"linkhub/internal/handlers/backend"
	"linkhub/internal/logging"
	"linkhub/internal/server"
	"linkhub/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logOutput := logging.Setup(cfg, "backend")

	caps, unknown := cfg.Capabilities()
	if len(unknown) > 0 {
		slog.Warn("unknown capabilities in SERVICE_TYPE", "unknown", unknown)
	}
	slog.Info("serving capabilities", "capabilities", caps.String())

	// A store failure at startup leaves the process up in no-data mode.
	var st backend.Store
	var limiterStorage fiber.Storage

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	database, err := store.New(ctx, cfg.RedisURL)
	cancel()
	if err != nil {
		slog.Error("failed to connect to store, data routes disabled", "error", err)
	} else {
		defer database.Close()
		st = database
		slog.Info("connected to store")

		limiterStorage, err = newLimiterStorage(cfg.RedisURL)
		if err != nil {
			slog.Warn("rate limiter falls back to memory storage", "error", err)
		}
	}

	srv := server.New(cfg, server.Options{
		Name:      "backend",
		Addr:      cfg.BackendAddr,
		LogOutput: logOutput,
		RateLimit: cfg.BackendRateLimit,
		Storage:   limiterStorage,
	})
	srv.RegisterBackendRoutes(st, caps)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	slog.Info("server exited")
}

// newLimiterStorage shares the Redis deployment with the rate limiter so
// limits hold across backend replicas. The storage driver panics when it
// cannot connect; that is turned into an error.
func newLimiterStorage(url string) (storage fiber.Storage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("redis limiter storage: %v", r)
		}
	}()
	return redisstorage.New(redisstorage.Config{URL: url}), nil
}
