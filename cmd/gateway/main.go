package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"linkhub/internal/capability"
	"linkhub/internal/config"
	"linkhub/internal/logging"
	"linkhub/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logOutput := logging.Setup(cfg, "gateway")

	hosts, err := config.ResolveUpstreams(cfg)
	if err != nil {
		log.Fatalf("Failed to resolve backend hosts: %v", err)
	}
	if cfg.BackendURL != "" {
		slog.Info("cloud mode, single backend", "backend_url", cfg.BackendURL)
	} else {
		slog.Info("local mode, backend per capability")
	}
	for _, c := range capability.All {
		slog.Debug("upstream", "capability", c, "url", hosts[c])
	}

	srv := server.New(cfg, server.Options{
		Name:      "gateway",
		Addr:      cfg.GatewayAddr,
		LogOutput: logOutput,
		RateLimit: cfg.RateLimit,
	})
	srv.RegisterGatewayRoutes(hosts)

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
