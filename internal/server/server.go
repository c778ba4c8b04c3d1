package server

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"linkhub/internal/config"
	"linkhub/internal/metrics"
)

// Options customise a server beyond the shared configuration.
type Options struct {
	Name      string        // Process name used in logs
	Addr      string        // Listen address
	LogOutput io.Writer     // Access log destination, stdout when nil
	RateLimit int           // Requests per minute per IP, 0 disables
	Storage   fiber.Storage // Rate-limiter storage, in-memory when nil
}

// Server wraps the Fiber app and configuration.
type Server struct {
	App  *fiber.App
	Cfg  *config.Config
	opts Options
}

// New creates a new server with middleware configured.
func New(cfg *config.Config, opts Options) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "linkhub-" + opts.Name,
		UnescapePath: true,
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
				message = e.Message
			} else {
				slog.Error("unhandled request error", "path", c.Path(), "error", err)
			}

			return c.Status(code).JSON(fiber.Map{
				"status": "error",
				"error":  message,
			})
		},
	})

	// Global middleware
	app.Use(recover.New())

	logCfg := logger.Config{}
	if opts.LogOutput != nil {
		logCfg.Stream = opts.LogOutput
	}
	app.Use(logger.New(logCfg))

	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       86400,
	}))

	if opts.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        opts.RateLimit,
			Expiration: 1 * time.Minute,
			Storage:    opts.Storage,
			KeyGenerator: func(c fiber.Ctx) string {
				return opts.Name + ":" + c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"status": "error",
					"error":  "Rate limit exceeded. Please try again later.",
				})
			},
		}))
	}

	metrics.Init()
	app.Get("/metrics", metrics.Handler())

	return &Server{
		App:  app,
		Cfg:  cfg,
		opts: opts,
	}
}

// Start starts the server on the configured address, with TLS when a
// certificate and key are configured.
func (s *Server) Start() error {
	if s.Cfg.TLSEnabled() {
		slog.Info("starting server with TLS", "name", s.opts.Name, "addr", s.opts.Addr)
		return s.App.Listen(s.opts.Addr, fiber.ListenConfig{
			CertFile:    s.Cfg.TLSCertFile,
			CertKeyFile: s.Cfg.TLSKeyFile,
		})
	}
	slog.Info("starting server", "name", s.opts.Name, "addr", s.opts.Addr)
	return s.App.Listen(s.opts.Addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.App.Shutdown()
}
