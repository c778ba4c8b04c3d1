package server

import (
	"linkhub/internal/capability"
	"linkhub/internal/handlers/backend"
	"linkhub/internal/middleware"
)

// RegisterBackendRoutes registers the capability routes of a backend
// instance. st may be nil, in which case data routes answer with a fixed error.
func (s *Server) RegisterBackendRoutes(st backend.Store, caps capability.Set) {
	gate := middleware.NewCapabilityGate(caps)

	healthHandler := backend.NewHealthHandler(caps, st != nil)
	userHandler := backend.NewUserHandler(st)
	linkHandler := backend.NewLinkHandler(st)
	qrHandler := backend.NewQRHandler(s.Cfg.FrontendURL)
	analyticsHandler := backend.NewAnalyticsHandler(st)
	notifyHandler := backend.NewNotifyHandler(st)

	s.App.Get("/", healthHandler.Show)

	// Users
	s.App.Post("/register", gate.Require(capability.Users), userHandler.Register)
	s.App.Get("/user/:email", gate.Require(capability.Users), userHandler.Get)

	// Links
	s.App.Get("/links/stats/:email", gate.Require(capability.Links), linkHandler.ListStats)
	s.App.Get("/links/:email", gate.Require(capability.Links), linkHandler.ListActive)
	s.App.Post("/links/add", gate.Require(capability.Links), linkHandler.Add)
	s.App.Get("/qr/:email", gate.Require(capability.Links), qrHandler.Generate)

	// Analytics
	s.App.Post("/track", gate.Require(capability.Analytics), analyticsHandler.Track)

	// Notifications
	s.App.Post("/notify", gate.Require(capability.Notifications), notifyHandler.Notify)
}
