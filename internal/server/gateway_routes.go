package server

import (
	"linkhub/internal/config"
	"linkhub/internal/handlers/gateway"
)

// RegisterGatewayRoutes registers the client-facing API of the gateway.
func (s *Server) RegisterGatewayRoutes(hosts config.Upstreams) {
	upstream := gateway.NewUpstream(hosts, s.Cfg.UpstreamTimeout)
	h := gateway.NewHandler(upstream, s.Cfg)

	s.App.Get("/", h.Health)

	s.App.Post("/api/login", h.Login)
	s.App.Get("/api/profile/:email", h.Profile)
	s.App.Get("/api/dashboard/:email", h.Dashboard)
	s.App.Post("/api/links/add", h.AddLink)
	s.App.Get("/api/qr/:email", h.QR)
	s.App.Get("/api/click", h.Click)
}
