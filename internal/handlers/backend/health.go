package backend

import (
	"github.com/gofiber/fiber/v3"

	"linkhub/internal/capability"
)

// HealthHandler reports which capabilities the instance serves.
type HealthHandler struct {
	caps      capability.Set
	connected bool
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(caps capability.Set, connected bool) *HealthHandler {
	return &HealthHandler{caps: caps, connected: connected}
}

// Show returns a one-line status.
func (h *HealthHandler) Show(c fiber.Ctx) error {
	status := "backend active: " + h.caps.String()
	if !h.connected {
		status += " (no store)"
	}
	return c.SendString(status)
}
