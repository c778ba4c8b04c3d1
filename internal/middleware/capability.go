package middleware

import (
	"github.com/gofiber/fiber/v3"

	"linkhub/internal/capability"
	"linkhub/internal/metrics"
)

// WrongServiceMessage is returned when a request reaches an instance that
// does not serve the requested capability.
const WrongServiceMessage = "Wrong service"

// CapabilityGate admits requests only for the capabilities this instance serves.
type CapabilityGate struct {
	caps capability.Set
}

// NewCapabilityGate creates a gate for the resolved capability set.
func NewCapabilityGate(caps capability.Set) *CapabilityGate {
	return &CapabilityGate{caps: caps}
}

// Require returns a handler that passes through when c is served and
// rejects with a uniform error otherwise. The decision is made once, here.
func (g *CapabilityGate) Require(c capability.Capability) fiber.Handler {
	if g.caps.Has(c) {
		return func(ctx fiber.Ctx) error {
			return ctx.Next()
		}
	}
	return func(ctx fiber.Ctx) error {
		metrics.RecordRejection(string(c))
		return ctx.Status(fiber.StatusMisdirectedRequest).JSON(fiber.Map{
			"status": "error",
			"error":  WrongServiceMessage,
		})
	}
}
