package backend

import (
	"github.com/gofiber/fiber/v3"
)

// Messages shared by every capability.
const (
	msgNoStore     = "No DB"
	msgBadBody     = "invalid request body"
	msgStoreFailed = "store operation failed"
)

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// noStore is the fixed response of data routes when the store never connected.
func noStore(c fiber.Ctx) error {
	return jsonError(c, fiber.StatusServiceUnavailable, msgNoStore)
}
