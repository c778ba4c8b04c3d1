package gateway

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

// HeaderDegraded lists the capabilities whose answer was replaced by a fallback.
const HeaderDegraded = "X-Degraded"

// markDegraded records c in the response's degraded header.
func markDegraded(c fiber.Ctx, capabilities ...string) {
	if len(capabilities) == 0 {
		return
	}
	if existing := c.GetRespHeader(HeaderDegraded); existing != "" {
		capabilities = append([]string{existing}, capabilities...)
	}
	c.Set(HeaderDegraded, strings.Join(capabilities, ","))
}

// sendRaw writes an already-encoded JSON body.
func sendRaw(c fiber.Ctx, status int, body []byte) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(status).Send(body)
}
