package backend

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"linkhub/internal/qr"
)

// QRHandler renders profile QR codes.
type QRHandler struct {
	frontendURL string
}

// NewQRHandler creates a QR handler pointing at the public frontend.
func NewQRHandler(frontendURL string) *QRHandler {
	return &QRHandler{frontendURL: frontendURL}
}

// Generate streams a PNG QR code encoding the owner's profile URL.
func (h *QRHandler) Generate(c fiber.Ctx) error {
	png, err := qr.PNG(qr.ProfileURL(h.frontendURL, c.Params("email")))
	if err != nil {
		slog.Error("failed to generate qr code", "email", c.Params("email"), "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to generate qr code")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
