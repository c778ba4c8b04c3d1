package backend

import (
	"encoding/json"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"linkhub/internal/metrics"
	"linkhub/internal/models"
)

// NotifyHandler is the notification sink. Events are logged and, when a
// store is connected, published to subscribers.
type NotifyHandler struct {
	store Store
}

// NewNotifyHandler creates a new notification handler.
func NewNotifyHandler(st Store) *NotifyHandler {
	return &NotifyHandler{store: st}
}

// Notify accepts an arbitrary JSON event.
func (h *NotifyHandler) Notify(c fiber.Ctx) error {
	var event map[string]any
	if err := json.Unmarshal(c.Body(), &event); err != nil {
		return jsonError(c, fiber.StatusBadRequest, msgBadBody)
	}

	metrics.RecordNotification()
	slog.Info("notification received", "event", event)

	if h.store != nil {
		if _, err := h.store.Publish(c.Context(), event); err != nil {
			slog.Warn("failed to publish notification", "error", err)
		}
	}

	return c.JSON(models.NotifyResponse{Status: "sent"})
}
