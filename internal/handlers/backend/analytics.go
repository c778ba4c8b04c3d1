package backend

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"linkhub/internal/metrics"
	"linkhub/internal/models"
	"linkhub/internal/store"
)

// AnalyticsHandler records link clicks.
type AnalyticsHandler struct {
	store Store
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(st Store) *AnalyticsHandler {
	return &AnalyticsHandler{store: st}
}

// Track counts one click and consumes one unit of a limited link's budget.
func (h *AnalyticsHandler) Track(c fiber.Ctx) error {
	var body models.TrackRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, msgBadBody)
	}
	if h.store == nil {
		return noStore(c)
	}

	res, err := h.store.Track(c.Context(), string(body.LinkID))
	if err != nil {
		if errors.Is(err, store.ErrMissingLinkID) {
			return jsonError(c, fiber.StatusBadRequest, "link_id is required")
		}
		slog.Error("failed to track click", "link_id", body.LinkID, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, msgStoreFailed)
	}

	metrics.RecordClick()
	if res.Remaining != nil {
		slog.Debug("click tracked", "link_id", body.LinkID, "total", res.Total, "remaining", *res.Remaining)
	} else {
		slog.Debug("click tracked", "link_id", body.LinkID, "total", res.Total)
	}

	return c.JSON(models.TrackResponse{Status: "ok", Total: res.Total})
}
