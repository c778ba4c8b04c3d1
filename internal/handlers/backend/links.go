package backend

import (
	"bytes"
	"encoding/json"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"linkhub/internal/models"
	"linkhub/internal/validation"
)

// LinkHandler serves link listing and creation.
type LinkHandler struct {
	store Store
}

// NewLinkHandler creates a new link handler.
func NewLinkHandler(st Store) *LinkHandler {
	return &LinkHandler{store: st}
}

// ListActive returns the owner's public links, hiding exhausted limited links.
func (h *LinkHandler) ListActive(c fiber.Ctx) error {
	if h.store == nil {
		return noStore(c)
	}

	links, err := h.store.ActiveLinks(c.Context(), c.Params("email"))
	if err != nil {
		slog.Error("failed to list links", "email", c.Params("email"), "error", err)
		return jsonError(c, fiber.StatusInternalServerError, msgStoreFailed)
	}
	return c.JSON(links)
}

// ListStats returns every link of the owner with its counters.
func (h *LinkHandler) ListStats(c fiber.Ctx) error {
	if h.store == nil {
		return noStore(c)
	}

	stats, err := h.store.LinkStats(c.Context(), c.Params("email"))
	if err != nil {
		slog.Error("failed to list link stats", "email", c.Params("email"), "error", err)
		return jsonError(c, fiber.StatusInternalServerError, msgStoreFailed)
	}
	return c.JSON(stats)
}

// Add appends a link to the owner's profile.
func (h *LinkHandler) Add(c fiber.Ctx) error {
	var body models.AddLinkRequest
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, msgBadBody)
	}

	if ok, msg := validation.ValidateEmail(body.Email); !ok {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	link, err := body.Link()
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if valid, msg := validation.ValidateURL(link.URL); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	if h.store == nil {
		return noStore(c)
	}

	links, err := h.store.AddLink(c.Context(), body.Email, link)
	if err != nil {
		slog.Error("failed to add link", "email", body.Email, "link_id", link.ID, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, msgStoreFailed)
	}

	slog.Info("link added", "email", body.Email, "link_id", link.ID, "limited", link.IsLimited())
	return c.JSON(models.AddLinkResponse{Status: "added", Links: links})
}
