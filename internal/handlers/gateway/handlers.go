package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/sync/errgroup"

	"linkhub/internal/capability"
	"linkhub/internal/config"
	"linkhub/internal/models"
	"linkhub/internal/validation"
)

// Fallback values used when a backend capability cannot answer.
var (
	FallbackUser         = models.User{"name": "Anonimo"}
	FallbackServiceError = json.RawMessage(`{"error":"Service Down"}`)
)

// DefaultRedirect is where /api/click sends callers without a usable target.
const DefaultRedirect = "/"

// Handler serves the client-facing API by calling backend capabilities.
type Handler struct {
	upstream *Upstream
	cfg      *config.Config
}

// NewHandler creates a new gateway handler.
func NewHandler(upstream *Upstream, cfg *config.Config) *Handler {
	return &Handler{upstream: upstream, cfg: cfg}
}

// Health reports that the gateway is up.
func (h *Handler) Health(c fiber.Ctx) error {
	return c.SendString("gateway active")
}

// Login registers (or looks up) the user through the users capability.
func (h *Handler) Login(c fiber.Ctx) error {
	return h.forward(c, capability.Users, "/register")
}

// AddLink forwards a new link to the links capability.
func (h *Handler) AddLink(c fiber.Ctx) error {
	return h.forward(c, capability.Links, "/links/add")
}

// forward posts the request body to a capability and relays the answer.
// Client errors from the backend are relayed as-is; anything else that
// fails is replaced by FallbackServiceError.
func (h *Handler) forward(c fiber.Ctx, svc capability.Capability, path string) error {
	body := c.Body()
	if !json.Valid(body) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "error",
			"error":  "invalid request body",
		})
	}

	res := Post(c.Context(), h.upstream, svc, path, json.RawMessage(body), 0, FallbackServiceError)
	if res.Reason == ReasonBadStatus && res.Status < fiber.StatusInternalServerError && json.Valid(res.Raw) {
		return sendRaw(c, res.Status, res.Raw)
	}
	if res.Degraded() {
		markDegraded(c, string(svc))
	}
	return sendRaw(c, fiber.StatusOK, res.Value)
}

// Profile assembles the public profile: user document plus active links.
// Each part falls back independently; a view notification is sent and
// forgotten.
func (h *Handler) Profile(c fiber.Ctx) error {
	email := strings.Clone(c.Params("email"))
	escaped := url.PathEscape(email)
	ctx := c.Context()

	var (
		user  Result[models.User]
		links Result[[]models.Link]
	)
	var g errgroup.Group
	g.Go(func() error {
		user = Get(ctx, h.upstream, capability.Users, "/user/"+escaped, FallbackUser)
		return nil
	})
	g.Go(func() error {
		links = Get(ctx, h.upstream, capability.Links, "/links/"+escaped, []models.Link{})
		return nil
	})
	_ = g.Wait()

	h.notifyView(email)

	if user.Degraded() {
		markDegraded(c, string(capability.Users))
	}
	if links.Degraded() {
		markDegraded(c, string(capability.Links))
	}
	if links.Value == nil {
		links.Value = []models.Link{}
	}

	return c.JSON(models.Profile{User: user.Value, Links: links.Value})
}

// notifyView fires a profile-view notification in the background. Its
// outcome is discarded.
func (h *Handler) notifyView(email string) {
	go func() {
		event := fiber.Map{"event": "view_profile_" + email}
		Post(context.Background(), h.upstream, capability.Notifications, "/notify", event, h.cfg.NotifyTimeout, json.RawMessage(nil))
	}()
}

// Dashboard returns every link of the owner with click statistics.
func (h *Handler) Dashboard(c fiber.Ctx) error {
	email := url.PathEscape(c.Params("email"))

	res := Get(c.Context(), h.upstream, capability.Links, "/links/stats/"+email, []models.LinkStats{})
	if res.Degraded() {
		markDegraded(c, string(capability.Links))
	}
	if res.Value == nil {
		res.Value = []models.LinkStats{}
	}
	return c.JSON(res.Value)
}

// QR relays the PNG QR code of a profile.
func (h *Handler) QR(c fiber.Ctx) error {
	png, err := h.upstream.Fetch(c.Context(), capability.Links, "/qr/"+url.PathEscape(c.Params("email")))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("QR Error")
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// Click records a click on a link and redirects to its target. The
// redirect happens whether or not the click could be recorded.
func (h *Handler) Click(c fiber.Ctx) error {
	target := validation.RedirectTarget(c.Query("url"), DefaultRedirect)

	if id := c.Query("id"); id != "" {
		res := Post(c.Context(), h.upstream, capability.Analytics, "/track",
			models.TrackRequest{LinkID: models.FlexID(id)}, h.cfg.TrackTimeout, json.RawMessage(nil))
		if res.Degraded() {
			slog.Info("click not recorded", "link_id", id, "reason", res.Reason)
		}
	}

	return c.Redirect().Status(fiber.StatusFound).To(target)
}
