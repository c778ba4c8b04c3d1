package backend

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"linkhub/internal/models"
	"linkhub/internal/store"
	"linkhub/internal/validation"
)

// UserHandler serves registration and profile lookup.
type UserHandler struct {
	store Store
}

// NewUserHandler creates a new user handler.
func NewUserHandler(st Store) *UserHandler {
	return &UserHandler{store: st}
}

// Register stores the posted document unless the email is already taken,
// and returns whatever is stored.
func (h *UserHandler) Register(c fiber.Ctx) error {
	var user models.User
	if err := json.Unmarshal(c.Body(), &user); err != nil || user == nil {
		return jsonError(c, fiber.StatusBadRequest, msgBadBody)
	}
	if ok, msg := validation.ValidateEmail(user.Email()); !ok {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	if h.store == nil {
		return noStore(c)
	}

	stored, err := h.store.RegisterUser(c.Context(), user)
	if err != nil {
		slog.Error("failed to register user", "email", user.Email(), "error", err)
		return jsonError(c, fiber.StatusInternalServerError, msgStoreFailed)
	}

	return c.JSON(models.RegisterResponse{Status: "ok", User: stored})
}

// Get returns the stored document for an email.
func (h *UserHandler) Get(c fiber.Ctx) error {
	if h.store == nil {
		return noStore(c)
	}

	user, err := h.store.GetUser(c.Context(), c.Params("email"))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return jsonError(c, fiber.StatusNotFound, "User not found")
		}
		slog.Error("failed to get user", "email", c.Params("email"), "error", err)
		return jsonError(c, fiber.StatusInternalServerError, msgStoreFailed)
	}

	return c.JSON(user)
}
