package users

import (
	usersvc "pm-backend/internal/application/users"
	"pm-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds the user service.
type Handlers struct {
	Service *usersvc.Service
}

// List GET /users — every user, ordered by username.
func (h *Handlers) List(c *fiber.Ctx) error {
	users, err := h.Service.FindAll(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, "Users retrieved", fiber.Map{"users": users})
}

// Get GET /users/:username — the user plus watchlist symbols.
func (h *Handlers) Get(c *fiber.Ctx) error {
	u, err := h.Service.Get(c.Context(), c.Params("username"))
	if err != nil {
		return err
	}
	return response.Success(c, "User retrieved", fiber.Map{"user": u})
}

// GetComplete GET /users/:username/complete — user, watchlist, and every
// owned portfolio with nested holdings.
func (h *Handlers) GetComplete(c *fiber.Ctx) error {
	u, err := h.Service.GetComplete(c.Context(), c.Params("username"))
	if err != nil {
		return err
	}
	return response.Success(c, "User retrieved", fiber.Map{"user": u})
}

// Update PATCH /users/:username — partial update of email and/or password.
func (h *Handlers) Update(c *fiber.Ctx) error {
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	u, err := h.Service.Update(c.Context(), c.Params("username"), fields)
	if err != nil {
		return err
	}
	return response.Success(c, "User updated", fiber.Map{"user": u})
}

// Remove DELETE /users/:username.
func (h *Handlers) Remove(c *fiber.Ctx) error {
	username := c.Params("username")
	if err := h.Service.Remove(c.Context(), username); err != nil {
		return err
	}
	return response.Success(c, "User deleted", fiber.Map{"deleted": username})
}

// Watch POST /users/:username/watchlist/:symbol.
func (h *Handlers) Watch(c *fiber.Ctx) error {
	symbol := c.Params("symbol")
	if err := h.Service.AddToWatchlist(c.Context(), c.Params("username"), symbol); err != nil {
		return err
	}
	return response.Success(c, "Symbol watched", fiber.Map{"watched": symbol})
}

// Unwatch DELETE /users/:username/watchlist/:symbol.
func (h *Handlers) Unwatch(c *fiber.Ctx) error {
	symbol := c.Params("symbol")
	if err := h.Service.RemoveFromWatchlist(c.Context(), c.Params("username"), symbol); err != nil {
		return err
	}
	return response.Success(c, "Symbol unwatched", fiber.Map{"unwatched": symbol})
}
