package portfolios

import (
	pfsvc "pm-backend/internal/application/portfolios"
	"pm-backend/internal/middleware"
	"pm-backend/internal/pkg/apperr"
	"pm-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds the portfolio service.
type Handlers struct {
	Service *pfsvc.Service
}

// CreateRequest body for POST /portfolios. Username is optional; when set it
// must name the caller.
type CreateRequest struct {
	Name     string  `json:"name"`
	Cash     float64 `json:"cash"`
	Notes    string  `json:"notes"`
	Username string  `json:"username"`
}

// Create POST /portfolios — the portfolio is owned by the authenticated
// caller; a body username naming anyone else is rejected.
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	if req.Name == "" {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest)
	}

	caller := middleware.CurrentUsername(c)
	if req.Username != "" && req.Username != caller {
		return apperr.Forbidden("cannot create a portfolio for another user")
	}

	p, err := h.Service.Create(c.Context(), pfsvc.CreateInput{
		Name:     req.Name,
		Cash:     req.Cash,
		Notes:    req.Notes,
		Username: caller,
	})
	if err != nil {
		return err
	}
	return response.Created(c, "Portfolio created", fiber.Map{"portfolio": p})
}

// Get GET /portfolios/:id — the portfolio with its holdings.
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := middleware.ParseID(c)
	if err != nil {
		return err
	}
	p, err := h.Service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return response.Success(c, "Portfolio retrieved", fiber.Map{"portfolio": p})
}

// Update PATCH /portfolios/:id — partial update of name, cash, notes.
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := middleware.ParseID(c)
	if err != nil {
		return err
	}
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	p, err := h.Service.Update(c.Context(), id, fields, middleware.CurrentUsername(c))
	if err != nil {
		return err
	}
	return response.Success(c, "Portfolio updated", fiber.Map{"portfolio": p})
}

// Remove DELETE /portfolios/:id.
func (h *Handlers) Remove(c *fiber.Ctx) error {
	id, err := middleware.ParseID(c)
	if err != nil {
		return err
	}
	if err := h.Service.Remove(c.Context(), id); err != nil {
		return err
	}
	return response.Success(c, "Portfolio deleted", fiber.Map{"deleted": id})
}
