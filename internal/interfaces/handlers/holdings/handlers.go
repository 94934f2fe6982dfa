package holdings

import (
	holdsvc "pm-backend/internal/application/holdings"
	"pm-backend/internal/authz"
	"pm-backend/internal/middleware"
	"pm-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds the holding service and the ownership guard for create,
// which targets a portfolio by id rather than an existing holding.
type Handlers struct {
	Service *holdsvc.Service
	Guard   *authz.Guard
}

// CreateRequest body for POST /holdings.
type CreateRequest struct {
	Symbol           string  `json:"symbol"`
	SharesOwned      float64 `json:"shares_owned"`
	CostBasis        float64 `json:"cost_basis"`
	TargetPercentage float64 `json:"target_percentage"`
	Goal             string  `json:"goal"`
	PortfolioID      uint    `json:"portfolio_id"`
}

// Create POST /holdings — the target portfolio must belong to the caller.
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	if req.Symbol == "" || req.PortfolioID == 0 {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest)
	}

	if err := h.Guard.CorrectPortfolio(c.Context(), middleware.CurrentUsername(c), req.PortfolioID); err != nil {
		return err
	}

	created, err := h.Service.Create(c.Context(), holdsvc.CreateInput{
		Symbol:           req.Symbol,
		SharesOwned:      req.SharesOwned,
		CostBasis:        req.CostBasis,
		TargetPercentage: req.TargetPercentage,
		Goal:             req.Goal,
		PortfolioID:      req.PortfolioID,
	})
	if err != nil {
		return err
	}
	return response.Created(c, "Holding created", fiber.Map{"holding": created})
}

// Get GET /holdings/:id.
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := middleware.ParseID(c)
	if err != nil {
		return err
	}
	holding, err := h.Service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return response.Success(c, "Holding retrieved", fiber.Map{"holding": holding})
}

// Update PATCH /holdings/:id — partial update of the mutable subset.
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := middleware.ParseID(c)
	if err != nil {
		return err
	}
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	holding, err := h.Service.Update(c.Context(), id, fields)
	if err != nil {
		return err
	}
	return response.Success(c, "Holding updated", fiber.Map{"holding": holding})
}

// Remove DELETE /holdings/:id.
func (h *Handlers) Remove(c *fiber.Ctx) error {
	id, err := middleware.ParseID(c)
	if err != nil {
		return err
	}
	if err := h.Service.Remove(c.Context(), id); err != nil {
		return err
	}
	return response.Success(c, "Holding deleted", fiber.Map{"deleted": id})
}
