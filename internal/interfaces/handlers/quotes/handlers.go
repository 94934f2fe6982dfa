package quotes

import (
	quotesvc "pm-backend/internal/application/quotes"
	"pm-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds the quote proxy service.
type Handlers struct {
	Service *quotesvc.Service
}

// QuoteRequest body for POST /stocks/quote. Symbols may be a single string
// in the original API; the Go surface takes the array form only.
type QuoteRequest struct {
	Symbols []string `json:"symbols"`
}

// Quote POST /stocks/quote — batch quote lookup.
func (h *Handlers) Quote(c *fiber.Ctx) error {
	var req QuoteRequest
	if err := c.BodyParser(&req); err != nil || len(req.Symbols) == 0 {
		return response.Error(c, "symbols is required", fiber.StatusBadRequest)
	}
	quotes, err := h.Service.Quote(c.Context(), req.Symbols)
	if err != nil {
		return err
	}
	return response.Success(c, "Quotes retrieved", fiber.Map{"quotes": quotes})
}

// Search GET /stocks/search?term= — free-text symbol search.
func (h *Handlers) Search(c *fiber.Ctx) error {
	term := c.Query("term")
	if term == "" {
		return response.Error(c, "term is required", fiber.StatusBadRequest)
	}
	results, err := h.Service.Search(c.Context(), term)
	if err != nil {
		return err
	}
	return response.Success(c, "Search results", fiber.Map{"results": results})
}
