package health

import (
	"github.com/gofiber/fiber/v2"
)

// Pinger abstracts the DB liveness check so tests can stub it.
type Pinger interface {
	Ping() error
}

// Handlers holds the DB pinger.
type Handlers struct {
	DB Pinger
}

// JSON GET /health/json — reports process and database liveness.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	dbStatus := "ok"
	if h.DB == nil {
		dbStatus = "not configured"
	} else if err := h.DB.Ping(); err != nil {
		dbStatus = "unreachable"
	}
	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": dbStatus,
	})
}
