package middleware

import (
	"strconv"

	"pm-backend/internal/authz"
	"pm-backend/internal/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// CorrectUser allows only the user named in the :username path parameter.
func CorrectUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		guard := authz.Guard{}
		if err := guard.CorrectUser(CurrentUsername(c), c.Params("username")); err != nil {
			return err
		}
		return c.Next()
	}
}

// CorrectPortfolio allows only the owner of the portfolio in the :id path
// parameter.
func CorrectPortfolio(guard *authz.Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := ParseID(c)
		if err != nil {
			return err
		}
		if err := guard.CorrectPortfolio(c.Context(), CurrentUsername(c), id); err != nil {
			return err
		}
		return c.Next()
	}
}

// CorrectHolding allows only the transitive owner of the holding in the :id
// path parameter.
func CorrectHolding(guard *authz.Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := ParseID(c)
		if err != nil {
			return err
		}
		if err := guard.CorrectHolding(c.Context(), CurrentUsername(c), id); err != nil {
			return err
		}
		return c.Next()
	}
}

// ParseID reads the :id path parameter as an unsigned integer.
func ParseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, apperr.BadRequest(err, "invalid id: %s", c.Params("id"))
	}
	return uint(id), nil
}
