package middleware

import (
	"pm-backend/internal/pkg/apperr"
	"pm-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the global error handler. It maps the application error
// taxonomy to transport status codes and everything else to a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		code, message = fiber.StatusNotFound, err.Error()
	case apperr.KindDuplicate, apperr.KindEmptyUpdate, apperr.KindBadRequest:
		code, message = fiber.StatusBadRequest, err.Error()
	case apperr.KindUnauthorized:
		code, message = fiber.StatusUnauthorized, err.Error()
	case apperr.KindForbidden:
		code, message = fiber.StatusForbidden, err.Error()
	default:
		if e, ok := err.(*fiber.Error); ok {
			code, message = e.Code, e.Message
		}
	}

	return response.Error(c, message, code)
}
