package middleware

import (
	"strings"

	"pm-backend/internal/auth"
	"pm-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const usernameLocal = "username"

// RequireAuth validates the bearer token and stores the subject username in
// Locals. Returns 401 with the standard error format on any failure.
func RequireAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return response.Unauthorized(c, "Missing authentication token")
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return response.Unauthorized(c, "Invalid authorization header format")
		}
		claims, err := auth.ParseToken(parts[1], secret)
		if err != nil {
			return response.Unauthorized(c, "Invalid or expired token")
		}
		c.Locals(usernameLocal, claims.Username)
		return c.Next()
	}
}

// CurrentUsername returns the authenticated username from Locals, or "" when
// the request carried no valid token.
func CurrentUsername(c *fiber.Ctx) string {
	if u, ok := c.Locals(usernameLocal).(string); ok {
		return u
	}
	return ""
}
