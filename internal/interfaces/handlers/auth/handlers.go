package auth

import (
	usersvc "pm-backend/internal/application/users"
	"pm-backend/internal/auth"
	"pm-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds the user service and the JWT signing key.
type Handlers struct {
	Users     *usersvc.Service
	SecretKey string
}

// RegisterRequest body for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// TokenRequest body for POST /auth/token.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register POST /auth/register — create the user and return a token for it.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest)
	}
	if req.Username == "" || req.Password == "" || req.Email == "" {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest)
	}

	u, err := h.Users.Register(c.Context(), usersvc.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}

	token, err := auth.CreateToken(u.Username, h.SecretKey)
	if err != nil {
		return err
	}
	return response.Created(c, "User registered successfully", fiber.Map{
		"token": token,
		"user":  u,
	})
}

// Token POST /auth/token — authenticate and return a fresh token.
func (h *Handlers) Token(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest)
	}
	if req.Username == "" || req.Password == "" {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest)
	}

	u, err := h.Users.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	token, err := auth.CreateToken(u.Username, h.SecretKey)
	if err != nil {
		return err
	}
	return response.Success(c, "Authenticated", fiber.Map{
		"token": token,
		"user":  u,
	})
}
