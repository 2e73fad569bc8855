package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/devconnector/api/internal/api/dto"
	"github.com/devconnector/api/internal/service"
)

// UsersHandler exposes account registration.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /api/users.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	_, token, err := h.auth.RegisterUser(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(dto.AuthResponse{Token: token})
}
