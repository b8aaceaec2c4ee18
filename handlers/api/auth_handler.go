package handlers

import (
	"topluluk.link/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler kayıt ve giriş isteklerini yönetir.
type AuthHandler struct {
	authService services.IAuthService
	userService services.IUserService
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		authService: services.NewAuthService(),
		userService: services.NewUserService(),
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "istek gövdesi okunamadı"})
	}
	user, err := h.authService.Register(c.UserContext(), req.Email, req.Password, req.FullName)
	if err != nil {
		return respondError(c, err)
	}
	token, _, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user, "token": token})
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "istek gövdesi okunamadı"})
	}
	token, user, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user": user, "token": token})
}

// Me GET /api/auth/me — oturum sahibinin kaydını döndürür.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.userService.GetUserByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}
