package middlewares

import (
	"strings"

	"topluluk.link/models"
	"topluluk.link/services"

	"github.com/gofiber/fiber/v2"
)

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// AuthMiddleware Bearer token'ı doğrular, kullanıcı ID'sini hem Locals'a hem
// istek context'ine yazar (audit kolonları context'ten okur).
func AuthMiddleware(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "oturum gerekli"})
	}
	userID, err := services.NewAuthService().ParseToken(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	c.Locals("userID", userID)
	c.SetUserContext(models.ContextWithUserID(c.UserContext(), userID))
	return c.Next()
}

// OptionalAuthMiddleware token varsa kullanıcıyı tanır, yoksa anonim geçirir.
// Public listeler oturumlu kullanıcıya ek alan gösterebilsin diye kullanılır.
func OptionalAuthMiddleware(c *fiber.Ctx) error {
	if token := bearerToken(c); token != "" {
		if userID, err := services.NewAuthService().ParseToken(token); err == nil {
			c.Locals("userID", userID)
			c.SetUserContext(models.ContextWithUserID(c.UserContext(), userID))
		}
	}
	return c.Next()
}
