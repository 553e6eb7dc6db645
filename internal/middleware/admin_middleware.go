package middleware

import (
	"github.com/arzan03/EstateHub/internal/models"
	"github.com/gofiber/fiber/v2"
)

// AdminMiddleware ensures that only users with "admin" role can access admin
// routes. It runs after AuthMiddleware.
func AdminMiddleware(c *fiber.Ctx) error {
	session := CurrentSession(c)
	if session.UserID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
	}
	if session.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied. Admins only."})
	}
	return c.Next()
}
