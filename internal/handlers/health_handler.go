package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Health reports liveness; ping checks the database when set.
func Health(ping func(context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ping != nil {
			if err := ping(c.UserContext()); err != nil {
				log.Printf("Health check failed: %v", err)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "error": "database unreachable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
