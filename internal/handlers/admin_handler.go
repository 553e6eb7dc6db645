package handlers

import (
	"github.com/arzan03/EstateHub/internal/middleware"
	"github.com/arzan03/EstateHub/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	users      *services.UserService
	properties *services.PropertyService
}

func NewAdminHandler(users *services.UserService, properties *services.PropertyService) *AdminHandler {
	return &AdminHandler{users: users, properties: properties}
}

// List all users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return respondError(c, err, "User")
	}
	return c.JSON(fiber.Map{"users": users})
}

// Get user details by ID
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "User")
	}
	return c.JSON(fiber.Map{"user": user})
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), middleware.CurrentSession(c), c.Params("id")); err != nil {
		return respondError(c, err, "User")
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// SetFeatured toggles whether a listing is shown as featured.
func (h *AdminHandler) SetFeatured(c *fiber.Ctx) error {
	var request struct {
		Featured *bool `json:"featured"`
	}
	if err := c.BodyParser(&request); err != nil {
		return invalidBody(c)
	}
	if request.Featured == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "featured is required"})
	}

	property, err := h.properties.SetFeatured(c.UserContext(), c.Params("id"), *request.Featured)
	if err != nil {
		return respondError(c, err, "Property")
	}
	return c.JSON(fiber.Map{"message": "Property updated successfully", "property": property})
}
