package handlers

import (
	"github.com/arzan03/EstateHub/internal/middleware"
	"github.com/arzan03/EstateHub/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	users   *services.UserService
	uploads *services.UploadService
}

func NewUserHandler(users *services.UserService, uploads *services.UploadService) *UserHandler {
	return &UserHandler{users: users, uploads: uploads}
}

func (h *UserHandler) Profile(c *fiber.Ctx) error {
	user, err := h.users.Profile(c.UserContext(), middleware.CurrentSession(c))
	if err != nil {
		return respondError(c, err, "User")
	}
	return c.JSON(fiber.Map{"user": user})
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var update services.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return invalidBody(c)
	}

	user, err := h.users.UpdateProfile(c.UserContext(), middleware.CurrentSession(c), update)
	if err != nil {
		return respondError(c, err, "User")
	}
	return c.JSON(fiber.Map{"message": "Profile updated successfully", "user": user})
}

// UploadPhoto accepts a multipart "photo" file and a "type" of profile or cover.
func (h *UserHandler) UploadPhoto(c *fiber.Ctx) error {
	// A missing file is reported by the service after the type check.
	file, _ := c.FormFile("photo")

	url, user, err := h.uploads.UploadPhoto(c.UserContext(), middleware.CurrentSession(c), c.FormValue("type"), file)
	if err != nil {
		return respondError(c, err, "User")
	}
	return c.JSON(fiber.Map{
		"message": "Photo uploaded successfully",
		"url":     url,
		"user":    user,
	})
}
