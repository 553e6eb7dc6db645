package handlers

import (
	"github.com/arzan03/EstateHub/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var request services.SignupRequest
	if err := c.BodyParser(&request); err != nil {
		return invalidBody(c)
	}

	user, err := h.auth.Signup(c.UserContext(), request)
	if err != nil {
		return respondError(c, err, "User")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User registered successfully", "user": user})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var request services.LoginRequest
	if err := c.BodyParser(&request); err != nil {
		return invalidBody(c)
	}

	token, user, err := h.auth.Login(c.UserContext(), request)
	if err != nil {
		return respondError(c, err, "User")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"role":  user.Role,
		"user":  user,
	})
}
