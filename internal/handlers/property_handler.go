package handlers

import (
	"github.com/arzan03/EstateHub/internal/middleware"
	"github.com/arzan03/EstateHub/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PropertyHandler struct {
	properties *services.PropertyService
}

func NewPropertyHandler(properties *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

// List serves the public browse/search endpoint.
func (h *PropertyHandler) List(c *fiber.Ctx) error {
	var query services.ListingQuery
	if err := c.QueryParser(&query); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid query parameters"})
	}

	listings, err := h.properties.List(c.UserContext(), query)
	if err != nil {
		return respondError(c, err, "Property")
	}
	return c.JSON(fiber.Map{"properties": listings})
}

func (h *PropertyHandler) Get(c *fiber.Ctx) error {
	listing, err := h.properties.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Property")
	}
	return c.JSON(fiber.Map{"property": listing})
}

func (h *PropertyHandler) Mine(c *fiber.Ctx) error {
	properties, err := h.properties.ListMine(c.UserContext(), middleware.CurrentSession(c))
	if err != nil {
		return respondError(c, err, "Property")
	}
	return c.JSON(fiber.Map{"properties": properties})
}

func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	var input services.PropertyInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	property, err := h.properties.Create(c.UserContext(), middleware.CurrentSession(c), input)
	if err != nil {
		return respondError(c, err, "User")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Property added successfully", "property": property})
}

func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	var patch services.PropertyPatch
	if err := c.BodyParser(&patch); err != nil {
		return invalidBody(c)
	}

	property, err := h.properties.Update(c.UserContext(), middleware.CurrentSession(c), c.Params("id"), patch)
	if err != nil {
		return respondError(c, err, "Property")
	}
	return c.JSON(fiber.Map{"message": "Property updated successfully", "property": property})
}

func (h *PropertyHandler) Delete(c *fiber.Ctx) error {
	if err := h.properties.Delete(c.UserContext(), middleware.CurrentSession(c), c.Params("id")); err != nil {
		return respondError(c, err, "Property")
	}
	return c.JSON(fiber.Map{"message": "Property deleted successfully"})
}
