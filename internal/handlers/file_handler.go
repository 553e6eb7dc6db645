package handlers

import (
	"fmt"
	"io"

	"github.com/arzan03/EstateHub/internal/services"
	"github.com/gofiber/fiber/v2"
)

const uploadCacheControl = "public, max-age=31536000, immutable"

type FileHandler struct {
	uploads *services.UploadService
}

func NewFileHandler(uploads *services.UploadService) *FileHandler {
	return &FileHandler{uploads: uploads}
}

// UploadImages stores every file sent under "images" and returns their public paths.
func (h *FileHandler) UploadImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid multipart form"})
	}

	urls, err := h.uploads.UploadImages(c.UserContext(), form.File["images"])
	if err != nil {
		return respondError(c, err, "File")
	}
	return c.JSON(fiber.Map{"message": "Files uploaded successfully", "urls": urls})
}

// Serve returns a stored upload with a long-lived cache header. The object is
// read fully inside the handler, while the request context is still live.
func (h *FileHandler) Serve(c *fiber.Ctx) error {
	body, contentType, err := h.uploads.Open(c.UserContext(), c.Params("filename"))
	if err != nil {
		return respondError(c, err, "File")
	}

	data, err := io.ReadAll(body)
	body.Close()
	if err != nil {
		return respondError(c, fmt.Errorf("read upload: %w", err), "File")
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, uploadCacheControl)
	return c.Send(data)
}
