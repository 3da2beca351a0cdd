package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/webdrave/funds-backend/internal/pkg/response"
	"github.com/webdrave/funds-backend/internal/pkg/storage"
)

const maxUploadBytes = 10 << 20

// UploadHandler stores document attachments
type UploadHandler struct {
	store storage.Storage
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(store storage.Storage) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload godoc
// @Summary Upload a document
// @Description Stores a multipart file and returns its reference URL
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} response.Response
// @Router /api/uploads [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "File is required")
	}
	if fileHeader.Size > maxUploadBytes {
		return response.BadRequest(c, "File exceeds the 10MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "Unable to read file")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.store.Put(c.Context(), fileHeader.Filename, contentType, file)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "File uploaded successfully", fiber.Map{"url": url})
}
