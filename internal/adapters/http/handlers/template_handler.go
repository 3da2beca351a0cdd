package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/webdrave/funds-backend/internal/adapters/http/middleware"
	"github.com/webdrave/funds-backend/internal/core/services"
	"github.com/webdrave/funds-backend/internal/pkg/response"
)

// TemplateHandler handles loan form template endpoints
type TemplateHandler struct {
	templateService *services.TemplateService
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templateService *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// Create creates a loan form template
// @Summary Create template
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateTemplateInput true "Template data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /templates [post]
func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	var input services.CreateTemplateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tpl, err := h.templateService.Create(c.Context(), &input, actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Template created successfully", tpl)
}

// List lists templates, optionally by loan type
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	tpls, err := h.templateService.List(c.Context(), c.Query("loanType"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Templates retrieved successfully", tpls)
}

// GetByName returns a single template by its unique name
func (h *TemplateHandler) GetByName(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return response.BadRequest(c, "Invalid template name")
	}

	tpl, err := h.templateService.GetByName(c.Context(), name)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Template retrieved successfully", tpl)
}

// Get returns a single template
func (h *TemplateHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid template ID")
	}

	tpl, err := h.templateService.GetByID(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Template retrieved successfully", tpl)
}

// Update updates a template
func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid template ID")
	}

	var input services.UpdateTemplateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tpl, err := h.templateService.Update(c.Context(), id, &input, actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Template updated successfully", tpl)
}

// Delete deletes a template
func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid template ID")
	}

	if err := h.templateService.Delete(c.Context(), id, actor); err != nil {
		return response.FromError(c, err)
	}
	return response.NoContent(c)
}
