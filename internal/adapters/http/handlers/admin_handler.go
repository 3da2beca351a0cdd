package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/webdrave/funds-backend/internal/adapters/http/middleware"
	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"
	"github.com/webdrave/funds-backend/internal/core/services"
	"github.com/webdrave/funds-backend/internal/pkg/response"
)

// AdminHandler handles admin account endpoints
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// parseID reads a :id route parameter
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// Create creates an admin account
// @Summary Create admin account
// @Description Create a superadmin, RM, or DSA account
// @Tags Admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateAdminInput true "Account data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admins [post]
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	var input services.CreateAdminInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	admin, err := h.adminService.Create(c.Context(), &input, actor)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Admin created successfully", admin)
}

// List lists admin accounts, optionally by role
func (h *AdminHandler) List(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	admins, err := h.adminService.List(c.Context(), c.Query("role"), actor)
	if err != nil {
		return response.FromError(c, err)
	}

	out := make([]*models.AdminResponse, len(admins))
	for i := range admins {
		out[i] = admins[i].ToResponse()
	}
	return response.Success(c, "Admins retrieved successfully", out)
}

// Get returns a single admin account
func (h *AdminHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid admin ID")
	}

	admin, err := h.adminService.GetByID(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Admin retrieved successfully", admin.ToResponse())
}

// Update updates an admin account
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid admin ID")
	}

	var input services.UpdateAdminInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	admin, err := h.adminService.Update(c.Context(), id, &input, actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Admin updated successfully", admin)
}

// UpdateBank sets the payout account for an admin
func (h *AdminHandler) UpdateBank(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid admin ID")
	}

	var input services.BankInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	bank, err := h.adminService.UpdateBank(c.Context(), id, &input, actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Bank details updated successfully", bank)
}

// Delete soft deletes an admin account
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid admin ID")
	}

	if err := h.adminService.Delete(c.Context(), id, actor); err != nil {
		return response.FromError(c, err)
	}
	return response.NoContent(c)
}
