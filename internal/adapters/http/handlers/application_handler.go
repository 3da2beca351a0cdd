package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/webdrave/funds-backend/internal/adapters/http/middleware"
	"github.com/webdrave/funds-backend/internal/core/services"
	"github.com/webdrave/funds-backend/internal/pkg/response"
)

// ApplicationHandler handles public applications and support issues
type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// Submit records an unauthenticated contact application
func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	var input services.SubmitApplicationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	app, err := h.applicationService.Submit(c.Context(), &input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Application submitted successfully", app)
}

// List lists contact applications
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	apps, err := h.applicationService.ListApplications(c.Context(), actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Applications retrieved successfully", apps)
}

// UpdateStatusRequest carries the application status
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus sets an application's status
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	if err := h.applicationService.UpdateApplicationStatus(c.Context(), id, req.Status, actor); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Application updated successfully", nil)
}

// ReportIssue files a support issue
func (h *ApplicationHandler) ReportIssue(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	var input services.ReportIssueInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	issue, err := h.applicationService.ReportIssue(c.Context(), &input, actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Issue reported successfully", issue)
}

// ListIssues lists support issues
func (h *ApplicationHandler) ListIssues(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	issues, err := h.applicationService.ListIssues(c.Context(), actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Issues retrieved successfully", issues)
}
