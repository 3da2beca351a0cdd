package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/webdrave/funds-backend/internal/adapters/http/middleware"
	"github.com/webdrave/funds-backend/internal/core/services"
	"github.com/webdrave/funds-backend/internal/pkg/response"
)

// PlanHandler handles subscription plan endpoints
type PlanHandler struct {
	planService *services.PlanService
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(planService *services.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// Create creates a plan
func (h *PlanHandler) Create(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	var input services.PlanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	plan, err := h.planService.Create(c.Context(), &input, actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Plan created successfully", plan)
}

// List lists plans
func (h *PlanHandler) List(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	plans, err := h.planService.List(c.Context(), actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Plans retrieved successfully", plans)
}

// Get returns a single plan
func (h *PlanHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid plan ID")
	}

	plan, err := h.planService.GetByID(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Plan retrieved successfully", plan)
}

// Update updates a plan
func (h *PlanHandler) Update(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid plan ID")
	}

	var input services.PlanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	plan, err := h.planService.Update(c.Context(), id, &input, actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Plan updated successfully", plan)
}

// SetActiveRequest carries the activation toggle
type SetActiveRequest struct {
	IsActive bool `json:"isActive"`
}

// SetActive toggles a plan's availability
func (h *PlanHandler) SetActive(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid plan ID")
	}

	var req SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	plan, err := h.planService.SetActive(c.Context(), id, req.IsActive, actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Plan updated successfully", plan)
}

// Delete deletes a plan
func (h *PlanHandler) Delete(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid plan ID")
	}

	if err := h.planService.Delete(c.Context(), id, actor); err != nil {
		return response.FromError(c, err)
	}
	return response.NoContent(c)
}
