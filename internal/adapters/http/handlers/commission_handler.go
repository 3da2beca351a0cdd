package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/webdrave/funds-backend/internal/adapters/http/middleware"
	"github.com/webdrave/funds-backend/internal/core/services"
	"github.com/webdrave/funds-backend/internal/pkg/response"
)

// CommissionHandler handles commission ledger endpoints
type CommissionHandler struct {
	commissionService *services.CommissionService
}

// NewCommissionHandler creates a new commission handler
func NewCommissionHandler(commissionService *services.CommissionService) *CommissionHandler {
	return &CommissionHandler{commissionService: commissionService}
}

// Create records a commission for a loan
// @Summary Create commission
// @Description Record a commission entry and credit the DSA balance
// @Tags Commissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateCommissionInput true "Commission data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /commissions [post]
func (h *CommissionHandler) Create(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	var input services.CreateCommissionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	commission, err := h.commissionService.Create(c.Context(), &input, actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Commission created successfully", commission)
}

// Update transitions a commission's status
func (h *CommissionHandler) Update(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid commission ID")
	}

	var input services.UpdateCommissionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	commission, err := h.commissionService.Update(c.Context(), id, &input, actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Commission updated successfully", commission)
}

// List lists commissions newest first
func (h *CommissionHandler) List(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	input := &services.ListCommissionsInput{Status: c.Query("status")}
	if dsaID := c.Query("dsaId"); dsaID != "" {
		id, _ := strconv.ParseUint(dsaID, 10, 32)
		uid := uint(id)
		input.DsaID = &uid
	}
	if rmID := c.Query("rmId"); rmID != "" {
		id, _ := strconv.ParseUint(rmID, 10, 32)
		uid := uint(id)
		input.RmID = &uid
	}

	commissions, err := h.commissionService.List(c.Context(), input, actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Commissions retrieved successfully", commissions)
}

// Summary returns a DSA's commission summary
// @Summary DSA commission summary
// @Tags Commissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "DSA ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /commissions/summary/{id} [get]
func (h *CommissionHandler) Summary(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid DSA ID")
	}

	summary, err := h.commissionService.SummaryForDsa(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Summary retrieved successfully", summary)
}
