package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/webdrave/funds-backend/internal/adapters/http/middleware"
	"github.com/webdrave/funds-backend/internal/core/services"
	"github.com/webdrave/funds-backend/internal/pkg/pagination"
	"github.com/webdrave/funds-backend/internal/pkg/response"
)

// LoanHandler handles loan application endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// Create creates a loan from a template
// @Summary Create loan
// @Description Materialize a loan submission from a form template
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateLoanInput true "Loan data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	var input services.CreateLoanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.Create(c.Context(), &input, actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Loan created successfully", loan)
}

// List lists loans in the actor's scope
// @Summary List loans
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param loanType query string false "Filter by loan type"
// @Param search query string false "Search subscriber or sub type"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	params := pagination.GetParams(c)
	input := &services.ListLoansInput{
		Status:   c.Query("status"),
		LoanType: c.Query("loanType"),
		Search:   c.Query("search"),
		Page:     params.Page,
		Limit:    params.Limit,
	}

	result, err := h.loanService.List(c.Context(), input, actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Loans retrieved successfully",
		pagination.NewResponse(result.Loans, params, result.Total))
}

// Get returns a single loan
func (h *LoanHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.GetByID(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Loan retrieved successfully", loan)
}

// UpdateStatus transitions a loan's lifecycle state
// @Summary Update loan status
// @Description Approve or reject a pending loan
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param body body services.UpdateStatusInput true "Target status"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans/{id}/status [put]
func (h *LoanHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var input services.UpdateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.UpdateStatus(c.Context(), id, &input, actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Loan status updated", loan)
}

// Delete deletes a loan
func (h *LoanHandler) Delete(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	if err := h.loanService.Delete(c.Context(), id, actor); err != nil {
		return response.FromError(c, err)
	}
	return response.NoContent(c)
}

// PendingCount returns the pending loan count in the actor's scope
func (h *LoanHandler) PendingCount(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	counts, err := h.loanService.PendingCount(c.Context(), actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Pending count retrieved", counts)
}

// Stats returns loan counts per status in the actor's scope
func (h *LoanHandler) Stats(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	stats, err := h.loanService.Stats(c.Context(), actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Loan stats retrieved", stats)
}
