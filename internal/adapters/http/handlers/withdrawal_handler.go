package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/webdrave/funds-backend/internal/adapters/http/middleware"
	"github.com/webdrave/funds-backend/internal/core/services"
	"github.com/webdrave/funds-backend/internal/pkg/response"
)

// WithdrawalHandler handles withdraw request endpoints
type WithdrawalHandler struct {
	withdrawalService *services.WithdrawalService
}

// NewWithdrawalHandler creates a new withdrawal handler
func NewWithdrawalHandler(withdrawalService *services.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalService: withdrawalService}
}

// Create opens a withdraw request against the actor's balance
// @Summary Request withdrawal
// @Description Reserve funds from the actor's balance for withdrawal
// @Tags Withdrawals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateWithdrawInput true "Withdrawal data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /withdrawals [post]
func (h *WithdrawalHandler) Create(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	var input services.CreateWithdrawInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	request, err := h.withdrawalService.Create(c.Context(), &input, actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Withdrawal requested successfully", request)
}

// UpdateStatus resolves a withdraw request
func (h *WithdrawalHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid withdrawal ID")
	}

	var input services.UpdateWithdrawInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	request, err := h.withdrawalService.UpdateStatus(c.Context(), id, &input, actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Withdrawal updated successfully", request)
}

// List lists withdraw requests
func (h *WithdrawalHandler) List(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	input := &services.ListWithdrawalsInput{Status: c.Query("status")}
	if userID := c.Query("userId"); userID != "" {
		id, _ := strconv.ParseUint(userID, 10, 32)
		uid := uint(id)
		input.UserID = &uid
	}

	requests, err := h.withdrawalService.List(c.Context(), input, actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Withdrawals retrieved successfully", requests)
}
