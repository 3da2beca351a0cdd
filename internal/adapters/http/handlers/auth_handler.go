package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/webdrave/funds-backend/internal/adapters/http/middleware"
	"github.com/webdrave/funds-backend/internal/core/services"
	"github.com/webdrave/funds-backend/internal/pkg/response"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	adminService *services.AdminService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(adminService *services.AdminService) *AuthHandler {
	return &AuthHandler{adminService: adminService}
}

// Login authenticates an admin
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.adminService.Login(c.Context(), &input)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Login successful", result)
}

// RefreshRequest carries the refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh rotates a refresh token
// @Summary Refresh access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "Refresh token"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.RefreshToken == "" {
		req.RefreshToken = c.Cookies("refresh_token")
	}
	if req.RefreshToken == "" {
		return response.BadRequest(c, "Refresh token is required")
	}

	result, err := h.adminService.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Token refreshed", result)
}

// Logout revokes the refresh token
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.RefreshToken == "" {
		req.RefreshToken = c.Cookies("refresh_token")
	}

	if err := h.adminService.Logout(c.Context(), req.RefreshToken); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Logged out", nil)
}

// ForgotPasswordRequest carries the account email
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword sends a reset code to the account email
// @Summary Request password reset code
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body ForgotPasswordRequest true "Account email"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}

	if err := h.adminService.ForgotPassword(c.Context(), req.Email); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Reset code sent", nil)
}

// ResetPassword verifies the reset code and sets a new password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input services.ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.adminService.ResetPassword(c.Context(), &input); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Password reset", nil)
}

// Me returns the authenticated admin's profile
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	admin, err := h.adminService.GetByID(c.Context(), actor.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Profile retrieved", admin.ToResponse())
}
