package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/webdrave/funds-backend/internal/adapters/http/middleware"
	"github.com/webdrave/funds-backend/internal/core/services"
	"github.com/webdrave/funds-backend/internal/pkg/response"
)

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the actor's notifications, newest first
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	notifications, err := h.notificationService.ListForUser(c.Context(), actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Notifications retrieved successfully", notifications)
}

// MarkRead flags one notification as read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID")
	}

	if err := h.notificationService.MarkRead(c.Context(), id); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Notification marked as read", nil)
}

// MarkAllRead flags every notification of the actor as read
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	if err := h.notificationService.MarkAllRead(c.Context(), actor); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "All notifications marked as read", nil)
}

// Delete removes a notification
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID")
	}

	if err := h.notificationService.Delete(c.Context(), id); err != nil {
		return response.FromError(c, err)
	}
	return response.NoContent(c)
}
