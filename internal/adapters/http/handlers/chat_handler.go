package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/webdrave/funds-backend/internal/adapters/http/middleware"
	"github.com/webdrave/funds-backend/internal/core/services"
	"github.com/webdrave/funds-backend/internal/pkg/response"
)

// ChatHandler handles per-loan chat endpoints
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Post appends a message to a loan's chat thread
func (h *ChatHandler) Post(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	loanID, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var input services.PostMessageInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	msg, err := h.chatService.Post(c.Context(), loanID, &input, actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Message posted successfully", msg)
}

// List returns a loan's chat thread, oldest first
func (h *ChatHandler) List(c *fiber.Ctx) error {
	loanID, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	result, err := h.chatService.List(c.Context(), loanID, page, limit)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Messages retrieved successfully", result)
}

// MarkRead records the actor as having read the whole thread
func (h *ChatHandler) MarkRead(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	loanID, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	if err := h.chatService.MarkRead(c.Context(), loanID, actor); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Thread marked as read", nil)
}

// UnreadCount returns the actor's unread message count for a loan
func (h *ChatHandler) UnreadCount(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)

	loanID, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	count, err := h.chatService.UnreadCount(c.Context(), loanID, actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Unread count retrieved", fiber.Map{"unread": count})
}
