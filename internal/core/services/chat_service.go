package services

import (
	"context"
	"fmt"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"
	"github.com/webdrave/funds-backend/internal/adapters/persistence/repositories"
	"github.com/webdrave/funds-backend/internal/core/domain"
)

// ChatService handles per-loan chat threads
type ChatService struct {
	msgRepo   *repositories.MessageRepository
	loanRepo  *repositories.LoanRepository
	adminRepo *repositories.AdminRepository
}

// NewChatService creates a new chat service
func NewChatService(
	msgRepo *repositories.MessageRepository,
	loanRepo *repositories.LoanRepository,
	adminRepo *repositories.AdminRepository,
) *ChatService {
	return &ChatService{
		msgRepo:   msgRepo,
		loanRepo:  loanRepo,
		adminRepo: adminRepo,
	}
}

// PostMessageInput represents post message input
type PostMessageInput struct {
	Message     string   `json:"message"`
	Type        string   `json:"type,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
}

// Post appends a message to a loan's chat thread. The sender has read
// their own message from the start.
func (s *ChatService) Post(ctx context.Context, loanID uint, input *PostMessageInput, actor domain.Actor) (*models.LoanMessage, error) {
	if input.Message == "" && len(input.Attachments) == 0 {
		return nil, fmt.Errorf("%w: message or attachments required", domain.ErrValidation)
	}

	msgType := input.Type
	if msgType == "" {
		msgType = domain.MessageTypeText
	}
	if !domain.ValidMessageType(msgType) {
		return nil, fmt.Errorf("%w: unknown message type %q", domain.ErrValidation, msgType)
	}

	if _, err := s.loanRepo.GetByID(ctx, loanID); err != nil {
		return nil, fmt.Errorf("%w: loan %d", domain.ErrNotFound, loanID)
	}

	senderName := ""
	if admin, err := s.adminRepo.GetByID(ctx, actor.UserID); err == nil {
		senderName = admin.Name
	}
	senderID := actor.UserID

	msg := &models.LoanMessage{
		LoanID:      loanID,
		SenderID:    &senderID,
		SenderName:  senderName,
		SenderRole:  string(actor.Role),
		Type:        msgType,
		Message:     input.Message,
		Attachments: input.Attachments,
		ReadBy:      []uint{actor.UserID},
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ListMessagesOutput represents a page of a chat thread
type ListMessagesOutput struct {
	Messages []models.LoanMessage `json:"messages"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	Limit    int                  `json:"limit"`
}

// List returns a loan's messages oldest first
func (s *ChatService) List(ctx context.Context, loanID uint, page, limit int) (*ListMessagesOutput, error) {
	if _, err := s.loanRepo.GetByID(ctx, loanID); err != nil {
		return nil, fmt.Errorf("%w: loan %d", domain.ErrNotFound, loanID)
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	msgs, total, err := s.msgRepo.ListByLoan(ctx, loanID, page, limit)
	if err != nil {
		return nil, err
	}
	return &ListMessagesOutput{
		Messages: msgs,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

// MarkRead records that the actor has read every message in the thread
func (s *ChatService) MarkRead(ctx context.Context, loanID uint, actor domain.Actor) error {
	msgs, err := s.msgRepo.ListAllByLoan(ctx, loanID)
	if err != nil {
		return err
	}
	for i := range msgs {
		if msgs[i].ReadByUser(actor.UserID) {
			continue
		}
		msgs[i].ReadBy = append(msgs[i].ReadBy, actor.UserID)
		if err := s.msgRepo.Update(ctx, &msgs[i]); err != nil {
			return err
		}
	}
	return nil
}

// UnreadCount returns how many messages in the thread the actor has
// not read, excluding their own
func (s *ChatService) UnreadCount(ctx context.Context, loanID uint, actor domain.Actor) (int64, error) {
	msgs, err := s.msgRepo.ListAllByLoan(ctx, loanID)
	if err != nil {
		return 0, err
	}
	var count int64
	for i := range msgs {
		if msgs[i].SenderID != nil && *msgs[i].SenderID == actor.UserID {
			continue
		}
		if !msgs[i].ReadByUser(actor.UserID) {
			count++
		}
	}
	return count, nil
}
