package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"
	"github.com/webdrave/funds-backend/internal/adapters/persistence/repositories"
	"github.com/webdrave/funds-backend/internal/core/domain"
	"github.com/webdrave/funds-backend/internal/pkg/mailer"
)

// NotificationService persists notifications and mirrors them to email
// on a best effort basis.
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	adminRepo        *repositories.AdminRepository
	mail             mailer.Mailer
	log              *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	notificationRepo *repositories.NotificationRepository,
	adminRepo *repositories.AdminRepository,
	mail mailer.Mailer,
	log *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		adminRepo:        adminRepo,
		mail:             mail,
		log:              log,
	}
}

// Notify stores a notification for the user and mirrors it to their
// email address. An email failure is logged, never propagated.
func (s *NotificationService) Notify(ctx context.Context, userID uint, title, message string) error {
	n := &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return err
	}

	if s.mail != nil {
		admin, err := s.adminRepo.GetByID(ctx, userID)
		if err == nil {
			if err := s.mail.Send(ctx, admin.Email, mailer.TemplateNotification, mailer.Data{
				Name:    title,
				Message: message,
			}); err != nil {
				s.log.Warn("notification email failed",
					zap.Uint("user_id", userID),
					zap.Error(err))
			}
		}
	}

	return nil
}

// ListForUser returns the actor's notifications, newest first
func (s *NotificationService) ListForUser(ctx context.Context, actor domain.Actor) ([]models.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, actor.UserID)
}

// MarkRead flags a notification as read
func (s *NotificationService) MarkRead(ctx context.Context, id uint) error {
	err := s.notificationRepo.MarkRead(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: notification %d", domain.ErrNotFound, id)
	}
	return err
}

// MarkAllRead flags all of the actor's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, actor domain.Actor) error {
	return s.notificationRepo.MarkAllRead(ctx, actor.UserID)
}

// Delete removes a notification
func (s *NotificationService) Delete(ctx context.Context, id uint) error {
	err := s.notificationRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: notification %d", domain.ErrNotFound, id)
	}
	return err
}
