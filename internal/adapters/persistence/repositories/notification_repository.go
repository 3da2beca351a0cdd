package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"
)

// NotificationRepository handles notification persistence.
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a new notification.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// ListByUser returns a user's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// MarkRead flags a single notification as read.
func (r *NotificationRepository) MarkRead(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkAllRead flags all of a user's notifications as read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND `read` = ?", userID, false).
		Update("read", true).Error
}

// Delete removes a notification permanently.
func (r *NotificationRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Notification{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MessageRepository handles loan chat message persistence.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new chat message.
func (r *MessageRepository) Create(ctx context.Context, m *models.LoanMessage) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// ListByLoan returns a loan's messages oldest first, with the total
// count before paging.
func (r *MessageRepository) ListByLoan(ctx context.Context, loanID uint, page, limit int) ([]models.LoanMessage, int64, error) {
	var msgs []models.LoanMessage
	var total int64

	query := r.db.WithContext(ctx).Model(&models.LoanMessage{}).Where("loan_id = ?", loanID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at ASC")
	if limit > 0 {
		offset := 0
		if page > 1 {
			offset = (page - 1) * limit
		}
		query = query.Offset(offset).Limit(limit)
	}
	if err := query.Find(&msgs).Error; err != nil {
		return nil, 0, err
	}
	return msgs, total, nil
}

// ListAllByLoan returns every message of a loan. Read state lives in a
// JSON column, so unread counting happens in the service.
func (r *MessageRepository) ListAllByLoan(ctx context.Context, loanID uint) ([]models.LoanMessage, error) {
	var msgs []models.LoanMessage
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// Update saves all fields of a message.
func (r *MessageRepository) Update(ctx context.Context, m *models.LoanMessage) error {
	return r.db.WithContext(ctx).Save(m).Error
}
