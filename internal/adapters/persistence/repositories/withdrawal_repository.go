package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"
)

// WithdrawalFilter narrows withdrawal listings.
type WithdrawalFilter struct {
	Status string
	UserID *uint
}

// WithdrawalRepository handles withdraw request persistence.
type WithdrawalRepository struct {
	db *gorm.DB
}

// NewWithdrawalRepository creates a new WithdrawalRepository.
func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

// Create inserts a new withdraw request.
func (r *WithdrawalRepository) Create(ctx context.Context, w *models.WithdrawRequest) error {
	return r.db.WithContext(ctx).Create(w).Error
}

// GetByID returns a withdraw request with its owner loaded.
func (r *WithdrawalRepository) GetByID(ctx context.Context, id uint) (*models.WithdrawRequest, error) {
	var w models.WithdrawRequest
	err := r.db.WithContext(ctx).Preload("User").First(&w, id).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// List returns withdraw requests matching the filter, newest first.
func (r *WithdrawalRepository) List(ctx context.Context, f WithdrawalFilter) ([]models.WithdrawRequest, error) {
	var list []models.WithdrawRequest
	query := r.db.WithContext(ctx).Preload("User")
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.UserID != nil {
		query = query.Where("user_id = ?", *f.UserID)
	}
	if err := query.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Update saves all fields of a withdraw request.
func (r *WithdrawalRepository) Update(ctx context.Context, w *models.WithdrawRequest) error {
	return r.db.WithContext(ctx).Save(w).Error
}
