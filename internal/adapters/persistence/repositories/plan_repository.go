package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"
)

// PlanRepository handles subscription plan persistence.
type PlanRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Create inserts a new plan.
func (r *PlanRepository) Create(ctx context.Context, p *models.Plan) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// GetByID returns a plan by its primary key.
func (r *PlanRepository) GetByID(ctx context.Context, id uint) (*models.Plan, error) {
	var p models.Plan
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ExistsByName reports whether a plan with the given name exists.
func (r *PlanRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Plan{}).
		Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// List returns plans, optionally only active ones, newest first.
func (r *PlanRepository) List(ctx context.Context, activeOnly bool) ([]models.Plan, error) {
	var plans []models.Plan
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// Update saves all fields of a plan.
func (r *PlanRepository) Update(ctx context.Context, p *models.Plan) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete removes a plan permanently.
func (r *PlanRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Plan{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ApplicationRepository handles public contact application persistence.
type ApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new ApplicationRepository.
func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts a new application.
func (r *ApplicationRepository) Create(ctx context.Context, a *models.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// List returns applications, newest first.
func (r *ApplicationRepository) List(ctx context.Context) ([]models.Application, error) {
	var list []models.Application
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateStatus sets an application's status.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IssueRepository handles support issue persistence.
type IssueRepository struct {
	db *gorm.DB
}

// NewIssueRepository creates a new IssueRepository.
func NewIssueRepository(db *gorm.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

// Create inserts a new issue.
func (r *IssueRepository) Create(ctx context.Context, i *models.Issue) error {
	return r.db.WithContext(ctx).Create(i).Error
}

// List returns issues, newest first, optionally scoped to a user.
func (r *IssueRepository) List(ctx context.Context, userID *uint) ([]models.Issue, error) {
	var list []models.Issue
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
