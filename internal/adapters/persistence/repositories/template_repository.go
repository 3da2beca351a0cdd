package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"
)

// TemplateRepository handles loan form template persistence.
type TemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new TemplateRepository.
func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create inserts a new template.
func (r *TemplateRepository) Create(ctx context.Context, tpl *models.LoanFormTemplate) error {
	return r.db.WithContext(ctx).Create(tpl).Error
}

// GetByID returns a template by its primary key.
func (r *TemplateRepository) GetByID(ctx context.Context, id uint) (*models.LoanFormTemplate, error) {
	var tpl models.LoanFormTemplate
	if err := r.db.WithContext(ctx).First(&tpl, id).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

// GetByName returns a template by its unique name.
func (r *TemplateRepository) GetByName(ctx context.Context, name string) (*models.LoanFormTemplate, error) {
	var tpl models.LoanFormTemplate
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tpl).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

// ExistsByName reports whether a template with the given name exists.
func (r *TemplateRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LoanFormTemplate{}).
		Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// List returns templates, optionally filtered by loan type, newest first.
func (r *TemplateRepository) List(ctx context.Context, loanType string) ([]models.LoanFormTemplate, error) {
	var tpls []models.LoanFormTemplate
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if loanType != "" {
		query = query.Where("loan_type = ?", loanType)
	}
	if err := query.Find(&tpls).Error; err != nil {
		return nil, err
	}
	return tpls, nil
}

// Update saves all fields of a template.
func (r *TemplateRepository) Update(ctx context.Context, tpl *models.LoanFormTemplate) error {
	return r.db.WithContext(ctx).Save(tpl).Error
}

// Delete removes a template permanently.
func (r *TemplateRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.LoanFormTemplate{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
