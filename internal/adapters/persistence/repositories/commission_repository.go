package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"
)

// commissionListCap bounds commission listings to the newest entries.
const commissionListCap = 100

// CommissionFilter narrows commission listings.
type CommissionFilter struct {
	Status string
	DsaID  *uint
	RmID   *uint
}

// CommissionRepository handles commission ledger persistence.
type CommissionRepository struct {
	db *gorm.DB
}

// NewCommissionRepository creates a new CommissionRepository.
func NewCommissionRepository(db *gorm.DB) *CommissionRepository {
	return &CommissionRepository{db: db}
}

// Create inserts a new commission entry.
func (r *CommissionRepository) Create(ctx context.Context, c *models.Commission) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// GetByID returns a commission with its loan and party relations loaded.
func (r *CommissionRepository) GetByID(ctx context.Context, id uint) (*models.Commission, error) {
	var c models.Commission
	err := r.db.WithContext(ctx).
		Preload("Loan").Preload("Dsa").Preload("Rm").
		First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ExistsByLoanID reports whether a commission already exists for the loan.
func (r *CommissionRepository) ExistsByLoanID(ctx context.Context, loanID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Commission{}).
		Where("loan_id = ?", loanID).Count(&count).Error
	return count > 0, err
}

// List returns commissions matching the filter, newest first, capped at
// the most recent hundred entries.
func (r *CommissionRepository) List(ctx context.Context, f CommissionFilter) ([]models.Commission, error) {
	var list []models.Commission
	query := r.db.WithContext(ctx).
		Preload("Loan").Preload("Dsa").Preload("Rm")
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.DsaID != nil {
		query = query.Where("dsa_id = ?", *f.DsaID)
	}
	if f.RmID != nil {
		query = query.Where("rm_id = ?", *f.RmID)
	}
	err := query.Order("created_at DESC").Limit(commissionListCap).Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListByDsa returns every commission snapshotted to the given DSA,
// newest first.
func (r *CommissionRepository) ListByDsa(ctx context.Context, dsaID uint) ([]models.Commission, error) {
	var list []models.Commission
	err := r.db.WithContext(ctx).
		Preload("Loan").
		Where("dsa_id = ?", dsaID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Update saves all fields of a commission.
func (r *CommissionRepository) Update(ctx context.Context, c *models.Commission) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// SumAmountByDsa returns the total commission amount snapshotted to a DSA.
func (r *CommissionRepository) SumAmountByDsa(ctx context.Context, dsaID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Commission{}).
		Where("dsa_id = ?", dsaID).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}
