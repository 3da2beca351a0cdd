package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"
)

// LoanFilter narrows loan listings.
type LoanFilter struct {
	Status   string
	LoanType string
	DsaID    *uint
	RmID     *uint
	Search   string
	Page     int
	Limit    int
}

// LoanRepository handles loan application persistence.
type LoanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new LoanRepository.
func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

// Create inserts a new loan.
func (r *LoanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// GetByID returns a loan by its primary key.
func (r *LoanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	if err := r.db.WithContext(ctx).First(&loan, id).Error; err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *LoanRepository) applyFilter(query *gorm.DB, f LoanFilter) *gorm.DB {
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.LoanType != "" {
		query = query.Where("loan_type = ?", f.LoanType)
	}
	if f.DsaID != nil {
		query = query.Where("dsa_id = ?", *f.DsaID)
	}
	if f.RmID != nil {
		query = query.Where("rm_id = ?", *f.RmID)
	}
	if f.Search != "" {
		like := fmt.Sprintf("%%%s%%", f.Search)
		query = query.Where("subscriber LIKE ? OR loan_sub_type LIKE ?", like, like)
	}
	return query
}

// List returns loans matching the filter, newest first, with the total
// count before paging.
func (r *LoanRepository) List(ctx context.Context, f LoanFilter) ([]models.Loan, int64, error) {
	var loans []models.Loan
	var total int64

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Loan{}), f)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if f.Limit > 0 {
		offset := 0
		if f.Page > 1 {
			offset = (f.Page - 1) * f.Limit
		}
		query = query.Offset(offset).Limit(f.Limit)
	}
	if err := query.Find(&loans).Error; err != nil {
		return nil, 0, err
	}
	return loans, total, nil
}

// Update saves all fields of a loan.
func (r *LoanRepository) Update(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

// Delete removes a loan permanently.
func (r *LoanRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Loan{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByStatus returns the number of loans in the given status,
// optionally scoped to a DSA or RM.
func (r *LoanRepository) CountByStatus(ctx context.Context, status string, dsaID, rmID *uint) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Loan{}).Where("status = ?", status)
	if dsaID != nil {
		query = query.Where("dsa_id = ?", *dsaID)
	}
	if rmID != nil {
		query = query.Where("rm_id = ?", *rmID)
	}
	err := query.Count(&count).Error
	return count, err
}

// PendingTypeCounts returns pending loan counts grouped by loan type,
// optionally scoped to a DSA or RM.
func (r *LoanRepository) PendingTypeCounts(ctx context.Context, dsaID, rmID *uint) (map[string]int64, error) {
	type row struct {
		LoanType string
		Count    int64
	}
	var rows []row
	query := r.db.WithContext(ctx).Model(&models.Loan{}).
		Select("loan_type, COUNT(*) as count").
		Where("status = ?", "pending").
		Group("loan_type")
	if dsaID != nil {
		query = query.Where("dsa_id = ?", *dsaID)
	}
	if rmID != nil {
		query = query.Where("rm_id = ?", *rmID)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.LoanType] = rw.Count
	}
	return counts, nil
}

// StatusCounts returns loan counts grouped by status, optionally scoped
// to a DSA or RM.
func (r *LoanRepository) StatusCounts(ctx context.Context, dsaID, rmID *uint) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	query := r.db.WithContext(ctx).Model(&models.Loan{}).
		Select("status, COUNT(*) as count").Group("status")
	if dsaID != nil {
		query = query.Where("dsa_id = ?", *dsaID)
	}
	if rmID != nil {
		query = query.Where("rm_id = ?", *rmID)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}
