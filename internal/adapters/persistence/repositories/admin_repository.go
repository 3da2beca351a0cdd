package repositories

import (
	"context"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// AdminRepository handles admin data access
type AdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create creates a new admin
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

// GetByID gets an admin by ID (soft-deleted admins excluded)
func (r *AdminRepository) GetByID(ctx context.Context, id uint) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).
		Preload("Bank").
		Where("is_deleted = ?", false).
		First(&admin, id).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetByEmail gets an admin by email
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).
		Where("email = ? AND is_deleted = ?", email, false).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// ExistsByEmail checks if an email is already taken
func (r *AdminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Admin{}).
		Where("email = ? AND is_deleted = ?", email, false).
		Count(&count).Error
	return count > 0, err
}

// ExistsByDsaCode checks if a DSA code is already taken
func (r *AdminRepository) ExistsByDsaCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Admin{}).
		Where("dsa_code = ?", code).
		Count(&count).Error
	return count > 0, err
}

// List lists admins, optionally filtered by role
func (r *AdminRepository) List(ctx context.Context, role string) ([]*models.Admin, error) {
	var admins []*models.Admin
	q := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("created_at DESC")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	err := q.Find(&admins).Error
	return admins, err
}

// ListByRoles lists admins holding any of the given roles
func (r *AdminRepository) ListByRoles(ctx context.Context, roles ...string) ([]*models.Admin, error) {
	var admins []*models.Admin
	err := r.db.WithContext(ctx).
		Where("is_deleted = ? AND role IN ?", false, roles).
		Find(&admins).Error
	return admins, err
}

// Update saves an admin
func (r *AdminRepository) Update(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Save(admin).Error
}

// SoftDelete marks an admin deleted without removing the row
func (r *AdminRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Admin{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

// ApplyLedgerDelta applies relative increments to both balance counters
// in one UPDATE, so the balance/reservedBalance split can never be torn
// by a concurrent writer.
func (r *AdminRepository) ApplyLedgerDelta(ctx context.Context, adminID uint, balanceDelta, reservedDelta float64) error {
	res := r.db.WithContext(ctx).Model(&models.Admin{}).
		Where("id = ? AND is_deleted = ?", adminID, false).
		UpdateColumns(map[string]interface{}{
			"balance":          gorm.Expr("balance + ?", balanceDelta),
			"reserved_balance": gorm.Expr("reserved_balance + ?", reservedDelta),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// BankRepository handles bank detail data access
type BankRepository struct {
	db *gorm.DB
}

// NewBankRepository creates a new bank repository
func NewBankRepository(db *gorm.DB) *BankRepository {
	return &BankRepository{db: db}
}

// Create creates bank details
func (r *BankRepository) Create(ctx context.Context, bank *models.Bank) error {
	return r.db.WithContext(ctx).Create(bank).Error
}

// GetByID gets bank details by ID
func (r *BankRepository) GetByID(ctx context.Context, id uint) (*models.Bank, error) {
	var bank models.Bank
	err := r.db.WithContext(ctx).First(&bank, id).Error
	if err != nil {
		return nil, err
	}
	return &bank, nil
}

// Update saves bank details
func (r *BankRepository) Update(ctx context.Context, bank *models.Bank) error {
	return r.db.WithContext(ctx).Save(bank).Error
}
