package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"
	"github.com/webdrave/funds-backend/internal/adapters/persistence/repositories"
	"github.com/webdrave/funds-backend/internal/config"
	"github.com/webdrave/funds-backend/internal/core/domain"
	"github.com/webdrave/funds-backend/internal/pkg/mailer"
)

// ==========================
// Test Helper Functions
// ==========================

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func createTestAdmin(t *testing.T, db *gorm.DB, role domain.Role, balance float64) *models.Admin {
	t.Helper()

	admin := &models.Admin{
		Name:     fmt.Sprintf("%s user", role),
		Email:    fmt.Sprintf("%s-%d@test.local", role, seq(db)),
		Password: "hashed",
		Role:     string(role),
		Balance:  balance,
	}
	require.NoError(t, db.Create(admin).Error)
	return admin
}

// seq returns a per-database counter so generated emails stay unique.
func seq(db *gorm.DB) int64 {
	var n int64
	db.Model(&models.Admin{}).Count(&n)
	return n
}

func createTestTemplate(t *testing.T, db *gorm.DB, name string) *models.LoanFormTemplate {
	t.Helper()

	tpl := &models.LoanFormTemplate{
		Name:     name,
		LoanType: domain.LoanTypePrivate,
		Pages: []models.TemplatePage{
			{
				PageNumber: 2,
				Title:      "Financials",
				Fields: []models.TemplateField{
					{Label: "Loan Amount", Type: domain.FieldTypeNumber, Required: true},
					{Label: "Salary Slip", Type: domain.FieldTypeDocument},
				},
			},
			{
				PageNumber: 1,
				Title:      "Applicant",
				Fields: []models.TemplateField{
					{Label: "Full Name", Type: domain.FieldTypeText, Required: true},
					{Label: "Phone", Type: domain.FieldTypeText},
				},
			},
		},
	}
	require.NoError(t, db.Create(tpl).Error)
	return tpl
}

func createTestLoan(t *testing.T, db *gorm.DB, dsaID, rmID *uint, amount float64) *models.Loan {
	t.Helper()

	loan := &models.Loan{
		Subscriber: "Test Subscriber",
		LoanType:   domain.LoanTypePrivate,
		Status:     domain.LoanStatusPending,
		DsaID:      dsaID,
		RmID:       rmID,
		Values: []models.PageValue{
			{
				PageNumber: 1,
				Title:      "Financials",
				Fields: []models.FieldValue{
					{Label: "Loan Amount", Value: amount},
				},
			},
		},
	}
	require.NoError(t, db.Create(loan).Error)
	return loan
}

func newTestNotificationService(db *gorm.DB) *NotificationService {
	log := zap.NewNop()
	return NewNotificationService(
		repositories.NewNotificationRepository(db),
		repositories.NewAdminRepository(db),
		mailer.NewLogMailer(log),
		log,
	)
}

func newTestLoanService(db *gorm.DB) *LoanService {
	return NewLoanService(
		repositories.NewLoanRepository(db),
		repositories.NewTemplateRepository(db),
		repositories.NewMessageRepository(db),
		newTestNotificationService(db),
	)
}

func newTestCommissionService(db *gorm.DB) *CommissionService {
	return NewCommissionService(
		repositories.NewCommissionRepository(db),
		repositories.NewLoanRepository(db),
		repositories.NewAdminRepository(db),
	)
}

func newTestWithdrawalService(db *gorm.DB) *WithdrawalService {
	return NewWithdrawalService(
		repositories.NewWithdrawalRepository(db),
		repositories.NewAdminRepository(db),
		newTestNotificationService(db),
	)
}

func newTestAdminService(db *gorm.DB) *AdminService {
	log := zap.NewNop()
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
	return NewAdminService(
		repositories.NewAdminRepository(db),
		repositories.NewPlanRepository(db),
		repositories.NewBankRepository(db),
		repositories.NewRefreshTokenRepository(db),
		cfg,
		mailer.NewLogMailer(log),
		log,
	)
}

func actorFor(admin *models.Admin) domain.Actor {
	return domain.Actor{UserID: admin.ID, Role: domain.Role(admin.Role)}
}

func adminBalance(t *testing.T, db *gorm.DB, id uint) (float64, float64) {
	t.Helper()

	var admin models.Admin
	require.NoError(t, db.First(&admin, id).Error)
	return admin.Balance, admin.ReservedBalance
}
