package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Admins, Plans, Banks
// ============================================================

// Admin represents admins table. One entity covers all three roles
// (SUPERADMIN, RM, DSA); behavior differs only in authorization checks.
type Admin struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Role     string `gorm:"size:20;default:'DSA'" json:"role"`

	// Plan snapshot copied at creation/update time, never live-joined.
	PlanID   *uint    `json:"plan_id"`
	PlanName string   `gorm:"size:100" json:"plan_name"`
	Features []string `gorm:"serializer:json" json:"features"`

	// DSA only
	DsaCode *string `gorm:"size:20;uniqueIndex" json:"dsa_code,omitempty"`
	RmID    *uint   `gorm:"index" json:"rm_id,omitempty"`

	// Mutated only through the commission and withdrawal ledgers.
	Balance         float64 `gorm:"type:decimal(15,2);default:0" json:"balance"`
	ReservedBalance float64 `gorm:"type:decimal(15,2);default:0" json:"reserved_balance"`

	BankID *uint `json:"bank_id,omitempty"`

	ResetCode          *string    `gorm:"size:10" json:"-"`
	ResetCodeExpiresAt *time.Time `json:"-"`

	IsDeleted bool      `gorm:"default:false;index" json:"is_deleted"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Bank *Bank `gorm:"foreignKey:BankID" json:"bank,omitempty"`
}

func (Admin) TableName() string {
	return "admins"
}

// AdminResponse DTO
type AdminResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	PlanID          *uint     `json:"plan_id,omitempty"`
	PlanName        string    `json:"plan_name,omitempty"`
	Features        []string  `json:"features,omitempty"`
	DsaCode         *string   `json:"dsa_code,omitempty"`
	RmID            *uint     `json:"rm_id,omitempty"`
	Balance         float64   `json:"balance"`
	ReservedBalance float64   `json:"reserved_balance"`
	Bank            *Bank     `json:"bank,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func (a *Admin) ToResponse() *AdminResponse {
	return &AdminResponse{
		ID:              a.ID,
		Name:            a.Name,
		Email:           a.Email,
		Role:            a.Role,
		PlanID:          a.PlanID,
		PlanName:        a.PlanName,
		Features:        a.Features,
		DsaCode:         a.DsaCode,
		RmID:            a.RmID,
		Balance:         a.Balance,
		ReservedBalance: a.ReservedBalance,
		Bank:            a.Bank,
		CreatedAt:       a.CreatedAt,
	}
}

// Plan represents plans table. Plans are templates for admin creation;
// admins carry a snapshot copy, so later plan edits never touch them.
type Plan struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Features  []string  `gorm:"serializer:json" json:"features"`
	Amount    float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Duration  int       `gorm:"not null" json:"duration"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Plan) TableName() string {
	return "plans"
}

// Bank represents bank_details table (DSA payout accounts)
type Bank struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AccountHolder string    `gorm:"size:100" json:"account_holder"`
	AccountNumber string    `gorm:"size:30" json:"account_number"`
	BankName      string    `gorm:"size:100" json:"bank_name"`
	IfscCode      string    `gorm:"size:20" json:"ifsc_code"`
	Branch        string    `gorm:"size:100" json:"branch"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Bank) TableName() string {
	return "bank_details"
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	AdminID   uint       `gorm:"index;not null" json:"admin_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	Admin     Admin      `gorm:"foreignKey:AdminID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Public applications & support issues
// ============================================================

// Application represents applications table (public contact/loan enquiries)
type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;not null" json:"email"`
	Phone     string    `gorm:"size:20;not null" json:"phone"`
	Message   string    `gorm:"type:text" json:"message"`
	Status    string    `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Application) TableName() string {
	return "applications"
}

// Issue represents issues table (in-app problem reports)
type Issue struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Priority    string    `gorm:"size:20" json:"priority"`
	Category    string    `gorm:"size:50" json:"category"`
	Screenshots []string  `gorm:"serializer:json" json:"screenshots"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Issue) TableName() string {
	return "issues"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Admin{},
		&Plan{},
		&Bank{},
		&RefreshToken{},
		&Application{},
		&Issue{},
		&LoanFormTemplate{},
		&Loan{},
		&Commission{},
		&WithdrawRequest{},
		&Notification{},
		&LoanMessage{},
	)
}
