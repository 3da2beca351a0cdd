package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"
	"github.com/webdrave/funds-backend/internal/adapters/persistence/repositories"
	"github.com/webdrave/funds-backend/internal/config"
	"github.com/webdrave/funds-backend/internal/core/domain"
	"github.com/webdrave/funds-backend/internal/pkg/jwt"
	"github.com/webdrave/funds-backend/internal/pkg/mailer"
	"github.com/webdrave/funds-backend/internal/pkg/password"
)

// resetCodeTTL is how long a password reset code stays valid.
const resetCodeTTL = 15 * time.Minute

// AdminService handles admin account business logic
type AdminService struct {
	adminRepo        *repositories.AdminRepository
	planRepo         *repositories.PlanRepository
	bankRepo         *repositories.BankRepository
	refreshTokenRepo *repositories.RefreshTokenRepository
	cfg              *config.Config
	mail             mailer.Mailer
	log              *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(
	adminRepo *repositories.AdminRepository,
	planRepo *repositories.PlanRepository,
	bankRepo *repositories.BankRepository,
	refreshTokenRepo *repositories.RefreshTokenRepository,
	cfg *config.Config,
	mail mailer.Mailer,
	log *zap.Logger,
) *AdminService {
	return &AdminService{
		adminRepo:        adminRepo,
		planRepo:         planRepo,
		bankRepo:         bankRepo,
		refreshTokenRepo: refreshTokenRepo,
		cfg:              cfg,
		mail:             mail,
		log:              log,
	}
}

// CreateAdminInput represents create admin input
type CreateAdminInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
	PlanID   *uint  `json:"planId,omitempty"`
	RmID     *uint  `json:"rmId,omitempty"`
}

// Create creates a new admin account. DSAs get a unique dsaCode and
// must name their owning RM; plan details are copied as a snapshot so
// later plan edits do not affect existing accounts.
func (s *AdminService) Create(ctx context.Context, input *CreateAdminInput, actor domain.Actor) (*models.AdminResponse, error) {
	if !actor.IsSuperadmin() && !actor.IsRM() {
		return nil, fmt.Errorf("%w: only superadmin or RM may create accounts", domain.ErrForbidden)
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}
	if !domain.ValidRole(input.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, input.Role)
	}
	if input.Role == string(domain.RoleSuperadmin) && !actor.IsSuperadmin() {
		return nil, fmt.Errorf("%w: only superadmin may create superadmins", domain.ErrForbidden)
	}

	exists, err := s.adminRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: email %s is already registered", domain.ErrConflict, input.Email)
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
		Role:     input.Role,
	}

	if input.Role == string(domain.RoleDSA) {
		code, err := s.generateDsaCode(ctx)
		if err != nil {
			return nil, err
		}
		admin.DsaCode = &code
		if input.RmID != nil {
			admin.RmID = input.RmID
		} else if actor.IsRM() {
			rmID := actor.UserID
			admin.RmID = &rmID
		}
	}

	if input.PlanID != nil {
		if err := s.snapshotPlan(ctx, admin, *input.PlanID); err != nil {
			return nil, err
		}
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	if s.mail != nil {
		if err := s.mail.Send(ctx, admin.Email, mailer.TemplateAdminCreation, mailer.Data{
			Name:     admin.Name,
			Email:    admin.Email,
			Password: input.Password,
		}); err != nil {
			s.log.Warn("welcome email failed", zap.String("email", admin.Email), zap.Error(err))
		}
	}

	return admin.ToResponse(), nil
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Admin        *models.AdminResponse `json:"admin"`
	AccessToken  string                `json:"access_token"`
	RefreshToken string                `json:"refresh_token"`
}

// Login authenticates an admin
func (s *AdminService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	admin, err := s.adminRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
		}
		return nil, err
	}

	if !password.Verify(input.Password, admin.Password) {
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	return s.issueTokens(ctx, admin)
}

// RefreshToken rotates a refresh token and issues a new token pair
func (s *AdminService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, err.Error())
	}

	tokenHash := password.HashToken(refreshToken)
	stored, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid refresh token", domain.ErrUnauthorized)
		}
		return nil, err
	}
	if stored.IsRevoked() || stored.IsExpired() {
		return nil, fmt.Errorf("%w: refresh token expired or revoked", domain.ErrUnauthorized)
	}

	admin, err := s.adminRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: admin %d", domain.ErrNotFound, claims.UserID)
	}

	if err := s.refreshTokenRepo.Revoke(ctx, tokenHash); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, admin)
}

// Logout revokes a refresh token
func (s *AdminService) Logout(ctx context.Context, refreshToken string) error {
	return s.refreshTokenRepo.Revoke(ctx, password.HashToken(refreshToken))
}

// GetByID gets an admin by ID
func (s *AdminService) GetByID(ctx context.Context, id uint) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: admin %d", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return admin, nil
}

// List lists admins, optionally filtered by role
func (s *AdminService) List(ctx context.Context, role string, actor domain.Actor) ([]*models.Admin, error) {
	if !actor.IsSuperadmin() && !actor.IsRM() {
		return nil, fmt.Errorf("%w: only superadmin or RM may list accounts", domain.ErrForbidden)
	}
	if role != "" && !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}
	return s.adminRepo.List(ctx, role)
}

// UpdateAdminInput represents update admin input
type UpdateAdminInput struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
	PlanID   *uint  `json:"planId,omitempty"`
	RmID     *uint  `json:"rmId,omitempty"`
	BankID   *uint  `json:"bankId,omitempty"`
}

// Update updates an admin account and re-snapshots the plan when it
// changes. The account owner is notified by email, best effort.
func (s *AdminService) Update(ctx context.Context, id uint, input *UpdateAdminInput, actor domain.Actor) (*models.AdminResponse, error) {
	if !actor.IsSuperadmin() && !actor.IsRM() && actor.UserID != id {
		return nil, fmt.Errorf("%w: cannot update another admin's account", domain.ErrForbidden)
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	admin, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		admin.Name = input.Name
	}
	if input.Email != "" && input.Email != admin.Email {
		exists, err := s.adminRepo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: email %s is already registered", domain.ErrConflict, input.Email)
		}
		admin.Email = input.Email
	}
	if input.Password != "" {
		hashed, err := password.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		admin.Password = hashed
	}
	if input.PlanID != nil {
		if err := s.snapshotPlan(ctx, admin, *input.PlanID); err != nil {
			return nil, err
		}
	}
	if input.RmID != nil {
		admin.RmID = input.RmID
	}
	if input.BankID != nil {
		admin.BankID = input.BankID
	}

	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return nil, err
	}

	if s.mail != nil {
		if err := s.mail.Send(ctx, admin.Email, mailer.TemplateAdminUpdation, mailer.Data{
			Name:    admin.Name,
			Message: "Your profile details were updated.",
		}); err != nil {
			s.log.Warn("update email failed", zap.String("email", admin.Email), zap.Error(err))
		}
	}

	return admin.ToResponse(), nil
}

// BankInput represents bank details input
type BankInput struct {
	AccountHolder string `json:"accountHolder" validate:"required"`
	AccountNumber string `json:"accountNumber" validate:"required"`
	BankName      string `json:"bankName" validate:"required"`
	IfscCode      string `json:"ifscCode" validate:"required"`
	Branch        string `json:"branch,omitempty"`
}

// UpdateBank creates or replaces the payout account linked to an admin
func (s *AdminService) UpdateBank(ctx context.Context, id uint, input *BankInput, actor domain.Actor) (*models.Bank, error) {
	if !actor.IsSuperadmin() && !actor.IsRM() && actor.UserID != id {
		return nil, fmt.Errorf("%w: cannot update another admin's bank details", domain.ErrForbidden)
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	admin, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var bank *models.Bank
	if admin.BankID != nil {
		bank, err = s.bankRepo.GetByID(ctx, *admin.BankID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if bank == nil {
		bank = &models.Bank{
			AccountHolder: input.AccountHolder,
			AccountNumber: input.AccountNumber,
			BankName:      input.BankName,
			IfscCode:      input.IfscCode,
			Branch:        input.Branch,
		}
		if err := s.bankRepo.Create(ctx, bank); err != nil {
			return nil, err
		}
		admin.BankID = &bank.ID
		if err := s.adminRepo.Update(ctx, admin); err != nil {
			return nil, err
		}
		return bank, nil
	}

	bank.AccountHolder = input.AccountHolder
	bank.AccountNumber = input.AccountNumber
	bank.BankName = input.BankName
	bank.IfscCode = input.IfscCode
	bank.Branch = input.Branch
	if err := s.bankRepo.Update(ctx, bank); err != nil {
		return nil, err
	}
	return bank, nil
}

// Delete soft deletes an admin account
func (s *AdminService) Delete(ctx context.Context, id uint, actor domain.Actor) error {
	if !actor.IsSuperadmin() {
		return fmt.Errorf("%w: only superadmin may delete accounts", domain.ErrForbidden)
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.adminRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	return s.refreshTokenRepo.RevokeAllByAdminID(ctx, id)
}

// ForgotPassword issues a reset code to the account email. A delivery
// failure is surfaced since the user cannot proceed without the code.
func (s *AdminService) ForgotPassword(ctx context.Context, email string) error {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: no account for %s", domain.ErrNotFound, email)
		}
		return err
	}

	code, err := password.GenerateResetCode()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(resetCodeTTL)
	admin.ResetCode = &code
	admin.ResetCodeExpiresAt = &expiresAt
	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return err
	}

	if err := s.mail.Send(ctx, admin.Email, mailer.TemplateResetPassword, mailer.Data{
		Name: admin.Name,
		Code: code,
	}); err != nil {
		return fmt.Errorf("%w: sending reset code: %v", domain.ErrUpstream, err)
	}
	return nil
}

// ResetPasswordInput represents reset password input
type ResetPasswordInput struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"code" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// ResetPassword verifies the reset code and sets a new password
func (s *AdminService) ResetPassword(ctx context.Context, input *ResetPasswordInput) error {
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	admin, err := s.adminRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: no account for %s", domain.ErrNotFound, input.Email)
		}
		return err
	}

	if admin.ResetCode == nil || *admin.ResetCode != input.Code {
		return fmt.Errorf("%w: invalid reset code", domain.ErrValidation)
	}
	if admin.ResetCodeExpiresAt == nil || time.Now().After(*admin.ResetCodeExpiresAt) {
		return fmt.Errorf("%w: reset code has expired", domain.ErrValidation)
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return err
	}
	admin.Password = hashed
	admin.ResetCode = nil
	admin.ResetCodeExpiresAt = nil

	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return err
	}
	return s.refreshTokenRepo.RevokeAllByAdminID(ctx, admin.ID)
}

func (s *AdminService) issueTokens(ctx context.Context, admin *models.Admin) (*AuthResponse, error) {
	accessToken, err := jwt.GenerateAccessToken(
		admin.ID, admin.Email, admin.Role,
		s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.GenerateRefreshToken(
		admin.ID, uuid.New().String(),
		s.cfg.JWT.RefreshSecret, s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	token := &models.RefreshToken{
		AdminID:   admin.ID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}
	if err := s.refreshTokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &AuthResponse{
		Admin:        admin.ToResponse(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AdminService) snapshotPlan(ctx context.Context, admin *models.Admin, planID uint) error {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: plan %d", domain.ErrNotFound, planID)
		}
		return err
	}
	admin.PlanID = &plan.ID
	admin.PlanName = plan.Name
	admin.Features = append([]string(nil), plan.Features...)
	return nil
}

func (s *AdminService) generateDsaCode(ctx context.Context) (string, error) {
	for i := 0; i < 5; i++ {
		suffix, err := password.GenerateResetCode()
		if err != nil {
			return "", err
		}
		code := "DSA" + suffix
		exists, err := s.adminRepo.ExistsByDsaCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: could not allocate a unique DSA code", domain.ErrUpstream)
}
