package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"
	"github.com/webdrave/funds-backend/internal/adapters/persistence/repositories"
	"github.com/webdrave/funds-backend/internal/core/domain"
)

// WithdrawalService handles withdraw request business logic
type WithdrawalService struct {
	withdrawalRepo *repositories.WithdrawalRepository
	ledger         repositories.LedgerStore
	notifySvc      *NotificationService
}

// NewWithdrawalService creates a new withdrawal service
func NewWithdrawalService(
	withdrawalRepo *repositories.WithdrawalRepository,
	ledger repositories.LedgerStore,
	notifySvc *NotificationService,
) *WithdrawalService {
	return &WithdrawalService{
		withdrawalRepo: withdrawalRepo,
		ledger:         ledger,
		notifySvc:      notifySvc,
	}
}

// CreateWithdrawInput represents create withdraw request input
type CreateWithdrawInput struct {
	Amount  float64 `json:"amount" validate:"required"`
	Remarks string  `json:"remarks,omitempty"`
}

// Create opens a withdraw request against the actor's available
// balance, moving the amount from balance into reserved balance.
func (s *WithdrawalService) Create(ctx context.Context, input *CreateWithdrawInput, actor domain.Actor) (*models.WithdrawRequest, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", domain.ErrValidation)
	}

	admin, err := s.ledger.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: admin %d", domain.ErrNotFound, actor.UserID)
		}
		return nil, err
	}

	if input.Amount > admin.Balance {
		return nil, fmt.Errorf("%w: requested %.2f, available %.2f",
			domain.ErrInsufficientBalance, input.Amount, admin.Balance)
	}

	request := &models.WithdrawRequest{
		UserID:  actor.UserID,
		Amount:  input.Amount,
		Status:  domain.WithdrawStatusPending,
		Remarks: input.Remarks,
	}
	if err := s.withdrawalRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	if err := s.ledger.ApplyLedgerDelta(ctx, actor.UserID, -input.Amount, input.Amount); err != nil {
		return nil, fmt.Errorf("%w: reserving withdrawal funds: %v", domain.ErrUpstream, err)
	}

	return request, nil
}

// UpdateWithdrawInput represents a withdrawal resolution request
type UpdateWithdrawInput struct {
	Status  string `json:"status" validate:"required"`
	Remarks string `json:"remarks,omitempty"`
}

// UpdateStatus resolves a withdraw request. Processing releases the
// reservation as a payout, rejection returns the funds to balance. Any
// other status is stored verbatim with no balance effect.
func (s *WithdrawalService) UpdateStatus(ctx context.Context, id uint, input *UpdateWithdrawInput, actor domain.Actor) (*models.WithdrawRequest, error) {
	if !actor.IsSuperadmin() && !actor.IsRM() {
		return nil, fmt.Errorf("%w: only superadmin or RM may resolve withdrawals", domain.ErrForbidden)
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	request, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	request.Status = input.Status
	if input.Remarks != "" {
		request.Remarks = input.Remarks
	}

	switch input.Status {
	case domain.WithdrawStatusProcessed:
		now := time.Now()
		actorID := actor.UserID
		request.ProcessedAt = &now
		request.ProcessedBy = &actorID
	}

	if err := s.withdrawalRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	switch input.Status {
	case domain.WithdrawStatusProcessed:
		if err := s.ledger.ApplyLedgerDelta(ctx, request.UserID, 0, -request.Amount); err != nil {
			return nil, fmt.Errorf("%w: releasing reserved funds: %v", domain.ErrUpstream, err)
		}
	case domain.WithdrawStatusRejected:
		if err := s.ledger.ApplyLedgerDelta(ctx, request.UserID, request.Amount, -request.Amount); err != nil {
			return nil, fmt.Errorf("%w: returning reserved funds: %v", domain.ErrUpstream, err)
		}
	}

	if s.notifySvc != nil {
		s.notifySvc.Notify(ctx, request.UserID, "Withdrawal update",
			fmt.Sprintf("Your withdrawal of %.2f is now %s.", request.Amount, request.Status))
	}

	return request, nil
}

// GetByID gets a withdraw request by ID
func (s *WithdrawalService) GetByID(ctx context.Context, id uint) (*models.WithdrawRequest, error) {
	request, err := s.withdrawalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: withdraw request %d", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return request, nil
}

// ListWithdrawalsInput represents withdrawal list filters
type ListWithdrawalsInput struct {
	Status string
	UserID *uint
}

// List lists withdraw requests newest first. DSAs only see their own.
func (s *WithdrawalService) List(ctx context.Context, input *ListWithdrawalsInput, actor domain.Actor) ([]models.WithdrawRequest, error) {
	filter := repositories.WithdrawalFilter{
		Status: input.Status,
		UserID: input.UserID,
	}
	if actor.IsDSA() {
		id := actor.UserID
		filter.UserID = &id
	}
	return s.withdrawalRepo.List(ctx, filter)
}
