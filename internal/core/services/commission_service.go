package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"
	"github.com/webdrave/funds-backend/internal/adapters/persistence/repositories"
	"github.com/webdrave/funds-backend/internal/core/domain"
)

// CreditOnCreateAndSettle mirrors the billing behaviour this service was
// migrated from: the DSA balance is credited when the commission is
// created AND both parties are credited again when it settles to
// credited. Product has not signed off on collapsing the two credit
// points, so the flag stays on and tests pin the cumulative effect.
const CreditOnCreateAndSettle = true

// loanAmountLabel is the submission field used to derive a commission
// amount from a percentage.
const loanAmountLabel = "Loan Amount"

// CommissionService handles commission ledger business logic
type CommissionService struct {
	commissionRepo *repositories.CommissionRepository
	loanRepo       *repositories.LoanRepository
	ledger         repositories.LedgerStore
}

// NewCommissionService creates a new commission service
func NewCommissionService(
	commissionRepo *repositories.CommissionRepository,
	loanRepo *repositories.LoanRepository,
	ledger repositories.LedgerStore,
) *CommissionService {
	return &CommissionService{
		commissionRepo: commissionRepo,
		loanRepo:       loanRepo,
		ledger:         ledger,
	}
}

// CreateCommissionInput represents create commission input
type CreateCommissionInput struct {
	LoanID     uint     `json:"loanId" validate:"required"`
	Amount     *float64 `json:"amount,omitempty"`
	Percentage *float64 `json:"percentage,omitempty"`
}

// Create records a commission for a loan, snapshotting the loan's
// DSA and RM identities, and credits the DSA balance immediately.
func (s *CommissionService) Create(ctx context.Context, input *CreateCommissionInput, actor domain.Actor) (*models.Commission, error) {
	if !actor.IsSuperadmin() && !actor.IsRM() {
		return nil, fmt.Errorf("%w: only superadmin or RM may create commissions", domain.ErrForbidden)
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	loan, err := s.loanRepo.GetByID(ctx, input.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: loan %d", domain.ErrNotFound, input.LoanID)
		}
		return nil, err
	}

	exists, err := s.commissionRepo.ExistsByLoanID(ctx, input.LoanID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: commission already exists for loan %d", domain.ErrConflict, input.LoanID)
	}

	var amount, percentage float64
	switch {
	case input.Amount != nil:
		amount = *input.Amount
		if input.Percentage != nil {
			percentage = *input.Percentage
		}
	case input.Percentage != nil:
		percentage = *input.Percentage
		amount = percentage / 100 * loanAmount(loan)
	}
	if amount < 0 {
		return nil, fmt.Errorf("%w: commission amount must not be negative", domain.ErrValidation)
	}

	commission := &models.Commission{
		LoanID:     input.LoanID,
		DsaID:      loan.DsaID,
		RmID:       loan.RmID,
		Amount:     amount,
		Percentage: percentage,
		Status:     domain.CommissionStatusPending,
		CreatedBy:  actor.UserID,
	}
	if err := s.commissionRepo.Create(ctx, commission); err != nil {
		return nil, err
	}

	if CreditOnCreateAndSettle && commission.DsaID != nil {
		if err := s.ledger.ApplyLedgerDelta(ctx, *commission.DsaID, amount, 0); err != nil {
			return nil, fmt.Errorf("%w: crediting DSA balance: %v", domain.ErrUpstream, err)
		}
	}

	return commission, nil
}

// UpdateCommissionInput represents update commission input
type UpdateCommissionInput struct {
	Status string `json:"status" validate:"required"`
}

// Update transitions a commission's status. Only the superadmin or the
// RM named on the commission may do so. Settling to credited credits
// both the DSA and the RM by the commission amount.
func (s *CommissionService) Update(ctx context.Context, id uint, input *UpdateCommissionInput, actor domain.Actor) (*models.Commission, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	commission, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.canUpdate(actor, commission) {
		return nil, fmt.Errorf("%w: only superadmin or the commission's RM may update it", domain.ErrForbidden)
	}

	if commission.IsTerminal() {
		return nil, fmt.Errorf("%w: commission %d is already %s", domain.ErrConflict, id, commission.Status)
	}

	switch input.Status {
	case domain.CommissionStatusPending,
		domain.CommissionStatusApproved,
		domain.CommissionStatusCredited,
		domain.CommissionStatusRejected:
	default:
		return nil, fmt.Errorf("%w: unknown commission status %q", domain.ErrValidation, input.Status)
	}

	settling := input.Status == domain.CommissionStatusCredited
	commission.Status = input.Status

	if err := s.commissionRepo.Update(ctx, commission); err != nil {
		return nil, err
	}

	if settling && CreditOnCreateAndSettle {
		if commission.DsaID != nil {
			if err := s.ledger.ApplyLedgerDelta(ctx, *commission.DsaID, commission.Amount, 0); err != nil {
				return nil, fmt.Errorf("%w: crediting DSA balance: %v", domain.ErrUpstream, err)
			}
		}
		if commission.RmID != nil {
			if err := s.ledger.ApplyLedgerDelta(ctx, *commission.RmID, commission.Amount, 0); err != nil {
				return nil, fmt.Errorf("%w: crediting RM balance: %v", domain.ErrUpstream, err)
			}
		}
	}

	return commission, nil
}

// GetByID gets a commission by ID
func (s *CommissionService) GetByID(ctx context.Context, id uint) (*models.Commission, error) {
	commission, err := s.commissionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: commission %d", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return commission, nil
}

// ListCommissionsInput represents commission list filters
type ListCommissionsInput struct {
	Status string
	DsaID  *uint
	RmID   *uint
}

// List lists commissions newest first, capped at the most recent
// hundred entries. RMs and DSAs are scoped to their own book.
func (s *CommissionService) List(ctx context.Context, input *ListCommissionsInput, actor domain.Actor) ([]models.Commission, error) {
	filter := repositories.CommissionFilter{
		Status: input.Status,
		DsaID:  input.DsaID,
		RmID:   input.RmID,
	}
	switch {
	case actor.IsDSA():
		id := actor.UserID
		filter.DsaID = &id
	case actor.IsRM():
		id := actor.UserID
		filter.RmID = &id
	}
	return s.commissionRepo.List(ctx, filter)
}

// DsaSummary represents a DSA's commission summary
type DsaSummary struct {
	Commissions           []models.Commission `json:"commissions"`
	Balance               float64             `json:"balance"`
	TotalCommissionEarned float64             `json:"totalCommissionEarned"`
}

// SummaryForDsa returns every commission of a DSA together with their
// current balance and the sum of commission amounts across all statuses.
func (s *CommissionService) SummaryForDsa(ctx context.Context, dsaID uint) (*DsaSummary, error) {
	admin, err := s.ledger.GetByID(ctx, dsaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: admin %d", domain.ErrNotFound, dsaID)
		}
		return nil, err
	}

	commissions, err := s.commissionRepo.ListByDsa(ctx, dsaID)
	if err != nil {
		return nil, err
	}

	total, err := s.commissionRepo.SumAmountByDsa(ctx, dsaID)
	if err != nil {
		return nil, err
	}

	return &DsaSummary{
		Commissions:           commissions,
		Balance:               admin.Balance,
		TotalCommissionEarned: total,
	}, nil
}

func (s *CommissionService) canUpdate(actor domain.Actor, c *models.Commission) bool {
	if actor.IsSuperadmin() {
		return true
	}
	return actor.IsRM() && c.RmID != nil && *c.RmID == actor.UserID
}

// loanAmount extracts the numeric loan amount field from the loan's
// value snapshot, zero when missing or non-numeric.
func loanAmount(loan *models.Loan) float64 {
	for _, page := range loan.Values {
		for _, f := range page.Fields {
			if f.Label != loanAmountLabel || f.Value == nil {
				continue
			}
			switch v := f.Value.(type) {
			case float64:
				return v
			case int:
				return float64(v)
			case string:
				if parsed, err := strconv.ParseFloat(v, 64); err == nil {
					return parsed
				}
			}
		}
	}
	return 0
}
