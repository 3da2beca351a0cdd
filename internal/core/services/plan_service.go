package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"
	"github.com/webdrave/funds-backend/internal/adapters/persistence/repositories"
	"github.com/webdrave/funds-backend/internal/core/domain"
)

// PlanService handles subscription plan business logic
type PlanService struct {
	planRepo *repositories.PlanRepository
}

// NewPlanService creates a new plan service
func NewPlanService(planRepo *repositories.PlanRepository) *PlanService {
	return &PlanService{planRepo: planRepo}
}

// PlanInput represents create or update plan input
type PlanInput struct {
	Name     string   `json:"name" validate:"required"`
	Features []string `json:"features" validate:"required,min=1"`
	Amount   float64  `json:"amount" validate:"gte=0"`
	Duration int      `json:"duration" validate:"gt=0"`
	IsActive *bool    `json:"isActive,omitempty"`
}

// Create creates a new plan
func (s *PlanService) Create(ctx context.Context, input *PlanInput, actor domain.Actor) (*models.Plan, error) {
	if !actor.IsSuperadmin() {
		return nil, fmt.Errorf("%w: only superadmin may manage plans", domain.ErrForbidden)
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	exists, err := s.planRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: plan %q already exists", domain.ErrConflict, input.Name)
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	plan := &models.Plan{
		Name:     input.Name,
		Features: input.Features,
		Amount:   input.Amount,
		Duration: input.Duration,
		IsActive: active,
	}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetByID gets a plan by ID
func (s *PlanService) GetByID(ctx context.Context, id uint) (*models.Plan, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: plan %d", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return plan, nil
}

// List lists plans. Non-superadmins only see active plans.
func (s *PlanService) List(ctx context.Context, actor domain.Actor) ([]models.Plan, error) {
	return s.planRepo.List(ctx, !actor.IsSuperadmin())
}

// Update updates a plan. Admins holding a snapshot of the old plan are
// unaffected.
func (s *PlanService) Update(ctx context.Context, id uint, input *PlanInput, actor domain.Actor) (*models.Plan, error) {
	if !actor.IsSuperadmin() {
		return nil, fmt.Errorf("%w: only superadmin may manage plans", domain.ErrForbidden)
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	plan, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != plan.Name {
		exists, err := s.planRepo.ExistsByName(ctx, input.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: plan %q already exists", domain.ErrConflict, input.Name)
		}
	}

	plan.Name = input.Name
	plan.Features = input.Features
	plan.Amount = input.Amount
	plan.Duration = input.Duration
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// SetActive toggles a plan's availability
func (s *PlanService) SetActive(ctx context.Context, id uint, active bool, actor domain.Actor) (*models.Plan, error) {
	if !actor.IsSuperadmin() {
		return nil, fmt.Errorf("%w: only superadmin may manage plans", domain.ErrForbidden)
	}
	plan, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	plan.IsActive = active
	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Delete deletes a plan
func (s *PlanService) Delete(ctx context.Context, id uint, actor domain.Actor) error {
	if !actor.IsSuperadmin() {
		return fmt.Errorf("%w: only superadmin may manage plans", domain.ErrForbidden)
	}
	err := s.planRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: plan %d", domain.ErrNotFound, id)
	}
	return err
}
