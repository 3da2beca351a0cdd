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

// ApplicationService handles public contact applications and support
// issues.
type ApplicationService struct {
	applicationRepo *repositories.ApplicationRepository
	issueRepo       *repositories.IssueRepository
}

// NewApplicationService creates a new application service
func NewApplicationService(
	applicationRepo *repositories.ApplicationRepository,
	issueRepo *repositories.IssueRepository,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		issueRepo:       issueRepo,
	}
}

// SubmitApplicationInput represents a public contact form submission
type SubmitApplicationInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Message string `json:"message,omitempty"`
}

// Submit records an unauthenticated contact application
func (s *ApplicationService) Submit(ctx context.Context, input *SubmitApplicationInput) (*models.Application, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	app := &models.Application{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Message: input.Message,
		Status:  domain.ApplicationStatusPending,
	}
	if err := s.applicationRepo.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// ListApplications lists contact applications, newest first
func (s *ApplicationService) ListApplications(ctx context.Context, actor domain.Actor) ([]models.Application, error) {
	if !actor.IsSuperadmin() && !actor.IsRM() {
		return nil, fmt.Errorf("%w: only superadmin or RM may list applications", domain.ErrForbidden)
	}
	return s.applicationRepo.List(ctx)
}

// UpdateApplicationStatus sets an application's status
func (s *ApplicationService) UpdateApplicationStatus(ctx context.Context, id uint, status string, actor domain.Actor) error {
	if !actor.IsSuperadmin() && !actor.IsRM() {
		return fmt.Errorf("%w: only superadmin or RM may update applications", domain.ErrForbidden)
	}
	if !domain.ValidApplicationStatus(status) {
		return fmt.Errorf("%w: unknown application status %q", domain.ErrValidation, status)
	}
	err := s.applicationRepo.UpdateStatus(ctx, id, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: application %d", domain.ErrNotFound, id)
	}
	return err
}

// ReportIssueInput represents a support issue report
type ReportIssueInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Priority    string   `json:"priority,omitempty"`
	Category    string   `json:"category,omitempty"`
	Screenshots []string `json:"screenshots,omitempty"`
}

// ReportIssue files a support issue on behalf of the actor
func (s *ApplicationService) ReportIssue(ctx context.Context, input *ReportIssueInput, actor domain.Actor) (*models.Issue, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	issue := &models.Issue{
		UserID:      actor.UserID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Category:    input.Category,
		Screenshots: input.Screenshots,
	}
	if err := s.issueRepo.Create(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

// ListIssues lists issues. Non-superadmins only see their own.
func (s *ApplicationService) ListIssues(ctx context.Context, actor domain.Actor) ([]models.Issue, error) {
	if actor.IsSuperadmin() {
		return s.issueRepo.List(ctx, nil)
	}
	id := actor.UserID
	return s.issueRepo.List(ctx, &id)
}
