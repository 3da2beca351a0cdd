package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"
	"github.com/webdrave/funds-backend/internal/adapters/persistence/repositories"
	"github.com/webdrave/funds-backend/internal/core/domain"
)

// validate checks service inputs against their struct tags.
var validate = validator.New()

// TemplateService handles loan form template business logic
type TemplateService struct {
	templateRepo *repositories.TemplateRepository
}

// NewTemplateService creates a new template service
func NewTemplateService(templateRepo *repositories.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

// FieldInput represents a single form field definition
type FieldInput struct {
	Label    string   `json:"label" validate:"required"`
	Type     string   `json:"type" validate:"required"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
	Fixed    bool     `json:"fixed,omitempty"`
}

// PageInput represents one page of a form template
type PageInput struct {
	PageNumber int          `json:"pageNumber" validate:"required,min=1"`
	Title      string       `json:"title" validate:"required"`
	Fields     []FieldInput `json:"fields" validate:"required,min=1,dive"`
}

// CreateTemplateInput represents create template input
type CreateTemplateInput struct {
	Name     string      `json:"name" validate:"required"`
	LoanType string      `json:"loanType" validate:"required"`
	Pages    []PageInput `json:"pages" validate:"required,min=1,dive"`
}

// Create creates a new loan form template
func (s *TemplateService) Create(ctx context.Context, input *CreateTemplateInput, actor domain.Actor) (*models.LoanFormTemplate, error) {
	if !actor.IsSuperadmin() && !actor.IsRM() {
		return nil, fmt.Errorf("%w: only superadmin or RM may create templates", domain.ErrForbidden)
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}
	if !domain.ValidLoanType(input.LoanType) {
		return nil, fmt.Errorf("%w: unknown loan type %q", domain.ErrValidation, input.LoanType)
	}
	for _, page := range input.Pages {
		for _, f := range page.Fields {
			if !domain.ValidFieldType(f.Type) {
				return nil, fmt.Errorf("%w: unknown field type %q", domain.ErrValidation, f.Type)
			}
		}
	}

	exists, err := s.templateRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: template %q already exists", domain.ErrConflict, input.Name)
	}

	creatorID := actor.UserID
	tpl := &models.LoanFormTemplate{
		Name:      input.Name,
		LoanType:  input.LoanType,
		Pages:     toPages(input.Pages),
		CreatedBy: &creatorID,
	}
	if err := s.templateRepo.Create(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// GetByID gets a template by ID
func (s *TemplateService) GetByID(ctx context.Context, id uint) (*models.LoanFormTemplate, error) {
	tpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: template %d", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return tpl, nil
}

// GetByName gets a template by its unique name
func (s *TemplateService) GetByName(ctx context.Context, name string) (*models.LoanFormTemplate, error) {
	tpl, err := s.templateRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: template %q", domain.ErrNotFound, name)
		}
		return nil, err
	}
	return tpl, nil
}

// List lists templates, optionally by loan type
func (s *TemplateService) List(ctx context.Context, loanType string) ([]models.LoanFormTemplate, error) {
	if loanType != "" && !domain.ValidLoanType(loanType) {
		return nil, fmt.Errorf("%w: unknown loan type %q", domain.ErrValidation, loanType)
	}
	return s.templateRepo.List(ctx, loanType)
}

// UpdateTemplateInput represents update template input
type UpdateTemplateInput struct {
	Name     string      `json:"name,omitempty"`
	LoanType string      `json:"loanType,omitempty"`
	Pages    []PageInput `json:"pages,omitempty" validate:"omitempty,min=1,dive"`
}

// Update updates a template. Existing submissions keep their snapshot
// and are not re-rendered.
func (s *TemplateService) Update(ctx context.Context, id uint, input *UpdateTemplateInput, actor domain.Actor) (*models.LoanFormTemplate, error) {
	if !actor.IsSuperadmin() && !actor.IsRM() {
		return nil, fmt.Errorf("%w: only superadmin or RM may update templates", domain.ErrForbidden)
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	tpl, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" && input.Name != tpl.Name {
		exists, err := s.templateRepo.ExistsByName(ctx, input.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: template %q already exists", domain.ErrConflict, input.Name)
		}
		tpl.Name = input.Name
	}
	if input.LoanType != "" {
		if !domain.ValidLoanType(input.LoanType) {
			return nil, fmt.Errorf("%w: unknown loan type %q", domain.ErrValidation, input.LoanType)
		}
		tpl.LoanType = input.LoanType
	}
	if len(input.Pages) > 0 {
		for _, page := range input.Pages {
			for _, f := range page.Fields {
				if !domain.ValidFieldType(f.Type) {
					return nil, fmt.Errorf("%w: unknown field type %q", domain.ErrValidation, f.Type)
				}
			}
		}
		tpl.Pages = toPages(input.Pages)
	}

	if err := s.templateRepo.Update(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// Delete deletes a template
func (s *TemplateService) Delete(ctx context.Context, id uint, actor domain.Actor) error {
	if !actor.IsSuperadmin() {
		return fmt.Errorf("%w: only superadmin may delete templates", domain.ErrForbidden)
	}
	err := s.templateRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: template %d", domain.ErrNotFound, id)
	}
	return err
}

func toPages(inputs []PageInput) []models.TemplatePage {
	pages := make([]models.TemplatePage, 0, len(inputs))
	for _, p := range inputs {
		fields := make([]models.TemplateField, 0, len(p.Fields))
		for _, f := range p.Fields {
			fields = append(fields, models.TemplateField{
				Label:    f.Label,
				Type:     f.Type,
				Required: f.Required,
				Options:  f.Options,
				Fixed:    f.Fixed,
			})
		}
		pages = append(pages, models.TemplatePage{
			PageNumber: p.PageNumber,
			Title:      p.Title,
			Fields:     fields,
		})
	}
	return pages
}
