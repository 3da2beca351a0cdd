package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"
	"github.com/webdrave/funds-backend/internal/adapters/persistence/repositories"
	"github.com/webdrave/funds-backend/internal/core/domain"
)

// LoanService handles loan application business logic
type LoanService struct {
	loanRepo     *repositories.LoanRepository
	templateRepo *repositories.TemplateRepository
	msgRepo      *repositories.MessageRepository
	notifySvc    *NotificationService
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo *repositories.LoanRepository,
	templateRepo *repositories.TemplateRepository,
	msgRepo *repositories.MessageRepository,
	notifySvc *NotificationService,
) *LoanService {
	return &LoanService{
		loanRepo:     loanRepo,
		templateRepo: templateRepo,
		msgRepo:      msgRepo,
		notifySvc:    notifySvc,
	}
}

// BuildSubmission materializes a loan value snapshot from a template and
// raw form input. Pages come out in page number order and fields in
// declared order; a label missing from formData stores a null value.
// Required flags are not enforced here, that check belongs to the form
// layer.
func BuildSubmission(tpl *models.LoanFormTemplate, formData map[string]interface{}) []models.PageValue {
	pages := make([]models.TemplatePage, len(tpl.Pages))
	copy(pages, tpl.Pages)
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].PageNumber < pages[j].PageNumber
	})

	values := make([]models.PageValue, 0, len(pages))
	for _, page := range pages {
		fields := make([]models.FieldValue, 0, len(page.Fields))
		for _, f := range page.Fields {
			var value interface{}
			if v, ok := formData[f.Label]; ok {
				value = v
			}
			fields = append(fields, models.FieldValue{
				Label:      f.Label,
				Value:      value,
				IsDocument: f.Type == domain.FieldTypeDocument,
			})
		}
		values = append(values, models.PageValue{
			PageNumber: page.PageNumber,
			Title:      page.Title,
			Fields:     fields,
		})
	}
	return values
}

// CreateLoanInput represents create loan input
type CreateLoanInput struct {
	TemplateID  uint                   `json:"templateId" validate:"required"`
	Subscriber  string                 `json:"subscriber" validate:"required"`
	LoanSubType string                 `json:"loanSubType,omitempty"`
	FormData    map[string]interface{} `json:"formData"`
	DsaID       *uint                  `json:"dsaId,omitempty"`
	RmID        *uint                  `json:"rmId,omitempty"`
}

// Create creates a new loan from a template snapshot
func (s *LoanService) Create(ctx context.Context, input *CreateLoanInput, actor domain.Actor) (*models.Loan, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	tpl, err := s.templateRepo.GetByID(ctx, input.TemplateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: template %d does not exist", domain.ErrValidation, input.TemplateID)
		}
		return nil, err
	}

	loan := &models.Loan{
		Values:      BuildSubmission(tpl, input.FormData),
		Subscriber:  input.Subscriber,
		LoanType:    tpl.LoanType,
		LoanSubType: input.LoanSubType,
		Status:      domain.LoanStatusPending,
		DsaID:       input.DsaID,
		RmID:        input.RmID,
	}

	// A DSA always files under their own identity.
	if actor.IsDSA() {
		id := actor.UserID
		loan.DsaID = &id
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	if s.notifySvc != nil && loan.RmID != nil {
		s.notifySvc.Notify(ctx, *loan.RmID, "New loan application",
			fmt.Sprintf("A new %s loan for %s has been submitted.", loan.LoanType, loan.Subscriber))
	}

	return loan, nil
}

// GetByID gets a loan by ID
func (s *LoanService) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: loan %d", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return loan, nil
}

// ListLoansInput represents list loans input
type ListLoansInput struct {
	Status   string
	LoanType string
	Search   string
	Page     int
	Limit    int
}

// ListLoansOutput represents list loans output
type ListLoansOutput struct {
	Loans []models.Loan `json:"loans"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// List lists loans scoped to the actor's role. DSAs see their own
// loans, RMs the loans of their book, superadmins everything. Each loan
// carries the actor's unread chat count.
func (s *LoanService) List(ctx context.Context, input *ListLoansInput, actor domain.Actor) (*ListLoansOutput, error) {
	if input.Status != "" &&
		input.Status != domain.LoanStatusPending &&
		input.Status != domain.LoanStatusApproved &&
		input.Status != domain.LoanStatusRejected {
		return nil, fmt.Errorf("%w: unknown loan status %q", domain.ErrValidation, input.Status)
	}
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	filter := repositories.LoanFilter{
		Status:   input.Status,
		LoanType: input.LoanType,
		Search:   input.Search,
		Page:     input.Page,
		Limit:    input.Limit,
	}
	switch {
	case actor.IsDSA():
		id := actor.UserID
		filter.DsaID = &id
	case actor.IsRM():
		id := actor.UserID
		filter.RmID = &id
	}

	loans, total, err := s.loanRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	for i := range loans {
		count, err := s.unreadCount(ctx, loans[i].ID, actor.UserID)
		if err != nil {
			return nil, err
		}
		loans[i].UnreadCount = count
	}

	return &ListLoansOutput{
		Loans: loans,
		Total: total,
		Page:  input.Page,
		Limit: input.Limit,
	}, nil
}

// UpdateStatusInput represents a status transition request
type UpdateStatusInput struct {
	Status           string  `json:"status" validate:"required"`
	RejectionMessage *string `json:"rejectionMessage,omitempty"`
}

// UpdateStatus transitions a loan between lifecycle states. Pending
// loans may move to approved or rejected; both are terminal.
func (s *LoanService) UpdateStatus(ctx context.Context, id uint, input *UpdateStatusInput, actor domain.Actor) (*models.Loan, error) {
	if !actor.IsSuperadmin() && !actor.IsRM() {
		return nil, fmt.Errorf("%w: only superadmin or RM may update loan status", domain.ErrForbidden)
	}

	loan, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if loan.IsTerminal() {
		return nil, fmt.Errorf("%w: loan %d is already %s", domain.ErrConflict, id, loan.Status)
	}

	switch input.Status {
	case domain.LoanStatusApproved:
		loan.Status = domain.LoanStatusApproved
		loan.RejectionMessage = nil
	case domain.LoanStatusRejected:
		msg := ""
		if input.RejectionMessage != nil {
			msg = *input.RejectionMessage
		}
		loan.Status = domain.LoanStatusRejected
		loan.RejectionMessage = &msg
	default:
		return nil, fmt.Errorf("%w: cannot transition loan to %q", domain.ErrValidation, input.Status)
	}

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	if s.notifySvc != nil && loan.DsaID != nil {
		s.notifySvc.Notify(ctx, *loan.DsaID, "Loan status updated",
			fmt.Sprintf("Loan for %s is now %s.", loan.Subscriber, loan.Status))
	}

	return loan, nil
}

// Delete deletes a loan
func (s *LoanService) Delete(ctx context.Context, id uint, actor domain.Actor) error {
	if !actor.IsSuperadmin() {
		return fmt.Errorf("%w: only superadmin may delete loans", domain.ErrForbidden)
	}
	err := s.loanRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: loan %d", domain.ErrNotFound, id)
	}
	return err
}

// PendingCounts breaks down pending loans by product family. Quick and
// taxation loans are tracked separately from the standard products.
type PendingCounts struct {
	Normal   int64 `json:"normal"`
	Quick    int64 `json:"quick"`
	Taxation int64 `json:"taxation"`
	Total    int64 `json:"total"`
}

// PendingCount returns pending loan counts in the actor's scope
func (s *LoanService) PendingCount(ctx context.Context, actor domain.Actor) (*PendingCounts, error) {
	var dsaID, rmID *uint
	switch {
	case actor.IsDSA():
		id := actor.UserID
		dsaID = &id
	case actor.IsRM():
		id := actor.UserID
		rmID = &id
	}

	byType, err := s.loanRepo.PendingTypeCounts(ctx, dsaID, rmID)
	if err != nil {
		return nil, err
	}

	counts := &PendingCounts{
		Quick:    byType[domain.LoanTypeQuick],
		Taxation: byType[domain.LoanTypeTaxation],
	}
	for loanType, n := range byType {
		counts.Total += n
		if loanType != domain.LoanTypeQuick && loanType != domain.LoanTypeTaxation {
			counts.Normal += n
		}
	}
	return counts, nil
}

// Stats returns loan counts per status in the actor's scope
func (s *LoanService) Stats(ctx context.Context, actor domain.Actor) (map[string]int64, error) {
	var dsaID, rmID *uint
	switch {
	case actor.IsDSA():
		id := actor.UserID
		dsaID = &id
	case actor.IsRM():
		id := actor.UserID
		rmID = &id
	}
	return s.loanRepo.StatusCounts(ctx, dsaID, rmID)
}

func (s *LoanService) unreadCount(ctx context.Context, loanID, userID uint) (int64, error) {
	msgs, err := s.msgRepo.ListAllByLoan(ctx, loanID)
	if err != nil {
		return 0, err
	}
	var count int64
	for i := range msgs {
		if msgs[i].SenderID != nil && *msgs[i].SenderID == userID {
			continue
		}
		if !msgs[i].ReadByUser(userID) {
			count++
		}
	}
	return count, nil
}
