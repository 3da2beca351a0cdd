package services

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/repositories"
	"github.com/webdrave/funds-backend/internal/core/domain"
)

// ReminderService sends a morning digest of pending work to RMs and
// superadmins.
type ReminderService struct {
	loanRepo       *repositories.LoanRepository
	withdrawalRepo *repositories.WithdrawalRepository
	adminRepo      *repositories.AdminRepository
	tokenRepo      *repositories.RefreshTokenRepository
	notifySvc      *NotificationService
	log            *zap.Logger
	cron           *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(
	loanRepo *repositories.LoanRepository,
	withdrawalRepo *repositories.WithdrawalRepository,
	adminRepo *repositories.AdminRepository,
	tokenRepo *repositories.RefreshTokenRepository,
	notifySvc *NotificationService,
	log *zap.Logger,
) *ReminderService {
	return &ReminderService{
		loanRepo:       loanRepo,
		withdrawalRepo: withdrawalRepo,
		adminRepo:      adminRepo,
		tokenRepo:      tokenRepo,
		notifySvc:      notifySvc,
		log:            log,
	}
}

// Start schedules the daily digest at 08:30 and the expired token sweep
// at 03:00 server time
func (s *ReminderService) Start() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc("30 8 * * *", func() {
		if err := s.SendDigest(context.Background()); err != nil {
			s.log.Error("reminder digest failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 3 * * *", func() {
		if err := s.tokenRepo.DeleteExpired(context.Background()); err != nil {
			s.log.Error("expired token sweep failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop cancels the schedule
func (s *ReminderService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// SendDigest notifies every RM and superadmin of the pending loan and
// withdrawal backlog
func (s *ReminderService) SendDigest(ctx context.Context) error {
	pendingLoans, err := s.loanRepo.CountByStatus(ctx, domain.LoanStatusPending, nil, nil)
	if err != nil {
		return err
	}

	pendingWithdrawals, err := s.withdrawalRepo.List(ctx, repositories.WithdrawalFilter{
		Status: domain.WithdrawStatusPending,
	})
	if err != nil {
		return err
	}

	if pendingLoans == 0 && len(pendingWithdrawals) == 0 {
		return nil
	}

	recipients, err := s.adminRepo.ListByRoles(ctx,
		string(domain.RoleSuperadmin), string(domain.RoleRM))
	if err != nil {
		return err
	}

	message := fmt.Sprintf("%d loans and %d withdrawal requests are waiting for review.",
		pendingLoans, len(pendingWithdrawals))
	for i := range recipients {
		if err := s.notifySvc.Notify(ctx, recipients[i].ID, "Daily pending review digest", message); err != nil {
			s.log.Warn("digest notification failed",
				zap.Uint("admin_id", recipients[i].ID),
				zap.Error(err))
		}
	}

	s.log.Info("reminder digest sent",
		zap.Int64("pending_loans", pendingLoans),
		zap.Int("pending_withdrawals", len(pendingWithdrawals)),
		zap.Int("recipients", len(recipients)))
	return nil
}
