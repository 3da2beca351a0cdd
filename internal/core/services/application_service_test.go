package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/repositories"
	"github.com/webdrave/funds-backend/internal/core/domain"
)

func newTestApplicationService(db *gorm.DB) *ApplicationService {
	return NewApplicationService(
		repositories.NewApplicationRepository(db),
		repositories.NewIssueRepository(db),
	)
}

func TestApplicationService_Submit(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)
	ctx := context.Background()

	t.Run("valid submission starts pending", func(t *testing.T) {
		app, err := svc.Submit(ctx, &SubmitApplicationInput{
			Name:    "Walk-in Lead",
			Email:   "lead@test.local",
			Phone:   "9876543210",
			Message: "interested in a home loan",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, app.Status)
	})

	t.Run("missing email is rejected", func(t *testing.T) {
		_, err := svc.Submit(ctx, &SubmitApplicationInput{
			Name:  "No Email",
			Phone: "9876543210",
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)
	ctx := context.Background()

	super := createTestAdmin(t, db, domain.RoleSuperadmin, 0)
	dsa := createTestAdmin(t, db, domain.RoleDSA, 0)

	app, err := svc.Submit(ctx, &SubmitApplicationInput{
		Name:  "Lead",
		Email: "status@test.local",
		Phone: "9876543210",
	})
	require.NoError(t, err)

	t.Run("unknown status is rejected and nothing is stored", func(t *testing.T) {
		err := svc.UpdateApplicationStatus(ctx, app.ID, "vaporized", actorFor(super))
		assert.ErrorIs(t, err, domain.ErrValidation)

		apps, err := svc.ListApplications(ctx, actorFor(super))
		require.NoError(t, err)
		require.Len(t, apps, 1)
		assert.Equal(t, domain.ApplicationStatusPending, apps[0].Status)
	})

	t.Run("approve", func(t *testing.T) {
		require.NoError(t, svc.UpdateApplicationStatus(ctx, app.ID, domain.ApplicationStatusApproved, actorFor(super)))

		apps, err := svc.ListApplications(ctx, actorFor(super))
		require.NoError(t, err)
		require.Len(t, apps, 1)
		assert.Equal(t, domain.ApplicationStatusApproved, apps[0].Status)
	})

	t.Run("unknown application", func(t *testing.T) {
		err := svc.UpdateApplicationStatus(ctx, 404, domain.ApplicationStatusRejected, actorFor(super))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("DSA may not update", func(t *testing.T) {
		err := svc.UpdateApplicationStatus(ctx, app.ID, domain.ApplicationStatusRejected, actorFor(dsa))
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("DSA may not list", func(t *testing.T) {
		_, err := svc.ListApplications(ctx, actorFor(dsa))
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestApplicationService_Issues(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)
	ctx := context.Background()

	super := createTestAdmin(t, db, domain.RoleSuperadmin, 0)
	dsa1 := createTestAdmin(t, db, domain.RoleDSA, 0)
	dsa2 := createTestAdmin(t, db, domain.RoleDSA, 0)

	_, err := svc.ReportIssue(ctx, &ReportIssueInput{
		Title:       "Upload stuck",
		Description: "spinner never stops",
		Priority:    "high",
	}, actorFor(dsa1))
	require.NoError(t, err)
	_, err = svc.ReportIssue(ctx, &ReportIssueInput{
		Title:       "Typo on dashboard",
		Description: "pendign",
	}, actorFor(dsa2))
	require.NoError(t, err)

	t.Run("missing description is rejected", func(t *testing.T) {
		_, err := svc.ReportIssue(ctx, &ReportIssueInput{Title: "No body"}, actorFor(dsa1))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("DSA sees only their own issues", func(t *testing.T) {
		issues, err := svc.ListIssues(ctx, actorFor(dsa1))
		require.NoError(t, err)
		require.Len(t, issues, 1)
		assert.Equal(t, "Upload stuck", issues[0].Title)
	})

	t.Run("superadmin sees everything", func(t *testing.T) {
		issues, err := svc.ListIssues(ctx, actorFor(super))
		require.NoError(t, err)
		assert.Len(t, issues, 2)
	})
}
