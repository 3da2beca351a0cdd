package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"
	"github.com/webdrave/funds-backend/internal/core/domain"
)

func TestBuildSubmission_PageAndFieldOrder(t *testing.T) {
	tpl := &models.LoanFormTemplate{
		Pages: []models.TemplatePage{
			{
				PageNumber: 3,
				Title:      "Last",
				Fields:     []models.TemplateField{{Label: "C", Type: domain.FieldTypeText}},
			},
			{
				PageNumber: 1,
				Title:      "First",
				Fields: []models.TemplateField{
					{Label: "A", Type: domain.FieldTypeText},
					{Label: "B", Type: domain.FieldTypeNumber},
				},
			},
			{
				PageNumber: 2,
				Title:      "Middle",
				Fields:     []models.TemplateField{{Label: "D", Type: domain.FieldTypeDocument}},
			},
		},
	}

	values := BuildSubmission(tpl, map[string]interface{}{
		"A": "hello",
		"B": 42,
		"D": "s3-key",
	})

	require.Len(t, values, 3)
	assert.Equal(t, 1, values[0].PageNumber)
	assert.Equal(t, 2, values[1].PageNumber)
	assert.Equal(t, 3, values[2].PageNumber)

	// Declared field order on the first page survives
	require.Len(t, values[0].Fields, 2)
	assert.Equal(t, "A", values[0].Fields[0].Label)
	assert.Equal(t, "hello", values[0].Fields[0].Value)
	assert.Equal(t, "B", values[0].Fields[1].Label)
	assert.Equal(t, 42, values[0].Fields[1].Value)

	// Document fields are flagged
	assert.True(t, values[1].Fields[0].IsDocument)
	assert.False(t, values[0].Fields[0].IsDocument)

	// Template pages are not mutated by the sort
	assert.Equal(t, 3, tpl.Pages[0].PageNumber)
}

func TestBuildSubmission_MissingValuesAreNull(t *testing.T) {
	tpl := &models.LoanFormTemplate{
		Pages: []models.TemplatePage{
			{
				PageNumber: 1,
				Fields: []models.TemplateField{
					{Label: "Filled", Type: domain.FieldTypeText, Required: true},
					{Label: "Skipped", Type: domain.FieldTypeText, Required: true},
				},
			},
		},
	}

	values := BuildSubmission(tpl, map[string]interface{}{"Filled": "yes"})

	require.Len(t, values, 1)
	require.Len(t, values[0].Fields, 2)
	assert.Equal(t, "yes", values[0].Fields[0].Value)

	// Required but absent still lands in the snapshot, as null
	assert.Nil(t, values[0].Fields[1].Value)
}

func TestLoanService_Create(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLoanService(db)
	ctx := context.Background()

	dsa := createTestAdmin(t, db, domain.RoleDSA, 0)
	rm := createTestAdmin(t, db, domain.RoleRM, 0)
	tpl := createTestTemplate(t, db, "home-loan")

	t.Run("DSA files under own identity", func(t *testing.T) {
		other := uint(9999)
		loan, err := svc.Create(ctx, &CreateLoanInput{
			TemplateID: tpl.ID,
			Subscriber: "Alice",
			FormData:   map[string]interface{}{"Full Name": "Alice"},
			DsaID:      &other,
			RmID:       &rm.ID,
		}, actorFor(dsa))
		require.NoError(t, err)

		require.NotNil(t, loan.DsaID)
		assert.Equal(t, dsa.ID, *loan.DsaID)
		assert.Equal(t, domain.LoanStatusPending, loan.Status)
		assert.Equal(t, tpl.LoanType, loan.LoanType)

		// Snapshot came out in page number order
		require.Len(t, loan.Values, 2)
		assert.Equal(t, "Applicant", loan.Values[0].Title)
	})

	t.Run("unknown template is a validation error", func(t *testing.T) {
		_, err := svc.Create(ctx, &CreateLoanInput{
			TemplateID: 404,
			Subscriber: "Bob",
		}, actorFor(dsa))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("RM is notified on submission", func(t *testing.T) {
		var before int64
		db.Model(&models.Notification{}).Where("user_id = ?", rm.ID).Count(&before)

		_, err := svc.Create(ctx, &CreateLoanInput{
			TemplateID: tpl.ID,
			Subscriber: "Carol",
			RmID:       &rm.ID,
		}, actorFor(dsa))
		require.NoError(t, err)

		var after int64
		db.Model(&models.Notification{}).Where("user_id = ?", rm.ID).Count(&after)
		assert.Equal(t, before+1, after)
	})
}

func TestLoanService_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLoanService(db)
	ctx := context.Background()

	rm := createTestAdmin(t, db, domain.RoleRM, 0)
	dsa := createTestAdmin(t, db, domain.RoleDSA, 0)

	t.Run("approve clears rejection message", func(t *testing.T) {
		loan := createTestLoan(t, db, &dsa.ID, &rm.ID, 100000)
		msg := "stale"
		loan.RejectionMessage = &msg
		require.NoError(t, db.Save(loan).Error)

		updated, err := svc.UpdateStatus(ctx, loan.ID, &UpdateStatusInput{
			Status: domain.LoanStatusApproved,
		}, actorFor(rm))
		require.NoError(t, err)

		assert.Equal(t, domain.LoanStatusApproved, updated.Status)
		assert.Nil(t, updated.RejectionMessage)
	})

	t.Run("reject defaults message to empty", func(t *testing.T) {
		loan := createTestLoan(t, db, &dsa.ID, &rm.ID, 100000)

		updated, err := svc.UpdateStatus(ctx, loan.ID, &UpdateStatusInput{
			Status: domain.LoanStatusRejected,
		}, actorFor(rm))
		require.NoError(t, err)

		assert.Equal(t, domain.LoanStatusRejected, updated.Status)
		require.NotNil(t, updated.RejectionMessage)
		assert.Equal(t, "", *updated.RejectionMessage)
	})

	t.Run("terminal loans refuse further transitions", func(t *testing.T) {
		loan := createTestLoan(t, db, &dsa.ID, &rm.ID, 100000)
		_, err := svc.UpdateStatus(ctx, loan.ID, &UpdateStatusInput{Status: domain.LoanStatusApproved}, actorFor(rm))
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, loan.ID, &UpdateStatusInput{Status: domain.LoanStatusRejected}, actorFor(rm))
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("unknown target status is a validation error", func(t *testing.T) {
		loan := createTestLoan(t, db, &dsa.ID, &rm.ID, 100000)
		_, err := svc.UpdateStatus(ctx, loan.ID, &UpdateStatusInput{Status: "escalated"}, actorFor(rm))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("DSA may not update status", func(t *testing.T) {
		loan := createTestLoan(t, db, &dsa.ID, &rm.ID, 100000)
		_, err := svc.UpdateStatus(ctx, loan.ID, &UpdateStatusInput{Status: domain.LoanStatusApproved}, actorFor(dsa))
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestLoanService_ListScoping(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLoanService(db)
	ctx := context.Background()

	super := createTestAdmin(t, db, domain.RoleSuperadmin, 0)
	rm := createTestAdmin(t, db, domain.RoleRM, 0)
	dsa1 := createTestAdmin(t, db, domain.RoleDSA, 0)
	dsa2 := createTestAdmin(t, db, domain.RoleDSA, 0)

	createTestLoan(t, db, &dsa1.ID, &rm.ID, 100000)
	createTestLoan(t, db, &dsa2.ID, nil, 200000)

	tests := []struct {
		name  string
		actor models.Admin
		want  int64
	}{
		{"superadmin sees everything", *super, 2},
		{"RM sees their book", *rm, 1},
		{"DSA sees their own", *dsa2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := svc.List(ctx, &ListLoansInput{}, actorFor(&tt.actor))
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Total)
		})
	}

	t.Run("unknown status filter is rejected", func(t *testing.T) {
		_, err := svc.List(ctx, &ListLoansInput{Status: "limbo"}, actorFor(super))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestLoanService_Stats(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLoanService(db)
	ctx := context.Background()

	super := createTestAdmin(t, db, domain.RoleSuperadmin, 0)
	rm := createTestAdmin(t, db, domain.RoleRM, 0)
	dsa := createTestAdmin(t, db, domain.RoleDSA, 0)

	l1 := createTestLoan(t, db, &dsa.ID, &rm.ID, 100000)
	createTestLoan(t, db, &dsa.ID, &rm.ID, 200000)
	_, err := svc.UpdateStatus(ctx, l1.ID, &UpdateStatusInput{Status: domain.LoanStatusApproved}, actorFor(rm))
	require.NoError(t, err)

	counts, err := svc.Stats(ctx, actorFor(super))
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[domain.LoanStatusApproved])
	assert.Equal(t, int64(1), counts[domain.LoanStatusPending])

	quick := createTestLoan(t, db, &dsa.ID, &rm.ID, 50000)
	require.NoError(t, db.Model(quick).Update("loan_type", domain.LoanTypeQuick).Error)

	pending, err := svc.PendingCount(ctx, actorFor(dsa))
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending.Normal)
	assert.Equal(t, int64(1), pending.Quick)
	assert.Equal(t, int64(0), pending.Taxation)
	assert.Equal(t, int64(2), pending.Total)
}
