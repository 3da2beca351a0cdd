package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webdrave/funds-backend/internal/core/domain"
)

func TestCommissionService_Create(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCommissionService(db)
	ctx := context.Background()

	rm := createTestAdmin(t, db, domain.RoleRM, 0)
	dsa := createTestAdmin(t, db, domain.RoleDSA, 1000)

	t.Run("fixed amount credits the DSA immediately", func(t *testing.T) {
		loan := createTestLoan(t, db, &dsa.ID, &rm.ID, 100000)
		amount := 200.0

		commission, err := svc.Create(ctx, &CreateCommissionInput{
			LoanID: loan.ID,
			Amount: &amount,
		}, actorFor(rm))
		require.NoError(t, err)

		assert.Equal(t, domain.CommissionStatusPending, commission.Status)
		require.NotNil(t, commission.DsaID)
		assert.Equal(t, dsa.ID, *commission.DsaID)

		balance, reserved := adminBalance(t, db, dsa.ID)
		assert.InDelta(t, 1200.0, balance, 0.001)
		assert.InDelta(t, 0.0, reserved, 0.001)
	})

	t.Run("duplicate commission for a loan conflicts", func(t *testing.T) {
		loan := createTestLoan(t, db, &dsa.ID, &rm.ID, 100000)
		amount := 50.0

		_, err := svc.Create(ctx, &CreateCommissionInput{LoanID: loan.ID, Amount: &amount}, actorFor(rm))
		require.NoError(t, err)

		_, err = svc.Create(ctx, &CreateCommissionInput{LoanID: loan.ID, Amount: &amount}, actorFor(rm))
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("percentage derives amount from the loan amount field", func(t *testing.T) {
		loan := createTestLoan(t, db, &dsa.ID, &rm.ID, 250000)
		pct := 2.0

		commission, err := svc.Create(ctx, &CreateCommissionInput{
			LoanID:     loan.ID,
			Percentage: &pct,
		}, actorFor(rm))
		require.NoError(t, err)

		assert.InDelta(t, 5000.0, commission.Amount, 0.001)
		assert.InDelta(t, 2.0, commission.Percentage, 0.001)
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		loan := createTestLoan(t, db, &dsa.ID, &rm.ID, 100000)
		amount := -10.0

		_, err := svc.Create(ctx, &CreateCommissionInput{LoanID: loan.ID, Amount: &amount}, actorFor(rm))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown loan is not found", func(t *testing.T) {
		amount := 10.0
		_, err := svc.Create(ctx, &CreateCommissionInput{LoanID: 404, Amount: &amount}, actorFor(rm))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("DSA may not create commissions", func(t *testing.T) {
		loan := createTestLoan(t, db, &dsa.ID, &rm.ID, 100000)
		amount := 10.0

		_, err := svc.Create(ctx, &CreateCommissionInput{LoanID: loan.ID, Amount: &amount}, actorFor(dsa))
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestCommissionService_Update(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCommissionService(db)
	ctx := context.Background()

	rm := createTestAdmin(t, db, domain.RoleRM, 0)
	otherRM := createTestAdmin(t, db, domain.RoleRM, 0)
	dsa := createTestAdmin(t, db, domain.RoleDSA, 0)

	t.Run("settling credits DSA and RM cumulatively", func(t *testing.T) {
		loan := createTestLoan(t, db, &dsa.ID, &rm.ID, 100000)
		amount := 300.0

		commission, err := svc.Create(ctx, &CreateCommissionInput{LoanID: loan.ID, Amount: &amount}, actorFor(rm))
		require.NoError(t, err)

		// Creation already moved the DSA balance once
		dsaBalance, _ := adminBalance(t, db, dsa.ID)
		assert.InDelta(t, 300.0, dsaBalance, 0.001)

		_, err = svc.Update(ctx, commission.ID, &UpdateCommissionInput{
			Status: domain.CommissionStatusCredited,
		}, actorFor(rm))
		require.NoError(t, err)

		dsaBalance, _ = adminBalance(t, db, dsa.ID)
		rmBalance, _ := adminBalance(t, db, rm.ID)
		assert.InDelta(t, 600.0, dsaBalance, 0.001)
		assert.InDelta(t, 300.0, rmBalance, 0.001)
	})

	t.Run("terminal commissions refuse further updates", func(t *testing.T) {
		loan := createTestLoan(t, db, &dsa.ID, &rm.ID, 100000)
		amount := 10.0

		commission, err := svc.Create(ctx, &CreateCommissionInput{LoanID: loan.ID, Amount: &amount}, actorFor(rm))
		require.NoError(t, err)

		_, err = svc.Update(ctx, commission.ID, &UpdateCommissionInput{Status: domain.CommissionStatusRejected}, actorFor(rm))
		require.NoError(t, err)

		_, err = svc.Update(ctx, commission.ID, &UpdateCommissionInput{Status: domain.CommissionStatusApproved}, actorFor(rm))
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("only the named RM or superadmin may update", func(t *testing.T) {
		loan := createTestLoan(t, db, &dsa.ID, &rm.ID, 100000)
		amount := 10.0

		commission, err := svc.Create(ctx, &CreateCommissionInput{LoanID: loan.ID, Amount: &amount}, actorFor(rm))
		require.NoError(t, err)

		_, err = svc.Update(ctx, commission.ID, &UpdateCommissionInput{Status: domain.CommissionStatusApproved}, actorFor(otherRM))
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown status is a validation error", func(t *testing.T) {
		loan := createTestLoan(t, db, &dsa.ID, &rm.ID, 100000)
		amount := 10.0

		commission, err := svc.Create(ctx, &CreateCommissionInput{LoanID: loan.ID, Amount: &amount}, actorFor(rm))
		require.NoError(t, err)

		_, err = svc.Update(ctx, commission.ID, &UpdateCommissionInput{Status: "settledish"}, actorFor(rm))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestCommissionService_SummaryForDsa(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCommissionService(db)
	ctx := context.Background()

	rm := createTestAdmin(t, db, domain.RoleRM, 0)
	dsa := createTestAdmin(t, db, domain.RoleDSA, 0)

	a1, a2 := 100.0, 250.0
	loan1 := createTestLoan(t, db, &dsa.ID, &rm.ID, 100000)
	loan2 := createTestLoan(t, db, &dsa.ID, &rm.ID, 100000)
	_, err := svc.Create(ctx, &CreateCommissionInput{LoanID: loan1.ID, Amount: &a1}, actorFor(rm))
	require.NoError(t, err)
	_, err = svc.Create(ctx, &CreateCommissionInput{LoanID: loan2.ID, Amount: &a2}, actorFor(rm))
	require.NoError(t, err)

	summary, err := svc.SummaryForDsa(ctx, dsa.ID)
	require.NoError(t, err)

	assert.Len(t, summary.Commissions, 2)
	assert.InDelta(t, 350.0, summary.TotalCommissionEarned, 0.001)
	assert.InDelta(t, 350.0, summary.Balance, 0.001)
}

func TestCommissionService_ListScoping(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCommissionService(db)
	ctx := context.Background()

	super := createTestAdmin(t, db, domain.RoleSuperadmin, 0)
	rm := createTestAdmin(t, db, domain.RoleRM, 0)
	otherRM := createTestAdmin(t, db, domain.RoleRM, 0)
	dsa := createTestAdmin(t, db, domain.RoleDSA, 0)

	amount := 10.0
	loan := createTestLoan(t, db, &dsa.ID, &rm.ID, 100000)
	_, err := svc.Create(ctx, &CreateCommissionInput{LoanID: loan.ID, Amount: &amount}, actorFor(rm))
	require.NoError(t, err)

	all, err := svc.List(ctx, &ListCommissionsInput{}, actorFor(super))
	require.NoError(t, err)
	assert.Len(t, all, 1)

	mine, err := svc.List(ctx, &ListCommissionsInput{}, actorFor(dsa))
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := svc.List(ctx, &ListCommissionsInput{}, actorFor(otherRM))
	require.NoError(t, err)
	assert.Empty(t, theirs)
}
