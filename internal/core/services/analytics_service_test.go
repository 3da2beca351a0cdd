package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webdrave/funds-backend/internal/core/domain"
)

func TestAnalyticsService_GetDsaActivity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAnalyticsService(db)
	ctx := context.Background()

	rm := createTestAdmin(t, db, domain.RoleRM, 0)
	dsa1 := createTestAdmin(t, db, domain.RoleDSA, 0)
	dsa2 := createTestAdmin(t, db, domain.RoleDSA, 0)

	createTestLoan(t, db, &dsa1.ID, &rm.ID, 100000)
	createTestLoan(t, db, &dsa1.ID, &rm.ID, 200000)
	createTestLoan(t, db, &dsa2.ID, &rm.ID, 300000)

	t.Run("platform daily series is zero filled", func(t *testing.T) {
		points, err := svc.GetDsaActivity(ctx, nil, PeriodDaily)
		require.NoError(t, err)
		require.Len(t, points, 7)

		for _, p := range points[:6] {
			assert.Zero(t, p.Loans)
			assert.Zero(t, p.ActiveDSAs)
		}
		today := points[6]
		assert.Equal(t, int64(3), today.Loans)
		assert.Equal(t, int64(2), today.ActiveDSAs)
	})

	t.Run("single DSA filter", func(t *testing.T) {
		points, err := svc.GetDsaActivity(ctx, &dsa1.ID, PeriodDaily)
		require.NoError(t, err)
		require.Len(t, points, 7)
		assert.Equal(t, int64(2), points[6].Loans)
		assert.Equal(t, int64(1), points[6].ActiveDSAs)
	})

	t.Run("weekly series covers 7 buckets", func(t *testing.T) {
		points, err := svc.GetDsaActivity(ctx, nil, PeriodWeekly)
		require.NoError(t, err)
		require.Len(t, points, 7)
		assert.Equal(t, int64(3), points[6].Loans)
	})
}

func TestAnalyticsService_GetOverview(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAnalyticsService(db)
	ctx := context.Background()

	rm := createTestAdmin(t, db, domain.RoleRM, 0)
	dsa := createTestAdmin(t, db, domain.RoleDSA, 0)

	loan := createTestLoan(t, db, &dsa.ID, &rm.ID, 100000)
	createTestLoan(t, db, &dsa.ID, &rm.ID, 200000)
	require.NoError(t, db.Model(loan).Update("status", domain.LoanStatusApproved).Error)

	data, err := svc.GetOverview(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), data.TotalDSAs)
	assert.Equal(t, int64(1), data.TotalRMs)
	assert.Equal(t, int64(2), data.TotalLoans)
	assert.Equal(t, int64(1), data.PendingLoans)
	assert.Equal(t, int64(1), data.ApprovedLoans)

	require.Len(t, data.TopDSAs, 1)
	assert.Equal(t, dsa.ID, data.TopDSAs[0].AgentID)
	assert.Equal(t, int64(2), data.TopDSAs[0].TotalLoans)
	require.Len(t, data.TopRMs, 1)
	assert.Equal(t, rm.ID, data.TopRMs[0].AgentID)
}

func TestAnalyticsService_GetPlanPopularity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAnalyticsService(db)
	ctx := context.Background()

	a := createTestAdmin(t, db, domain.RoleDSA, 0)
	b := createTestAdmin(t, db, domain.RoleDSA, 0)
	c := createTestAdmin(t, db, domain.RoleDSA, 0)
	require.NoError(t, db.Model(a).Update("plan_name", "Gold").Error)
	require.NoError(t, db.Model(b).Update("plan_name", "Gold").Error)
	require.NoError(t, db.Model(c).Update("plan_name", "Silver").Error)

	out, err := svc.GetPlanPopularity(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Gold", out[0].PlanName)
	assert.Equal(t, int64(2), out[0].Admins)
	assert.Equal(t, "Silver", out[1].PlanName)
	assert.Equal(t, int64(1), out[1].Admins)
}
