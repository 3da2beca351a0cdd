package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"
	"github.com/webdrave/funds-backend/internal/core/domain"
	"github.com/webdrave/funds-backend/internal/pkg/password"
)

func TestAdminService_Create(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAdminService(db)
	ctx := context.Background()

	super := createTestAdmin(t, db, domain.RoleSuperadmin, 0)
	rm := createTestAdmin(t, db, domain.RoleRM, 0)
	dsa := createTestAdmin(t, db, domain.RoleDSA, 0)

	t.Run("superadmin creates an RM", func(t *testing.T) {
		out, err := svc.Create(ctx, &CreateAdminInput{
			Name:     "New RM",
			Email:    "new.rm@test.local",
			Password: "password123",
			Role:     string(domain.RoleRM),
		}, actorFor(super))
		require.NoError(t, err)
		assert.Equal(t, string(domain.RoleRM), out.Role)
		assert.Nil(t, out.DsaCode)
	})

	t.Run("RM creating a DSA becomes its owner", func(t *testing.T) {
		out, err := svc.Create(ctx, &CreateAdminInput{
			Name:     "New DSA",
			Email:    "new.dsa@test.local",
			Password: "password123",
			Role:     string(domain.RoleDSA),
		}, actorFor(rm))
		require.NoError(t, err)
		require.NotNil(t, out.DsaCode)
		assert.Contains(t, *out.DsaCode, "DSA")
		require.NotNil(t, out.RmID)
		assert.Equal(t, rm.ID, *out.RmID)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, &CreateAdminInput{
			Name:     "Dup",
			Email:    "new.rm@test.local",
			Password: "password123",
			Role:     string(domain.RoleRM),
		}, actorFor(super))
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("DSA may not create accounts", func(t *testing.T) {
		_, err := svc.Create(ctx, &CreateAdminInput{
			Name:     "Nope",
			Email:    "nope@test.local",
			Password: "password123",
			Role:     string(domain.RoleDSA),
		}, actorFor(dsa))
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("RM may not create a superadmin", func(t *testing.T) {
		_, err := svc.Create(ctx, &CreateAdminInput{
			Name:     "Escalate",
			Email:    "escalate@test.local",
			Password: "password123",
			Role:     string(domain.RoleSuperadmin),
		}, actorFor(rm))
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, &CreateAdminInput{
			Name:     "Bad",
			Email:    "bad.role@test.local",
			Password: "password123",
			Role:     "auditor",
		}, actorFor(super))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestAdminService_Create_PlanSnapshot(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAdminService(db)
	ctx := context.Background()

	super := createTestAdmin(t, db, domain.RoleSuperadmin, 0)
	plan := &models.Plan{Name: "Gold", Features: []string{"priority-support"}, Amount: 4999, Duration: 12}
	require.NoError(t, db.Create(plan).Error)

	out, err := svc.Create(ctx, &CreateAdminInput{
		Name:     "Planned DSA",
		Email:    "planned@test.local",
		Password: "password123",
		Role:     string(domain.RoleDSA),
		PlanID:   &plan.ID,
	}, actorFor(super))
	require.NoError(t, err)
	assert.Equal(t, "Gold", out.PlanName)
	assert.Equal(t, []string{"priority-support"}, out.Features)

	// the snapshot survives later plan edits
	plan.Features = []string{"priority-support", "webinars"}
	require.NoError(t, db.Save(plan).Error)

	stored, err := svc.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"priority-support"}, stored.Features)
}

func TestAdminService_LoginAndRefresh(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAdminService(db)
	ctx := context.Background()

	hashed, err := password.Hash("correct-horse1")
	require.NoError(t, err)
	admin := &models.Admin{
		Name:     "Login User",
		Email:    "login@test.local",
		Password: hashed,
		Role:     string(domain.RoleRM),
	}
	require.NoError(t, db.Create(admin).Error)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginInput{Email: "login@test.local", Password: "wrong-password"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginInput{Email: "ghost@test.local", Password: "correct-horse1"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	auth, err := svc.Login(ctx, &LoginInput{Email: "login@test.local", Password: "correct-horse1"})
	require.NoError(t, err)
	require.NotEmpty(t, auth.AccessToken)
	require.NotEmpty(t, auth.RefreshToken)
	assert.Equal(t, admin.ID, auth.Admin.ID)

	t.Run("refresh rotates the token", func(t *testing.T) {
		rotated, err := svc.RefreshToken(ctx, auth.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, auth.RefreshToken, rotated.RefreshToken)

		// the spent token is revoked
		_, err = svc.RefreshToken(ctx, auth.RefreshToken)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("logout revokes", func(t *testing.T) {
		auth, err := svc.Login(ctx, &LoginInput{Email: "login@test.local", Password: "correct-horse1"})
		require.NoError(t, err)
		require.NoError(t, svc.Logout(ctx, auth.RefreshToken))

		_, err = svc.RefreshToken(ctx, auth.RefreshToken)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestAdminService_ResetPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAdminService(db)
	ctx := context.Background()

	hashed, err := password.Hash("old-password1")
	require.NoError(t, err)
	admin := &models.Admin{
		Name:     "Reset User",
		Email:    "reset@test.local",
		Password: hashed,
		Role:     string(domain.RoleDSA),
	}
	require.NoError(t, db.Create(admin).Error)

	require.NoError(t, svc.ForgotPassword(ctx, "reset@test.local"))

	var stored models.Admin
	require.NoError(t, db.First(&stored, admin.ID).Error)
	require.NotNil(t, stored.ResetCode)

	t.Run("wrong code", func(t *testing.T) {
		err := svc.ResetPassword(ctx, &ResetPasswordInput{
			Email:    "reset@test.local",
			Code:     "000000x",
			Password: "new-password1",
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	require.NoError(t, svc.ResetPassword(ctx, &ResetPasswordInput{
		Email:    "reset@test.local",
		Code:     *stored.ResetCode,
		Password: "new-password1",
	}))

	_, err = svc.Login(ctx, &LoginInput{Email: "reset@test.local", Password: "old-password1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = svc.Login(ctx, &LoginInput{Email: "reset@test.local", Password: "new-password1"})
	assert.NoError(t, err)
}

func TestAdminService_UpdateBank(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAdminService(db)
	ctx := context.Background()

	dsa := createTestAdmin(t, db, domain.RoleDSA, 0)
	other := createTestAdmin(t, db, domain.RoleDSA, 0)
	rm := createTestAdmin(t, db, domain.RoleRM, 0)

	input := &BankInput{
		AccountHolder: "DSA User",
		AccountNumber: "000111222333",
		BankName:      "HDFC Bank",
		IfscCode:      "HDFC0001234",
		Branch:        "Andheri West",
	}

	t.Run("owner creates bank details", func(t *testing.T) {
		bank, err := svc.UpdateBank(ctx, dsa.ID, input, actorFor(dsa))
		require.NoError(t, err)
		assert.NotZero(t, bank.ID)

		stored, err := svc.GetByID(ctx, dsa.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.BankID)
		assert.Equal(t, bank.ID, *stored.BankID)
	})

	t.Run("second update reuses the record", func(t *testing.T) {
		before, err := svc.GetByID(ctx, dsa.ID)
		require.NoError(t, err)

		updated := *input
		updated.Branch = "Bandra East"
		bank, err := svc.UpdateBank(ctx, dsa.ID, &updated, actorFor(rm))
		require.NoError(t, err)
		assert.Equal(t, *before.BankID, bank.ID)
		assert.Equal(t, "Bandra East", bank.Branch)
	})

	t.Run("another DSA is rejected", func(t *testing.T) {
		_, err := svc.UpdateBank(ctx, dsa.ID, input, actorFor(other))
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		_, err := svc.UpdateBank(ctx, dsa.ID, &BankInput{AccountHolder: "X"}, actorFor(dsa))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
