package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/repositories"
	"github.com/webdrave/funds-backend/internal/core/domain"
)

func validTemplateInput(name string) *CreateTemplateInput {
	return &CreateTemplateInput{
		Name:     name,
		LoanType: domain.LoanTypePrivate,
		Pages: []PageInput{
			{
				PageNumber: 1,
				Title:      "Applicant",
				Fields: []FieldInput{
					{Label: "Full Name", Type: domain.FieldTypeText, Required: true},
					{Label: "PAN Card", Type: domain.FieldTypeDocument},
				},
			},
		},
	}
}

func TestTemplateService_Create(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTemplateService(repositories.NewTemplateRepository(db))
	ctx := context.Background()

	rm := createTestAdmin(t, db, domain.RoleRM, 0)
	dsa := createTestAdmin(t, db, domain.RoleDSA, 0)

	t.Run("creates a template", func(t *testing.T) {
		tpl, err := svc.Create(ctx, validTemplateInput("personal-loan"), actorFor(rm))
		require.NoError(t, err)

		assert.Equal(t, "personal-loan", tpl.Name)
		require.NotNil(t, tpl.CreatedBy)
		assert.Equal(t, rm.ID, *tpl.CreatedBy)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, validTemplateInput("personal-loan"), actorFor(rm))
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("unknown loan type is rejected", func(t *testing.T) {
		input := validTemplateInput("crypto-loan")
		input.LoanType = "crypto"
		_, err := svc.Create(ctx, input, actorFor(rm))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown field type is rejected", func(t *testing.T) {
		input := validTemplateInput("odd-loan")
		input.Pages[0].Fields[0].Type = "hologram"
		_, err := svc.Create(ctx, input, actorFor(rm))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("DSA may not create templates", func(t *testing.T) {
		_, err := svc.Create(ctx, validTemplateInput("dsa-loan"), actorFor(dsa))
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestTemplateService_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTemplateService(repositories.NewTemplateRepository(db))
	ctx := context.Background()

	super := createTestAdmin(t, db, domain.RoleSuperadmin, 0)
	rm := createTestAdmin(t, db, domain.RoleRM, 0)

	tpl, err := svc.Create(ctx, validTemplateInput("gold-loan"), actorFor(rm))
	require.NoError(t, err)

	t.Run("rename and retype", func(t *testing.T) {
		updated, err := svc.Update(ctx, tpl.ID, &UpdateTemplateInput{
			Name:     "gold-loan-v2",
			LoanType: domain.LoanTypeQuick,
		}, actorFor(rm))
		require.NoError(t, err)

		assert.Equal(t, "gold-loan-v2", updated.Name)
		assert.Equal(t, domain.LoanTypeQuick, updated.LoanType)
		// Pages untouched when not supplied
		assert.Len(t, updated.Pages, 1)
	})

	t.Run("rename to a taken name conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, validTemplateInput("taken"), actorFor(rm))
		require.NoError(t, err)

		_, err = svc.Update(ctx, tpl.ID, &UpdateTemplateInput{Name: "taken"}, actorFor(rm))
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("only superadmin may delete", func(t *testing.T) {
		err := svc.Delete(ctx, tpl.ID, actorFor(rm))
		assert.ErrorIs(t, err, domain.ErrForbidden)

		require.NoError(t, svc.Delete(ctx, tpl.ID, actorFor(super)))

		_, err = svc.GetByID(ctx, tpl.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("deleting a missing template is not found", func(t *testing.T) {
		err := svc.Delete(ctx, 404, actorFor(super))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
