package repositories

import (
	"context"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"
)

// LedgerStore is the slice of admin persistence the two ledgers depend
// on: point lookup plus the atomic two-counter increment.
type LedgerStore interface {
	GetByID(ctx context.Context, id uint) (*models.Admin, error)
	ApplyLedgerDelta(ctx context.Context, adminID uint, balanceDelta, reservedDelta float64) error
}
