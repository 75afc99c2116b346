package storage

import (
	"context"
	"time"

	"github.com/Popsicool/wages-finance/pkg/models"
)

// SavingsStore defines the interface for savings plans and their sweep queries.
type SavingsStore interface {
	// GetSavingsPlan retrieves a plan by its ID.
	GetSavingsPlan(ctx context.Context, planID string) (*models.SavingsPlan, error)

	// CreateSavingsPlan stores a new plan. At most one active plan may exist
	// per (user, category) pair.
	CreateSavingsPlan(ctx context.Context, plan *models.SavingsPlan) (*models.SavingsPlan, error)

	// ListContributablePlans retrieves active plans inside their saving window
	// (start_date <= today <= withdrawal_date) that have not met their goal.
	ListContributablePlans(ctx context.Context, today time.Time) ([]models.SavingsPlan, error)

	// ListMaturedPlans retrieves active plans whose withdrawal date has passed.
	ListMaturedPlans(ctx context.Context, today time.Time) ([]models.SavingsPlan, error)

	// UpdateSavingsPlan commits a plan state transition. walletDelta is applied
	// to the owner's wallet in the same storage transaction: negative debits
	// (guarded by a balance condition), positive credits, zero leaves the
	// wallet untouched. A non-nil activity is appended atomically with it.
	UpdateSavingsPlan(ctx context.Context, plan *models.SavingsPlan, walletDelta int64, activity *models.AuditActivity) error
}
