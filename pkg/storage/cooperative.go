package storage

import (
	"context"

	"github.com/Popsicool/wages-finance/pkg/models"
)

// CooperativeStore defines the interface for cooperative memberships.
type CooperativeStore interface {
	// GetMembership retrieves a user's membership.
	GetMembership(ctx context.Context, userID string) (*models.CooperativeMembership, error)

	// CreateMembership stores a new membership. One per user.
	CreateMembership(ctx context.Context, membership *models.CooperativeMembership) (*models.CooperativeMembership, error)

	// ListActiveMemberships retrieves every active membership.
	ListActiveMemberships(ctx context.Context) ([]models.CooperativeMembership, error)

	// UpdateMembership commits a membership state transition. walletDelta
	// follows the UpdateSavingsPlan convention.
	UpdateMembership(ctx context.Context, membership *models.CooperativeMembership, walletDelta int64, activity *models.AuditActivity) error
}
