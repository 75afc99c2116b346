package storage

import (
	"context"
	"time"

	"github.com/Popsicool/wages-finance/pkg/models"
)

// InvestmentStore defines the interface for investment offerings and positions.
type InvestmentStore interface {
	// GetOffering retrieves an offering by its ID.
	GetOffering(ctx context.Context, offeringID string) (*models.InvestmentOffering, error)

	// CreateOffering stores a new offering.
	CreateOffering(ctx context.Context, offering *models.InvestmentOffering) (*models.InvestmentOffering, error)

	// ListExpiredOfferings retrieves active offerings whose end date has passed.
	ListExpiredOfferings(ctx context.Context, today time.Time) ([]models.InvestmentOffering, error)

	// UpdateOffering commits an offering state transition under its version lock.
	UpdateOffering(ctx context.Context, offering *models.InvestmentOffering) error

	// GetPosition retrieves a position by its ID.
	GetPosition(ctx context.Context, positionID string) (*models.InvestmentPosition, error)

	// ListMaturablePositions retrieves ACTIVE positions whose due date has passed.
	ListMaturablePositions(ctx context.Context, today time.Time) ([]models.InvestmentPosition, error)

	// CreatePosition atomically creates a position, debits the subscriber's
	// wallet for the principal, consumes offering quota and appends the audit
	// entry, all in one storage transaction.
	CreatePosition(ctx context.Context, position *models.InvestmentPosition, offering *models.InvestmentOffering, activity *models.AuditActivity) error

	// UpdatePosition commits a position state transition. walletDelta follows
	// the UpdateSavingsPlan convention.
	UpdatePosition(ctx context.Context, position *models.InvestmentPosition, walletDelta int64, activity *models.AuditActivity) error

	// CancelPosition atomically closes a position, credits the owner's wallet
	// with the refund, returns the shares to the offering's quota (offering may
	// be nil when it is already closed) and appends the audit entry, all in one
	// storage transaction.
	CancelPosition(ctx context.Context, position *models.InvestmentPosition, offering *models.InvestmentOffering, refund int64, activity *models.AuditActivity) error
}
