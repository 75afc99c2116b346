package storage

import (
	"context"

	"github.com/Popsicool/wages-finance/pkg/models"
)

// AuditReader defines read access to the append-only audit trail.
// There is intentionally no update or delete surface.
type AuditReader interface {
	// ListActivitiesByUser retrieves the most recent audit entries for a user.
	ListActivitiesByUser(ctx context.Context, userID string, limit int32) ([]models.AuditActivity, error)
}

// AuditWriter appends audit entries outside of an engine commit. Engine
// commits write their audit row inside the same storage transaction instead.
type AuditWriter interface {
	AppendActivity(ctx context.Context, activity *models.AuditActivity) error
}

// AuditStore combines audit trail reads and standalone appends.
type AuditStore interface {
	AuditReader
	AuditWriter
}
