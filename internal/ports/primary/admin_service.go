package primary

import (
	"context"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
)

// AdminService exposes maintenance operations for operators.
type AdminService interface {
	// Backup returns a consistent snapshot of all three collections.
	Backup(ctx context.Context) (*entity.Snapshot, error)
	// PurgeTenant removes all data for one tenant prefix.
	PurgeTenant(ctx context.Context, prefix string) (entity.PurgeResult, error)
}
