package secondary

import (
	"context"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
)

// Store aggregates the repositories of one storage backend and owns its
// lifecycle. Opened at process start, closed at shutdown.
type Store interface {
	Clubs() ClubRepository
	Players() PlayerRepository
	Transfers() TransferRepository
	// Snapshot returns a consistent copy of all three collections taken
	// under a single read lock.
	Snapshot(ctx context.Context) (*entity.Snapshot, error)
	// PurgeTenant removes every club, player, and transfer whose IDs
	// carry the given tenant prefix. Administrative reset; the only
	// operation that removes ledger entries.
	PurgeTenant(ctx context.Context, prefix string) (entity.PurgeResult, error)
	Close() error
}
