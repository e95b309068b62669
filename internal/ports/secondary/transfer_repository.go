package secondary

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
)

// TransferRepository is the append-only transfer ledger plus the atomic
// check-and-apply primitive behind the transfer orchestration.
type TransferRepository interface {
	// Record validates and applies a transfer as one unit of work:
	// player existence, destination existence and budget cover are
	// checked under the store lock, the origin club is derived from the
	// player's current assignment, rosters and budgets are updated, and
	// exactly one ledger entry is appended. On failure nothing is
	// visible to subsequent reads. A nil toClubID releases the player
	// to free agency and skips the budget check.
	Record(ctx context.Context, playerID string, toClubID *string, amount decimal.Decimal) (*entity.Transfer, error)
	// GetAll returns ledger entries in insertion order.
	GetAll(ctx context.Context) ([]*entity.Transfer, error)
	GetByPlayer(ctx context.Context, playerID string) ([]*entity.Transfer, error)
	GetByClub(ctx context.Context, clubID string) ([]*entity.Transfer, error)
}
