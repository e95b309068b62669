package primary

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
)

// TransferService is the orchestrator for every operation that changes
// a player's club, plus ledger queries. It is the only surface that
// touches more than one collection in a single logical operation.
type TransferService interface {
	// Transfer moves the player to the destination club for the given
	// fee, or releases the player to free agency when toClubID is nil.
	// A release requires a zero amount.
	Transfer(ctx context.Context, playerID string, toClubID *string, amount decimal.Decimal) (*entity.Transfer, error)
	// Release is shorthand for a zero-fee transfer to free agency.
	Release(ctx context.Context, playerID string) (*entity.Transfer, error)
	RenameClub(ctx context.Context, oldID, newID, newName string) error
	RenamePlayer(ctx context.Context, oldID, newID, newName string) error
	List(ctx context.Context) ([]*entity.Transfer, error)
	ListForPlayer(ctx context.Context, playerID string) ([]*entity.Transfer, error)
	ListForClub(ctx context.Context, clubID string) ([]*entity.Transfer, error)
	// Activity summarizes the ledger: entry count, total and average
	// fees, most expensive entry.
	Activity(ctx context.Context) (*entity.Activity, error)
}
