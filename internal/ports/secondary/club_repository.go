package secondary

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
)

// ClubRepository defines the interface for club data access.
type ClubRepository interface {
	// Create persists a new club. Fails with errs.ErrAlreadyExists if
	// the ID is taken; the existing record is left untouched.
	Create(ctx context.Context, club *entity.Club) (*entity.Club, error)
	Get(ctx context.Context, id string) (*entity.Club, error)
	GetAll(ctx context.Context) (map[string]*entity.Club, error)
	// UpdateBudget overwrites the budget unconditionally. Balance and
	// sign checks are the caller's responsibility.
	UpdateBudget(ctx context.Context, id string, budget decimal.Decimal) error
	UpdateName(ctx context.Context, id string, name string) error
	// Delete removes the club, detaching every rostered player to free
	// agency in the same unit of work.
	Delete(ctx context.Context, id string) error
	// AddToRoster and RemoveFromRoster are idempotent: adding an
	// already rostered player or removing an absent one succeeds as a
	// no-op.
	AddToRoster(ctx context.Context, clubID, playerID string) error
	RemoveFromRoster(ctx context.Context, clubID, playerID string) error
	// Reidentify moves the club to a new ID and display name, rewriting
	// every reference in the player collection and the transfer ledger,
	// then removes the old identity. Single unit of work.
	Reidentify(ctx context.Context, oldID, newID, newName string) error
}
