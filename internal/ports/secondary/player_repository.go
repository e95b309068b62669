package secondary

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
)

// PlayerRepository defines the interface for player data access.
type PlayerRepository interface {
	// Create persists a new player. When ClubID is set the player joins
	// that club's roster in the same unit of work; a missing club fails
	// with errs.ErrNotFound. A taken ID fails with errs.ErrAlreadyExists.
	Create(ctx context.Context, player *entity.Player) (*entity.Player, error)
	Get(ctx context.Context, id string) (*entity.Player, error)
	GetAll(ctx context.Context) (map[string]*entity.Player, error)
	UpdateValue(ctx context.Context, id string, value decimal.Decimal) error
	UpdatePosition(ctx context.Context, id string, position string) error
	UpdateAge(ctx context.Context, id string, age int) error
	UpdateContract(ctx context.Context, id string, expires *time.Time) error
	UpdateName(ctx context.Context, id string, name string) error
	// Delete removes the player and, if assigned, takes it off the
	// club's roster in the same unit of work.
	Delete(ctx context.Context, id string) error
	// Reidentify moves the player to a new ID and display name,
	// rewriting the club roster and the transfer ledger, then removes
	// the old identity. Single unit of work.
	Reidentify(ctx context.Context, oldID, newID, newName string) error
}
