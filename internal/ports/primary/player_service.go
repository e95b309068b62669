package primary

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
)

// PlayerService defines the player-related use cases exposed to the
// command layer.
type PlayerService interface {
	Create(ctx context.Context, id, name string, value decimal.Decimal, clubID *string, position string, age int) (*entity.Player, error)
	Get(ctx context.Context, id string) (*entity.Player, error)
	GetAll(ctx context.Context) (map[string]*entity.Player, error)
	SetValue(ctx context.Context, id string, value decimal.Decimal) error
	SetPosition(ctx context.Context, id, position string) error
	SetAge(ctx context.Context, id string, age int) error
	SetContract(ctx context.Context, id string, expires *time.Time) error
	SetName(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
	// FreeAgents lists players with no club assignment.
	FreeAgents(ctx context.Context) ([]*entity.Player, error)
	ByPosition(ctx context.Context, position string) ([]*entity.Player, error)
	// ExpiringContracts lists players whose contract ends within the
	// given window from now.
	ExpiringContracts(ctx context.Context, within time.Duration) ([]*entity.Player, error)
}
