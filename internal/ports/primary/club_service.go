package primary

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
)

// ClubService defines the club-related use cases exposed to the command
// layer. Identifiers are opaque; the tenant prefix convention belongs
// to the caller.
type ClubService interface {
	Create(ctx context.Context, id, name string, budget decimal.Decimal) (*entity.Club, error)
	Get(ctx context.Context, id string) (*entity.Club, error)
	GetAll(ctx context.Context) (map[string]*entity.Club, error)
	SetBudget(ctx context.Context, id string, budget decimal.Decimal) error
	// AdjustBudget credits (positive delta) or debits (negative delta)
	// the club budget and returns the new balance.
	AdjustBudget(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error)
	SetName(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}
