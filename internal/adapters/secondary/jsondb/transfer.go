package jsondb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
	"github.com/clubdesk/transferdesk/internal/domain/errs"
)

// TransferRepository implements the append-only ledger and the atomic
// transfer check-and-apply over the shared document store.
type TransferRepository struct {
	store *Store
}

// Record validates and applies a transfer under the store lock, so the
// budget check and the apply cannot interleave with another operation.
func (r *TransferRepository) Record(ctx context.Context, playerID string, toClubID *string, amount decimal.Decimal) (*entity.Transfer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("transfer amount %s: %w", amount, errs.ErrInvalidArgument)
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[playerID]
	if !ok {
		return nil, fmt.Errorf("player %q: %w", playerID, errs.ErrNotFound)
	}

	var toClub *entity.Club
	if toClubID != nil {
		toClub, ok = s.clubs[*toClubID]
		if !ok {
			return nil, fmt.Errorf("club %q: %w", *toClubID, errs.ErrNotFound)
		}
		if toClub.Budget.LessThan(amount) {
			return nil, fmt.Errorf("club %q has %s, needs %s: %w",
				*toClubID, toClub.Budget, amount, errs.ErrInsufficientBudget)
		}
	}

	var fromID *string
	var fromClub *entity.Club
	if player.ClubID != nil {
		id := *player.ClubID
		fromID = &id
		// The origin club may have been deleted out from under the
		// player; the transfer still proceeds and the ledger keeps the
		// dangling reference.
		fromClub = s.clubs[id]
	}

	prevPlayer := player.Clone()
	var prevFrom, prevTo *entity.Club
	if fromClub != nil {
		prevFrom = fromClub.Clone()
	}
	if toClub != nil {
		prevTo = toClub.Clone()
	}

	if toClubID != nil {
		id := *toClubID
		player.ClubID = &id
	} else {
		player.ClubID = nil
	}
	if fromClub != nil {
		fromClub.RemovePlayer(playerID)
		fromClub.Budget = fromClub.Budget.Add(amount)
	}
	if toClub != nil {
		toClub.AddPlayer(playerID)
		toClub.Budget = toClub.Budget.Sub(amount)
	}

	entry := &entity.Transfer{
		ID:       uuid.NewString(),
		PlayerID: playerID,
		FromClub: fromID,
		Amount:   amount,
		Date:     s.clock.Now(),
	}
	if toClubID != nil {
		id := *toClubID
		entry.ToClub = &id
	}
	s.transfers = append(s.transfers, entry)

	if err := s.saveAll(); err != nil {
		s.players[playerID] = prevPlayer
		if fromClub != nil {
			s.clubs[fromClub.ID] = prevFrom
		}
		if toClub != nil {
			s.clubs[toClub.ID] = prevTo
		}
		s.transfers = s.transfers[:len(s.transfers)-1]
		s.resaveAll()
		return nil, err
	}
	return entry.Clone(), nil
}

func (r *TransferRepository) GetAll(ctx context.Context) ([]*entity.Transfer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	transfers := make([]*entity.Transfer, 0, len(s.transfers))
	for _, t := range s.transfers {
		transfers = append(transfers, t.Clone())
	}
	return transfers, nil
}

func (r *TransferRepository) GetByPlayer(ctx context.Context, playerID string) ([]*entity.Transfer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var transfers []*entity.Transfer
	for _, t := range s.transfers {
		if t.PlayerID == playerID {
			transfers = append(transfers, t.Clone())
		}
	}
	return transfers, nil
}

func (r *TransferRepository) GetByClub(ctx context.Context, clubID string) ([]*entity.Transfer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var transfers []*entity.Transfer
	for _, t := range s.transfers {
		if (t.FromClub != nil && *t.FromClub == clubID) || (t.ToClub != nil && *t.ToClub == clubID) {
			transfers = append(transfers, t.Clone())
		}
	}
	return transfers, nil
}
