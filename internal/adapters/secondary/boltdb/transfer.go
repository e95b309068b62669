package boltdb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.etcd.io/bbolt"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
	"github.com/clubdesk/transferdesk/internal/domain/errs"
)

// TransferRepository implements the append-only ledger and the atomic
// transfer check-and-apply over bbolt.
type TransferRepository struct {
	store *Store
}

// Record validates and applies a transfer inside one transaction: the
// budget check and the apply cannot interleave with another writer.
func (r *TransferRepository) Record(ctx context.Context, playerID string, toClubID *string, amount decimal.Decimal) (*entity.Transfer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("transfer amount %s: %w", amount, errs.ErrInvalidArgument)
	}

	entry := &entity.Transfer{
		ID:       uuid.NewString(),
		PlayerID: playerID,
		Amount:   amount,
		Date:     r.store.clock.Now(),
	}

	err := r.store.db.Update(func(tx *bbolt.Tx) error {
		player, err := getPlayer(tx, playerID)
		if err != nil {
			return err
		}
		if player == nil {
			return fmt.Errorf("player %q: %w", playerID, errs.ErrNotFound)
		}

		var toClub *entity.Club
		if toClubID != nil {
			toClub, err = getClub(tx, *toClubID)
			if err != nil {
				return err
			}
			if toClub == nil {
				return fmt.Errorf("club %q: %w", *toClubID, errs.ErrNotFound)
			}
			if toClub.Budget.LessThan(amount) {
				return fmt.Errorf("club %q has %s, needs %s: %w",
					*toClubID, toClub.Budget, amount, errs.ErrInsufficientBudget)
			}
		}

		if player.ClubID != nil {
			id := *player.ClubID
			entry.FromClub = &id
			var fromClub *entity.Club
			if toClub != nil && id == *toClubID {
				// Origin equals destination: both sides apply to one
				// record, so the credit and debit net out instead of the
				// later write clobbering the earlier one.
				fromClub = toClub
			} else {
				fromClub, err = getClub(tx, id)
				if err != nil {
					return err
				}
			}
			// A deleted origin club stays a dangling ledger reference.
			if fromClub != nil {
				fromClub.RemovePlayer(playerID)
				fromClub.Budget = fromClub.Budget.Add(amount)
				if err := putClub(tx, fromClub); err != nil {
					return err
				}
			}
		}

		if toClub != nil {
			id := *toClubID
			entry.ToClub = &id
			player.ClubID = &id
			toClub.AddPlayer(playerID)
			toClub.Budget = toClub.Budget.Sub(amount)
			if err := putClub(tx, toClub); err != nil {
				return err
			}
		} else {
			player.ClubID = nil
		}

		if err := putPlayer(tx, player); err != nil {
			return err
		}
		if err := appendTransfer(tx, entry); err != nil {
			return err
		}

		for _, name := range []string{clubsBucket, playersBucket, transfersBucket} {
			if err := r.store.touch(tx, name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *TransferRepository) GetAll(ctx context.Context) ([]*entity.Transfer, error) {
	return r.list(ctx, func(*entity.Transfer) bool { return true })
}

func (r *TransferRepository) GetByPlayer(ctx context.Context, playerID string) ([]*entity.Transfer, error) {
	return r.list(ctx, func(t *entity.Transfer) bool {
		return t.PlayerID == playerID
	})
}

func (r *TransferRepository) GetByClub(ctx context.Context, clubID string) ([]*entity.Transfer, error) {
	return r.list(ctx, func(t *entity.Transfer) bool {
		return (t.FromClub != nil && *t.FromClub == clubID) || (t.ToClub != nil && *t.ToClub == clubID)
	})
}

func (r *TransferRepository) list(ctx context.Context, keep func(*entity.Transfer) bool) ([]*entity.Transfer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var transfers []*entity.Transfer
	err := r.store.db.View(func(tx *bbolt.Tx) error {
		return forEachTransfer(tx, func(t *entity.Transfer) (*entity.Transfer, error) {
			if keep(t) {
				transfers = append(transfers, t.Clone())
			}
			return nil, nil
		})
	})
	if err != nil {
		return nil, err
	}
	return transfers, nil
}
