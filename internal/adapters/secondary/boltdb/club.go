package boltdb

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.etcd.io/bbolt"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
	"github.com/clubdesk/transferdesk/internal/domain/errs"
)

// ClubRepository implements secondary.ClubRepository over bbolt.
type ClubRepository struct {
	store *Store
}

func (r *ClubRepository) Create(ctx context.Context, club *entity.Club) (*entity.Club, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	created := club.Clone()
	created.Players = []string{}
	created.CreatedAt = r.store.clock.Now()

	err := r.store.db.Update(func(tx *bbolt.Tx) error {
		existing, err := getClub(tx, created.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("club %q: %w", created.ID, errs.ErrAlreadyExists)
		}
		if err := putClub(tx, created); err != nil {
			return err
		}
		return r.store.touch(tx, clubsBucket)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *ClubRepository) Get(ctx context.Context, id string) (*entity.Club, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var club *entity.Club
	err := r.store.db.View(func(tx *bbolt.Tx) error {
		var err error
		club, err = getClub(tx, id)
		if err != nil {
			return err
		}
		if club == nil {
			return fmt.Errorf("club %q: %w", id, errs.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return club, nil
}

func (r *ClubRepository) GetAll(ctx context.Context) (map[string]*entity.Club, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clubs := make(map[string]*entity.Club)
	err := r.store.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(clubsBucket)).ForEach(func(k, _ []byte) error {
			club, err := getClub(tx, string(k))
			if err != nil {
				return err
			}
			clubs[club.ID] = club
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return clubs, nil
}

func (r *ClubRepository) UpdateBudget(ctx context.Context, id string, budget decimal.Decimal) error {
	return r.update(ctx, id, func(club *entity.Club) {
		club.Budget = budget
	})
}

func (r *ClubRepository) UpdateName(ctx context.Context, id string, name string) error {
	return r.update(ctx, id, func(club *entity.Club) {
		club.Name = name
	})
}

func (r *ClubRepository) update(ctx context.Context, id string, mutate func(*entity.Club)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store.db.Update(func(tx *bbolt.Tx) error {
		club, err := getClub(tx, id)
		if err != nil {
			return err
		}
		if club == nil {
			return fmt.Errorf("club %q: %w", id, errs.ErrNotFound)
		}
		mutate(club)
		if err := putClub(tx, club); err != nil {
			return err
		}
		return r.store.touch(tx, clubsBucket)
	})
}

// Delete removes the club and detaches every rostered player to free
// agency within the same transaction.
func (r *ClubRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store.db.Update(func(tx *bbolt.Tx) error {
		club, err := getClub(tx, id)
		if err != nil {
			return err
		}
		if club == nil {
			return fmt.Errorf("club %q: %w", id, errs.ErrNotFound)
		}

		for _, pid := range club.Players {
			player, err := getPlayer(tx, pid)
			if err != nil {
				return err
			}
			if player == nil || player.ClubID == nil || *player.ClubID != id {
				continue
			}
			player.ClubID = nil
			if err := putPlayer(tx, player); err != nil {
				return err
			}
		}

		if err := tx.Bucket([]byte(clubsBucket)).Delete([]byte(id)); err != nil {
			return fmt.Errorf("delete club %q: %w: %v", id, errs.ErrIOFailure, err)
		}
		if err := r.store.touch(tx, playersBucket); err != nil {
			return err
		}
		return r.store.touch(tx, clubsBucket)
	})
}

func (r *ClubRepository) AddToRoster(ctx context.Context, clubID, playerID string) error {
	return r.update(ctx, clubID, func(club *entity.Club) {
		club.AddPlayer(playerID)
	})
}

func (r *ClubRepository) RemoveFromRoster(ctx context.Context, clubID, playerID string) error {
	return r.update(ctx, clubID, func(club *entity.Club) {
		club.RemovePlayer(playerID)
	})
}

// Reidentify moves the club to a new ID within one transaction,
// rewriting player assignments and ledger references.
func (r *ClubRepository) Reidentify(ctx context.Context, oldID, newID, newName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store.db.Update(func(tx *bbolt.Tx) error {
		club, err := getClub(tx, oldID)
		if err != nil {
			return err
		}
		if club == nil {
			return fmt.Errorf("club %q: %w", oldID, errs.ErrNotFound)
		}
		existing, err := getClub(tx, newID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("club %q: %w", newID, errs.ErrAlreadyExists)
		}

		club.ID = newID
		club.Name = newName
		if err := putClub(tx, club); err != nil {
			return err
		}
		if err := tx.Bucket([]byte(clubsBucket)).Delete([]byte(oldID)); err != nil {
			return fmt.Errorf("delete club %q: %w: %v", oldID, errs.ErrIOFailure, err)
		}

		var assigned []string
		err = tx.Bucket([]byte(playersBucket)).ForEach(func(k, _ []byte) error {
			player, err := getPlayer(tx, string(k))
			if err != nil {
				return err
			}
			if player.ClubID != nil && *player.ClubID == oldID {
				assigned = append(assigned, player.ID)
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, pid := range assigned {
			player, err := getPlayer(tx, pid)
			if err != nil {
				return err
			}
			id := newID
			player.ClubID = &id
			if err := putPlayer(tx, player); err != nil {
				return err
			}
		}

		err = forEachTransfer(tx, func(t *entity.Transfer) (*entity.Transfer, error) {
			changed := false
			if t.FromClub != nil && *t.FromClub == oldID {
				id := newID
				t.FromClub = &id
				changed = true
			}
			if t.ToClub != nil && *t.ToClub == oldID {
				id := newID
				t.ToClub = &id
				changed = true
			}
			if changed {
				return t, nil
			}
			return nil, nil
		})
		if err != nil {
			return err
		}

		for _, name := range []string{clubsBucket, playersBucket, transfersBucket} {
			if err := r.store.touch(tx, name); err != nil {
				return err
			}
		}
		return nil
	})
}
