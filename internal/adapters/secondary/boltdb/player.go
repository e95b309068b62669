package boltdb

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.etcd.io/bbolt"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
	"github.com/clubdesk/transferdesk/internal/domain/errs"
)

// PlayerRepository implements secondary.PlayerRepository over bbolt.
type PlayerRepository struct {
	store *Store
}

// Create persists a new player, joining the destination club's roster
// in the same transaction when ClubID is set.
func (r *PlayerRepository) Create(ctx context.Context, player *entity.Player) (*entity.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	created := player.Clone()
	created.CreatedAt = r.store.clock.Now()

	err := r.store.db.Update(func(tx *bbolt.Tx) error {
		existing, err := getPlayer(tx, created.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("player %q: %w", created.ID, errs.ErrAlreadyExists)
		}

		if created.ClubID != nil {
			club, err := getClub(tx, *created.ClubID)
			if err != nil {
				return err
			}
			if club == nil {
				return fmt.Errorf("club %q: %w", *created.ClubID, errs.ErrNotFound)
			}
			club.AddPlayer(created.ID)
			if err := putClub(tx, club); err != nil {
				return err
			}
			if err := r.store.touch(tx, clubsBucket); err != nil {
				return err
			}
		}

		if err := putPlayer(tx, created); err != nil {
			return err
		}
		return r.store.touch(tx, playersBucket)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *PlayerRepository) Get(ctx context.Context, id string) (*entity.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var player *entity.Player
	err := r.store.db.View(func(tx *bbolt.Tx) error {
		var err error
		player, err = getPlayer(tx, id)
		if err != nil {
			return err
		}
		if player == nil {
			return fmt.Errorf("player %q: %w", id, errs.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return player, nil
}

func (r *PlayerRepository) GetAll(ctx context.Context) (map[string]*entity.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	players := make(map[string]*entity.Player)
	err := r.store.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(playersBucket)).ForEach(func(k, _ []byte) error {
			player, err := getPlayer(tx, string(k))
			if err != nil {
				return err
			}
			players[player.ID] = player
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return players, nil
}

func (r *PlayerRepository) UpdateValue(ctx context.Context, id string, value decimal.Decimal) error {
	return r.update(ctx, id, func(p *entity.Player) {
		p.Value = value
	})
}

func (r *PlayerRepository) UpdatePosition(ctx context.Context, id string, position string) error {
	return r.update(ctx, id, func(p *entity.Player) {
		p.Position = position
	})
}

func (r *PlayerRepository) UpdateAge(ctx context.Context, id string, age int) error {
	return r.update(ctx, id, func(p *entity.Player) {
		p.Age = age
	})
}

func (r *PlayerRepository) UpdateContract(ctx context.Context, id string, expires *time.Time) error {
	return r.update(ctx, id, func(p *entity.Player) {
		p.ContractExpires = expires
	})
}

func (r *PlayerRepository) UpdateName(ctx context.Context, id string, name string) error {
	return r.update(ctx, id, func(p *entity.Player) {
		p.Name = name
	})
}

func (r *PlayerRepository) update(ctx context.Context, id string, mutate func(*entity.Player)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store.db.Update(func(tx *bbolt.Tx) error {
		player, err := getPlayer(tx, id)
		if err != nil {
			return err
		}
		if player == nil {
			return fmt.Errorf("player %q: %w", id, errs.ErrNotFound)
		}
		mutate(player)
		if err := putPlayer(tx, player); err != nil {
			return err
		}
		return r.store.touch(tx, playersBucket)
	})
}

// Delete removes the player and takes it off its club's roster within
// the same transaction.
func (r *PlayerRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store.db.Update(func(tx *bbolt.Tx) error {
		player, err := getPlayer(tx, id)
		if err != nil {
			return err
		}
		if player == nil {
			return fmt.Errorf("player %q: %w", id, errs.ErrNotFound)
		}

		if player.ClubID != nil {
			club, err := getClub(tx, *player.ClubID)
			if err != nil {
				return err
			}
			if club != nil && club.HasPlayer(id) {
				club.RemovePlayer(id)
				if err := putClub(tx, club); err != nil {
					return err
				}
				if err := r.store.touch(tx, clubsBucket); err != nil {
					return err
				}
			}
		}

		if err := tx.Bucket([]byte(playersBucket)).Delete([]byte(id)); err != nil {
			return fmt.Errorf("delete player %q: %w: %v", id, errs.ErrIOFailure, err)
		}
		return r.store.touch(tx, playersBucket)
	})
}

// Reidentify moves the player to a new ID within one transaction,
// swapping the roster entry and rewriting ledger references.
func (r *PlayerRepository) Reidentify(ctx context.Context, oldID, newID, newName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store.db.Update(func(tx *bbolt.Tx) error {
		player, err := getPlayer(tx, oldID)
		if err != nil {
			return err
		}
		if player == nil {
			return fmt.Errorf("player %q: %w", oldID, errs.ErrNotFound)
		}
		existing, err := getPlayer(tx, newID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("player %q: %w", newID, errs.ErrAlreadyExists)
		}

		player.ID = newID
		player.Name = newName
		if err := putPlayer(tx, player); err != nil {
			return err
		}
		if err := tx.Bucket([]byte(playersBucket)).Delete([]byte(oldID)); err != nil {
			return fmt.Errorf("delete player %q: %w: %v", oldID, errs.ErrIOFailure, err)
		}

		if player.ClubID != nil {
			club, err := getClub(tx, *player.ClubID)
			if err != nil {
				return err
			}
			if club != nil {
				for i, pid := range club.Players {
					if pid == oldID {
						club.Players[i] = newID
					}
				}
				if err := putClub(tx, club); err != nil {
					return err
				}
				if err := r.store.touch(tx, clubsBucket); err != nil {
					return err
				}
			}
		}

		err = forEachTransfer(tx, func(t *entity.Transfer) (*entity.Transfer, error) {
			if t.PlayerID != oldID {
				return nil, nil
			}
			t.PlayerID = newID
			return t, nil
		})
		if err != nil {
			return err
		}

		if err := r.store.touch(tx, transfersBucket); err != nil {
			return err
		}
		return r.store.touch(tx, playersBucket)
	})
}
