package jsondb

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
	"github.com/clubdesk/transferdesk/internal/domain/errs"
)

// PlayerRepository implements secondary.PlayerRepository over the
// shared document store.
type PlayerRepository struct {
	store *Store
}

// Create persists a new player. When ClubID is set, the player joins
// that club's roster in the same unit of work, so the referential
// invariants hold immediately after the add.
func (r *PlayerRepository) Create(ctx context.Context, player *entity.Player) (*entity.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[player.ID]; ok {
		return nil, fmt.Errorf("player %q: %w", player.ID, errs.ErrAlreadyExists)
	}

	var club *entity.Club
	if player.ClubID != nil {
		var ok bool
		club, ok = s.clubs[*player.ClubID]
		if !ok {
			return nil, fmt.Errorf("club %q: %w", *player.ClubID, errs.ErrNotFound)
		}
	}

	created := player.Clone()
	created.CreatedAt = s.clock.Now()
	s.players[created.ID] = created

	if club != nil {
		club.AddPlayer(created.ID)
		if err := s.saveClubs(); err != nil {
			club.RemovePlayer(created.ID)
			delete(s.players, created.ID)
			return nil, err
		}
	}
	if err := s.savePlayers(); err != nil {
		delete(s.players, created.ID)
		if club != nil {
			club.RemovePlayer(created.ID)
			s.resaveAll()
		}
		return nil, err
	}
	return created.Clone(), nil
}

func (r *PlayerRepository) Get(ctx context.Context, id string) (*entity.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, ok := s.players[id]
	if !ok {
		return nil, fmt.Errorf("player %q: %w", id, errs.ErrNotFound)
	}
	return player.Clone(), nil
}

func (r *PlayerRepository) GetAll(ctx context.Context) (map[string]*entity.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make(map[string]*entity.Player, len(s.players))
	for id, player := range s.players {
		players[id] = player.Clone()
	}
	return players, nil
}

func (r *PlayerRepository) UpdateValue(ctx context.Context, id string, value decimal.Decimal) error {
	return r.update(ctx, id, func(p *entity.Player) func() {
		prev := p.Value
		p.Value = value
		return func() { p.Value = prev }
	})
}

func (r *PlayerRepository) UpdatePosition(ctx context.Context, id string, position string) error {
	return r.update(ctx, id, func(p *entity.Player) func() {
		prev := p.Position
		p.Position = position
		return func() { p.Position = prev }
	})
}

func (r *PlayerRepository) UpdateAge(ctx context.Context, id string, age int) error {
	return r.update(ctx, id, func(p *entity.Player) func() {
		prev := p.Age
		p.Age = age
		return func() { p.Age = prev }
	})
}

func (r *PlayerRepository) UpdateContract(ctx context.Context, id string, expires *time.Time) error {
	return r.update(ctx, id, func(p *entity.Player) func() {
		prev := p.ContractExpires
		p.ContractExpires = expires
		return func() { p.ContractExpires = prev }
	})
}

func (r *PlayerRepository) UpdateName(ctx context.Context, id string, name string) error {
	return r.update(ctx, id, func(p *entity.Player) func() {
		prev := p.Name
		p.Name = name
		return func() { p.Name = prev }
	})
}

// update applies a single-field overwrite and persists it, reverting
// the in-memory change if the save fails.
func (r *PlayerRepository) update(ctx context.Context, id string, mutate func(*entity.Player) func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[id]
	if !ok {
		return fmt.Errorf("player %q: %w", id, errs.ErrNotFound)
	}

	revert := mutate(player)
	if err := s.savePlayers(); err != nil {
		revert()
		return err
	}
	return nil
}

// Delete removes the player and takes it off its club's roster in the
// same unit of work.
func (r *PlayerRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[id]
	if !ok {
		return fmt.Errorf("player %q: %w", id, errs.ErrNotFound)
	}

	var club *entity.Club
	var prevRoster []string
	if player.ClubID != nil {
		if c, ok := s.clubs[*player.ClubID]; ok && c.HasPlayer(id) {
			club = c
			prevRoster = append([]string(nil), c.Players...)
			c.RemovePlayer(id)
		}
	}

	delete(s.players, id)

	if club != nil {
		if err := s.saveClubs(); err != nil {
			club.Players = prevRoster
			s.players[id] = player
			return err
		}
	}
	if err := s.savePlayers(); err != nil {
		s.players[id] = player
		if club != nil {
			club.Players = prevRoster
			s.resaveAll()
		}
		return err
	}
	return nil
}

// Reidentify moves the player to a new ID, swapping the roster entry
// and rewriting ledger references before dropping the old identity.
func (r *PlayerRepository) Reidentify(ctx context.Context, oldID, newID, newName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[oldID]
	if !ok {
		return fmt.Errorf("player %q: %w", oldID, errs.ErrNotFound)
	}
	if _, ok := s.players[newID]; ok {
		return fmt.Errorf("player %q: %w", newID, errs.ErrAlreadyExists)
	}

	renamed := player.Clone()
	renamed.ID = newID
	renamed.Name = newName

	var club *entity.Club
	var prevRoster []string
	if player.ClubID != nil {
		if c, ok := s.clubs[*player.ClubID]; ok {
			club = c
			prevRoster = append([]string(nil), c.Players...)
			for i, pid := range c.Players {
				if pid == oldID {
					c.Players[i] = newID
				}
			}
		}
	}

	var rewritten []int
	for i, t := range s.transfers {
		if t.PlayerID == oldID {
			t.PlayerID = newID
			rewritten = append(rewritten, i)
		}
	}

	delete(s.players, oldID)
	s.players[newID] = renamed

	if err := s.saveAll(); err != nil {
		delete(s.players, newID)
		s.players[oldID] = player
		if club != nil {
			club.Players = prevRoster
		}
		for _, i := range rewritten {
			s.transfers[i].PlayerID = oldID
		}
		s.resaveAll()
		return err
	}
	return nil
}
