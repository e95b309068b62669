package jsondb

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
	"github.com/clubdesk/transferdesk/internal/domain/errs"
)

// ClubRepository implements secondary.ClubRepository over the shared
// document store.
type ClubRepository struct {
	store *Store
}

func (r *ClubRepository) Create(ctx context.Context, club *entity.Club) (*entity.Club, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clubs[club.ID]; ok {
		return nil, fmt.Errorf("club %q: %w", club.ID, errs.ErrAlreadyExists)
	}

	created := club.Clone()
	created.Players = []string{}
	created.CreatedAt = s.clock.Now()

	s.clubs[created.ID] = created
	if err := s.saveClubs(); err != nil {
		delete(s.clubs, created.ID)
		return nil, err
	}
	return created.Clone(), nil
}

func (r *ClubRepository) Get(ctx context.Context, id string) (*entity.Club, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	club, ok := s.clubs[id]
	if !ok {
		return nil, fmt.Errorf("club %q: %w", id, errs.ErrNotFound)
	}
	return club.Clone(), nil
}

func (r *ClubRepository) GetAll(ctx context.Context) (map[string]*entity.Club, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	clubs := make(map[string]*entity.Club, len(s.clubs))
	for id, club := range s.clubs {
		clubs[id] = club.Clone()
	}
	return clubs, nil
}

func (r *ClubRepository) UpdateBudget(ctx context.Context, id string, budget decimal.Decimal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	club, ok := s.clubs[id]
	if !ok {
		return fmt.Errorf("club %q: %w", id, errs.ErrNotFound)
	}

	prev := club.Budget
	club.Budget = budget
	if err := s.saveClubs(); err != nil {
		club.Budget = prev
		return err
	}
	return nil
}

func (r *ClubRepository) UpdateName(ctx context.Context, id string, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	club, ok := s.clubs[id]
	if !ok {
		return fmt.Errorf("club %q: %w", id, errs.ErrNotFound)
	}

	prev := club.Name
	club.Name = name
	if err := s.saveClubs(); err != nil {
		club.Name = prev
		return err
	}
	return nil
}

// Delete removes the club and detaches every rostered player to free
// agency in the same unit of work, keeping the referential invariants.
func (r *ClubRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	club, ok := s.clubs[id]
	if !ok {
		return fmt.Errorf("club %q: %w", id, errs.ErrNotFound)
	}

	detached := make(map[string]*string, len(club.Players))
	for _, pid := range club.Players {
		player, ok := s.players[pid]
		if !ok || player.ClubID == nil || *player.ClubID != id {
			continue
		}
		detached[pid] = player.ClubID
		player.ClubID = nil
	}

	delete(s.clubs, id)

	if len(detached) > 0 {
		if err := s.savePlayers(); err != nil {
			s.clubs[id] = club
			for pid, prev := range detached {
				s.players[pid].ClubID = prev
			}
			return err
		}
	}
	if err := s.saveClubs(); err != nil {
		s.clubs[id] = club
		for pid, prev := range detached {
			s.players[pid].ClubID = prev
		}
		s.resaveAll()
		return err
	}
	return nil
}

func (r *ClubRepository) AddToRoster(ctx context.Context, clubID, playerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	club, ok := s.clubs[clubID]
	if !ok {
		return fmt.Errorf("club %q: %w", clubID, errs.ErrNotFound)
	}
	if club.HasPlayer(playerID) {
		return nil
	}

	club.AddPlayer(playerID)
	if err := s.saveClubs(); err != nil {
		club.RemovePlayer(playerID)
		return err
	}
	return nil
}

func (r *ClubRepository) RemoveFromRoster(ctx context.Context, clubID, playerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	club, ok := s.clubs[clubID]
	if !ok {
		return fmt.Errorf("club %q: %w", clubID, errs.ErrNotFound)
	}
	if !club.HasPlayer(playerID) {
		return nil
	}

	prev := append([]string(nil), club.Players...)
	club.RemovePlayer(playerID)
	if err := s.saveClubs(); err != nil {
		club.Players = prev
		return err
	}
	return nil
}

// Reidentify moves the club to a new ID, rewriting player assignments
// and ledger references before dropping the old identity.
func (r *ClubRepository) Reidentify(ctx context.Context, oldID, newID, newName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	club, ok := s.clubs[oldID]
	if !ok {
		return fmt.Errorf("club %q: %w", oldID, errs.ErrNotFound)
	}
	if _, ok := s.clubs[newID]; ok {
		return fmt.Errorf("club %q: %w", newID, errs.ErrAlreadyExists)
	}

	renamed := club.Clone()
	renamed.ID = newID
	renamed.Name = newName

	var reassigned []string
	for pid, player := range s.players {
		if player.ClubID != nil && *player.ClubID == oldID {
			id := newID
			player.ClubID = &id
			reassigned = append(reassigned, pid)
		}
	}

	var fromRewritten, toRewritten []int
	for i, t := range s.transfers {
		if t.FromClub != nil && *t.FromClub == oldID {
			id := newID
			t.FromClub = &id
			fromRewritten = append(fromRewritten, i)
		}
		if t.ToClub != nil && *t.ToClub == oldID {
			id := newID
			t.ToClub = &id
			toRewritten = append(toRewritten, i)
		}
	}

	delete(s.clubs, oldID)
	s.clubs[newID] = renamed

	if err := s.saveAll(); err != nil {
		delete(s.clubs, newID)
		s.clubs[oldID] = club
		for _, pid := range reassigned {
			id := oldID
			s.players[pid].ClubID = &id
		}
		for _, i := range fromRewritten {
			id := oldID
			s.transfers[i].FromClub = &id
		}
		for _, i := range toRewritten {
			id := oldID
			s.transfers[i].ToClub = &id
		}
		s.resaveAll()
		return err
	}
	return nil
}
