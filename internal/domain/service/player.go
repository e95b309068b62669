package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
	"github.com/clubdesk/transferdesk/internal/domain/errs"
	"github.com/clubdesk/transferdesk/internal/domain/utils/validator"
	"github.com/clubdesk/transferdesk/internal/ports/secondary"
)

type PlayerService struct {
	repo  secondary.PlayerRepository
	clock clockwork.Clock
}

func NewPlayerService(storage secondary.PlayerRepository, clock clockwork.Clock) *PlayerService {
	return &PlayerService{
		repo:  storage,
		clock: clock,
	}
}

func (s *PlayerService) Create(ctx context.Context, id, name string, value decimal.Decimal, clubID *string, position string, age int) (*entity.Player, error) {
	if !validator.EntityID(id) {
		return nil, fmt.Errorf("player id %q: %w", id, errs.ErrInvalidArgument)
	}
	if !validator.DisplayName(name) {
		return nil, fmt.Errorf("player name %q: %w", name, errs.ErrInvalidArgument)
	}
	if !validator.Position(position) {
		return nil, fmt.Errorf("position %q: %w", position, errs.ErrInvalidArgument)
	}
	if !validator.Age(age) {
		return nil, fmt.Errorf("age %d: %w", age, errs.ErrInvalidArgument)
	}
	return s.repo.Create(ctx, &entity.Player{
		ID:       id,
		Name:     name,
		Value:    value,
		ClubID:   clubID,
		Position: position,
		Age:      age,
	})
}

func (s *PlayerService) Get(ctx context.Context, id string) (*entity.Player, error) {
	return s.repo.Get(ctx, id)
}

func (s *PlayerService) GetAll(ctx context.Context) (map[string]*entity.Player, error) {
	return s.repo.GetAll(ctx)
}

func (s *PlayerService) SetValue(ctx context.Context, id string, value decimal.Decimal) error {
	return s.repo.UpdateValue(ctx, id, value)
}

func (s *PlayerService) SetPosition(ctx context.Context, id, position string) error {
	if !validator.Position(position) {
		return fmt.Errorf("position %q: %w", position, errs.ErrInvalidArgument)
	}
	return s.repo.UpdatePosition(ctx, id, position)
}

func (s *PlayerService) SetAge(ctx context.Context, id string, age int) error {
	if !validator.Age(age) {
		return fmt.Errorf("age %d: %w", age, errs.ErrInvalidArgument)
	}
	return s.repo.UpdateAge(ctx, id, age)
}

func (s *PlayerService) SetContract(ctx context.Context, id string, expires *time.Time) error {
	return s.repo.UpdateContract(ctx, id, expires)
}

func (s *PlayerService) SetName(ctx context.Context, id, name string) error {
	if !validator.DisplayName(name) {
		return fmt.Errorf("player name %q: %w", name, errs.ErrInvalidArgument)
	}
	return s.repo.UpdateName(ctx, id, name)
}

func (s *PlayerService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// FreeAgents lists players with no club assignment, most valuable
// first.
func (s *PlayerService) FreeAgents(ctx context.Context) ([]*entity.Player, error) {
	return s.filter(ctx, func(p *entity.Player) bool {
		return p.IsFreeAgent()
	})
}

// ByPosition lists players with the given position code, most valuable
// first.
func (s *PlayerService) ByPosition(ctx context.Context, position string) ([]*entity.Player, error) {
	if !validator.Position(position) {
		return nil, fmt.Errorf("position %q: %w", position, errs.ErrInvalidArgument)
	}
	return s.filter(ctx, func(p *entity.Player) bool {
		return p.Position == position
	})
}

// ExpiringContracts lists players whose contract ends within the given
// window from now, soonest first.
func (s *PlayerService) ExpiringContracts(ctx context.Context, within time.Duration) ([]*entity.Player, error) {
	deadline := s.clock.Now().Add(within)
	players, err := s.filter(ctx, func(p *entity.Player) bool {
		return p.ContractExpires != nil && p.ContractExpires.Before(deadline)
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].ContractExpires.Before(*players[j].ContractExpires)
	})
	return players, nil
}

func (s *PlayerService) filter(ctx context.Context, keep func(*entity.Player) bool) ([]*entity.Player, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	players := make([]*entity.Player, 0, len(all))
	for _, p := range all {
		if keep(p) {
			players = append(players, p)
		}
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].Value.GreaterThan(players[j].Value)
	})
	return players, nil
}
