package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
	"github.com/clubdesk/transferdesk/internal/domain/errs"
	"github.com/clubdesk/transferdesk/internal/domain/utils/validator"
	"github.com/clubdesk/transferdesk/internal/ports/secondary"
)

type ClubService struct {
	repo secondary.ClubRepository
}

func NewClubService(storage secondary.ClubRepository) *ClubService {
	return &ClubService{
		repo: storage,
	}
}

func (s *ClubService) Create(ctx context.Context, id, name string, budget decimal.Decimal) (*entity.Club, error) {
	if !validator.EntityID(id) {
		return nil, fmt.Errorf("club id %q: %w", id, errs.ErrInvalidArgument)
	}
	if !validator.DisplayName(name) {
		return nil, fmt.Errorf("club name %q: %w", name, errs.ErrInvalidArgument)
	}
	return s.repo.Create(ctx, &entity.Club{ID: id, Name: name, Budget: budget})
}

func (s *ClubService) Get(ctx context.Context, id string) (*entity.Club, error) {
	return s.repo.Get(ctx, id)
}

func (s *ClubService) GetAll(ctx context.Context) (map[string]*entity.Club, error) {
	return s.repo.GetAll(ctx)
}

func (s *ClubService) SetBudget(ctx context.Context, id string, budget decimal.Decimal) error {
	return s.repo.UpdateBudget(ctx, id, budget)
}

// AdjustBudget credits or debits the club budget by delta and returns
// the new balance. The budget has no enforced lower bound; a debit may
// take it negative.
func (s *ClubService) AdjustBudget(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	club, err := s.repo.Get(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	budget := club.Budget.Add(delta)
	if err := s.repo.UpdateBudget(ctx, id, budget); err != nil {
		return decimal.Zero, err
	}
	return budget, nil
}

func (s *ClubService) SetName(ctx context.Context, id, name string) error {
	if !validator.DisplayName(name) {
		return fmt.Errorf("club name %q: %w", name, errs.ErrInvalidArgument)
	}
	return s.repo.UpdateName(ctx, id, name)
}

func (s *ClubService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
