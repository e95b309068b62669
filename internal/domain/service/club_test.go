package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/clubdesk/transferdesk/internal/domain/errs"
)

func TestClubCreateValidation(t *testing.T) {
	store := newTestStore(t)
	svc := NewClubService(store.Clubs())
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "United", decimal.Zero)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = svc.Create(ctx, "utd", "", decimal.Zero)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestClubAdjustBudget(t *testing.T) {
	store := newTestStore(t)
	svc := NewClubService(store.Clubs())
	ctx := context.Background()

	_, err := svc.Create(ctx, "utd", "United", decimal.NewFromInt(100))
	require.NoError(t, err)

	balance, err := svc.AdjustBudget(ctx, "utd", decimal.NewFromInt(50))
	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.NewFromInt(150)))

	// Debits may take the budget negative; there is no floor.
	balance, err = svc.AdjustBudget(ctx, "utd", decimal.NewFromInt(-200))
	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.NewFromInt(-50)))

	club, err := svc.Get(ctx, "utd")
	require.NoError(t, err)
	require.True(t, club.Budget.Equal(decimal.NewFromInt(-50)))
}

func TestClubAdjustBudgetMissing(t *testing.T) {
	store := newTestStore(t)
	svc := NewClubService(store.Clubs())

	_, err := svc.AdjustBudget(context.Background(), "ghost", decimal.NewFromInt(1))
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestClubSetNameValidation(t *testing.T) {
	store := newTestStore(t)
	svc := NewClubService(store.Clubs())
	ctx := context.Background()

	_, err := svc.Create(ctx, "utd", "United", decimal.Zero)
	require.NoError(t, err)

	require.ErrorIs(t, svc.SetName(ctx, "utd", ""), errs.ErrInvalidArgument)
	require.NoError(t, svc.SetName(ctx, "utd", "Renamed"))

	club, err := svc.Get(ctx, "utd")
	require.NoError(t, err)
	require.Equal(t, "Renamed", club.Name)
}
