package service

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/clubdesk/transferdesk/internal/domain/errs"
)

func TestPlayerCreateValidation(t *testing.T) {
	store := newTestStore(t)
	svc := NewPlayerService(store.Players(), testClock())
	ctx := context.Background()

	_, err := svc.Create(ctx, "p1", "One", decimal.Zero, nil, "STRIKER", 24)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = svc.Create(ctx, "p1", "One", decimal.Zero, nil, "FWD", -1)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	// Empty position means unset and is accepted.
	_, err = svc.Create(ctx, "p1", "One", decimal.Zero, nil, "", 24)
	require.NoError(t, err)
}

func TestFreeAgentsSortedByValue(t *testing.T) {
	store := newTestStore(t)
	svc := NewPlayerService(store.Players(), testClock())
	ctx := context.Background()

	_, err := NewClubService(store.Clubs()).Create(ctx, "utd", "United", decimal.Zero)
	require.NoError(t, err)
	utd := "utd"

	_, err = svc.Create(ctx, "cheap", "Cheap", decimal.NewFromInt(5), nil, "DEF", 30)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "star", "Star", decimal.NewFromInt(90), nil, "FWD", 22)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "signed", "Signed", decimal.NewFromInt(50), &utd, "MID", 25)
	require.NoError(t, err)

	agents, err := svc.FreeAgents(ctx)
	require.NoError(t, err)
	require.Len(t, agents, 2)
	require.Equal(t, "star", agents[0].ID)
	require.Equal(t, "cheap", agents[1].ID)
}

func TestByPosition(t *testing.T) {
	store := newTestStore(t)
	svc := NewPlayerService(store.Players(), testClock())
	ctx := context.Background()

	_, err := svc.Create(ctx, "gk1", "Keeper", decimal.NewFromInt(20), nil, "GK", 28)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "fwd1", "Striker", decimal.NewFromInt(60), nil, "FWD", 24)
	require.NoError(t, err)

	keepers, err := svc.ByPosition(ctx, "GK")
	require.NoError(t, err)
	require.Len(t, keepers, 1)
	require.Equal(t, "gk1", keepers[0].ID)

	_, err = svc.ByPosition(ctx, "SWEEPER")
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestExpiringContracts(t *testing.T) {
	store := newTestStore(t)
	// A clock far from wall time: the window only matches if the
	// service takes "now" from the injected clock.
	clock := clockwork.NewFakeClockAt(time.Date(2200, 1, 1, 0, 0, 0, 0, time.UTC))
	svc := NewPlayerService(store.Players(), clock)
	ctx := context.Background()

	_, err := svc.Create(ctx, "soon", "Soon", decimal.NewFromInt(10), nil, "MID", 26)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "later", "Later", decimal.NewFromInt(10), nil, "MID", 26)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "never", "Never", decimal.NewFromInt(10), nil, "MID", 26)
	require.NoError(t, err)

	base := clock.Now()
	soon := base.Add(24 * time.Hour)
	later := base.Add(72 * time.Hour)
	distant := base.Add(365 * 24 * time.Hour)
	require.NoError(t, svc.SetContract(ctx, "soon", &soon))
	require.NoError(t, svc.SetContract(ctx, "later", &later))
	require.NoError(t, svc.SetContract(ctx, "never", &distant))

	expiring, err := svc.ExpiringContracts(ctx, 7*24*time.Hour)
	require.NoError(t, err)
	require.Len(t, expiring, 2)
	require.Equal(t, "soon", expiring[0].ID)
	require.Equal(t, "later", expiring[1].ID)
}
