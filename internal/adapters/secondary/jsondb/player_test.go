package jsondb

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
	"github.com/clubdesk/transferdesk/internal/domain/errs"
)

func TestPlayerCreateJoinsRoster(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	mustCreateClub(t, store, "utd", 100)
	clubID := "utd"
	mustCreatePlayer(t, store, "p1", &clubID, 10)

	club, err := store.Clubs().Get(ctx, "utd")
	require.NoError(t, err)
	require.Equal(t, []string{"p1"}, club.Players)
}

func TestPlayerCreateUnknownClub(t *testing.T) {
	store, _ := newTestStore(t)

	clubID := "ghost"
	_, err := store.Players().Create(context.Background(), &entity.Player{
		ID:     "p1",
		Name:   "One",
		Value:  decimal.NewFromInt(10),
		ClubID: &clubID,
	})
	require.ErrorIs(t, err, errs.ErrNotFound)

	// The failed create must not leave a half-written player behind.
	_, err = store.Players().Get(context.Background(), "p1")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestPlayerUpdates(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	mustCreatePlayer(t, store, "p1", nil, 10)
	players := store.Players()

	require.NoError(t, players.UpdateValue(ctx, "p1", decimal.NewFromInt(42)))
	require.NoError(t, players.UpdatePosition(ctx, "p1", "MID"))
	require.NoError(t, players.UpdateAge(ctx, "p1", 28))
	require.NoError(t, players.UpdateName(ctx, "p1", "Renamed"))
	expires := time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)
	require.NoError(t, players.UpdateContract(ctx, "p1", &expires))

	player, err := players.Get(ctx, "p1")
	require.NoError(t, err)
	require.True(t, player.Value.Equal(decimal.NewFromInt(42)))
	require.Equal(t, "MID", player.Position)
	require.Equal(t, 28, player.Age)
	require.Equal(t, "Renamed", player.Name)
	require.NotNil(t, player.ContractExpires)
	require.True(t, player.ContractExpires.Equal(expires))
}

func TestPlayerUpdateMissing(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Players().UpdateValue(context.Background(), "ghost", decimal.NewFromInt(1))
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestPlayerDeleteLeavesRoster(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	mustCreateClub(t, store, "utd", 100)
	clubID := "utd"
	mustCreatePlayer(t, store, "p1", &clubID, 10)

	require.NoError(t, store.Players().Delete(ctx, "p1"))

	_, err := store.Players().Get(ctx, "p1")
	require.ErrorIs(t, err, errs.ErrNotFound)

	club, err := store.Clubs().Get(ctx, "utd")
	require.NoError(t, err)
	require.Empty(t, club.Players)
}

func TestPlayerReidentifyRewritesReferences(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	mustCreateClub(t, store, "utd", 100)
	mustCreatePlayer(t, store, "p1", nil, 10)

	clubID := "utd"
	_, err := store.Transfers().Record(ctx, "p1", &clubID, decimal.NewFromInt(5))
	require.NoError(t, err)

	require.NoError(t, store.Players().Reidentify(ctx, "p1", "p1-new", "New Name"))

	_, err = store.Players().Get(ctx, "p1")
	require.ErrorIs(t, err, errs.ErrNotFound)

	player, err := store.Players().Get(ctx, "p1-new")
	require.NoError(t, err)
	require.Equal(t, "New Name", player.Name)

	club, err := store.Clubs().Get(ctx, "utd")
	require.NoError(t, err)
	require.Equal(t, []string{"p1-new"}, club.Players)

	transfers, err := store.Transfers().GetByPlayer(ctx, "p1-new")
	require.NoError(t, err)
	require.Len(t, transfers, 1)
}
