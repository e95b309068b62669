package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
	"github.com/clubdesk/transferdesk/internal/domain/errs"
)

func testClock() clockwork.Clock {
	return clockwork.NewFakeClockAt(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "desk.db")
	store, err := Open(path, testClock())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store, path
}

func createClub(t *testing.T, store *Store, id string, budget int64) {
	t.Helper()
	_, err := store.Clubs().Create(context.Background(), &entity.Club{
		ID:     id,
		Name:   id,
		Budget: decimal.NewFromInt(budget),
	})
	require.NoError(t, err)
}

func createPlayer(t *testing.T, store *Store, id string, clubID *string) {
	t.Helper()
	_, err := store.Players().Create(context.Background(), &entity.Player{
		ID:     id,
		Name:   id,
		Value:  decimal.NewFromInt(10),
		ClubID: clubID,
	})
	require.NoError(t, err)
}

func TestReopenRoundTrip(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	createClub(t, store, "utd", 100)
	clubID := "utd"
	createPlayer(t, store, "p1", &clubID)
	require.NoError(t, store.Close())

	reopened, err := Open(path, testClock())
	require.NoError(t, err)
	defer reopened.Close()

	club, err := reopened.Clubs().Get(ctx, "utd")
	require.NoError(t, err)
	require.True(t, club.Budget.Equal(decimal.NewFromInt(100)))
	require.Equal(t, []string{"p1"}, club.Players)

	player, err := reopened.Players().Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "utd", *player.ClubID)
}

func TestGetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Clubs().Get(context.Background(), "ghost")
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = store.Players().Get(context.Background(), "ghost")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCreateDuplicate(t *testing.T) {
	store, _ := newTestStore(t)

	createClub(t, store, "utd", 100)
	_, err := store.Clubs().Create(context.Background(), &entity.Club{
		ID:     "utd",
		Name:   "Other",
		Budget: decimal.Zero,
	})
	require.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestRecordTransferMovesBudgets(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	createClub(t, store, "utd", 100)
	createClub(t, store, "city", 200)
	utd := "utd"
	createPlayer(t, store, "p1", &utd)

	city := "city"
	entry, err := store.Transfers().Record(ctx, "p1", &city, decimal.NewFromInt(50))
	require.NoError(t, err)
	require.Equal(t, "utd", *entry.FromClub)
	require.Equal(t, "city", *entry.ToClub)

	seller, err := store.Clubs().Get(ctx, "utd")
	require.NoError(t, err)
	require.True(t, seller.Budget.Equal(decimal.NewFromInt(150)))
	require.Empty(t, seller.Players)

	buyer, err := store.Clubs().Get(ctx, "city")
	require.NoError(t, err)
	require.True(t, buyer.Budget.Equal(decimal.NewFromInt(150)))
	require.Equal(t, []string{"p1"}, buyer.Players)
}

func TestRecordSameClubConservesBudget(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	createClub(t, store, "utd", 100)
	utd := "utd"
	createPlayer(t, store, "p1", &utd)

	entry, err := store.Transfers().Record(ctx, "p1", &utd, decimal.NewFromInt(40))
	require.NoError(t, err)
	require.Equal(t, "utd", *entry.FromClub)
	require.Equal(t, "utd", *entry.ToClub)

	club, err := store.Clubs().Get(ctx, "utd")
	require.NoError(t, err)
	require.True(t, club.Budget.Equal(decimal.NewFromInt(100)),
		"budget changed on a same-club transfer: got %s", club.Budget)
	require.Equal(t, []string{"p1"}, club.Players)

	player, err := store.Players().Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "utd", *player.ClubID)
}

func TestRecordInsufficientBudgetRollsBack(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	createClub(t, store, "poor", 10)
	createPlayer(t, store, "p1", nil)

	poor := "poor"
	_, err := store.Transfers().Record(ctx, "p1", &poor, decimal.NewFromInt(50))
	require.ErrorIs(t, err, errs.ErrInsufficientBudget)

	club, err := store.Clubs().Get(ctx, "poor")
	require.NoError(t, err)
	require.True(t, club.Budget.Equal(decimal.NewFromInt(10)))

	transfers, err := store.Transfers().GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, transfers)
}

func TestLedgerKeepsInsertionOrder(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	createClub(t, store, "utd", 1000)
	createClub(t, store, "city", 1000)
	createPlayer(t, store, "p1", nil)

	utd, city := "utd", "city"
	for _, dest := range []*string{&utd, &city, nil} {
		_, err := store.Transfers().Record(ctx, "p1", dest, decimal.Zero)
		require.NoError(t, err)
	}

	transfers, err := store.Transfers().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, transfers, 3)
	require.Equal(t, "utd", *transfers[0].ToClub)
	require.Equal(t, "city", *transfers[1].ToClub)
	require.Nil(t, transfers[2].ToClub)
}

func TestClubDeleteDetachesPlayers(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	createClub(t, store, "utd", 100)
	utd := "utd"
	createPlayer(t, store, "p1", &utd)

	require.NoError(t, store.Clubs().Delete(ctx, "utd"))

	player, err := store.Players().Get(ctx, "p1")
	require.NoError(t, err)
	require.Nil(t, player.ClubID)
}

func TestClubReidentifyRewritesLedger(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	createClub(t, store, "utd", 100)
	createPlayer(t, store, "p1", nil)

	utd := "utd"
	_, err := store.Transfers().Record(ctx, "p1", &utd, decimal.NewFromInt(20))
	require.NoError(t, err)

	require.NoError(t, store.Clubs().Reidentify(ctx, "utd", "newcastle", "Newcastle"))

	player, err := store.Players().Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "newcastle", *player.ClubID)

	transfers, err := store.Transfers().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	require.Equal(t, "newcastle", *transfers[0].ToClub)
}

func TestSnapshotAndPurgeTenant(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	createClub(t, store, "g1:utd", 100)
	createClub(t, store, "g2:city", 100)
	createPlayer(t, store, "g1:p1", nil)

	g1 := "g1:utd"
	_, err := store.Transfers().Record(ctx, "g1:p1", &g1, decimal.Zero)
	require.NoError(t, err)

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Clubs, 2)
	require.Len(t, snap.Players, 1)
	require.Len(t, snap.Transfers, 1)

	res, err := store.PurgeTenant(ctx, "g1:")
	require.NoError(t, err)
	require.Equal(t, entity.PurgeResult{Clubs: 1, Players: 1, Transfers: 1}, res)

	_, err = store.Clubs().Get(ctx, "g1:utd")
	require.ErrorIs(t, err, errs.ErrNotFound)
	_, err = store.Clubs().Get(ctx, "g2:city")
	require.NoError(t, err)
}
