package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestClubRosterOperations(t *testing.T) {
	club := &Club{ID: "utd", Name: "United", Budget: decimal.Zero}

	club.AddPlayer("p1")
	club.AddPlayer("p2")
	club.AddPlayer("p1") // duplicate is a no-op
	require.Equal(t, []string{"p1", "p2"}, club.Players)
	require.True(t, club.HasPlayer("p1"))

	club.RemovePlayer("p1")
	require.Equal(t, []string{"p2"}, club.Players)
	club.RemovePlayer("p1") // absent is a no-op
	require.Equal(t, []string{"p2"}, club.Players)
}

func TestClubCloneIsIndependent(t *testing.T) {
	club := &Club{ID: "utd", Name: "United", Budget: decimal.NewFromInt(10)}
	club.AddPlayer("p1")

	clone := club.Clone()
	clone.Name = "changed"
	clone.AddPlayer("p2")

	require.Equal(t, "United", club.Name)
	require.Equal(t, []string{"p1"}, club.Players)
}

func TestPlayerCloneCopiesPointers(t *testing.T) {
	clubID := "utd"
	player := &Player{ID: "p1", Name: "One", Value: decimal.NewFromInt(5), ClubID: &clubID}

	clone := player.Clone()
	other := "city"
	clone.ClubID = &other

	require.Equal(t, "utd", *player.ClubID)
}
