package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Club is a single club record. The ID doubles as the document key, so
// it is not serialized inside the record itself.
type Club struct {
	ID     string          `json:"-"`
	Name   string          `json:"name"`
	Budget decimal.Decimal `json:"budget"`
	// Players holds the roster as an ordered list of player IDs, no duplicates.
	Players   []string  `json:"players"`
	CreatedAt time.Time `json:"created_at"`
}

// HasPlayer reports whether the player is on the roster.
func (c *Club) HasPlayer(playerID string) bool {
	for _, id := range c.Players {
		if id == playerID {
			return true
		}
	}
	return false
}

// AddPlayer appends the player to the roster. Adding an already rostered
// player is a no-op.
func (c *Club) AddPlayer(playerID string) {
	if c.HasPlayer(playerID) {
		return
	}
	c.Players = append(c.Players, playerID)
}

// RemovePlayer drops the player from the roster, preserving order.
// Removing an absent player is a no-op.
func (c *Club) RemovePlayer(playerID string) {
	for i, id := range c.Players {
		if id == playerID {
			c.Players = append(c.Players[:i], c.Players[i+1:]...)
			return
		}
	}
}

// Clone returns a deep copy of the club.
func (c *Club) Clone() *Club {
	cp := *c
	cp.Players = append([]string(nil), c.Players...)
	return &cp
}
