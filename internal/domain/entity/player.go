package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Player is a single player record. Value is the market value and is
// independent of any transfer fee ever paid for the player.
type Player struct {
	ID   string          `json:"-"`
	Name string          `json:"name"`
	// Value is the player's market value.
	Value decimal.Decimal `json:"value"`
	// ClubID references the club the player is assigned to; nil means
	// free agent.
	ClubID   *string `json:"club_id"`
	Position string  `json:"position"`
	// Age is the player's age in years, 0 meaning unset.
	Age             int        `json:"age"`
	ContractExpires *time.Time `json:"contract_expires"`
	CreatedAt       time.Time  `json:"created_at"`
}

// IsFreeAgent reports whether the player has no club assignment.
func (p *Player) IsFreeAgent() bool {
	return p.ClubID == nil
}

// Clone returns a deep copy of the player.
func (p *Player) Clone() *Player {
	cp := *p
	if p.ClubID != nil {
		clubID := *p.ClubID
		cp.ClubID = &clubID
	}
	if p.ContractExpires != nil {
		expires := *p.ContractExpires
		cp.ContractExpires = &expires
	}
	return &cp
}
