package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is one immutable entry of the transfer ledger. Entries are
// never edited or deleted after append; references may dangle if the
// player or a club is deleted later.
type Transfer struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id"`
	// FromClub is the club the player left, nil if the player was a
	// free agent.
	FromClub *string `json:"from_club"`
	// ToClub is the club the player joined, nil for a release to free
	// agency.
	ToClub *string `json:"to_club"`
	// Amount is the fee paid by ToClub to FromClub, zero for a free
	// release.
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

// Clone returns a deep copy of the transfer record.
func (t *Transfer) Clone() *Transfer {
	cp := *t
	if t.FromClub != nil {
		from := *t.FromClub
		cp.FromClub = &from
	}
	if t.ToClub != nil {
		to := *t.ToClub
		cp.ToClub = &to
	}
	return &cp
}

// Activity summarizes the ledger for reporting.
type Activity struct {
	Transfers     int
	TotalFees     decimal.Decimal
	AverageFee    decimal.Decimal
	MostExpensive *Transfer
}
