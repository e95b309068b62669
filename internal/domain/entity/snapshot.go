package entity

import "time"

// Snapshot is a consistent export of all three collections, taken in a
// single read so the parts agree with each other.
type Snapshot struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Clubs       map[string]*Club   `json:"clubs"`
	Players     map[string]*Player `json:"players"`
	Transfers   []*Transfer        `json:"transfers"`
}

// PurgeResult reports how many records a tenant purge removed.
type PurgeResult struct {
	Clubs     int
	Players   int
	Transfers int
}
