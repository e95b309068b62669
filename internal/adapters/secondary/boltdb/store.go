// Package boltdb persists all three collections in a single embedded
// bbolt database. Multi-collection operations run inside one bbolt
// transaction, which gives the all-or-nothing unit of work natively
// instead of the staged rewrite the flat-file backend performs.
package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.etcd.io/bbolt"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
	"github.com/clubdesk/transferdesk/internal/domain/errs"
	"github.com/clubdesk/transferdesk/internal/ports/secondary"
)

const (
	clubsBucket     = "clubs"
	playersBucket   = "players"
	transfersBucket = "transfers"
	metaBucket      = "meta"
)

// Store provides a bbolt-backed implementation of the storage ports.
type Store struct {
	db    *bbolt.DB
	clock clockwork.Clock
}

var _ secondary.Store = (*Store)(nil)

// Open opens (creating if needed) the bbolt database at path and
// ensures the collection buckets exist.
func Open(path string, clock clockwork.Clock) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required: %w", errs.ErrInvalidArgument)
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w: %v", errs.ErrIOFailure, err)
	}

	store := &Store{db: db, clock: clock}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Clubs returns the club repository backed by this store.
func (s *Store) Clubs() secondary.ClubRepository {
	return &ClubRepository{store: s}
}

// Players returns the player repository backed by this store.
func (s *Store) Players() secondary.PlayerRepository {
	return &PlayerRepository{store: s}
}

// Transfers returns the transfer ledger backed by this store.
func (s *Store) Transfers() secondary.TransferRepository {
	return &TransferRepository{store: s}
}

func (s *Store) ensureBuckets() error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{clubsBucket, playersBucket, transfersBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create %s bucket: %w: %v", name, errs.ErrIOFailure, err)
			}
		}
		return nil
	})
	return err
}

// touch records the collection's last_updated stamp in the meta bucket.
func (s *Store) touch(tx *bbolt.Tx, collection string) error {
	meta := tx.Bucket([]byte(metaBucket))
	stamp, err := s.clock.Now().MarshalText()
	if err != nil {
		return fmt.Errorf("encode stamp: %w: %v", errs.ErrIOFailure, err)
	}
	if err := meta.Put([]byte(collection+"/last_updated"), stamp); err != nil {
		return fmt.Errorf("stamp %s: %w: %v", collection, errs.ErrIOFailure, err)
	}
	return nil
}

func getClub(tx *bbolt.Tx, id string) (*entity.Club, error) {
	payload := tx.Bucket([]byte(clubsBucket)).Get([]byte(id))
	if payload == nil {
		return nil, nil
	}
	var club entity.Club
	if err := json.Unmarshal(payload, &club); err != nil {
		return nil, fmt.Errorf("decode club %q: %w: %v", id, errs.ErrCorruptData, err)
	}
	club.ID = id
	if club.Players == nil {
		club.Players = []string{}
	}
	return &club, nil
}

func putClub(tx *bbolt.Tx, club *entity.Club) error {
	payload, err := json.Marshal(club)
	if err != nil {
		return fmt.Errorf("encode club %q: %w: %v", club.ID, errs.ErrIOFailure, err)
	}
	if err := tx.Bucket([]byte(clubsBucket)).Put([]byte(club.ID), payload); err != nil {
		return fmt.Errorf("put club %q: %w: %v", club.ID, errs.ErrIOFailure, err)
	}
	return nil
}

func getPlayer(tx *bbolt.Tx, id string) (*entity.Player, error) {
	payload := tx.Bucket([]byte(playersBucket)).Get([]byte(id))
	if payload == nil {
		return nil, nil
	}
	var player entity.Player
	if err := json.Unmarshal(payload, &player); err != nil {
		return nil, fmt.Errorf("decode player %q: %w: %v", id, errs.ErrCorruptData, err)
	}
	player.ID = id
	return &player, nil
}

func putPlayer(tx *bbolt.Tx, player *entity.Player) error {
	payload, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("encode player %q: %w: %v", player.ID, errs.ErrIOFailure, err)
	}
	if err := tx.Bucket([]byte(playersBucket)).Put([]byte(player.ID), payload); err != nil {
		return fmt.Errorf("put player %q: %w: %v", player.ID, errs.ErrIOFailure, err)
	}
	return nil
}

// appendTransfer stores the entry under the bucket's next sequence
// number, so iteration order is insertion order regardless of dates.
func appendTransfer(tx *bbolt.Tx, t *entity.Transfer) error {
	bucket := tx.Bucket([]byte(transfersBucket))
	seq, err := bucket.NextSequence()
	if err != nil {
		return fmt.Errorf("ledger sequence: %w: %v", errs.ErrIOFailure, err)
	}
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode transfer: %w: %v", errs.ErrIOFailure, err)
	}
	if err := bucket.Put(seqKey(seq), payload); err != nil {
		return fmt.Errorf("append transfer: %w: %v", errs.ErrIOFailure, err)
	}
	return nil
}

// forEachTransfer walks the ledger in insertion order. The callback may
// return a replacement record to rewrite the entry (rename cascades) or
// nil to leave it untouched. Rewrites are collected during iteration
// and applied afterwards; bbolt forbids mutating a bucket mid-cursor.
func forEachTransfer(tx *bbolt.Tx, fn func(t *entity.Transfer) (*entity.Transfer, error)) error {
	bucket := tx.Bucket([]byte(transfersBucket))
	rewrites := make(map[string][]byte)
	cursor := bucket.Cursor()
	for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
		var t entity.Transfer
		if err := json.Unmarshal(v, &t); err != nil {
			return fmt.Errorf("decode transfer: %w: %v", errs.ErrCorruptData, err)
		}
		replacement, err := fn(&t)
		if err != nil {
			return err
		}
		if replacement != nil {
			payload, err := json.Marshal(replacement)
			if err != nil {
				return fmt.Errorf("encode transfer: %w: %v", errs.ErrIOFailure, err)
			}
			rewrites[string(k)] = payload
		}
	}
	for k, payload := range rewrites {
		if err := bucket.Put([]byte(k), payload); err != nil {
			return fmt.Errorf("rewrite transfer: %w: %v", errs.ErrIOFailure, err)
		}
	}
	return nil
}

func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

// Snapshot returns a consistent copy of all three collections from a
// single read transaction.
func (s *Store) Snapshot(ctx context.Context) (*entity.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := &entity.Snapshot{
		GeneratedAt: s.clock.Now(),
		Clubs:       make(map[string]*entity.Club),
		Players:     make(map[string]*entity.Player),
		Transfers:   []*entity.Transfer{},
	}
	err := s.db.View(func(tx *bbolt.Tx) error {
		err := tx.Bucket([]byte(clubsBucket)).ForEach(func(k, v []byte) error {
			var club entity.Club
			if err := json.Unmarshal(v, &club); err != nil {
				return fmt.Errorf("decode club %q: %w: %v", k, errs.ErrCorruptData, err)
			}
			club.ID = string(k)
			snap.Clubs[club.ID] = &club
			return nil
		})
		if err != nil {
			return err
		}
		err = tx.Bucket([]byte(playersBucket)).ForEach(func(k, v []byte) error {
			var player entity.Player
			if err := json.Unmarshal(v, &player); err != nil {
				return fmt.Errorf("decode player %q: %w: %v", k, errs.ErrCorruptData, err)
			}
			player.ID = string(k)
			snap.Players[player.ID] = &player
			return nil
		})
		if err != nil {
			return err
		}
		return forEachTransfer(tx, func(t *entity.Transfer) (*entity.Transfer, error) {
			snap.Transfers = append(snap.Transfers, t.Clone())
			return nil, nil
		})
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// PurgeTenant removes every record whose ID carries the tenant prefix
// inside one transaction.
func (s *Store) PurgeTenant(ctx context.Context, prefix string) (entity.PurgeResult, error) {
	var res entity.PurgeResult
	if err := ctx.Err(); err != nil {
		return res, err
	}
	if strings.TrimSpace(prefix) == "" {
		return res, fmt.Errorf("tenant prefix is required: %w", errs.ErrInvalidArgument)
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{clubsBucket, playersBucket} {
			bucket := tx.Bucket([]byte(name))
			cursor := bucket.Cursor()
			for k, _ := cursor.First(); k != nil; k, _ = cursor.Next() {
				if !strings.HasPrefix(string(k), prefix) {
					continue
				}
				if err := cursor.Delete(); err != nil {
					return fmt.Errorf("purge %s: %w: %v", name, errs.ErrIOFailure, err)
				}
				if name == clubsBucket {
					res.Clubs++
				} else {
					res.Players++
				}
			}
		}

		bucket := tx.Bucket([]byte(transfersBucket))
		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			var t entity.Transfer
			if err := json.Unmarshal(v, &t); err != nil {
				return fmt.Errorf("decode transfer: %w: %v", errs.ErrCorruptData, err)
			}
			if !strings.HasPrefix(t.PlayerID, prefix) {
				continue
			}
			if err := cursor.Delete(); err != nil {
				return fmt.Errorf("purge transfers: %w: %v", errs.ErrIOFailure, err)
			}
			res.Transfers++
		}

		for _, name := range []string{clubsBucket, playersBucket, transfersBucket} {
			if err := s.touch(tx, name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return entity.PurgeResult{}, err
	}
	return res, nil
}
