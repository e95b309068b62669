// Package jsondb persists each collection as one flat JSON document,
// the layout the transfer desk has always used: clubs.json and
// players.json hold id-keyed maps, transfers.json an append-only list.
// Documents are rewritten in full per mutation via temp-file-then-
// rename, so a failed write never corrupts the previous document. One
// store-wide mutex serializes every multi-step operation.
package jsondb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
	"github.com/clubdesk/transferdesk/internal/domain/errs"
	"github.com/clubdesk/transferdesk/internal/ports/secondary"
)

const (
	clubsFile     = "clubs.json"
	playersFile   = "players.json"
	transfersFile = "transfers.json"
)

type clubsDocument struct {
	Clubs       map[string]*entity.Club `json:"clubs"`
	LastUpdated *time.Time              `json:"last_updated"`
}

type playersDocument struct {
	Players     map[string]*entity.Player `json:"players"`
	LastUpdated *time.Time                `json:"last_updated"`
}

type transfersDocument struct {
	Transfers   []*entity.Transfer `json:"transfers"`
	LastUpdated *time.Time         `json:"last_updated"`
}

// Store holds all three collections in memory and mirrors every
// mutation to disk before it becomes visible to readers.
type Store struct {
	mu    sync.RWMutex
	dir   string
	clock clockwork.Clock

	clubs     map[string]*entity.Club
	players   map[string]*entity.Player
	transfers []*entity.Transfer
}

var _ secondary.Store = (*Store)(nil)

// Open loads the documents from dir, creating the directory and
// schema-appropriate empty defaults on first use. Unreadable files fail
// with errs.ErrIOFailure, undecodable ones with errs.ErrCorruptData;
// existing history is never silently discarded.
func Open(dir string, clock clockwork.Clock) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("data directory is required: %w", errs.ErrInvalidArgument)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w: %v", errs.ErrIOFailure, err)
	}

	s := &Store{
		dir:       dir,
		clock:     clock,
		clubs:     make(map[string]*entity.Club),
		players:   make(map[string]*entity.Player),
		transfers: nil,
	}

	var clubsDoc clubsDocument
	loaded, err := s.loadDocument(clubsFile, &clubsDoc)
	if err != nil {
		return nil, err
	}
	if loaded && clubsDoc.Clubs != nil {
		s.clubs = clubsDoc.Clubs
		for id, club := range s.clubs {
			club.ID = id
			if club.Players == nil {
				club.Players = []string{}
			}
		}
	}
	if !loaded {
		if err := s.saveClubs(); err != nil {
			return nil, err
		}
	}

	var playersDoc playersDocument
	loaded, err = s.loadDocument(playersFile, &playersDoc)
	if err != nil {
		return nil, err
	}
	if loaded && playersDoc.Players != nil {
		s.players = playersDoc.Players
		for id, player := range s.players {
			player.ID = id
		}
	}
	if !loaded {
		if err := s.savePlayers(); err != nil {
			return nil, err
		}
	}

	var transfersDoc transfersDocument
	loaded, err = s.loadDocument(transfersFile, &transfersDoc)
	if err != nil {
		return nil, err
	}
	if loaded {
		s.transfers = transfersDoc.Transfers
	} else if err := s.saveTransfers(); err != nil {
		return nil, err
	}

	return s, nil
}

// Close is part of the secondary.Store lifecycle. Flat files need no
// teardown beyond the saves already performed per mutation.
func (s *Store) Close() error {
	return nil
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

// loadDocument reads and decodes one collection file. The boolean
// reports whether a document existed.
func (s *Store) loadDocument(name string, out any) (bool, error) {
	path := filepath.Join(s.dir, name)
	payload, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w: %v", name, errs.ErrIOFailure, err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return false, fmt.Errorf("decode %s: %w: %v", name, errs.ErrCorruptData, err)
	}
	return true, nil
}

// writeDocument marshals the document and atomically replaces the
// target file. Callers must hold the write lock.
func (s *Store) writeDocument(name string, doc any) error {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w: %v", name, errs.ErrIOFailure, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w: %v", name, errs.ErrIOFailure, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w: %v", name, errs.ErrIOFailure, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w: %v", name, errs.ErrIOFailure, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w: %v", name, errs.ErrIOFailure, err)
	}
	return nil
}

func (s *Store) saveClubs() error {
	now := s.clock.Now()
	return s.writeDocument(clubsFile, clubsDocument{Clubs: s.clubs, LastUpdated: &now})
}

func (s *Store) savePlayers() error {
	now := s.clock.Now()
	return s.writeDocument(playersFile, playersDocument{Players: s.players, LastUpdated: &now})
}

func (s *Store) saveTransfers() error {
	now := s.clock.Now()
	doc := transfersDocument{Transfers: s.transfers, LastUpdated: &now}
	if doc.Transfers == nil {
		doc.Transfers = []*entity.Transfer{}
	}
	return s.writeDocument(transfersFile, doc)
}

// Snapshot returns a deep copy of all three collections taken under a
// single read lock, so the parts agree with each other.
func (s *Store) Snapshot(ctx context.Context) (*entity.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &entity.Snapshot{
		GeneratedAt: s.clock.Now(),
		Clubs:       make(map[string]*entity.Club, len(s.clubs)),
		Players:     make(map[string]*entity.Player, len(s.players)),
		Transfers:   make([]*entity.Transfer, 0, len(s.transfers)),
	}
	for id, club := range s.clubs {
		snap.Clubs[id] = club.Clone()
	}
	for id, player := range s.players {
		snap.Players[id] = player.Clone()
	}
	for _, t := range s.transfers {
		snap.Transfers = append(snap.Transfers, t.Clone())
	}
	return snap, nil
}

// PurgeTenant removes every record whose ID carries the tenant prefix.
// Ledger rows are matched through their player ID, as the original
// reset did.
func (s *Store) PurgeTenant(ctx context.Context, prefix string) (entity.PurgeResult, error) {
	var res entity.PurgeResult
	if err := ctx.Err(); err != nil {
		return res, err
	}
	if strings.TrimSpace(prefix) == "" {
		return res, fmt.Errorf("tenant prefix is required: %w", errs.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prevClubs := s.clubs
	prevPlayers := s.players
	prevTransfers := s.transfers

	clubs := make(map[string]*entity.Club, len(s.clubs))
	for id, club := range s.clubs {
		if strings.HasPrefix(id, prefix) {
			res.Clubs++
			continue
		}
		clubs[id] = club
	}
	players := make(map[string]*entity.Player, len(s.players))
	for id, player := range s.players {
		if strings.HasPrefix(id, prefix) {
			res.Players++
			continue
		}
		players[id] = player
	}
	transfers := make([]*entity.Transfer, 0, len(s.transfers))
	for _, t := range s.transfers {
		if strings.HasPrefix(t.PlayerID, prefix) {
			res.Transfers++
			continue
		}
		transfers = append(transfers, t)
	}

	s.clubs = clubs
	s.players = players
	s.transfers = transfers

	if err := s.saveAll(); err != nil {
		s.clubs = prevClubs
		s.players = prevPlayers
		s.transfers = prevTransfers
		s.resaveAll()
		return entity.PurgeResult{}, err
	}
	return res, nil
}

// saveAll persists the three documents; callers must hold the write lock.
func (s *Store) saveAll() error {
	if err := s.saveClubs(); err != nil {
		return err
	}
	if err := s.savePlayers(); err != nil {
		return err
	}
	return s.saveTransfers()
}

// resaveAll restores the on-disk documents after a failed multi-file
// commit. Best effort: the in-memory state is already rolled back and a
// follow-up save will converge the files again.
func (s *Store) resaveAll() {
	_ = s.saveClubs()
	_ = s.savePlayers()
	_ = s.saveTransfers()
}
