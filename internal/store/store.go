// Package store persists games in BadgerDB. Each game is one JSON record
// keyed by a uuid, holding the current state and every earlier state.
package store

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/lgbarn/chaichess-go/internal/chess"
	"github.com/lgbarn/chaichess-go/internal/codec"
	"github.com/lgbarn/chaichess-go/internal/errors"
)

// keyPrefix namespaces game records.
const keyPrefix = "game/"

// Game is a stored game.
type Game struct {
	ID    string
	State chess.GameState
	// History holds the states before State, oldest first.
	History   []chess.GameState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// record is the stored form of a Game.
type record struct {
	ID        string        `json:"id"`
	State     codec.State   `json:"state"`
	History   []codec.State `json:"history"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Store wraps BadgerDB for persistent game storage.
type Store struct {
	db *badger.DB
}

// Open opens the database in dir. With inMemory set, dir is ignored and
// nothing is written to disk.
func Open(dir string, inMemory bool) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "opening game store")
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(keyPrefix + id)
}

// Create stores a new game starting from state.
func (s *Store) Create(state chess.GameState) (*Game, error) {
	now := time.Now().UTC()
	game := &Game{
		ID:        uuid.New().String(),
		State:     state,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return put(txn, game)
	}); err != nil {
		return nil, err
	}
	return game, nil
}

// Get loads a game. Unknown ids fail with ErrGameNotFound.
func (s *Store) Get(id string) (*Game, error) {
	var game *Game
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		game, err = get(txn, id)
		return err
	})
	return game, err
}

// Advance replaces the current state of game id with the state returned by
// move, pushing the old state onto the history. The read and the write happen
// in one transaction. An error from move aborts the update and is returned.
// A concurrent update of the same game fails with ErrGameChanged.
func (s *Store) Advance(id string, move func(chess.GameState) (chess.GameState, error)) (*Game, error) {
	var game *Game
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		game, err = get(txn, id)
		if err != nil {
			return err
		}
		next, err := move(game.State)
		if err != nil {
			return err
		}
		game.History = append(game.History, game.State)
		game.State = next
		game.UpdatedAt = time.Now().UTC()
		return put(txn, game)
	})
	if err == badger.ErrConflict {
		return nil, errors.Wrapf(errors.ErrGameChanged, "game %q", id)
	}
	if err != nil {
		return nil, err
	}
	return game, nil
}

// Delete removes a game. Unknown ids fail with ErrGameNotFound.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(gameKey(id)); err != nil {
			if err == badger.ErrKeyNotFound {
				return errors.Wrapf(errors.ErrGameNotFound, "game %q", id)
			}
			return err
		}
		return txn.Delete(gameKey(id))
	})
}

// List returns the ids of all stored games in key order.
func (s *Store) List() ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, strings.TrimPrefix(string(it.Item().Key()), keyPrefix))
		}
		return nil
	})
	return ids, err
}

func get(txn *badger.Txn, id string) (*Game, error) {
	item, err := txn.Get(gameKey(id))
	if err == badger.ErrKeyNotFound {
		return nil, errors.Wrapf(errors.ErrGameNotFound, "game %q", id)
	}
	if err != nil {
		return nil, err
	}

	var rec record
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	}); err != nil {
		return nil, errors.Wrapf(err, "game %q", id)
	}
	return fromRecord(rec)
}

func put(txn *badger.Txn, game *Game) error {
	data, err := json.Marshal(toRecord(game))
	if err != nil {
		return err
	}
	return txn.Set(gameKey(game.ID), data)
}

func toRecord(game *Game) record {
	rec := record{
		ID:        game.ID,
		State:     codec.Plain(game.State),
		History:   make([]codec.State, len(game.History)),
		CreatedAt: game.CreatedAt,
		UpdatedAt: game.UpdatedAt,
	}
	for i, h := range game.History {
		rec.History[i] = codec.Plain(h)
	}
	return rec
}

func fromRecord(rec record) (*Game, error) {
	state, err := rec.State.ToState()
	if err != nil {
		return nil, errors.Wrapf(err, "game %q", rec.ID)
	}
	game := &Game{
		ID:        rec.ID,
		State:     state,
		History:   make([]chess.GameState, len(rec.History)),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	for i, h := range rec.History {
		if game.History[i], err = h.ToState(); err != nil {
			return nil, errors.Wrapf(err, "game %q history %d", rec.ID, i)
		}
	}
	return game, nil
}
