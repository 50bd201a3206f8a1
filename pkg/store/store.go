// Package store owns the todo collection and its durability. The whole
// ordered collection lives under a single key in an embedded key-value
// database and is rewritten after every mutation. Canonical order is
// insertion order; display order is the caller's business.
package store

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	// itemsKey is the fixed key holding the serialized collection.
	itemsKey = "todos"

	// quarantineKey receives an undecodable payload before the
	// collection is reset, so the data stays recoverable.
	quarantineKey = "todos.corrupt"
)

// Store is the single source of truth for the todo collection.
// All methods run to completion, including the persistence write,
// before returning. Not safe for concurrent use; the application
// drives it from a single goroutine.
type Store struct {
	db    *badger.DB
	items []TodoItem
	subs  []func()
	log   *slog.Logger
}

// Open opens the backing database and returns an empty store.
// Call Load to read any persisted collection.
func Open(cfg Config) (*Store, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{db: db, log: log}, nil
}

// Close releases the backing database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Subscribe registers fn to run after every successful mutation.
func (s *Store) Subscribe(fn func()) {
	s.subs = append(s.subs, fn)
}

func (s *Store) notify() {
	for _, fn := range s.subs {
		fn()
	}
}

// Load reads the persisted collection, replacing any in-memory state.
// It fails soft: an absent key yields an empty collection, and an
// undecodable payload is quarantined and then likewise yields an empty
// collection. No error reaches the caller either way.
func (s *Store) Load() {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(itemsKey))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			s.log.Warn("load failed, starting empty", "error", err)
		}
		s.items = []TodoItem{}
		return
	}

	var items []TodoItem
	if err := json.Unmarshal(raw, &items); err != nil {
		s.log.Warn("persisted collection is unreadable, quarantining", "error", err)
		s.quarantine(raw)
		s.items = []TodoItem{}
		return
	}
	s.items = items
}

// quarantine preserves an unreadable payload under a separate key.
func (s *Store) quarantine(raw []byte) {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(quarantineKey), raw)
	})
	if err != nil {
		s.log.Error("quarantine write failed", "error", err)
	}
}

// Add constructs a new item with a fresh id and creation time, appends
// it to the collection, and persists before returning.
func (s *Store) Add(title, description string, dueDate time.Time, location string) TodoItem {
	item := TodoItem{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Created:     time.Now(),
		DueDate:     dueDate,
		Location:    location,
	}
	s.items = append(s.items, item)
	s.persist()
	s.log.Info("added task", "id", item.ID, "title", item.Title)
	s.notify()
	return item
}

// Insert appends an externally sourced item, filling in a missing id or
// creation time. An incoming id that already exists in the collection is
// regenerated so ids stay unique. Used by import so that round-tripped
// items keep their identity where possible.
func (s *Store) Insert(item TodoItem) TodoItem {
	if item.ID == "" {
		item.ID = uuid.NewString()
	} else if _, exists := s.Get(item.ID); exists {
		s.log.Debug("insert id collision, regenerating", "id", item.ID)
		item.ID = uuid.NewString()
	}
	if item.Created.IsZero() {
		item.Created = time.Now()
	}
	s.items = append(s.items, item)
	s.persist()
	s.notify()
	return item
}

// Update replaces the stored entry matching item.ID in place, keeping
// its position and original creation time, and persists. An unknown id
// leaves the collection and the persisted state untouched; the return
// value reports whether the id was found.
func (s *Store) Update(item TodoItem) bool {
	for i := range s.items {
		if s.items[i].ID == item.ID {
			item.Created = s.items[i].Created
			s.items[i] = item
			s.persist()
			s.log.Info("updated task", "id", item.ID)
			s.notify()
			return true
		}
	}
	s.log.Debug("update for unknown id", "id", item.ID)
	return false
}

// Delete removes the entry with the given id and persists. An unknown
// id is a no-op; the return value reports whether anything was removed.
func (s *Store) Delete(id string) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist()
			s.log.Info("deleted task", "id", id)
			s.notify()
			return true
		}
	}
	s.log.Debug("delete for unknown id", "id", id)
	return false
}

// DeleteWhere removes every entry matching pred and persists once.
// Returns the number of removed entries.
func (s *Store) DeleteWhere(pred func(TodoItem) bool) int {
	kept := s.items[:0]
	removed := 0
	for _, it := range s.items {
		if pred(it) {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	if removed == 0 {
		return 0
	}
	s.items = kept
	s.persist()
	s.log.Info("purged tasks", "count", removed)
	s.notify()
	return removed
}

// Snapshot returns a copy of the collection in canonical order.
// Mutating the returned slice does not affect the store.
func (s *Store) Snapshot() []TodoItem {
	out := make([]TodoItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items in the collection.
func (s *Store) Len() int {
	return len(s.items)
}

// Get returns the item with the given id, if present.
func (s *Store) Get(id string) (TodoItem, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return TodoItem{}, false
}

// persist serializes the whole collection and overwrites the stored
// value. Persistence failures degrade silently: the in-memory state is
// already updated and the error is only logged.
func (s *Store) persist() {
	raw, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		s.log.Error("marshal collection failed", "error", err)
		return
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(itemsKey), raw)
	})
	if err != nil {
		s.log.Error("persist collection failed", "error", err)
	}
}
